package sensorpush

import (
	"testing"
)

func TestBatteryPercentage(t *testing.T) {
	cases := []struct {
		name    string
		voltage *float64
		want    *float64
	}{
		{"full", f(3.0), f(100)},
		{"empty", f(2.0), f(0)},
		{"half", f(2.5), f(50)},
		{"clamped high", f(3.5), f(100)},
		{"clamped low", f(1.5), f(0)},
		{"absent", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Sensor{BatteryVoltage: tc.voltage}
			got := s.BatteryPercentage()
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("BatteryPercentage() = %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("BatteryPercentage() = %v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestBatteryLow(t *testing.T) {
	cases := []struct {
		name    string
		voltage *float64
		want    *bool
	}{
		{"low", f(2.1), b(true)},
		{"healthy", f(2.85), b(false)},
		{"absent", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Sensor{BatteryVoltage: tc.voltage}
			got := s.BatteryLow()
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("BatteryLow() = %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("BatteryLow() = %v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestNewSensorFullAttributes(t *testing.T) {
	s := NewSensor(map[string]any{
		"id":              "123.456",
		"name":            "Cellar",
		"active":          true,
		"address":         "A4:34:F1:2B:9C:01",
		"battery_voltage": 2.9,
		"deviceId":        "42100",
	})

	if s.ID != "123.456" {
		t.Fatalf("ID = %q, want %q", s.ID, "123.456")
	}
	if s.Name != "Cellar" {
		t.Fatalf("Name = %q, want %q", s.Name, "Cellar")
	}
	if s.Active == nil || !*s.Active {
		t.Fatalf("Active = %v, want true", s.Active)
	}
	if s.Address != "A4:34:F1:2B:9C:01" {
		t.Fatalf("Address = %q", s.Address)
	}
	if s.BatteryVoltage == nil || *s.BatteryVoltage != 2.9 {
		t.Fatalf("BatteryVoltage = %v, want 2.9", s.BatteryVoltage)
	}
	if s.DeviceID != "42100" {
		t.Fatalf("DeviceID = %q, want %q", s.DeviceID, "42100")
	}
}

func TestNewSensorEmptyAttributes(t *testing.T) {
	s := NewSensor(map[string]any{})

	if s.ID != "" || s.Name != "" || s.Address != "" || s.DeviceID != "" {
		t.Fatalf("expected zero string fields, got %+v", s)
	}
	if s.Active != nil {
		t.Fatalf("Active = %v, want nil", s.Active)
	}
	if s.BatteryVoltage != nil {
		t.Fatalf("BatteryVoltage = %v, want nil", s.BatteryVoltage)
	}
	if s.BatteryLow() != nil || s.BatteryPercentage() != nil {
		t.Fatal("derived fields should be nil without a voltage")
	}
}

func TestNewSensorMalformedVoltage(t *testing.T) {
	s := NewSensor(map[string]any{"battery_voltage": map[string]any{"nested": true}})
	if s.BatteryVoltage != nil {
		t.Fatalf("BatteryVoltage = %v, want nil", s.BatteryVoltage)
	}
}

func TestSensorFieldsSubset(t *testing.T) {
	s := NewSensor(map[string]any{
		"id":              "s1",
		"name":            "Attic",
		"battery_voltage": 2.5,
	})

	got := s.Fields("id", "battery_percentage")
	if len(got) != 2 {
		t.Fatalf("Fields() returned %d entries, want 2", len(got))
	}
	if got["id"] != "s1" {
		t.Fatalf("id = %v, want s1", got["id"])
	}
	if got["battery_percentage"] != 50.0 {
		t.Fatalf("battery_percentage = %v, want 50", got["battery_percentage"])
	}

	all := s.Fields()
	if len(all) != 8 {
		t.Fatalf("Fields() returned %d entries, want all 8", len(all))
	}
	if all["battery_low"] != false {
		t.Fatalf("battery_low = %v, want false", all["battery_low"])
	}
	if all["active"] != nil {
		t.Fatalf("active = %v, want nil", all["active"])
	}
}

func f(v float64) *float64 { return &v }
func b(v bool) *bool       { return &v }
