package sensorpush

import "testing"

func TestParseDevicesSkipsStatusAndInjectsID(t *testing.T) {
	resp := map[string]any{
		"status": map[string]any{"code": 200.0},
		"gw_123": map[string]any{"name": "A"},
	}

	got := parseDevices(resp, NewGateway)
	if len(got) != 1 {
		t.Fatalf("parsed %d gateways, want 1", len(got))
	}
	if got[0].ID != "gw_123" {
		t.Fatalf("ID = %q, want gw_123", got[0].ID)
	}
	if got[0].Name != "A" {
		t.Fatalf("Name = %q, want A", got[0].Name)
	}
}

func TestParseDevicesKeepsExplicitID(t *testing.T) {
	resp := map[string]any{
		"key": map[string]any{"id": "explicit", "name": "B"},
	}

	got := parseDevices(resp, NewGateway)
	if len(got) != 1 || got[0].ID != "explicit" {
		t.Fatalf("parsed %+v, want single gateway with explicit id", got)
	}
}

func TestParseDevicesSkipsNonObjectEntries(t *testing.T) {
	resp := map[string]any{
		"message": "Forbidden",
		"s1":      map[string]any{"name": "Cellar", "battery_voltage": 2.1},
	}

	got := parseDevices(resp, NewSensor)
	if len(got) != 1 {
		t.Fatalf("parsed %d sensors, want 1", len(got))
	}
	if got[0].ID != "s1" {
		t.Fatalf("ID = %q, want s1", got[0].ID)
	}
	if low := got[0].BatteryLow(); low == nil || !*low {
		t.Fatalf("BatteryLow = %v, want true", low)
	}
}

func TestParseDevicesEmptyResponse(t *testing.T) {
	got := parseDevices(map[string]any{}, NewSensor)
	if len(got) != 0 {
		t.Fatalf("parsed %d sensors from empty response, want 0", len(got))
	}
}
