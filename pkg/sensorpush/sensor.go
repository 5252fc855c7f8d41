package sensorpush

// Battery endpoints for the linear charge estimate. SensorPush sensors run
// on CR2477 cells: 3.0V reads as full, 2.0V as empty, and the firmware
// starts complaining below 2.2V.
const (
	batteryMaxVoltage = 3.0
	batteryMinVoltage = 2.0
	batteryLowVoltage = 2.2
)

// Sensor is an immutable snapshot of one sensor device as reported by the
// cloud API. Pointer fields are nil when the upstream payload omitted the
// attribute.
type Sensor struct {
	ID             string
	Name           string
	Active         *bool
	Address        string
	BatteryVoltage *float64
	DeviceID       string
}

// NewSensor builds a Sensor from a device attribute map. Construction
// always succeeds; absent or malformed attributes degrade to zero/nil
// fields.
func NewSensor(attrs map[string]any) Sensor {
	s := Sensor{
		Active:         boolAttr(attrs, "active"),
		BatteryVoltage: floatAttr(attrs, "battery_voltage"),
	}
	if v := stringAttr(attrs, "id"); v != nil {
		s.ID = *v
	}
	if v := stringAttr(attrs, "name"); v != nil {
		s.Name = *v
	}
	if v := stringAttr(attrs, "address"); v != nil {
		s.Address = *v
	}
	if v := stringAttr(attrs, "deviceId"); v != nil {
		s.DeviceID = *v
	} else if v := stringAttr(attrs, "device_id"); v != nil {
		s.DeviceID = *v
	}
	return s
}

// BatteryLow reports whether the cell voltage is below the firmware alert
// threshold. It is nil exactly when BatteryVoltage is nil.
func (s Sensor) BatteryLow() *bool {
	if s.BatteryVoltage == nil {
		return nil
	}
	low := *s.BatteryVoltage < batteryLowVoltage
	return &low
}

// BatteryPercentage estimates remaining charge as a 0-100 value by linear
// interpolation between the empty and full voltages, clamped outside that
// range. It is nil exactly when BatteryVoltage is nil.
func (s Sensor) BatteryPercentage() *float64 {
	if s.BatteryVoltage == nil {
		return nil
	}
	pct := (*s.BatteryVoltage - batteryMinVoltage) / (batteryMaxVoltage - batteryMinVoltage) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return &pct
}

// Fields returns the requested subset of the sensor's attributes, derived
// ones included, keyed by their wire names. With no names it returns every
// field. Absent values appear as nil entries.
func (s Sensor) Fields(names ...string) map[string]any {
	all := map[string]any{
		"id":                 s.ID,
		"name":               s.Name,
		"active":             deref(s.Active),
		"address":            s.Address,
		"battery_voltage":    deref(s.BatteryVoltage),
		"device_id":          s.DeviceID,
		"battery_low":        deref(s.BatteryLow()),
		"battery_percentage": deref(s.BatteryPercentage()),
	}
	return subset(all, names)
}

func subset(all map[string]any, names []string) map[string]any {
	if len(names) == 0 {
		return all
	}
	out := make(map[string]any, len(names))
	for _, n := range names {
		if v, ok := all[n]; ok {
			out[n] = v
		}
	}
	return out
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
