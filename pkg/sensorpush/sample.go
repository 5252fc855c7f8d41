package sensorpush

import "time"

// Sample is one timestamped humidity/temperature reading. Samples are
// values: two built from identical attributes compare equal regardless of
// where they came from.
type Sample struct {
	Humidity    *float64
	Temperature *float64
	Observed    *time.Time
}

// NewSample builds a Sample from a reading attribute map.
func NewSample(attrs map[string]any) Sample {
	return Sample{
		Humidity:    floatAttr(attrs, "humidity"),
		Temperature: floatAttr(attrs, "temperature"),
		Observed:    timeAttr(attrs, "observed"),
	}
}

// Equal reports structural equality of the two samples' field values.
func (s Sample) Equal(o Sample) bool {
	return eqFloat(s.Humidity, o.Humidity) &&
		eqFloat(s.Temperature, o.Temperature) &&
		eqTime(s.Observed, o.Observed)
}

// Fields returns the requested subset of the sample's attributes, or all
// of them when no names are given.
func (s Sample) Fields(names ...string) map[string]any {
	all := map[string]any{
		"humidity":    deref(s.Humidity),
		"temperature": deref(s.Temperature),
		"observed":    deref(s.Observed),
	}
	return subset(all, names)
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
