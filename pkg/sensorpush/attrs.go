package sensorpush

import (
	"strconv"
	"time"
)

// Attribute maps are what encoding/json produces for an untyped object:
// numbers arrive as float64, everything else as string/bool/nil. The
// readers below pull a field out defensively; a missing or mistyped value
// degrades to nil rather than an error, because upstream payloads routinely
// omit or null fields per device model.

func stringAttr(attrs map[string]any, key string) *string {
	v, ok := attrs[key]
	if !ok || v == nil {
		return nil
	}
	switch s := v.(type) {
	case string:
		return &s
	case float64:
		f := strconv.FormatFloat(s, 'f', -1, 64)
		return &f
	}
	return nil
}

func floatAttr(attrs map[string]any, key string) *float64 {
	v, ok := attrs[key]
	if !ok || v == nil {
		return nil
	}
	switch f := v.(type) {
	case float64:
		return &f
	case string:
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		return &parsed
	}
	return nil
}

func boolAttr(attrs map[string]any, key string) *bool {
	v, ok := attrs[key]
	if !ok || v == nil {
		return nil
	}
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}

// iso8601Layouts are tried in order; the ones without a zone are taken
// as UTC.
var iso8601Layouts = []struct {
	layout string
	utc    bool
}{
	{time.RFC3339Nano, false},
	{time.RFC3339, false},
	{"2006-01-02T15:04:05.999999999", true},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02 15:04:05.999999999 -0700", false},
	{"2006-01-02 15:04:05 -0700", false},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02", true},
}

// parseTime converts an ISO-8601 string into an instant. It never fails:
// absent or malformed input yields nil. Offsets are preserved; layouts
// carrying no offset are parsed as UTC.
func parseTime(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	for _, l := range iso8601Layouts {
		var t time.Time
		var err error
		if l.utc {
			t, err = time.ParseInLocation(l.layout, *raw, time.UTC)
		} else {
			t, err = time.Parse(l.layout, *raw)
		}
		if err == nil {
			return &t
		}
	}
	return nil
}

func timeAttr(attrs map[string]any, key string) *time.Time {
	return parseTime(stringAttr(attrs, key))
}
