package sensorpush

// The "status" entry is a response-envelope artifact, not a device.
const statusKey = "status"

// parseDevices converts a devices response body into typed records. Each
// entry maps a device key to its attribute object; the "status" entry is
// envelope noise and is skipped, as is any entry whose value is not an
// object. When the attribute object carries no id of its own, the map key
// is injected as the record id. Order follows map iteration and is not
// significant.
func parseDevices[T any](resp map[string]any, build func(map[string]any) T) []T {
	out := make([]T, 0, len(resp))
	for key, raw := range resp {
		if key == statusKey {
			continue
		}
		attrs, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := attrs["id"]; !ok {
			attrs["id"] = key
		}
		out = append(out, build(attrs))
	}
	return out
}
