package sensorpush

import "time"

// Gateway is an immutable snapshot of one gateway device. The cloud keys
// gateways by name and omits an explicit id, so ID is usually injected
// from the response map key.
type Gateway struct {
	ID        string
	Name      string
	Version   string
	Message   string
	LastSeen  *time.Time
	LastAlert *time.Time
}

// NewGateway builds a Gateway from a device attribute map. Timestamps go
// through the shared ISO-8601 parser and degrade to nil when malformed.
func NewGateway(attrs map[string]any) Gateway {
	g := Gateway{
		LastSeen:  timeAttr(attrs, "last_seen"),
		LastAlert: timeAttr(attrs, "last_alert"),
	}
	if v := stringAttr(attrs, "id"); v != nil {
		g.ID = *v
	}
	if v := stringAttr(attrs, "name"); v != nil {
		g.Name = *v
	}
	if v := stringAttr(attrs, "version"); v != nil {
		g.Version = *v
	}
	if v := stringAttr(attrs, "message"); v != nil {
		g.Message = *v
	}
	return g
}

// Fields returns the requested subset of the gateway's attributes, or all
// of them when no names are given.
func (g Gateway) Fields(names ...string) map[string]any {
	all := map[string]any{
		"id":         g.ID,
		"name":       g.Name,
		"version":    g.Version,
		"message":    g.Message,
		"last_seen":  deref(g.LastSeen),
		"last_alert": deref(g.LastAlert),
	}
	return subset(all, names)
}
