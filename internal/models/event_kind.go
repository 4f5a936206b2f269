package models

// EventKind identifies one ingested occurrence from the collaboration platform.
type EventKind string

const (
	// KindDom is an edit operation applied to a webstrate's DOM.
	KindDom EventKind = "dom"
	// KindSignal is a transient presence signal between clients.
	KindSignal EventKind = "signal"
	// KindClientJoin marks a client joining a webstrate.
	KindClientJoin EventKind = "clientJoin"
	// KindClientPart marks a client leaving a webstrate.
	KindClientPart EventKind = "clientPart"
)

// IsCounted reports whether the kind contributes to interval counters.
func (k EventKind) IsCounted() bool {
	return k == KindDom || k == KindSignal
}

// IsTransition reports whether the kind is a discrete join/part transition,
// persisted immediately instead of being accumulated.
func (k EventKind) IsTransition() bool {
	return k == KindClientJoin || k == KindClientPart
}

// Valid reports whether the kind is one this service understands.
func (k EventKind) Valid() bool {
	return k.IsCounted() || k.IsTransition()
}
