package model

// Snapshot is the entire durable state of the game, written wholesale on
// every mutation. The field names and order match the state.json files the
// service has always produced.
type Snapshot struct {
	Events []ScanEvent `json:"events"`
	Codes  []Code      `json:"codes"`
}

// Clone returns a deep copy so a store can serialize outside the service lock
// without racing later mutations.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Events: make([]ScanEvent, len(s.Events)),
		Codes:  make([]Code, len(s.Codes)),
	}
	copy(c.Events, s.Events)
	copy(c.Codes, s.Codes)
	return c
}
