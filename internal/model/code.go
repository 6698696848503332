package model

// Code is one printed QR code: its registry id, what it is attached to, and
// the points a group earns for scanning it first. Codes are immutable once
// issued; identity is ID.
type Code struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}
