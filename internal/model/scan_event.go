package model

// ScanEvent records one group's first successful redemption of a code.
// Points are copied from the code at redemption time so later edits to the
// registry can never rewrite history. Events are append-only.
type ScanEvent struct {
	GroupName string `json:"groupName"`
	Points    int    `json:"points"`
	QRID      int    `json:"qrId"`
}
