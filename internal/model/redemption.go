package model

// RedemptionResult tells the scanner what a submitted token was worth.
// QRCodeFound is nil when the token was forged, malformed, or referenced an
// unknown code; ScannedFirst is true only when this scan created a new ledger
// event. The zero value is the "nothing happened" answer.
type RedemptionResult struct {
	QRCodeFound  *Code `json:"qrCodeFound"`
	ScannedFirst bool  `json:"scannedFirst"`
}
