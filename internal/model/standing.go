package model

// Standing is one leaderboard row: a group and its point total.
type Standing struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}
