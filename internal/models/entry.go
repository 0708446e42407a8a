package models

import "time"

// GratitudeEntry is the single journal entry for one calendar day.
type GratitudeEntry struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"`  // YYYY-MM-DD day-key
	Date      time.Time `json:"date"` // when the entry was first written
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsEmpty reports whether the entry holds no text.
func (e GratitudeEntry) IsEmpty() bool {
	return e.Text == ""
}
