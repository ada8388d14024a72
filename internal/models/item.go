package models

import "time"

// Item represents one named, colored, countable line of the bead catalog.
type Item struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Count     int       `json:"count"`
	Threshold int       `json:"threshold"`
	CreatedAt time.Time `json:"created_at"`
}
