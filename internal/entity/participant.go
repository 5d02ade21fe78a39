package entity

import "time"

type Participant struct {
	ID         string    `json:"id"`
	Path       string    `json:"-"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}
