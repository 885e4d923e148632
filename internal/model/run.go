package model

import "time"

// Run is a previously submitted report as recorded in the history store.
type Run struct {
	ID         int64
	CreatedAt  time.Time
	Latest     time.Time
	NextAnchor time.Time
	AMSource   string
	PMSource   string
	OutputPath string
	Report     string
	Rows       []CombinedRow
}
