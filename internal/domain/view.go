package domain

import "time"

// TickView is everything computed by one tick of the pipeline.
type TickView struct {
	Time      time.Time `json:"time"`
	Rates     RatePair  `json:"rates"`
	PL        PLResult  `json:"pl"`
	Source    Source    `json:"source"`
	Mode      string    `json:"mode"`
	Simulated bool      `json:"simulated"`
}

// HistoricalStatus describes the comparison panel state.
type HistoricalStatus string

const (
	HistoricalOK          HistoricalStatus = "ok"
	HistoricalUnavailable HistoricalStatus = "unavailable"
)

// HistoricalView is pushed whenever the comparison panel changes.
type HistoricalView struct {
	Status    HistoricalStatus    `json:"status"`
	Snapshot  *HistoricalSnapshot `json:"snapshot,omitempty"`
	UpdatedAt time.Time           `json:"updated_at"`
}
