package dashboard

import (
	"time"

	"fx_hedge/internal/domain"
)

// Message types pushed over the WebSocket.
const (
	TypeSnapshot   = "snapshot"
	TypeTick       = "tick"
	TypeHistorical = "historical"
	TypeCredential = "credential_input"
)

// Message is the envelope for every WebSocket frame.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// ValueText is a number with its display text and style class.
type ValueText struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
	Class string  `json:"class"`
}

func valueText(v float64) ValueText {
	return ValueText{Value: v, Text: FormatCurrency(v), Class: StyleClass(v)}
}

// TickPayload fills the rate, P/L and status slots and appends one chart point.
type TickPayload struct {
	Time      time.Time         `json:"time"`
	Source    string            `json:"source"`
	Status    string            `json:"status"`
	Mode      string            `json:"mode"`
	Simulated bool              `json:"simulated"`
	Rates     domain.RatePair   `json:"rates"`
	RateText  map[string]string `json:"rate_text"`
	LegAED    ValueText         `json:"leg_aed"`
	LegSAR    ValueText         `json:"leg_sar"`
	Total     ValueText         `json:"total"`
	Point     domain.ChartPoint `json:"point"`
	Evicted   bool              `json:"evicted"`
	Color     string            `json:"color"`
}

// HistoricalPayload fills the comparison panel.
type HistoricalPayload struct {
	Status    domain.HistoricalStatus `json:"status"`
	Label     string                  `json:"label"`
	Yesterday *ValueText              `json:"yesterday,omitempty"`
	Month     *ValueText              `json:"month,omitempty"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// SnapshotPayload brings a freshly connected page up to date.
type SnapshotPayload struct {
	Tick       *TickPayload        `json:"tick,omitempty"`
	Historical *HistoricalPayload  `json:"historical,omitempty"`
	Chart      []domain.ChartPoint `json:"chart"`
	Color      string              `json:"color"`
}

func newTickPayload(v domain.TickView) *TickPayload {
	status := v.Source.StatusText()
	if v.Simulated {
		status += " + simulated noise"
	}
	return &TickPayload{
		Time:      v.Time,
		Source:    v.Source.String(),
		Status:    status,
		Mode:      v.Mode,
		Simulated: v.Simulated,
		Rates:     v.Rates,
		RateText: map[string]string{
			"usdaed": FormatRate(v.Rates.USDAED),
			"usdsar": FormatRate(v.Rates.USDSAR),
		},
		LegAED: valueText(v.PL.PerLegAED),
		LegSAR: valueText(v.PL.PerLegSAR),
		Total:  valueText(v.PL.Total),
		Point:  domain.ChartPoint{Time: v.Time, Total: v.PL.Total},
		Color:  ChartColor(v.PL.Total),
	}
}

func newHistoricalPayload(v domain.HistoricalView) *HistoricalPayload {
	p := &HistoricalPayload{Status: v.Status, UpdatedAt: v.UpdatedAt}
	if v.Status != domain.HistoricalOK || v.Snapshot == nil {
		p.Status = domain.HistoricalUnavailable
		p.Label = "Historical data unavailable"
		return p
	}
	y := valueText(v.Snapshot.YesterdayPL.Total)
	m := valueText(v.Snapshot.MonthPL.Total)
	p.Label = "vs. yesterday / one month ago"
	p.Yesterday = &y
	p.Month = &m
	return p
}
