package dashboard

import (
	"sync"

	"fx_hedge/internal/domain"
)

// Broadcaster delivers a message to every connected page.
type Broadcaster interface {
	Broadcast(msg Message)
}

// Renderer turns computed views into display payloads and owns the chart buffer.
type Renderer struct {
	mu       sync.RWMutex
	out      Broadcaster
	chart    *domain.ChartBuffer
	lastTick *TickPayload
	lastHist *HistoricalPayload
}

// NewRenderer creates a renderer that pushes through out.
func NewRenderer(out Broadcaster) *Renderer {
	return &Renderer{
		out:   out,
		chart: domain.NewChartBuffer(domain.MaxChartPoints),
	}
}

// RenderTick updates the numeric slots and pushes one chart point.
func (r *Renderer) RenderTick(v domain.TickView) {
	p := newTickPayload(v)

	r.mu.Lock()
	_, p.Evicted = r.chart.Push(p.Point)
	r.lastTick = p
	r.mu.Unlock()

	r.out.Broadcast(Message{Type: TypeTick, Data: p})
}

// RenderHistorical pushes the comparison panel when its content changed.
func (r *Renderer) RenderHistorical(v domain.HistoricalView) {
	p := newHistoricalPayload(v)

	r.mu.Lock()
	if sameHistorical(r.lastHist, p) {
		r.mu.Unlock()
		return
	}
	r.lastHist = p
	r.mu.Unlock()

	r.out.Broadcast(Message{Type: TypeHistorical, Data: p})
}

func sameHistorical(a, b *HistoricalPayload) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Status != b.Status {
		return false
	}
	return sameValue(a.Yesterday, b.Yesterday) && sameValue(a.Month, b.Month)
}

func sameValue(a, b *ValueText) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Value == b.Value
}

// Snapshot returns everything a new page needs to draw the current state.
func (r *Renderer) Snapshot() SnapshotPayload {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := SnapshotPayload{
		Tick:       r.lastTick,
		Historical: r.lastHist,
		Chart:      r.chart.Points(),
		Color:      ColorPositive,
	}
	if r.lastTick != nil {
		snap.Color = r.lastTick.Color
	}
	return snap
}
