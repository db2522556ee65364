package domain

import "time"

// MaxChartPoints bounds the rolling P/L history.
const MaxChartPoints = 60

// ChartPoint is one sample of the total P/L.
type ChartPoint struct {
	Time  time.Time `json:"t"`
	Total float64   `json:"v"`
}

// ChartBuffer keeps the most recent MaxChartPoints samples, oldest first.
// Not safe for concurrent use; the renderer guards it.
type ChartBuffer struct {
	points []ChartPoint
	limit  int
}

// NewChartBuffer creates a buffer holding at most limit points.
func NewChartBuffer(limit int) *ChartBuffer {
	if limit <= 0 {
		limit = MaxChartPoints
	}
	return &ChartBuffer{
		points: make([]ChartPoint, 0, limit+1),
		limit:  limit,
	}
}

// Push appends p and evicts the oldest point when over the limit.
// It returns the evicted point, if any.
func (b *ChartBuffer) Push(p ChartPoint) (ChartPoint, bool) {
	b.points = append(b.points, p)
	if len(b.points) <= b.limit {
		return ChartPoint{}, false
	}
	evicted := b.points[0]
	copy(b.points, b.points[1:])
	b.points = b.points[:len(b.points)-1]
	return evicted, true
}

// Len returns the number of buffered points.
func (b *ChartBuffer) Len() int {
	return len(b.points)
}

// Points returns a copy of the buffered points.
func (b *ChartBuffer) Points() []ChartPoint {
	out := make([]ChartPoint, len(b.points))
	copy(out, b.points)
	return out
}
