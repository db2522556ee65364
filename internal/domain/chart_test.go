package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChartBuffer_Evicts(t *testing.T) {
	b := NewChartBuffer(MaxChartPoints)
	start := time.Unix(0, 0)

	for i := 0; i < MaxChartPoints; i++ {
		_, evicted := b.Push(ChartPoint{Time: start.Add(time.Duration(i) * time.Second), Total: float64(i)})
		assert.False(t, evicted)
	}
	assert.Equal(t, MaxChartPoints, b.Len())

	old, evicted := b.Push(ChartPoint{Time: start.Add(time.Minute), Total: 60})
	assert.True(t, evicted)
	assert.Equal(t, 0.0, old.Total)
	assert.Equal(t, MaxChartPoints, b.Len())

	pts := b.Points()
	assert.Equal(t, 1.0, pts[0].Total)
	assert.Equal(t, 60.0, pts[len(pts)-1].Total)
}

func TestChartBuffer_NeverExceedsLimit(t *testing.T) {
	b := NewChartBuffer(0)
	for i := 0; i < 500; i++ {
		b.Push(ChartPoint{Total: float64(i)})
		assert.LessOrEqual(t, b.Len(), MaxChartPoints)
	}
}
