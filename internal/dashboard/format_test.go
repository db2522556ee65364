package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1362.4, "+$1,362"},
		{-1362.6, "-$1,363"},
		{0, "+$0"},
		{-0.4, "+$0"},
		{1234567, "+$1,234,567"},
		{-42, "-$42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in), "input %v", tt.in)
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "3.6725", FormatRate(3.6725))
	assert.Equal(t, "3.7500", FormatRate(3.75))
	assert.Equal(t, "3.6726", FormatRate(3.67256))
}

func TestStyleAndColor(t *testing.T) {
	assert.Equal(t, "positive", StyleClass(0))
	assert.Equal(t, "positive", StyleClass(10))
	assert.Equal(t, "negative", StyleClass(-0.6))
	assert.Equal(t, ColorPositive, ChartColor(0))
	assert.Equal(t, ColorNegative, ChartColor(-1))
}

func TestTextAndClassAgreeNearZero(t *testing.T) {
	for _, v := range []float64{-0.3, -0.49, 0.2, -0.5, -0.51} {
		text := FormatCurrency(v)
		wantClass := "positive"
		if text[0] == '-' {
			wantClass = "negative"
		}
		assert.Equal(t, wantClass, StyleClass(v), "value %v shown as %s", v, text)
	}
	assert.Equal(t, "+$0", FormatCurrency(-0.3))
	assert.Equal(t, "positive", StyleClass(-0.3))
	assert.Equal(t, ColorPositive, ChartColor(-0.3))
}
