package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimeframe(t *testing.T) {
	cases := map[string]Timeframe{
		"":   TF1d,
		"1h": TF1h,
		"1d": TF1d,
		"5m": TF1d,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTimeframe(in), "input %q", in)
	}
}

func TestTimeframeDuration(t *testing.T) {
	assert.Equal(t, time.Hour, TF1h.Duration())
	assert.Equal(t, 24*time.Hour, TF1d.Duration())
}
