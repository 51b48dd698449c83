package core

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedBorrowLiquidatable(t *testing.T) {
	start := time.Unix(1700000000, 0)

	fb := &FixedBorrow{StartAt: start, Duration: 100}
	assert.False(t, fb.Liquidatable(start.Add(105*time.Second), 10))
	assert.True(t, fb.Liquidatable(start.Add(110*time.Second), 10))
	assert.False(t, fb.Liquidatable(start.Add(200*time.Second), math.MaxInt64))

	fb.Duration = math.MaxInt64
	assert.False(t, fb.Matured(start))
	assert.False(t, fb.Liquidatable(start, 3600))
	assert.False(t, fb.Liquidatable(start.Add(time.Hour), 0))
}
