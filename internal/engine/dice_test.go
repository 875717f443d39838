package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollRange(t *testing.T) {
	src := NewSource(42)
	for i := 0; i < 200; i++ {
		v := RollRange(src, 3, 9)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 9)
	}
	assert.Equal(t, 5, RollRange(src, 5, 5))
	// Swapped bounds are tolerated
	v := RollRange(src, 9, 3)
	assert.GreaterOrEqual(t, v, 3)
	assert.LessOrEqual(t, v, 9)
}

func TestPercent(t *testing.T) {
	src := &FixedSource{Seq: []int{0, 49, 50, 99}}
	assert.True(t, Percent(src, 50))  // roll 0
	assert.True(t, Percent(src, 50))  // roll 49
	assert.False(t, Percent(src, 50)) // roll 50
	assert.False(t, Percent(src, 50)) // roll 99

	assert.False(t, Percent(src, 0))
	assert.False(t, Percent(src, -5))
	assert.True(t, Percent(src, 100))
}

func TestRollExpr(t *testing.T) {
	tests := []struct {
		name string
		expr string
		seq  []int // Intn(sides) draws, zero-based
		want int
	}{
		{"plain int", "7", nil, 7},
		{"single die", "d6", []int{3}, 4},
		{"multiple dice", "2d6", []int{2, 5}, 9},
		{"with bonus", "2d6+3", []int{0, 0}, 5},
		{"with malus", "d4-2", []int{0}, 0}, // 1-2 floors at 0
		{"multiplied", "d3x2", []int{2}, 6},
		{"empty", "", nil, 0},
		{"garbage", "banana", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &FixedSource{Seq: tt.seq}
			assert.Equal(t, tt.want, RollExpr(src, tt.expr))
		})
	}
}

func TestExprBounds(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		min, max int
		ok       bool
	}{
		{"plain int", "5", 5, 5, true},
		{"single die", "d6", 1, 6, true},
		{"multiple dice", "2d6", 2, 12, true},
		{"with bonus", "2d6+1", 3, 13, true},
		{"with malus", "d4-2", 0, 2, true}, // min floors at 0
		{"multiplied", "d3x2", 2, 6, true},
		{"garbage", "banana", 0, 0, false},
		{"empty", "", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, ok := ExprBounds(tt.expr)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.min, min)
			assert.Equal(t, tt.max, max)
		})
	}
}
