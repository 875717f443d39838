package engine

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// Source supplies the random numbers every combat calculation consumes.
// Callers pass it in explicitly so tests can substitute a fixed sequence.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// NewSource returns a Source backed by math/rand with the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// RollRange returns a uniform integer in [min, max]. Swapped bounds are
// tolerated; min == max returns min without drawing.
func RollRange(src Source, min, max int) int {
	if min > max {
		min, max = max, min
	}
	if min == max {
		return min
	}
	return min + src.Intn(max-min+1)
}

// Percent performs a Bernoulli check against a 0-100 percentage.
func Percent(src Source, chance int) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 100 {
		return true
	}
	return src.Intn(100) < chance
}

var diceRe = regexp.MustCompile(`(?i)^\s*(\d+)?\s*d\s*(\d+)(\s*([+\-x*])\s*(\d+))?\s*$`)

// RollExpr supports: N, NdM, NdM+K, NdM-K, NdM xK (multiply) / * K
func RollExpr(src Source, expr string) int {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0
	}
	if n, err := strconv.Atoi(expr); err == nil {
		return n
	}
	m := diceRe.FindStringSubmatch(expr)
	if m == nil {
		return 0
	}
	count := 1
	if m[1] != "" {
		count, _ = strconv.Atoi(m[1])
	}
	sides, _ := strconv.Atoi(m[2])
	total := 0
	for i := 0; i < count; i++ {
		total += 1 + src.Intn(sides)
	}
	total = applyMod(total, m)
	if total < 0 {
		total = 0
	}
	return total
}

// ExprBounds returns the static minimum and maximum of a dice expression.
// Content definitions may give weapon damage as an expression; the combat
// core only consumes the derived bounds. ok is false for unparseable input.
func ExprBounds(expr string) (min, max int, ok bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, 0, false
	}
	if n, err := strconv.Atoi(expr); err == nil {
		return n, n, true
	}
	m := diceRe.FindStringSubmatch(expr)
	if m == nil {
		return 0, 0, false
	}
	count := 1
	if m[1] != "" {
		count, _ = strconv.Atoi(m[1])
	}
	sides, _ := strconv.Atoi(m[2])
	min = applyMod(count, m)
	max = applyMod(count*sides, m)
	if min < 0 {
		min = 0
	}
	if max < 0 {
		max = 0
	}
	return min, max, true
}

func applyMod(total int, m []string) int {
	if m[3] == "" {
		return total
	}
	k, _ := strconv.Atoi(m[5])
	switch m[4] {
	case "+":
		total += k
	case "-":
		total -= k
	case "x", "*", "X":
		total *= k
	}
	return total
}
