package engine

// FixedSource replays a scripted sequence of draws. Intn returns the next
// value clamped into [0, n); Float64 returns the next value divided by 100.
// Exhausting the sequence wraps around, so short scripts stay valid for
// repeated rolls.
type FixedSource struct {
	Seq []int
	pos int
}

func (f *FixedSource) next() int {
	if len(f.Seq) == 0 {
		return 0
	}
	v := f.Seq[f.pos%len(f.Seq)]
	f.pos++
	return v
}

func (f *FixedSource) Intn(n int) int {
	v := f.next()
	if n <= 0 {
		return 0
	}
	if v < 0 {
		v = 0
	}
	if v >= n {
		v = n - 1
	}
	return v
}

func (f *FixedSource) Float64() float64 {
	return float64(f.next()) / 100.0
}
