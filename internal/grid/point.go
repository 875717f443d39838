package grid

import "fmt"

// Point is an integer tile coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ManhattanDistance returns |dx| + |dy| between two tiles.
func ManhattanDistance(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// ChebyshevDistance returns max(|dx|, |dy|), the step count of an
// 8-connected walk between two tiles.
func ChebyshevDistance(a, b Point) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// OrthogonalNeighbors returns the four cardinal neighbors of p.
func OrthogonalNeighbors(p Point) [4]Point {
	return [4]Point{
		{p.X, p.Y - 1},
		{p.X + 1, p.Y},
		{p.X, p.Y + 1},
		{p.X - 1, p.Y},
	}
}

// Line rasterizes the 8-connected Bresenham line from a to b, both endpoints
// inclusive. a == b yields a single-element path.
func Line(a, b Point) []Point {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy

	path := make([]Point, 0, max(dx, -dy)+1)
	x, y := a.X, a.Y
	for {
		path = append(path, Point{x, y})
		if x == b.X && y == b.Y {
			return path
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
