package grid

// Tile is one cell of a TileMap.
type Tile struct {
	Wall     bool         `json:"wall"`
	Debris   bool         `json:"debris"`
	HP       int          `json:"hp"`
	Hardness int          `json:"hardness"`
	Ceiling  CeilingState `json:"ceiling"`
}

// TileMap is a rectangular tile grid implementing Terrain and Pathfinder.
// It backs the demo skirmish and the combat tests; a full game would supply
// its own world implementation behind the same interfaces.
type TileMap struct {
	Width  int
	Height int
	tiles  []Tile
}

// NewTileMap creates an open map of the given dimensions.
func NewTileMap(width, height int) *TileMap {
	return &TileMap{
		Width:  width,
		Height: height,
		tiles:  make([]Tile, width*height),
	}
}

func (m *TileMap) idx(p Point) int { return p.Y*m.Width + p.X }

// TileAt returns a pointer to the tile, or nil out of bounds.
func (m *TileMap) TileAt(p Point) *Tile {
	if !m.InBounds(p) {
		return nil
	}
	return &m.tiles[m.idx(p)]
}

// SetWall places a standing wall with the given durability.
func (m *TileMap) SetWall(p Point, hp, hardness int) {
	if t := m.TileAt(p); t != nil {
		t.Wall = true
		t.Debris = false
		t.HP = hp
		t.Hardness = hardness
	}
}

// SetCeiling marks explicit ceiling data on a tile.
func (m *TileMap) SetCeiling(p Point, state CeilingState) {
	if t := m.TileAt(p); t != nil {
		t.Ceiling = state
	}
}

func (m *TileMap) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

func (m *TileMap) IsWalkable(p Point) bool {
	t := m.TileAt(p)
	return t != nil && !t.Wall
}

func (m *TileMap) BlocksProjectile(p Point) bool {
	t := m.TileAt(p)
	return t != nil && t.Wall && t.HP > 0
}

func (m *TileMap) TileHP(p Point) int {
	if t := m.TileAt(p); t != nil {
		return t.HP
	}
	return 0
}

func (m *TileMap) TileHardness(p Point) int {
	if t := m.TileAt(p); t != nil {
		return t.Hardness
	}
	return 0
}

// DestroyTile flattens a wall into passable debris.
func (m *TileMap) DestroyTile(p Point) {
	if t := m.TileAt(p); t != nil {
		t.Wall = false
		t.Debris = true
		t.HP = 0
	}
}

func (m *TileMap) CeilingAt(p Point) CeilingState {
	if t := m.TileAt(p); t != nil {
		return t.Ceiling
	}
	return CeilingNone
}

// FindPath runs an 8-connected BFS over walkable tiles. The returned path
// includes start; nil means unreachable. BFS is sufficient for uniform-cost
// tile movement.
func (m *TileMap) FindPath(start, goal Point) []Point {
	if !m.InBounds(start) || !m.InBounds(goal) || !m.IsWalkable(goal) {
		return nil
	}
	if start == goal {
		return []Point{start}
	}

	prev := make(map[Point]Point, m.Width*m.Height/4)
	visited := map[Point]bool{start: true}
	queue := []Point{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				next := Point{cur.X + dx, cur.Y + dy}
				if visited[next] || !m.InBounds(next) || !m.IsWalkable(next) {
					continue
				}
				visited[next] = true
				prev[next] = cur
				if next == goal {
					return rebuildPath(prev, start, goal)
				}
				queue = append(queue, next)
			}
		}
	}
	return nil
}

func rebuildPath(prev map[Point]Point, start, goal Point) []Point {
	path := []Point{goal}
	for cur := goal; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
