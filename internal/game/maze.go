package game

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// CellType is the content of one maze grid cell.
type CellType uint8

const (
	CellWall CellType = iota
	CellEmpty
)

// Cell is a discrete grid position.
type Cell struct {
	X, Y int
}

// CellOf discretises a continuous position by truncating towards negative
// infinity, so that (3.99, 1.0) lies in cell (3, 1).
func CellOf(p mgl64.Vec2) Cell {
	return Cell{X: floorInt(p.X()), Y: floorInt(p.Y())}
}

// Vec2 returns the cell's corner position (the origin the renderer anchors
// icons to; the centre is at +0.5).
func (c Cell) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{float64(c.X), float64(c.Y)}
}

// Centre returns the continuous position of the cell centre.
func (c Cell) Centre() mgl64.Vec2 {
	return mgl64.Vec2{float64(c.X) + 0.5, float64(c.Y) + 0.5}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func floorInt(v float64) int {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return i
}

// MazeView is the read-only maze contract consumed by the state machine and
// the renderer.
type MazeView interface {
	// Cell returns the cell type; coordinates outside the grid are walls.
	Cell(x, y int) CellType
	Width() int
	Height() int
	Checkpoints() []Cell
	Finish() Cell
}

// Maze is a rectangular grid of walls and floor cells with a start, a finish
// and an ordered list of checkpoints.
type Maze struct {
	width       int
	height      int
	cells       []CellType
	start       Cell
	finish      Cell
	checkpoints []Cell
}

// Cell returns the cell type at (x, y). Out of bounds is a wall.
func (m *Maze) Cell(x, y int) CellType {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return CellWall
	}
	return m.cells[y*m.width+x]
}

// IsWall reports whether (x, y) blocks movement.
func (m *Maze) IsWall(x, y int) bool {
	return m.Cell(x, y) == CellWall
}

// Width is the grid width in cells.
func (m *Maze) Width() int { return m.width }

// Height is the grid height in cells.
func (m *Maze) Height() int { return m.height }

// Start is the player's spawn cell.
func (m *Maze) Start() Cell { return m.start }

// Finish is the exit cell.
func (m *Maze) Finish() Cell { return m.finish }

// Checkpoints returns the checkpoint cells in index order.
func (m *Maze) Checkpoints() []Cell {
	out := make([]Cell, len(m.checkpoints))
	copy(out, m.checkpoints)
	return out
}

func (m *Maze) set(x, y int, t CellType) {
	m.cells[y*m.width+x] = t
}

// EmptyCells lists every floor cell in row-major order.
func (m *Maze) EmptyCells() []Cell {
	var out []Cell
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.cells[y*m.width+x] == CellEmpty {
				out = append(out, Cell{x, y})
			}
		}
	}
	return out
}

var mazeDirs = [4]Cell{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// GenerateMaze carves a perfect maze of roomsW x roomsH rooms on a
// (2*roomsW+1) x (2*roomsH+1) grid using a seeded depth-first carve.
// The start is (1,1), the finish is the room farthest from it and the
// checkpoints are distinct random rooms other than those two.
func GenerateMaze(rng *rand.Rand, roomsW, roomsH, checkpoints int) (*Maze, error) {
	if roomsW < 2 || roomsH < 2 {
		return nil, fmt.Errorf("maze needs at least 2x2 rooms, got %dx%d", roomsW, roomsH)
	}
	if checkpoints < 0 || checkpoints > roomsW*roomsH-2 {
		return nil, fmt.Errorf("cannot place %d checkpoints in %dx%d rooms", checkpoints, roomsW, roomsH)
	}
	m := &Maze{
		width:  2*roomsW + 1,
		height: 2*roomsH + 1,
	}
	m.cells = make([]CellType, m.width*m.height)

	visited := make([]bool, roomsW*roomsH)
	type room struct{ rx, ry int }
	stack := []room{{0, 0}}
	visited[0] = true
	m.set(1, 1, CellEmpty)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var options []Cell
		for _, d := range mazeDirs {
			nx, ny := cur.rx+d.X, cur.ry+d.Y
			if nx < 0 || ny < 0 || nx >= roomsW || ny >= roomsH || visited[ny*roomsW+nx] {
				continue
			}
			options = append(options, d)
		}
		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := options[rng.Intn(len(options))]
		nx, ny := cur.rx+d.X, cur.ry+d.Y
		visited[ny*roomsW+nx] = true
		// Open the wall between the rooms and the new room itself.
		m.set(2*cur.rx+1+d.X, 2*cur.ry+1+d.Y, CellEmpty)
		m.set(2*nx+1, 2*ny+1, CellEmpty)
		stack = append(stack, room{nx, ny})
	}

	m.start = Cell{1, 1}
	dist := m.distances(m.start)
	m.finish = m.start
	for y := 1; y < m.height; y += 2 {
		for x := 1; x < m.width; x += 2 {
			c := Cell{x, y}
			if dist[c] > dist[m.finish] {
				m.finish = c
			}
		}
	}

	var rooms []Cell
	for y := 1; y < m.height; y += 2 {
		for x := 1; x < m.width; x += 2 {
			c := Cell{x, y}
			if c != m.start && c != m.finish {
				rooms = append(rooms, c)
			}
		}
	}
	rng.Shuffle(len(rooms), func(i, j int) { rooms[i], rooms[j] = rooms[j], rooms[i] })
	m.checkpoints = append(m.checkpoints, rooms[:checkpoints]...)
	return m, nil
}

// ParseMaze reads a text maze: '#' wall, '.' or ' ' floor, 'S' start,
// 'F' finish and '1'..'9' checkpoints (indexed in digit order). Rows may
// differ in length; missing cells are walls.
func ParseMaze(r io.Reader) (*Maze, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" && len(rows) == 0 {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read maze: %w", err)
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return MazeFromRows(rows)
}

// MazeFromRows builds a maze from text rows (see ParseMaze).
func MazeFromRows(rows []string) (*Maze, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("maze is empty")
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	m := &Maze{width: width, height: len(rows)}
	m.cells = make([]CellType, width*len(rows))

	type numbered struct {
		n int
		c Cell
	}
	var cps []numbered
	hasStart, hasFinish := false, false
	for y, row := range rows {
		for x, ch := range []byte(row) {
			switch {
			case ch == '#':
			case ch == '.' || ch == ' ':
				m.set(x, y, CellEmpty)
			case ch == 'S':
				m.set(x, y, CellEmpty)
				m.start = Cell{x, y}
				hasStart = true
			case ch == 'F':
				m.set(x, y, CellEmpty)
				m.finish = Cell{x, y}
				hasFinish = true
			case ch >= '1' && ch <= '9':
				m.set(x, y, CellEmpty)
				cps = append(cps, numbered{int(ch - '0'), Cell{x, y}})
			default:
				return nil, fmt.Errorf("maze row %d col %d: unexpected %q", y, x, ch)
			}
		}
	}
	if !hasStart {
		return nil, fmt.Errorf("maze has no start cell 'S'")
	}
	if !hasFinish {
		return nil, fmt.Errorf("maze has no finish cell 'F'")
	}
	sort.SliceStable(cps, func(i, j int) bool { return cps[i].n < cps[j].n })
	for i, cp := range cps {
		if i > 0 && cps[i-1].n == cp.n {
			return nil, fmt.Errorf("checkpoint %d appears twice", cp.n)
		}
		m.checkpoints = append(m.checkpoints, cp.c)
	}
	return m, nil
}

// distances returns BFS step counts from src to every reachable floor cell.
func (m *Maze) distances(src Cell) map[Cell]int {
	dist := map[Cell]int{src: 0}
	queue := []Cell{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range mazeDirs {
			n := Cell{cur.X + d.X, cur.Y + d.Y}
			if m.IsWall(n.X, n.Y) {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// ShortestPath returns the cells from src to dst inclusive, or nil when dst
// is unreachable.
func (m *Maze) ShortestPath(src, dst Cell) []Cell {
	if m.IsWall(src.X, src.Y) || m.IsWall(dst.X, dst.Y) {
		return nil
	}
	prev := map[Cell]Cell{src: src}
	queue := []Cell{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == dst {
			break
		}
		for _, d := range mazeDirs {
			n := Cell{cur.X + d.X, cur.Y + d.Y}
			if m.IsWall(n.X, n.Y) {
				continue
			}
			if _, seen := prev[n]; seen {
				continue
			}
			prev[n] = cur
			queue = append(queue, n)
		}
	}
	if _, ok := prev[dst]; !ok {
		return nil
	}
	var path []Cell
	for c := dst; c != src; c = prev[c] {
		path = append(path, c)
	}
	path = append(path, src)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
