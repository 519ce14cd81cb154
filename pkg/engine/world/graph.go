package world

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Graph is the undirected connectivity of the 25 floor cells. Any decoded
// connector between two in-bounds cells is a passage; boundary edges are
// never traversed.
type Graph struct {
	adj map[Coord][]Coord
}

// BuildGraph builds the adjacency of every in-bounds cell. Neighbour order
// follows edge order, which keeps routing deterministic.
func BuildGraph(edges []Edge) *Graph {
	g := &Graph{adj: make(map[Coord][]Coord, Size*Size)}
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			g.adj[Coord{X: x, Y: y}] = nil
		}
	}
	for _, e := range edges {
		if e.Boundary() {
			continue
		}
		g.adj[e.From] = append(g.adj[e.From], e.To)
		g.adj[e.To] = append(g.adj[e.To], e.From)
	}
	return g
}

// Neighbors returns the cells directly connected to c.
func (g *Graph) Neighbors(c Coord) []Coord {
	return g.adj[c]
}

// Connected reports whether a and b share a passage.
func (g *Graph) Connected(a, b Coord) bool {
	for _, n := range g.adj[a] {
		if n == b {
			return true
		}
	}
	return false
}

// ShortestPath returns a minimum-hop route from start to end inclusive using
// breadth-first search. A start equal to end yields the single-cell route;
// when end is unreachable the direct pair [start, end] is returned so callers
// always have something to draw.
func (g *Graph) ShortestPath(start, end Coord) []Coord {
	if start == end {
		return []Coord{start}
	}

	visited := mapset.New[Coord]()
	visited.Put(start)
	parent := make(map[Coord]Coord)
	frontier := queue.New[Coord]()
	frontier.Enqueue(start)

	for !frontier.Empty() {
		current := frontier.Dequeue()
		for _, n := range g.adj[current] {
			if visited.Has(n) {
				continue
			}
			parent[n] = current
			if n == end {
				return unwind(parent, start, end)
			}
			visited.Put(n)
			frontier.Enqueue(n)
		}
	}

	return []Coord{start, end}
}

// Distance returns the hop count between two cells, or -1 when unreachable.
func (g *Graph) Distance(start, end Coord) int {
	if start == end {
		return 0
	}
	path := g.ShortestPath(start, end)
	if len(path) == 2 && !g.Connected(start, end) {
		return -1
	}
	return len(path) - 1
}

func unwind(parent map[Coord]Coord, start, end Coord) []Coord {
	path := []Coord{end}
	for c := end; c != start; {
		c = parent[c]
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
