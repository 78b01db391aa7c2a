package chart

// Stack is an ordered set of graphs sharing one canvas, each given an equal
// share of its height.
type Stack struct {
	graphs []*Graph
}

// Add appends g unless a graph with the same key is already present.
func (s *Stack) Add(g *Graph) bool {
	if s.Find(g.Key) != nil {
		return false
	}
	s.graphs = append(s.graphs, g)
	return true
}

// Remove drops the graph with the given key.
func (s *Stack) Remove(key string) bool {
	for i, g := range s.graphs {
		if g.Key == key {
			s.graphs = append(s.graphs[:i], s.graphs[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the graph with the given key, or nil.
func (s *Stack) Find(key string) *Graph {
	for _, g := range s.graphs {
		if g.Key == key {
			return g
		}
	}
	return nil
}

// Graphs returns the graphs top to bottom.
func (s *Stack) Graphs() []*Graph { return s.graphs }

// Len returns the number of graphs.
func (s *Stack) Len() int { return len(s.graphs) }

// Clear removes every graph.
func (s *Stack) Clear() { s.graphs = nil }

// Layout splits r into one row per graph, top to bottom. The last row takes
// any remainder.
func (s *Stack) Layout(r Rect) []Rect {
	return Split(r, len(s.graphs))
}

// Draw lays out and draws every graph.
func (s *Stack) Draw(c Canvas, r Rect) {
	for i, row := range s.Layout(r) {
		s.graphs[i].Draw(c, row)
	}
}

// Split divides r into n rows of equal height.
func Split(r Rect, n int) []Rect {
	if n <= 0 {
		return nil
	}
	h := r.H / n
	rows := make([]Rect, n)
	for i := range rows {
		rows[i] = Rect{X: r.X, Y: r.Y + i*h, W: r.W, H: h}
	}
	rows[n-1].H = r.H - (n-1)*h
	return rows
}
