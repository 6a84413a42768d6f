package system

import (
	"fmt"

	"github.com/zjrosen/quants/internal/log"
	"github.com/zjrosen/quants/pkg/conversion"
	"github.com/zjrosen/quants/pkg/units"
)

// AdjacentConverterFunc returns the converter between two units where one is
// the parent of the other in a conversion graph.
type AdjacentConverterFunc func(source, target units.Unit) (conversion.Converter, error)

type node struct {
	unit     units.Unit
	parent   *node
	children []*node
}

// walk visits n and its descendants breadth first until visit returns true.
func (n *node) walk(visit func(*node) bool) {
	queue := []*node{n}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visit(current) {
			return
		}
		queue = append(queue, current.children...)
	}
}

func (n *node) find(u units.Unit) *node {
	var found *node
	n.walk(func(x *node) bool {
		if x.unit.Equal(u) {
			found = x
			return true
		}
		return false
	})
	return found
}

// pathFromRoot returns the nodes from the tree root down to n.
func (n *node) pathFromRoot() []*node {
	var depth int
	for x := n; x != nil; x = x.parent {
		depth++
	}
	path := make([]*node, depth)
	for x := n; x != nil; x = x.parent {
		depth--
		path[depth] = x
	}
	return path
}

func (n *node) clone(parent *node) *node {
	c := &node{unit: n.unit, parent: parent, children: make([]*node, len(n.children))}
	for i, child := range n.children {
		c.children[i] = child.clone(c)
	}
	return c
}

func adjacent(a, b *node) bool {
	return a.parent == b || b.parent == a
}

// route returns the simple path from source to target through their nearest
// common ancestor.
func route(source, target *node) []*node {
	from := source.pathFromRoot()
	to := target.pathFromRoot()

	var common *node
	for len(from) > 0 && len(to) > 0 && from[0] == to[0] {
		common = from[0]
		from = from[1:]
		to = to[1:]
	}

	path := make([]*node, 0, len(from)+len(to)+1)
	for i := len(from) - 1; i >= 0; i-- {
		path = append(path, from[i])
	}
	path = append(path, common)
	return append(path, to...)
}

// Graph holds the units of one dimension as a tree rooted at the base unit
// and builds converters between any two of them. A Graph is not safe for
// concurrent mutation; UnitSystem serializes access.
type Graph struct {
	dimension units.Dimension
	root      *node
	adjacent  AdjacentConverterFunc
}

// NewGraph creates an empty graph for dimension. adjacent supplies converters
// between parent and child units.
func NewGraph(dimension units.Dimension, adjacent AdjacentConverterFunc) *Graph {
	return &Graph{dimension: dimension, adjacent: adjacent}
}

func (g *Graph) Dimension() units.Dimension { return g.dimension }

func (g *Graph) HasBaseUnit() bool { return g.root != nil }

// BaseUnit returns the root unit, or nil when none is set.
func (g *Graph) BaseUnit() units.Unit {
	if g.root == nil {
		return nil
	}
	return g.root.unit
}

// SetBaseUnit replaces the whole tree with a single root. A nil unit clears
// the tree.
func (g *Graph) SetBaseUnit(u units.Unit) error {
	if u == nil {
		g.root = nil
		return nil
	}
	if !units.SameDimension(u.Dimension(), g.dimension) {
		return fmt.Errorf("%w: %q is %s, graph is %s", ErrWrongDimension, u.Symbol(), u.Dimension(), g.dimension)
	}
	g.root = &node{unit: u}
	return nil
}

// AddUnit attaches u as a child of existing.
func (g *Graph) AddUnit(existing, u units.Unit) error {
	for _, x := range []units.Unit{existing, u} {
		if x == nil {
			return fmt.Errorf("%w: nil unit", ErrUnitNotFound)
		}
		if !units.SameDimension(x.Dimension(), g.dimension) {
			return fmt.Errorf("%w: %q is %s, graph is %s", ErrWrongDimension, x.Symbol(), x.Dimension(), g.dimension)
		}
	}
	if g.root == nil {
		return fmt.Errorf("%w: %s", ErrBaseUnitNotSet, g.dimension)
	}
	parent := g.root.find(existing)
	if parent == nil {
		return fmt.Errorf("%w: %q", ErrUnitNotFound, existing.Symbol())
	}
	if g.root.find(u) != nil {
		return fmt.Errorf("%w: %q", ErrUnitExists, u.Symbol())
	}
	parent.children = append(parent.children, &node{unit: u, parent: parent})
	return nil
}

// Contains reports whether u is in the tree.
func (g *Graph) Contains(u units.Unit) bool {
	if u == nil || !units.SameDimension(u.Dimension(), g.dimension) || g.root == nil {
		return false
	}
	return g.root.find(u) != nil
}

// Units returns every unit in breadth-first order, base unit first.
func (g *Graph) Units() []units.Unit {
	if g.root == nil {
		return nil
	}
	var out []units.Unit
	g.root.walk(func(n *node) bool {
		out = append(out, n.unit)
		return false
	})
	return out
}

// CanConvert reports whether both units are in the tree. It fails when no
// base unit is set or when source equals target.
func (g *Graph) CanConvert(source, target units.Unit) (bool, error) {
	if err := g.checkPair(source, target); err != nil {
		return false, err
	}
	return g.root.find(source) != nil && g.root.find(target) != nil, nil
}

// Route returns the units visited when converting from source to target,
// both ends included.
func (g *Graph) Route(source, target units.Unit) ([]units.Unit, error) {
	path, err := g.route(source, target)
	if err != nil {
		return nil, err
	}
	out := make([]units.Unit, len(path))
	for i, n := range path {
		out[i] = n.unit
	}
	return out, nil
}

// CreateConverter chains the adjacent converters along the route from source
// to target.
func (g *Graph) CreateConverter(source, target units.Unit) (*conversion.CompositeConverter, error) {
	path, err := g.route(source, target)
	if err != nil {
		return nil, err
	}

	composite, _ := conversion.NewComposite()
	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		if !adjacent(from, to) {
			return nil, fmt.Errorf("%w: %q and %q", ErrNotAdjacent, from.unit.Symbol(), to.unit.Symbol())
		}
		c, err := g.adjacent(from.unit, to.unit)
		if err != nil {
			return nil, err
		}
		if err := composite.Add(c); err != nil {
			return nil, err
		}
	}

	log.Debug(log.CatGraph, "built converter",
		"dimension", g.dimension.Symbol(), "route", composite.String(), "stages", composite.Len())

	return composite, nil
}

// Clone deep-copies the tree. Units, the dimension and the adjacent function
// are shared.
func (g *Graph) Clone() *Graph {
	return g.cloneWith(g.adjacent)
}

func (g *Graph) cloneWith(adjacent AdjacentConverterFunc) *Graph {
	c := &Graph{dimension: g.dimension, adjacent: adjacent}
	if g.root != nil {
		c.root = g.root.clone(nil)
	}
	return c
}

func (g *Graph) checkPair(source, target units.Unit) error {
	if g.root == nil {
		return fmt.Errorf("%w: %s", ErrBaseUnitNotSet, g.dimension)
	}
	if units.SameUnit(source, target) {
		return fmt.Errorf("%w: %q", ErrSameUnit, symbol(target))
	}
	return nil
}

func (g *Graph) route(source, target units.Unit) ([]*node, error) {
	if err := g.checkPair(source, target); err != nil {
		return nil, err
	}
	from := g.root.find(source)
	if from == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnitNotFound, symbol(source))
	}
	to := g.root.find(target)
	if to == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnitNotFound, symbol(target))
	}
	return route(from, to), nil
}

func symbol(u units.Unit) string {
	if u == nil {
		return "<nil>"
	}
	return u.Symbol()
}
