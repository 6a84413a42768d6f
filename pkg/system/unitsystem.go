// Package system routes conversions between units through per-dimension
// conversion graphs.
//
// A UnitSystem holds one Graph per dimension. Each graph is a tree rooted at
// the dimension's base unit; every other unit is attached to a unit already in
// the tree together with the converter from that unit. Converters between any
// two units of a dimension are composed along the tree path through their
// nearest common ancestor.
package system

import (
	"fmt"
	"sync"

	"github.com/zjrosen/quants/internal/cachemanager"
	"github.com/zjrosen/quants/internal/log"
	"github.com/zjrosen/quants/pkg/conversion"
	"github.com/zjrosen/quants/pkg/units"
)

// Prototype is the read side of a unit system. CreateFrom rebuilds a
// UnitSystem from any Prototype.
type Prototype interface {
	Dimensions() []units.Dimension
	BaseUnit(dimension units.Dimension) (units.Unit, error)
	SupportedUnits(dimension units.Dimension) ([]units.Unit, error)
	CanConvert(source, target units.Unit) (bool, error)
	CreateConverter(source, target units.Unit) (conversion.Converter, error)
}

// Factory creates a populated unit system, e.g. the SI system.
type Factory interface {
	Create() (*UnitSystem, error)
}

type pairKey string

func keyOf(source, target units.Unit) pairKey {
	return pairKey(source.Key() + "->" + target.Key())
}

type unitPair struct {
	graph  *Graph
	source units.Unit
	target units.Unit
}

// UnitSystem registers dimensions, base units and scaled units and builds
// converters between registered units. It is safe for concurrent use.
type UnitSystem struct {
	mu         sync.RWMutex
	graphs     map[string]*Graph
	order      []units.Dimension
	converters cachemanager.CacheManager[pairKey, conversion.Converter]
	composites *cachemanager.ReadThroughCache[pairKey, conversion.Converter, unitPair]
	skipMemo   bool
}

// Option configures a UnitSystem.
type Option func(*UnitSystem)

// WithoutCompositeMemo rebuilds composite converters on every request instead
// of memoizing them per unit pair.
func WithoutCompositeMemo() Option {
	return func(s *UnitSystem) {
		s.skipMemo = true
	}
}

// New creates an empty unit system.
func New(opts ...Option) *UnitSystem {
	s := &UnitSystem{
		graphs: make(map[string]*Graph),
		converters: cachemanager.NewInMemoryCacheManager[pairKey, conversion.Converter](
			"converters", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.composites = cachemanager.NewReadThroughCache[pairKey, conversion.Converter, unitPair](
		cachemanager.NewInMemoryCacheManager[pairKey, conversion.Converter](
			"composites", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval),
		buildComposite,
		s.skipMemo,
	)
	return s
}

func buildComposite(p unitPair) (conversion.Converter, error) {
	c, err := p.graph.CreateConverter(p.source, p.target)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// AddDimension registers a dimension with an empty graph.
func (s *UnitSystem) AddDimension(dimension units.Dimension) error {
	if dimension == nil {
		return fmt.Errorf("%w: nil dimension", ErrDimensionNotRegistered)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.graphs[dimension.Key()]; ok {
		return fmt.Errorf("%w: %s", ErrDimensionExists, dimension)
	}
	s.graphs[dimension.Key()] = NewGraph(dimension, s.adjacentConverter)
	s.order = append(s.order, dimension)

	log.Debug(log.CatSystem, "dimension added", "dimension", dimension.Symbol())
	return nil
}

// AddBaseUnit makes u the root of its dimension's graph. Any units and
// converters previously registered for the dimension are discarded.
func (s *UnitSystem) AddBaseUnit(u units.Unit) error {
	if u == nil {
		return fmt.Errorf("%w: nil unit", ErrUnitNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graph(u.Dimension())
	if err != nil {
		return err
	}
	if err := g.SetBaseUnit(u); err != nil {
		return err
	}
	s.dropConverters(u.Dimension())
	s.composites.Invalidate()

	log.Debug(log.CatSystem, "base unit set", "dimension", u.Dimension().Symbol(), "unit", u.Symbol())
	return nil
}

// AddScaledUnit attaches scaled to source, which must already be registered,
// with converter mapping source values to scaled values. Only one direction
// needs to be registered; the inverse is derived on demand.
func (s *UnitSystem) AddScaledUnit(source, scaled units.Unit, converter conversion.Converter) error {
	if source == nil || scaled == nil || converter == nil {
		return fmt.Errorf("%w: nil unit or converter", units.ErrConfiguration)
	}
	if !units.SameDimension(source.Dimension(), scaled.Dimension()) {
		return fmt.Errorf("%w: %q is %s, %q is %s", ErrWrongDimension,
			source.Symbol(), source.Dimension(), scaled.Symbol(), scaled.Dimension())
	}
	if !units.SameUnit(converter.Source(), source) || !units.SameUnit(converter.Target(), scaled) {
		return fmt.Errorf("%w: want %q -> %q, got %q -> %q", ErrConverterMismatch,
			source.Symbol(), scaled.Symbol(), symbol(converter.Source()), symbol(converter.Target()))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graph(source.Dimension())
	if err != nil {
		return err
	}
	if _, ok := s.converters.Get(keyOf(source, scaled)); ok {
		return fmt.Errorf("%w: %q -> %q", ErrRelationExists, source.Symbol(), scaled.Symbol())
	}
	if _, ok := s.converters.Get(keyOf(scaled, source)); ok {
		return fmt.Errorf("%w: reversed %q -> %q", ErrRelationExists, scaled.Symbol(), source.Symbol())
	}
	if err := g.AddUnit(source, scaled); err != nil {
		return err
	}
	s.converters.Set(keyOf(source, scaled), converter, cachemanager.NoExpiration)
	s.composites.Invalidate()

	log.Debug(log.CatSystem, "scaled unit added", "source", source.Symbol(), "unit", scaled.Symbol())
	return nil
}

// Dimensions returns the registered dimensions in registration order.
func (s *UnitSystem) Dimensions() []units.Dimension {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]units.Dimension, len(s.order))
	copy(out, s.order)
	return out
}

func (s *UnitSystem) SupportsDimension(dimension units.Dimension) bool {
	if dimension == nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.graphs[dimension.Key()]
	return ok
}

// BaseUnit returns the base unit of dimension.
func (s *UnitSystem) BaseUnit(dimension units.Dimension) (units.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.graph(dimension)
	if err != nil {
		return nil, err
	}
	if !g.HasBaseUnit() {
		return nil, fmt.Errorf("%w: %s", ErrBaseUnitNotSet, dimension)
	}
	return g.BaseUnit(), nil
}

// SupportedUnits returns the units of dimension, base unit first.
func (s *UnitSystem) SupportedUnits(dimension units.Dimension) ([]units.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.graph(dimension)
	if err != nil {
		return nil, err
	}
	return g.Units(), nil
}

// SupportsUnit reports whether u is registered.
func (s *UnitSystem) SupportsUnit(u units.Unit) bool {
	if u == nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.graphs[u.Dimension().Key()]
	return ok && g.Contains(u)
}

// CanConvert reports whether a converter from source to target can be built.
// Units of different dimensions are never convertible.
func (s *UnitSystem) CanConvert(source, target units.Unit) (bool, error) {
	if source == nil || target == nil {
		return false, nil
	}
	if !units.SameDimension(source.Dimension(), target.Dimension()) {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.graph(source.Dimension())
	if err != nil {
		return false, err
	}
	return g.CanConvert(source, target)
}

// CreateConverter returns the converter from source to target.
func (s *UnitSystem) CreateConverter(source, target units.Unit) (conversion.Converter, error) {
	if source == nil || target == nil {
		return nil, fmt.Errorf("%w: nil unit", ErrUnitNotFound)
	}
	if !units.SameDimension(source.Dimension(), target.Dimension()) {
		err := fmt.Errorf("%w: %q is %s, %q is %s", ErrWrongDimension,
			source.Symbol(), source.Dimension(), target.Symbol(), target.Dimension())
		log.Warn(log.CatSystem, "conversion across dimensions", "source", source.Symbol(), "target", target.Symbol())
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.graph(source.Dimension())
	if err != nil {
		return nil, err
	}
	c, err := s.composites.Get(keyOf(source, target), unitPair{graph: g, source: source, target: target}, cachemanager.NoExpiration)
	if err != nil {
		log.Warn(log.CatSystem, "no converter", "source", source.Symbol(), "target", target.Symbol(), "error", err)
		return nil, err
	}
	return c, nil
}

// Clone returns an independent copy. Graphs are deep-copied and bound to the
// copy; registered converters are shared.
func (s *UnitSystem) Clone() *UnitSystem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var opts []Option
	if s.skipMemo {
		opts = append(opts, WithoutCompositeMemo())
	}
	c := New(opts...)
	for _, d := range s.order {
		c.graphs[d.Key()] = s.graphs[d.Key()].cloneWith(c.adjacentConverter)
		c.order = append(c.order, d)
	}
	for key, conv := range s.converters.Items() {
		c.converters.Set(key, conv, cachemanager.NoExpiration)
	}
	return c
}

// CreateFrom builds a unit system from prototype. A *UnitSystem is cloned.
// Otherwise every dimension and base unit is copied and each other unit is
// attached to the base unit with the prototype's converter. Units the
// prototype cannot convert from the base unit are skipped.
func CreateFrom(prototype Prototype, opts ...Option) (*UnitSystem, error) {
	if us, ok := prototype.(*UnitSystem); ok {
		return us.Clone(), nil
	}

	s := New(opts...)
	for _, d := range prototype.Dimensions() {
		if err := s.AddDimension(d); err != nil {
			return nil, err
		}
		base, err := prototype.BaseUnit(d)
		if err != nil || base == nil {
			log.Debug(log.CatSystem, "prototype dimension without base unit", "dimension", d.Symbol())
			continue
		}
		if err := s.AddBaseUnit(base); err != nil {
			return nil, err
		}

		supported, err := prototype.SupportedUnits(d)
		if err != nil {
			return nil, err
		}
		for _, u := range supported {
			if u.Equal(base) {
				continue
			}
			if ok, err := prototype.CanConvert(base, u); err != nil || !ok {
				log.Debug(log.CatSystem, "skipping unreachable unit", "unit", u.Symbol())
				continue
			}
			c, err := prototype.CreateConverter(base, u)
			if err != nil {
				log.Debug(log.CatSystem, "skipping unit without converter", "unit", u.Symbol(), "error", err)
				continue
			}
			if err := s.AddScaledUnit(base, u, c); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// adjacentConverter resolves the converter between a parent and a child.
// A reverse registration is inverted and stored under the requested pair.
func (s *UnitSystem) adjacentConverter(source, target units.Unit) (conversion.Converter, error) {
	if c, ok := s.converters.Get(keyOf(source, target)); ok {
		return c, nil
	}
	if c, ok := s.converters.Get(keyOf(target, source)); ok {
		inv := c.Inversed()
		s.converters.Set(keyOf(source, target), inv, cachemanager.NoExpiration)
		log.Debug(log.CatCache, "stored inverted converter", "source", source.Symbol(), "target", target.Symbol())
		return inv, nil
	}
	return nil, fmt.Errorf("%w: %q -> %q", ErrNoConverter, source.Symbol(), target.Symbol())
}

// graph returns the graph of dimension. Callers hold s.mu.
func (s *UnitSystem) graph(dimension units.Dimension) (*Graph, error) {
	if dimension == nil {
		return nil, fmt.Errorf("%w: nil dimension", ErrDimensionNotRegistered)
	}
	g, ok := s.graphs[dimension.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDimensionNotRegistered, dimension)
	}
	return g, nil
}

// dropConverters removes the registered converters of dimension. Callers hold
// s.mu for writing.
func (s *UnitSystem) dropConverters(dimension units.Dimension) {
	var stale []pairKey
	for key, c := range s.converters.Items() {
		if c.Source() != nil && units.SameDimension(c.Source().Dimension(), dimension) {
			stale = append(stale, key)
		}
	}
	s.converters.Delete(stale...)
}
