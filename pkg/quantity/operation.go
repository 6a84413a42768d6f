package quantity

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/zjrosen/quants/internal/log"
)

// Operation computes the result of a binary operator on two quantities of
// registered types.
type Operation func(left, right Base) (Base, error)

type typePair struct {
	left, right reflect.Type
}

var baseType = reflect.TypeOf((*Base)(nil)).Elem()

// OperationStore maps ordered pairs of quantity types to an operation. The
// pair (A, B) and the pair (B, A) are independent entries.
type OperationStore struct {
	name string

	mu  sync.RWMutex
	ops map[typePair]Operation
}

// NewOperationStore creates an empty store. name labels errors and logs, e.g.
// "multiply".
func NewOperationStore(name string) *OperationStore {
	return &OperationStore{name: name, ops: make(map[typePair]Operation)}
}

// Add registers op for the ordered pair (left, right). Both types must
// implement Base and the pair must not be registered yet.
func (s *OperationStore) Add(left, right reflect.Type, op Operation) error {
	for _, t := range []reflect.Type{left, right} {
		if t == nil || !t.Implements(baseType) {
			return fmt.Errorf("%w: %v", ErrNotQuantity, t)
		}
	}
	if op == nil {
		return fmt.Errorf("%w: nil %s operation", ErrNotSupported, s.name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := typePair{left: left, right: right}
	if _, ok := s.ops[key]; ok {
		return fmt.Errorf("%w: %s(%v, %v)", ErrOperationExists, s.name, left, right)
	}
	s.ops[key] = op

	log.Debug(log.CatDispatch, "operation registered", "op", s.name, "left", left, "right", right)
	return nil
}

// Supports reports whether the ordered pair is registered.
func (s *OperationStore) Supports(left, right reflect.Type) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ops[typePair{left: left, right: right}]
	return ok
}

// Len returns the number of registered pairs.
func (s *OperationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.ops)
}

// Perform runs the operation registered for the dynamic types of left and
// right.
func (s *OperationStore) Perform(left, right Base) (Base, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilOperand, s.name)
	}

	lt, rt := reflect.TypeOf(left), reflect.TypeOf(right)

	s.mu.RLock()
	op, ok := s.ops[typePair{left: lt, right: rt}]
	s.mu.RUnlock()

	if !ok {
		log.Warn(log.CatDispatch, "operation not supported", "op", s.name, "left", lt, "right", rt)
		return nil, fmt.Errorf("%w: %s(%v, %v)", ErrNotSupported, s.name, lt, rt)
	}
	return op(left, right)
}
