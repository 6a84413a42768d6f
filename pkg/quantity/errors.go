package quantity

import (
	"errors"
	"fmt"

	"github.com/zjrosen/quants/pkg/units"
)

var (
	ErrNotSupported    = fmt.Errorf("%w: operation not supported", units.ErrNotFound)
	ErrOperationExists = fmt.Errorf("%w: operation already registered", units.ErrConfiguration)
	ErrNotQuantity     = fmt.Errorf("%w: type does not implement quantity.Base", units.ErrConfiguration)
	ErrMixedUnits      = fmt.Errorf("%w: same dimension with different units is not supported", units.ErrMismatch)
	ErrUnitsDiffer     = fmt.Errorf("%w: quantities must have the same unit", units.ErrMismatch)
	ErrNilOperand      = fmt.Errorf("%w: operand is nil", units.ErrMismatch)
	ErrCast            = fmt.Errorf("%w: value cannot be cast", units.ErrMismatch)
	ErrDivisionByZero  = errors.New("integer division by zero")
)
