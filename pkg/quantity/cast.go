package quantity

import (
	"fmt"

	"github.com/spf13/cast"
)

// Float64 returns the value of q as a float64.
func Float64(q Base) (float64, error) {
	v, err := cast.ToFloat64E(q.Interface())
	if err != nil {
		return 0, castError(q, "float64", err)
	}
	return v, nil
}

// Float32 returns the value of q as a float32.
func Float32(q Base) (float32, error) {
	v, err := cast.ToFloat32E(q.Interface())
	if err != nil {
		return 0, castError(q, "float32", err)
	}
	return v, nil
}

// Int64 returns the value of q as an int64, truncating fractions.
func Int64(q Base) (int64, error) {
	v, err := cast.ToInt64E(q.Interface())
	if err != nil {
		return 0, castError(q, "int64", err)
	}
	return v, nil
}

// Int returns the value of q as an int, truncating fractions.
func Int(q Base) (int, error) {
	v, err := cast.ToIntE(q.Interface())
	if err != nil {
		return 0, castError(q, "int", err)
	}
	return v, nil
}

func castError(q Base, to string, err error) error {
	return fmt.Errorf("%w: %v to %s: %v", ErrCast, q.ValueType(), to, err)
}
