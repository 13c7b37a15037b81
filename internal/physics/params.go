package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/chaossim/internal/dynamo"
)

func checkFinite(model string, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s got %v", dynamo.ErrNonFiniteParameter, model, v)
		}
	}
	return nil
}

func unknownParam(model, name string) error {
	return fmt.Errorf("%w: %s has no %q", dynamo.ErrUnknownParameter, model, name)
}
