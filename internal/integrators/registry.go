package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/chaossim/internal/dynamo"
)

var steppers = map[string]func() dynamo.Stepper{
	"euler": func() dynamo.Stepper { return NewEuler() },
	"rk4":   func() dynamo.Stepper { return NewRK4() },
}

// Get returns a fresh stepper by name.
func Get(name string) (dynamo.Stepper, error) {
	fn, ok := steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(steppers))
	for name := range steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
