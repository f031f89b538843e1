package controller

import (
	"strconv"
	"sync/atomic"

	"github.com/yndnr/microspring-go/internal/core/route"
)

// Greeting greets by name and counts calls to /count.
type Greeting struct {
	counter atomic.Int64
}

// NewGreeting creates the greeting controller.
func NewGreeting() *Greeting {
	return &Greeting{}
}

// Register implements Controller.
func (g *Greeting) Register(t *route.Table) error {
	if err := t.Register(route.MethodGet, "/greeting", g.Greet, route.ParamDefault("name", "World")); err != nil {
		return err
	}
	return t.Register(route.MethodGet, "/count", g.Count)
}

// Greet returns "Hola <name>".
func (g *Greeting) Greet(args []string) (string, error) {
	return "Hola " + args[0], nil
}

// Count increments the counter and returns "Count: <n>".
func (g *Greeting) Count([]string) (string, error) {
	return "Count: " + strconv.FormatInt(g.counter.Add(1), 10), nil
}
