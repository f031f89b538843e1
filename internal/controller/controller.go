package controller

import (
	"time"

	"github.com/yndnr/microspring-go/internal/core/route"
)

// Controller registers its routes on a table.
type Controller interface {
	Register(t *route.Table) error
}

// Defaults returns the built-in controllers.
func Defaults() []Controller {
	return []Controller{
		NewHello(),
		NewGreeting(),
		NewAPI(),
	}
}

// RegisterAll registers every controller on t, stopping at the first error.
func RegisterAll(t *route.Table, cs ...Controller) error {
	for _, c := range cs {
		if err := c.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// DefaultTable returns a table holding the built-in routes.
func DefaultTable() (*route.Table, error) {
	t := route.NewTable()
	if err := RegisterAll(t, Defaults()...); err != nil {
		return nil, err
	}
	return t, nil
}

func unixMilli(now func() time.Time) int64 {
	return now().UnixMilli()
}
