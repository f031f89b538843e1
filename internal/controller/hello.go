package controller

import "github.com/yndnr/microspring-go/internal/core/route"

// HelloMessage is the body of GET /hola.
const HelloMessage = "Greetings from MicroSpringBoot!"

// Hello serves a fixed greeting.
type Hello struct{}

// NewHello creates the hello controller.
func NewHello() *Hello {
	return &Hello{}
}

// Register implements Controller.
func (h *Hello) Register(t *route.Table) error {
	return t.Register(route.MethodGet, "/hola", h.Index)
}

// Index returns HelloMessage.
func (h *Hello) Index([]string) (string, error) {
	return HelloMessage, nil
}
