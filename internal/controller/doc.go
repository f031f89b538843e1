// Package controller holds the built-in MicroSpring handlers.
//
// Each controller registers its routes on a route.Table:
//
//   - Hello: GET /hola
//   - Greeting: GET /greeting?name=, GET /count
//   - API: GET and POST /api/hello, /api/weather, /api/quote (JSON bodies)
//
// The bundled site calls the /api routes from JavaScript.
package controller
