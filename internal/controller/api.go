package controller

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/yndnr/microspring-go/internal/core/route"
)

// Quote is one entry of the quote lists.
type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

var getQuotes = []Quote{
	{"El éxito es la suma de pequeños esfuerzos repetidos día tras día.", "Robert Collier"},
	{"La única forma de hacer un gran trabajo es amar lo que haces.", "Steve Jobs"},
	{"El futuro pertenece a quienes creen en la belleza de sus sueños.", "Eleanor Roosevelt"},
	{"No esperes por el momento perfecto, toma el momento y hazlo perfecto.", "Anónimo"},
	{"El código es como el humor. Cuando tienes que explicarlo, es malo.", "Cory House"},
}

var postQuotes = []Quote{
	{"El éxito no es definitivo, el fracaso no es fatal: lo que cuenta es el valor para continuar.", "Winston Churchill"},
	{"La innovación distingue entre un líder y un seguidor.", "Steve Jobs"},
	{"El único modo de hacer un gran trabajo es amar lo que haces.", "Steve Jobs"},
	{"El progreso es imposible sin cambio, y aquellos que no pueden cambiar sus mentes no pueden cambiar nada.", "George Bernard Shaw"},
}

type helloBody struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp,string"`
	Status    string `json:"status"`
}

type weatherBody struct {
	City        string `json:"city"`
	Temperature string `json:"temperature"`
	Description string `json:"description"`
	Humidity    string `json:"humidity"`
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
	Status      string `json:"status"`
}

type quoteBody struct {
	Quote
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Status    string `json:"status"`
}

const statusSuccess = "success"

// API serves the JSON endpoints used by the bundled site. The POST variants
// are registered but only reachable once the dispatcher routes POST.
type API struct {
	now  func() time.Time
	intN func(n int) int
}

// APIOption configures an API controller.
type APIOption func(*API)

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) APIOption {
	return func(a *API) {
		a.now = now
	}
}

// WithRand sets the quote picker source.
func WithRand(r *rand.Rand) APIOption {
	return func(a *API) {
		a.intN = r.IntN
	}
}

// NewAPI creates the API controller.
func NewAPI(opts ...APIOption) *API {
	a := &API{
		now:  time.Now,
		intN: rand.IntN,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register implements Controller.
func (a *API) Register(t *route.Table) error {
	name := route.ParamDefault("name", "World")
	routes := []struct {
		method route.Method
		path   string
		h      route.HandlerFunc
		params []route.ParamSpec
	}{
		{route.MethodGet, "/api/hello", a.Hello, []route.ParamSpec{name}},
		{route.MethodGet, "/api/weather", a.Weather, nil},
		{route.MethodGet, "/api/quote", a.Quote, nil},
		{route.MethodPost, "/api/hello", a.HelloPost, []route.ParamSpec{name}},
		{route.MethodPost, "/api/weather", a.WeatherPost, nil},
		{route.MethodPost, "/api/quote", a.QuotePost, nil},
	}
	for _, r := range routes {
		if err := t.Register(r.method, r.path, r.h, r.params...); err != nil {
			return err
		}
	}
	return nil
}

// Hello greets args[0] in JSON.
func (a *API) Hello(args []string) (string, error) {
	return encode(helloBody{
		Message:   fmt.Sprintf("Hello, %s!", args[0]),
		Timestamp: unixMilli(a.now),
		Status:    statusSuccess,
	})
}

// HelloPost is the POST variant of Hello.
func (a *API) HelloPost(args []string) (string, error) {
	return encode(helloBody{
		Message:   fmt.Sprintf("Hello, %s! (via POST)", args[0]),
		Timestamp: unixMilli(a.now),
		Status:    statusSuccess,
	})
}

// Weather returns simulated weather for Bogotá.
func (a *API) Weather([]string) (string, error) {
	return encode(weatherBody{
		City:        "Bogotá",
		Temperature: "18°C",
		Description: "Parcialmente nublado",
		Humidity:    "75%",
		Message:     "Datos simulados del servidor HTTP",
		Timestamp:   unixMilli(a.now),
		Status:      statusSuccess,
	})
}

// WeatherPost is the POST variant of Weather.
func (a *API) WeatherPost([]string) (string, error) {
	return encode(weatherBody{
		City:        "Bogotá",
		Temperature: "19°C",
		Description: "Soleado (via POST)",
		Humidity:    "70%",
		Message:     "Datos del clima via POST",
		Timestamp:   unixMilli(a.now),
		Status:      statusSuccess,
	})
}

// Quote returns a random quote.
func (a *API) Quote([]string) (string, error) {
	return a.quote(getQuotes, "Cita inspiradora del día")
}

// QuotePost is the POST variant of Quote.
func (a *API) QuotePost([]string) (string, error) {
	return a.quote(postQuotes, "Cita inspiradora via POST")
}

func (a *API) quote(list []Quote, message string) (string, error) {
	return encode(quoteBody{
		Quote:     list[a.intN(len(list))],
		Message:   message,
		Timestamp: unixMilli(a.now),
		Status:    statusSuccess,
	})
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode response: %w", err)
	}
	return string(b), nil
}
