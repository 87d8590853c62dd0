package handler

import (
	"github.com/deploylab/user-api/internal/server"
	"github.com/deploylab/user-api/internal/service"
	"github.com/labstack/echo/v4"
)

// HelloRequest carries the optional language code for GET /api/hello.
type HelloRequest struct {
	Lang string `query:"lang"`
}

func (r *HelloRequest) Validate() error {
	return nil
}

// PersonalizedHelloRequest carries the name path param and optional
// language code.
type PersonalizedHelloRequest struct {
	Name string `param:"name" validate:"required"`
	Lang string `query:"lang"`
}

func (r *PersonalizedHelloRequest) Validate() error {
	return validate.Struct(r)
}

// EmptyRequest is the payload for endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// HelloHandler exposes the greeting endpoints on top of HelloService.
type HelloHandler struct {
	Handler
	hello *service.HelloService
}

// NewHelloHandler constructs the hello handler.
func NewHelloHandler(s *server.Server, hello *service.HelloService) *HelloHandler {
	return &HelloHandler{
		Handler: NewHandler(s),
		hello:   hello,
	}
}

// GreetingResponse is the data payload for the greeting endpoints.
type GreetingResponse struct {
	Greeting string `json:"greeting"`
	Lang     string `json:"lang"`
}

// Greet returns the greeting for the requested language, defaulting to
// English.
func (h *HelloHandler) Greet(c echo.Context, req *HelloRequest) (*GreetingResponse, error) {
	lang := req.Lang
	if lang == "" {
		lang = "en"
	}

	return &GreetingResponse{
		Greeting: h.hello.Greet(lang),
		Lang:     lang,
	}, nil
}

// Personalized returns a greeting addressed to the given name.
func (h *HelloHandler) Personalized(c echo.Context, req *PersonalizedHelloRequest) (*GreetingResponse, error) {
	lang := req.Lang
	if lang == "" {
		lang = "en"
	}

	return &GreetingResponse{
		Greeting: h.hello.PersonalizedGreeting(req.Name, lang),
		Lang:     lang,
	}, nil
}

// Random returns a greeting in a randomly chosen language.
func (h *HelloHandler) Random(c echo.Context, req *EmptyRequest) (*GreetingResponse, error) {
	greeting, lang := h.hello.RandomGreeting()
	return &GreetingResponse{
		Greeting: greeting,
		Lang:     lang,
	}, nil
}

// LanguagesResponse lists the supported greeting languages.
type LanguagesResponse struct {
	Languages []string `json:"languages"`
}

// Languages returns the supported language codes.
func (h *HelloHandler) Languages(c echo.Context, req *EmptyRequest) (*LanguagesResponse, error) {
	return &LanguagesResponse{Languages: h.hello.Languages()}, nil
}
