package service

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/deploylab/user-api/internal/server"
	"github.com/rs/zerolog"

	"github.com/deploylab/user-api/internal/logger"
)

// greetings maps ISO 639-1 language codes to a greeting. Unknown codes
// fall back to English.
var greetings = map[string]string{
	"en": "Hello",
	"es": "Hola",
	"fr": "Bonjour",
	"de": "Hallo",
	"it": "Ciao",
	"pt": "Olá",
	"nl": "Hallo",
	"ja": "こんにちは",
	"ko": "안녕하세요",
	"zh": "你好",
	"ru": "Привет",
	"ar": "مرحبا",
	"hi": "नमस्ते",
	"id": "Halo",
}

// HelloService produces greetings. It is stateless apart from its logger;
// all lookups read the fixed greeting table.
type HelloService struct {
	logger zerolog.Logger
}

// NewHelloService constructs the hello service.
func NewHelloService(s *server.Server) *HelloService {
	log := logger.WithModule(s.Logger, "HelloService")

	return &HelloService{
		logger: log,
	}
}

// Greet returns the greeting for lang, falling back to English when the
// language is unknown or empty.
func (s *HelloService) Greet(lang string) string {
	if g, ok := greetings[lang]; ok {
		return g
	}
	return greetings["en"]
}

// PersonalizedGreeting returns the greeting for lang addressed to name.
func (s *HelloService) PersonalizedGreeting(name, lang string) string {
	return fmt.Sprintf("%s, %s!", s.Greet(lang), name)
}

// RandomGreeting returns a greeting in a randomly chosen language along
// with its language code.
func (s *HelloService) RandomGreeting() (greeting, lang string) {
	langs := s.Languages()
	lang = langs[rand.IntN(len(langs))]
	return greetings[lang], lang
}

// Languages returns the supported language codes, sorted.
func (s *HelloService) Languages() []string {
	langs := make([]string, 0, len(greetings))
	for code := range greetings {
		langs = append(langs, code)
	}
	sort.Strings(langs)
	return langs
}
