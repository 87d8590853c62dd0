package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greetingPayload struct {
	Greeting string `json:"greeting"`
	Lang     string `json:"lang"`
}

func TestHelloEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/hello", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var payload greetingPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "Hello", payload.Greeting)
	assert.Equal(t, "en", payload.Lang)
}

func TestHelloEndpointWithLanguage(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/hello?lang=es", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload greetingPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "Hola", payload.Greeting)
	assert.Equal(t, "es", payload.Lang)
}

func TestHelloEndpointUnknownLanguageFallsBack(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/hello?lang=xx", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload greetingPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "Hello", payload.Greeting)
}

func TestPersonalizedHelloEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/hello/personalized/Ada?lang=fr", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload greetingPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "Bonjour, Ada!", payload.Greeting)
}

func TestRandomHelloEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/hello/random", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload greetingPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.NotEmpty(t, payload.Greeting)
	assert.NotEmpty(t, payload.Lang)
}

func TestHelloLanguagesEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/hello/languages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Languages []string `json:"languages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Contains(t, payload.Languages, "en")
	assert.Contains(t, payload.Languages, "es")
}
