package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingAPIKeyFallsBack(t *testing.T) {
	c := &Client{}
	got := c.Generate(context.Background(), Input{Title: "No puedo acceder", Category: "Problema de Acceso"})
	assert.False(t, got.FromModel)
	assert.Contains(t, got.Text, "No puedo acceder")
	assert.Contains(t, got.Text, "Problema de Acceso")
}

func TestFirstWorkingModelWins(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		model := strings.TrimPrefix(r.URL.Path, "/models/")
		calls = append(calls, model)
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))

		// First model unavailable, second answers.
		if len(calls) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode([]map[string]string{
			{"generated_text": "Respuesta: Estimado cliente, verifique su contraseña e intente de nuevo."},
		})
	}))
	defer srv.Close()

	c := &Client{APIKey: "key-1", BaseURL: srv.URL, HTTP: srv.Client()}
	got := c.Generate(context.Background(), Input{Title: "Acceso", Description: "no entra"})
	require.True(t, got.FromModel)
	assert.Equal(t, "HuggingFaceH4/zephyr-7b-beta", got.Model)
	assert.Equal(t, "Estimado cliente, verifique su contraseña e intente de nuevo.", got.Text)
	assert.Len(t, calls, 2)
}

func TestAllModelsFailingFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := &Client{APIKey: "key-1", BaseURL: srv.URL, HTTP: srv.Client()}
	got := c.Generate(context.Background(), Input{Title: "Facturación duplicada"})
	assert.False(t, got.FromModel)
	assert.Contains(t, got.Text, "Facturación duplicada")
}

func TestExtractText(t *testing.T) {
	assert.Equal(t, "Hola, con gusto le ayudo.", extractText([]byte(`[{"generated_text":"Respuesta: Hola, con gusto le ayudo."}]`)))
	assert.Equal(t, "Texto directo del modelo.", extractText([]byte(`{"generated_text":"Texto directo del modelo."}`)))
	// Too-short generations are discarded so the next model is tried.
	assert.Empty(t, extractText([]byte(`[{"generated_text":"ok"}]`)))
	assert.Empty(t, extractText([]byte(`{}`)))
}
