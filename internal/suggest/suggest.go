// Package suggest drafts a support response for a ticket by asking a
// hosted text-generation model. It is strictly best-effort: any failure,
// including a missing API key, falls back to a canned professional reply
// so responding never blocks on the model.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the hosted inference endpoint.
const DefaultBaseURL = "https://api-inference.huggingface.co"

// models to try, in order of preference. The first one that answers with
// usable text wins.
var models = []string{
	"mistralai/Mixtral-8x7B-Instruct-v0.1",
	"HuggingFaceH4/zephyr-7b-beta",
	"microsoft/Phi-3-mini-4k-instruct",
	"google/flan-t5-base",
}

// Input describes the ticket the draft is for.
type Input struct {
	Title             string
	Description       string
	Category          string
	PreviousResponses []string
}

// Suggestion is a drafted reply. FromModel is false when the canned
// fallback was used.
type Suggestion struct {
	Text      string
	Model     string
	FromModel bool
}

// Client calls the inference API. The zero BaseURL means DefaultBaseURL.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

// Generate produces a draft reply. It never returns an error for model
// failures; the fallback text covers those.
func (c *Client) Generate(ctx context.Context, in Input) Suggestion {
	if c.APIKey == "" {
		return fallback(in)
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	prompt := buildPrompt(in)
	for _, modelID := range models {
		text, err := c.tryModel(ctx, httpClient, base, modelID, prompt)
		if err != nil {
			continue
		}
		if text != "" {
			return Suggestion{Text: text, Model: modelID, FromModel: true}
		}
	}
	return fallback(in)
}

func (c *Client) tryModel(ctx context.Context, httpClient *http.Client, base, modelID, prompt string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"max_new_tokens":   200,
			"temperature":      0.7,
			"top_p":            0.9,
			"do_sample":        true,
			"return_full_text": false,
		},
		"options": map[string]any{
			"wait_for_model": true,
			"use_cache":      false,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/models/"+modelID, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model %s returned %s", modelID, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return extractText(data), nil
}

// extractText pulls generated text out of the inference response, which
// is either a list of generations or a single object.
func extractText(data []byte) string {
	var list []struct {
		GeneratedText   string `json:"generated_text"`
		TranslationText string `json:"translation_text"`
	}
	var text string
	if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 {
		text = list[0].GeneratedText
		if text == "" {
			text = list[0].TranslationText
		}
	} else {
		var single struct {
			GeneratedText string `json:"generated_text"`
		}
		if err := json.Unmarshal(data, &single); err == nil {
			text = single.GeneratedText
		}
	}

	text = strings.TrimSpace(text)
	if idx := strings.LastIndex(text, "Respuesta:"); idx >= 0 {
		text = strings.TrimSpace(text[idx+len("Respuesta:"):])
	}
	if len(text) < 10 {
		return ""
	}
	return text
}

func buildPrompt(in Input) string {
	category := in.Category
	if category == "" {
		category = "General"
	}

	var context string
	if n := len(in.PreviousResponses); n > 0 {
		last := in.PreviousResponses
		if n > 2 {
			last = last[n-2:]
		}
		context = "\n\nRespuestas previas: " + strings.Join(last, ". ")
	}

	return fmt.Sprintf(`Eres un asistente de soporte técnico profesional.

Ticket de soporte:
- Título: %s
- Categoría: %s
- Descripción: %s%s

Genera una respuesta profesional, empática y útil (máximo 150 palabras) que ayude al cliente con su problema. Incluye pasos específicos si es posible.

Respuesta:`, in.Title, category, in.Description, context)
}

func fallback(in Input) Suggestion {
	category := in.Category
	if category == "" {
		category = "General"
	}
	text := fmt.Sprintf(`Gracias por contactarnos respecto a "%s".

Hemos recibido su solicitud en la categoría %s y nuestro equipo está revisando los detalles que nos ha proporcionado.

Próximos pasos:
1. Nuestro equipo de soporte revisará su caso en detalle
2. Le proporcionaremos una solución específica a la brevedad
3. Si necesitamos más información, nos pondremos en contacto con usted

¿Hay algún detalle adicional que pueda ayudarnos a resolver su problema más rápidamente?

Atentamente,
Equipo de Soporte Técnico`, in.Title, category)
	return Suggestion{Text: text}
}
