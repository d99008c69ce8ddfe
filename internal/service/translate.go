// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"profilcms/internal/content"
)

const (
	openAIChatURL    = "https://api.openai.com/v1/chat/completions"
	translateTimeout = 60 * time.Second
	translateModel   = "gpt-4o-mini"
)

var languageNames = map[string]string{
	"id": "Indonesian",
	"en": "English",
	"ru": "Russian",
}

// Translator produces machine-translation drafts of content translations.
// Without an API key the service is disabled and the endpoint reports so.
type Translator struct {
	apiKey string
	url    string
	client *http.Client
}

// NewTranslator creates the translator; an empty key disables it.
func NewTranslator(apiKey string) *Translator {
	return &Translator{
		apiKey: apiKey,
		url:    openAIChatURL,
		client: &http.Client{Timeout: translateTimeout},
	}
}

// Enabled reports whether translation is configured.
func (t *Translator) Enabled() bool { return t.apiKey != "" }

// Translate renders source's text fields into the target language. The
// result is a draft for the editor, never auto-persisted.
func (t *Translator) Translate(ctx context.Context, source content.Fields, target string) (content.Fields, error) {
	if !t.Enabled() {
		return content.Fields{}, fmt.Errorf("translation service is not configured")
	}
	targetName, ok := languageNames[target]
	if !ok {
		return content.Fields{}, fmt.Errorf("unsupported target language %q", target)
	}

	payload, err := json.Marshal(source)
	if err != nil {
		return content.Fields{}, fmt.Errorf("encoding source: %w", err)
	}

	body := map[string]any{
		"model": translateModel,
		"messages": []map[string]string{
			{
				"role": "system",
				"content": "You translate CMS content into " + targetName + ". " +
					"Input and output are JSON objects with the keys language_code, title, subtitle, body, caption. " +
					"Translate the values, keep HTML markup intact, set language_code to \"" + target + "\", " +
					"leave empty fields empty, and respond with the JSON object only.",
			},
			{"role": "user", "content": string(payload)},
		},
		"response_format": map[string]string{"type": "json_object"},
	}
	reqBody, err := json.Marshal(body)
	if err != nil {
		return content.Fields{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(reqBody))
	if err != nil {
		return content.Fields{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return content.Fields{}, fmt.Errorf("translation request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return content.Fields{}, fmt.Errorf("translation API status %d: %s", resp.StatusCode, data)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return content.Fields{}, fmt.Errorf("decoding translation response: %w", err)
	}
	if len(result.Choices) == 0 {
		return content.Fields{}, fmt.Errorf("translation API returned no choices")
	}

	var fields content.Fields
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &fields); err != nil {
		return content.Fields{}, fmt.Errorf("parsing translated fields: %w", err)
	}
	fields.LanguageCode = target
	return fields, nil
}
