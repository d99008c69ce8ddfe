// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n localizes server-produced messages (API errors, frontend
// chrome). Content translations live in the database; this catalog only
// covers the application's own strings.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/text/language"

	"profilcms/internal/model"
)

//go:embed locales
var localesFS embed.FS

type messageFile struct {
	Language string `json:"language"`
	Messages []struct {
		ID          string `json:"id"`
		Translation string `json:"translation"`
	} `json:"messages"`
}

// Catalog holds the application strings for every supported language.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	matcher      language.Matcher
	defaultLang  string
}

// NewCatalog loads the embedded locale files.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  model.DefaultLanguageCode,
	}
	tags := make([]language.Tag, 0, len(model.SupportedLanguageCodes))
	for _, lang := range model.SupportedLanguageCodes {
		tags = append(tags, language.MustParse(lang))
		if err := c.loadLanguage(lang); err != nil {
			return nil, err
		}
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var mf messageFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.translations[lang] = make(map[string]string, len(mf.Messages))
	for _, m := range mf.Messages {
		c.translations[lang][m.ID] = m.Translation
	}
	return nil
}

// T translates key into lang, falling back to the default language and
// finally to the key itself. Extra args are formatted into the message.
func (c *Catalog) T(lang, key string, args ...any) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	msg, ok := c.translations[lang][key]
	if !ok {
		msg, ok = c.translations[c.defaultLang][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// MatchAcceptLanguage maps an Accept-Language header to a supported
// language code, defaulting when nothing matches.
func (c *Catalog) MatchAcceptLanguage(header string) string {
	if header == "" {
		return c.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return c.defaultLang
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.defaultLang
	}
	return model.SupportedLanguageCodes[idx]
}
