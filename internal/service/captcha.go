// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	hcaptchaVerifyURL = "https://api.hcaptcha.com/siteverify"
	captchaTimeout    = 10 * time.Second
)

// Captcha verifies hCaptcha tokens on public form submissions. With no
// secret configured every submission passes, which is the development
// default.
type Captcha struct {
	secret string
	client *http.Client
}

// NewCaptcha creates the verifier; an empty secret disables it.
func NewCaptcha(secret string) *Captcha {
	return &Captcha{secret: secret, client: &http.Client{Timeout: captchaTimeout}}
}

// Enabled reports whether verification is active.
func (c *Captcha) Enabled() bool { return c.secret != "" }

// Verify checks one h-captcha-response token.
func (c *Captcha) Verify(ctx context.Context, response, remoteIP string) (bool, error) {
	if !c.Enabled() {
		return true, nil
	}
	if response == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", response)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hcaptchaVerifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("building captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verification request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("parsing captcha response: %w", err)
	}
	return result.Success, nil
}
