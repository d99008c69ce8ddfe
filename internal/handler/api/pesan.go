// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"profilcms/internal/content"
	"profilcms/internal/model"
	"profilcms/internal/service"
	"profilcms/internal/store"
	"profilcms/internal/uikit"
	"profilcms/internal/util"
)

// messageView is the admin-facing shape of a contact message. The raw
// User-Agent header is never stored, only its summary.
type messageView struct {
	ID        int64  `json:"id"`
	Nama      string `json:"nama"`
	Email     string `json:"email"`
	Subjek    string `json:"subjek"`
	Isi       string `json:"isi"`
	UserAgent string `json:"user_agent,omitempty"`
	Country   string `json:"country,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

func newMessageView(m model.Message) messageView {
	return messageView{
		ID:        m.ID,
		Nama:      m.Nama,
		Email:     m.Email,
		Subjek:    m.Subjek,
		Isi:       m.Isi,
		UserAgent: m.UserAgent.String,
		Country:   m.Country.String,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

type messageRequest struct {
	Nama         string `json:"nama"`
	Email        string `json:"email"`
	Subjek       string `json:"subjek"`
	Isi          string `json:"isi"`
	CaptchaToken string `json:"captcha_token"`
}

// CreateMessage handles the public POST /api/pesan contact form.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	lang := h.contextLangCode(r)

	var req messageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	req.Nama = strings.TrimSpace(req.Nama)
	req.Email = strings.TrimSpace(req.Email)
	req.Subjek = strings.TrimSpace(req.Subjek)
	req.Isi = strings.TrimSpace(req.Isi)

	fields := make(map[string]string)
	if req.Nama == "" {
		fields["nama"] = "wajib diisi"
	}
	if req.Isi == "" {
		fields["isi"] = "wajib diisi"
	}
	if req.Email == "" {
		fields["email"] = "wajib diisi"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		fields["email"] = "format tidak valid"
	}
	if len(fields) > 0 {
		writeError(w, http.StatusUnprocessableEntity, CodeValidation, h.catalog.T(lang, "error.validation"), fields)
		return
	}

	ip := clientIP(r)
	if h.captcha.Enabled() {
		ok, err := h.captcha.Verify(r.Context(), req.CaptchaToken, ip)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if !ok {
			writeError(w, http.StatusBadRequest, CodeCaptcha, h.catalog.T(lang, "error.captcha"), nil)
			return
		}
	}

	params := store.CreateMessageParams{
		Nama:      req.Nama,
		Email:     req.Email,
		Subjek:    req.Subjek,
		Isi:       req.Isi,
		UserAgent: util.NullStringFromValue(service.SummarizeUserAgent(r.UserAgent())),
	}
	if h.geoip != nil {
		params.Country = util.NullStringFromValue(h.geoip.Country(ip))
	}
	msg, err := h.queries.CreateMessage(r.Context(), params)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info("contact message received", "id", msg.ID, "country", msg.Country.String)
	writeMessage(w, http.StatusCreated, h.catalog.T(lang, "message.sent"))
}

// ListMessages handles the admin GET /api/pesan inbox.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	unreadOnly := q.Get("unread") == "true"

	total, err := h.queries.CountMessages(r.Context(), store.ListMessagesParams{
		Search:     q.Get("search"),
		UnreadOnly: unreadOnly,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p := uikit.Paginate(page, limit, total)

	msgs, err := h.queries.ListMessages(r.Context(), store.ListMessagesParams{
		Search:     q.Get("search"),
		UnreadOnly: unreadOnly,
		Limit:      p.Limit,
		Offset:     p.Offset(),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	views := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, newMessageView(m))
	}
	writeList(w, views, p)
}

// GetMessage handles GET /api/pesan/{id} and marks the message read.
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.fail(w, r, content.ErrNotFound)
		return
	}
	msg, err := h.queries.GetMessage(r.Context(), id)
	if store.IsNotFound(err) {
		h.fail(w, r, content.ErrNotFound)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !msg.IsRead {
		if err := h.queries.MarkMessageRead(r.Context(), id, true); err != nil {
			h.fail(w, r, err)
			return
		}
		msg.IsRead = true
	}
	writeData(w, http.StatusOK, newMessageView(msg))
}

// MarkMessage handles PUT /api/pesan/{id}/read with {"is_read": bool}.
func (h *Handler) MarkMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.fail(w, r, content.ErrNotFound)
		return
	}
	var req struct {
		IsRead bool `json:"is_read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if _, err := h.queries.GetMessage(r.Context(), id); err != nil {
		if store.IsNotFound(err) {
			h.fail(w, r, content.ErrNotFound)
			return
		}
		h.fail(w, r, err)
		return
	}
	if err := h.queries.MarkMessageRead(r.Context(), id, req.IsRead); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, h.catalog.T(h.contextLangCode(r), "message.saved"))
}

// DeleteMessage handles DELETE /api/pesan/{id}.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.fail(w, r, content.ErrNotFound)
		return
	}
	n, err := h.queries.DeleteMessage(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if n == 0 {
		h.fail(w, r, content.ErrNotFound)
		return
	}
	writeMessage(w, http.StatusOK, h.catalog.T(h.contextLangCode(r), "message.deleted"))
}

// UnreadCount handles GET /api/pesan/unread-count for the admin badge.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.queries.CountUnreadMessages(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int64{"unread": n})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
