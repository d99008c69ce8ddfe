// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// Section is a typed handle on one content section's endpoints.
type Section struct {
	c    *Client
	name string
}

// Section returns a handle for an arbitrary section name.
func (c *Client) Section(name string) *Section {
	return &Section{c: c, name: name}
}

// Named section handles, one per section of the profile site.
func (c *Client) Berita() *Section      { return c.Section("berita") }
func (c *Client) Biografi() *Section    { return c.Section("biografi") }
func (c *Client) Galeri() *Section      { return c.Section("galeri") }
func (c *Client) Hero() *Section        { return c.Section("hero") }
func (c *Client) Logo() *Section        { return c.Section("logo") }
func (c *Client) Pengalaman() *Section  { return c.Section("pengalaman") }
func (c *Client) Publikasi() *Section   { return c.Section("publikasi") }
func (c *Client) RekamJejak() *Section  { return c.Section("rekam-jejak") }
func (c *Client) SosialMedia() *Section { return c.Section("sosial-media") }
func (c *Client) Tentang() *Section     { return c.Section("tentang") }
func (c *Client) Testimoni() *Section   { return c.Section("testimoni") }

func (s *Section) path(parts ...string) string {
	p := "/api/" + s.name
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// GetAll returns one page of the section's published items.
func (s *Section) GetAll(ctx context.Context, opts ListOptions) ([]Item, Pagination, error) {
	q := s.c.baseQuery()
	opts.apply(q)

	env, err := s.c.do(ctx, http.MethodGet, s.path(), q, nil, "")
	if err != nil {
		return nil, Pagination{}, err
	}
	var items []Item
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, Pagination{}, fmt.Errorf("decoding items: %w", err)
	}
	var p Pagination
	if env.Pagination != nil {
		p = *env.Pagination
	}
	return items, p, nil
}

// GetByID returns one item.
func (s *Section) GetByID(ctx context.Context, id int64) (Item, error) {
	env, err := s.c.do(ctx, http.MethodGet, s.path(strconv.FormatInt(id, 10)), s.c.baseQuery(), nil, "")
	if err != nil {
		return Item{}, err
	}
	return decodeItem(env.Data)
}

// GetBySlug returns one item addressed by slug.
func (s *Section) GetBySlug(ctx context.Context, slug string) (Item, error) {
	env, err := s.c.do(ctx, http.MethodGet, s.path("slug", url.PathEscape(slug)), s.c.baseQuery(), nil, "")
	if err != nil {
		return Item{}, err
	}
	return decodeItem(env.Data)
}

// Create stores a new item. Inputs without default-language content are
// rejected locally, before any network traffic.
func (s *Section) Create(ctx context.Context, in ItemInput) (Item, error) {
	if err := in.validateTranslations(); err != nil {
		return Item{}, err
	}
	body, contentType, err := in.encode()
	if err != nil {
		return Item{}, err
	}
	env, err := s.c.do(ctx, http.MethodPost, s.path(), url.Values{}, body, contentType)
	if err != nil {
		return Item{}, err
	}
	return decodeItem(env.Data)
}

// Update overlays in on an existing item. A nil Translations slice leaves
// the stored translations untouched; a non-nil one replaces them and must
// carry default-language content, checked before any network traffic.
func (s *Section) Update(ctx context.Context, id int64, in ItemInput) (Item, error) {
	if in.Translations != nil {
		if err := in.validateTranslations(); err != nil {
			return Item{}, err
		}
	}
	body, contentType, err := in.encode()
	if err != nil {
		return Item{}, err
	}
	env, err := s.c.do(ctx, http.MethodPut, s.path(strconv.FormatInt(id, 10)), url.Values{}, body, contentType)
	if err != nil {
		return Item{}, err
	}
	return decodeItem(env.Data)
}

// Remove deletes an item.
func (s *Section) Remove(ctx context.Context, id int64) error {
	_, err := s.c.do(ctx, http.MethodDelete, s.path(strconv.FormatInt(id, 10)), url.Values{}, nil, "")
	return err
}

func decodeItem(raw json.RawMessage) (Item, error) {
	var item Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return Item{}, fmt.Errorf("decoding item: %w", err)
	}
	return item, nil
}

// encode builds the multipart form the item endpoints consume.
func (in ItemInput) encode() (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)

	if in.Translations != nil {
		// blank languages never go on the wire; the server persists only
		// languages with trimmed content and this keeps both sides agreeing
		kept := make([]Fields, 0, len(in.Translations))
		for _, f := range in.Translations {
			if !f.Blank() {
				kept = append(kept, f)
			}
		}
		raw, err := json.Marshal(kept)
		if err != nil {
			return nil, "", fmt.Errorf("encoding translations: %w", err)
		}
		if err := mw.WriteField("translations", string(raw)); err != nil {
			return nil, "", err
		}
	}
	if in.Slug != nil {
		if err := mw.WriteField("slug", *in.Slug); err != nil {
			return nil, "", err
		}
	}
	if in.Urutan != nil {
		if err := mw.WriteField("urutan", strconv.FormatInt(*in.Urutan, 10)); err != nil {
			return nil, "", err
		}
	}
	if in.Category != nil {
		if err := mw.WriteField("category", *in.Category); err != nil {
			return nil, "", err
		}
	}
	if in.IsPublished != nil {
		if err := mw.WriteField("is_published", strconv.FormatBool(*in.IsPublished)); err != nil {
			return nil, "", err
		}
	}
	if in.Tahun != nil {
		if err := mw.WriteField("tahun", strconv.FormatInt(*in.Tahun, 10)); err != nil {
			return nil, "", err
		}
	}
	if in.LinkURL != nil {
		if err := mw.WriteField("link_url", *in.LinkURL); err != nil {
			return nil, "", err
		}
	}
	if in.ScheduledAt != nil {
		if err := mw.WriteField("scheduled_at", *in.ScheduledAt); err != nil {
			return nil, "", err
		}
	}
	if in.Kegiatan != nil {
		raw, err := json.Marshal(in.Kegiatan)
		if err != nil {
			return nil, "", fmt.Errorf("encoding kegiatan: %w", err)
		}
		if err := mw.WriteField("kegiatan", string(raw)); err != nil {
			return nil, "", err
		}
	}
	if in.Foto != nil {
		fw, err := mw.CreateFormFile("foto", in.Foto.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(in.Foto.Data); err != nil {
			return nil, "", err
		}
	}
	for _, up := range in.Fotos {
		fw, err := mw.CreateFormFile("fotos[]", up.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(up.Data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf, mw.FormDataContentType(), nil
}
