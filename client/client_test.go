package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonResponse(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestGetByIDNotFoundMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusNotFound,
			`{"success":false,"code":"not_found","message":"Data tidak ditemukan"}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Berita().GetByID(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrRequestFailed))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Data tidak ditemukan", apiErr.Message)
}

func TestServerErrorMapsToRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusInternalServerError,
			`{"success":false,"code":"server_error","message":"Terjadi kesalahan pada server"}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Berita().GetAll(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequestFailed))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestUnknownLanguageRetriesOnceWithDefault(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if r.URL.Query().Get("lang") != "id" {
			jsonResponse(w, http.StatusBadRequest,
				`{"success":false,"code":"language_not_found","message":"Bahasa tidak ditemukan"}`)
			return
		}
		assert.Equal(t, int32(2), n, "retry must be the second call")
		jsonResponse(w, http.StatusOK,
			`{"success":true,"data":[],"pagination":{"page":1,"limit":10,"total":0,"totalPages":1}}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithLanguage("fr"))
	items, p, err := c.Berita().GetAll(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(1), p.Page)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestUnknownLanguageRetriesAtMostOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		jsonResponse(w, http.StatusBadRequest,
			`{"success":false,"code":"language_not_found","message":"Bahasa tidak ditemukan"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithLanguage("fr"))
	_, _, err := c.Berita().GetAll(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDefaultLanguageFailureDoesNotRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		jsonResponse(w, http.StatusBadRequest,
			`{"success":false,"code":"language_not_found","message":"Bahasa tidak ditemukan"}`)
	}))
	defer srv.Close()

	c := New(srv.URL) // already on the default language
	_, _, err := c.Berita().GetAll(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreateRejectsBlankDefaultLanguageLocally(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Berita().Create(context.Background(), ItemInput{
		Translations: []Fields{
			{LanguageCode: "en", Title: "Only English", Body: "Body."},
			{LanguageCode: "id", Title: "   "},
		},
	})
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "no request may be sent")
}

func TestCreateSendsMultipartForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		var fields []Fields
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("translations")), &fields))
		assert.Equal(t, "Berita Baru", fields[0].Title)
		assert.Equal(t, "kabar", r.FormValue("category"))

		file, header, err := r.FormFile("foto")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cover.jpg", header.Filename)

		jsonResponse(w, http.StatusCreated,
			`{"success":true,"data":{"id":7,"section":"berita","slug":"berita-baru","title":"Berita Baru","language_code":"id","translations":[]}}`)
	}))
	defer srv.Close()

	category := "kabar"
	c := New(srv.URL)
	item, err := c.Berita().Create(context.Background(), ItemInput{
		Translations: []Fields{{LanguageCode: "id", Title: "Berita Baru", Body: "Isi."}},
		Category:     &category,
		Foto:         &Upload{Filename: "cover.jpg", Data: []byte("fake-jpeg")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, "berita-baru", item.Slug)
}

func TestUpdateRejectsBlankDefaultLanguageLocally(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Berita().Update(context.Background(), 7, ItemInput{
		Translations: []Fields{
			{LanguageCode: "en", Title: "Only English", Body: "Body."},
			{LanguageCode: "id", Title: "   "},
		},
	})
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "wajib diisi", ve.Fields["id"])
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "no request may be sent")
}

func TestUpdateWithoutTranslationsIsSent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Empty(t, r.FormValue("translations"), "omitted translations must stay omitted")
		assert.Equal(t, "true", r.FormValue("is_published"))
		jsonResponse(w, http.StatusOK,
			`{"success":true,"data":{"id":7,"section":"berita","is_published":true,"language_code":"id","translations":[]}}`)
	}))
	defer srv.Close()

	published := true
	c := New(srv.URL)
	item, err := c.Berita().Update(context.Background(), 7, ItemInput{IsPublished: &published})
	require.NoError(t, err)
	assert.True(t, item.IsPublished)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreateDropsBlankLanguagesFromPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		var fields []Fields
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("translations")), &fields))
		require.Len(t, fields, 2)
		assert.Equal(t, "id", fields[0].LanguageCode)
		assert.Equal(t, "ru", fields[1].LanguageCode)
		jsonResponse(w, http.StatusCreated,
			`{"success":true,"data":{"id":9,"section":"berita","title":"Judul","language_code":"id","translations":[]}}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Berita().Create(context.Background(), ItemInput{
		Translations: []Fields{
			{LanguageCode: "id", Title: "Judul", Body: "Isi."},
			{LanguageCode: "en", Title: " \t ", Body: "  "},
			{LanguageCode: "ru", Title: "Заголовок"},
		},
	})
	require.NoError(t, err)
}

func TestSendMessageValidatesLocally(t *testing.T) {
	c := New("http://unreachable.invalid")
	err := c.SendMessage(context.Background(), MessageInput{Email: "a@example.com"})
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "wajib diisi", ve.Fields["nama"])
	assert.Equal(t, "wajib diisi", ve.Fields["isi"])
}

func TestLegacyFieldsAdapter(t *testing.T) {
	l := LegacyFields{Judul: "Judul Lama", Isi: "Isi lama", Keterangan: "ket"}

	trs := l.Translations("")
	require.Len(t, trs, 1)
	assert.Equal(t, "id", trs[0].LanguageCode)
	assert.Equal(t, "Judul Lama", trs[0].Title)
	assert.Equal(t, "Isi lama", trs[0].Body)
	assert.Equal(t, "ket", trs[0].Caption)

	trs = l.Translations("en")
	assert.Equal(t, "en", trs[0].LanguageCode)
}

func TestFieldsBlank(t *testing.T) {
	assert.True(t, Fields{LanguageCode: "id", Title: "  "}.Blank())
	assert.False(t, Fields{LanguageCode: "id", Caption: "x"}.Blank())
}
