package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenDropsBlankLanguages(t *testing.T) {
	set := NewTranslationSet()
	require.NoError(t, set.SetField("id", FieldTitle, "Judul Berita"))
	require.NoError(t, set.SetField("id", FieldBody, "Isi berita."))
	require.NoError(t, set.SetField("ru", FieldTitle, "Заголовок"))
	// en left untouched.

	flat := set.Flatten()
	require.Len(t, flat, 2)
	assert.Equal(t, "id", flat[0].LanguageCode)
	assert.Equal(t, "ru", flat[1].LanguageCode)
}

func TestFlattenTreatsMarkupOnlyAsBlank(t *testing.T) {
	set := NewTranslationSet()
	require.NoError(t, set.SetField("id", FieldTitle, "Judul"))
	require.NoError(t, set.SetField("en", FieldBody, "<p>   </p>"))
	require.NoError(t, set.SetField("ru", FieldBody, "<p>текст</p>"))

	flat := set.Flatten()
	require.Len(t, flat, 2)
	assert.Equal(t, "id", flat[0].LanguageCode)
	assert.Equal(t, "ru", flat[1].LanguageCode)
}

func TestFlattenKeepsFixedOrder(t *testing.T) {
	set := NewTranslationSet()
	require.NoError(t, set.SetField("ru", FieldTitle, "Третий"))
	require.NoError(t, set.SetField("en", FieldTitle, "Second"))
	require.NoError(t, set.SetField("id", FieldTitle, "Pertama"))

	flat := set.Flatten()
	require.Len(t, flat, 3)
	assert.Equal(t, []string{"id", "en", "ru"},
		[]string{flat[0].LanguageCode, flat[1].LanguageCode, flat[2].LanguageCode})
}

func TestSetFieldRejectsUnknownLanguage(t *testing.T) {
	set := NewTranslationSet()
	assert.Error(t, set.SetField("fr", FieldTitle, "Titre"))
	assert.Error(t, set.SetField("id", "headline", "Judul"))
}

func TestHasContent(t *testing.T) {
	set := NewTranslationSet()
	assert.False(t, set.HasContent("id"))

	require.NoError(t, set.SetField("id", FieldCaption, "  keterangan  "))
	assert.True(t, set.HasContent("id"))
	assert.False(t, set.HasContent("en"))
	assert.False(t, set.HasContent("fr"))
}

func TestValidateRequiresIndonesian(t *testing.T) {
	cfg, ok := Lookup("berita")
	require.True(t, ok)

	set := NewTranslationSet()
	require.NoError(t, set.SetField("en", FieldTitle, "English only"))
	require.NoError(t, set.SetField("en", FieldBody, "Body"))

	err := Validate(cfg, set, "id")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "id.title")
	assert.Contains(t, ve.Fields, "id.body")
}

func TestValidateAcceptsFilledDefaults(t *testing.T) {
	cfg, _ := Lookup("berita")
	set := NewTranslationSet()
	require.NoError(t, set.SetField("id", FieldTitle, "Judul"))
	require.NoError(t, set.SetField("id", FieldBody, "Isi"))
	assert.NoError(t, Validate(cfg, set, "id"))
}

func TestValidateChecksFilledSecondaryLanguages(t *testing.T) {
	cfg, _ := Lookup("berita")
	set := NewTranslationSet()
	require.NoError(t, set.SetField("id", FieldTitle, "Judul"))
	require.NoError(t, set.SetField("id", FieldBody, "Isi"))
	// English has content but is missing its body.
	require.NoError(t, set.SetField("en", FieldTitle, "Title"))

	err := Validate(cfg, set, "id")
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "en.body")
}

func TestLookupUnknownSection(t *testing.T) {
	_, ok := Lookup("agenda")
	assert.False(t, ok)
}
