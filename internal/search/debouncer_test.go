package search

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firedRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *firedRecorder) record(_, query string) {
	r.mu.Lock()
	r.calls = append(r.calls, query)
	r.mu.Unlock()
}

func (r *firedRecorder) queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func TestDebouncerFiresOnceWithFinalQuery(t *testing.T) {
	rec := &firedRecorder{}
	d := NewDebouncer(30*time.Millisecond, rec.record)
	defer d.Stop()

	// Rapid typing: each keystroke resets the timer.
	for _, q := range []string{"ku", "kun", "kunj", "kunju", "kunjungan"} {
		d.Update("header", q)
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	require.Equal(t, []string{"kunjungan"}, rec.queries())
}

func TestDebouncerNeverFiresBelowMinLength(t *testing.T) {
	rec := &firedRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)
	defer d.Stop()

	d.Update("header", "k")
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.queries())
}

func TestDebouncerShortQueryCancelsPending(t *testing.T) {
	rec := &firedRecorder{}
	d := NewDebouncer(30*time.Millisecond, rec.record)
	defer d.Stop()

	d.Update("header", "rapat")
	// Deleting back below the minimum must cancel the pending search.
	d.Update("header", "r")
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.queries())
}

func TestDebouncerCountsRunesNotBytes(t *testing.T) {
	rec := &firedRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)
	defer d.Stop()

	// Two Cyrillic runes are four bytes but still meet the minimum.
	d.Update("header", "юр")
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []string{"юр"}, rec.queries())
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	rec := &firedRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)
	defer d.Stop()

	d.Update("header", "berita")
	d.Update("sidebar", "galeri")
	time.Sleep(80 * time.Millisecond)

	got := rec.queries()
	assert.ElementsMatch(t, []string{"berita", "galeri"}, got)
}

func TestStopCancelsPending(t *testing.T) {
	rec := &firedRecorder{}
	d := NewDebouncer(30*time.Millisecond, rec.record)

	d.Update("header", "berita")
	d.Stop()
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.queries())

	// Updates after Stop are ignored.
	d.Update("header", "berita")
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.queries())
}
