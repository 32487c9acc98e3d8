package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/vitrine/internal/domain"
)

func samplePage(n int, fetched time.Time) *domain.Page {
	return &domain.Page{
		Records: []domain.Record{
			{ID: n*100 + 1, Title: "Untitled", ArtistDisplay: "Anonymous", DateStart: 1900},
			{ID: n*100 + 2, Title: "Still Life", PlaceOfOrigin: "France"},
		},
		Meta:      domain.PageMeta{Total: 30, Limit: 12, Offset: (n - 1) * 12, TotalPages: 3, CurrentPage: n},
		FetchedAt: fetched,
	}
}

func TestPageStoreRoundTripOnDisk(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().UTC().Truncate(time.Second)

	s, err := NewPageStore(dir, "https://api.example.org/v1", time.Hour)
	require.NoError(t, err)
	require.NoError(t, s.Put("artworks", 12, 2, samplePage(2, now)))
	require.NoError(t, s.Close())

	// Reopen so the read comes from bbolt, not the memory map.
	s, err = NewPageStore(dir, "https://api.example.org/v1", time.Hour)
	require.NoError(t, err)
	defer s.Close()

	got, ok := s.Get("artworks", 12, 2)
	require.True(t, ok)
	assert.True(t, got.FromCache)
	assert.Equal(t, samplePage(2, now).Records, got.Records)
	assert.Equal(t, samplePage(2, now).Meta, got.Meta)
	assert.True(t, now.Equal(got.FetchedAt))
}

func TestPageStoreKeyedByLimitAndResource(t *testing.T) {
	s, err := NewPageStore("", "", 0)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("artworks", 12, 1, samplePage(1, time.Now())))

	_, ok := s.Get("artworks", 25, 1)
	assert.False(t, ok, "different page size")
	_, ok = s.Get("agents", 12, 1)
	assert.False(t, ok, "different resource")
	_, ok = s.Get("artworks", 12, 1)
	assert.True(t, ok)
}

func TestPageStoreTTL(t *testing.T) {
	s, err := NewPageStore("", "", time.Minute)
	require.NoError(t, err)
	defer s.Close()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	require.NoError(t, s.Put("artworks", 12, 1, samplePage(1, base)))

	_, ok := s.Get("artworks", 12, 1)
	assert.True(t, ok)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, ok = s.Get("artworks", 12, 1)
	assert.False(t, ok, "expired entry is a miss")
}

func TestPageStoreInvalidateAll(t *testing.T) {
	s, err := NewPageStore(t.TempDir(), "https://api.example.org/v1", 0)
	require.NoError(t, err)
	defer s.Close()

	for n := 1; n <= 3; n++ {
		require.NoError(t, s.Put("artworks", 12, n, samplePage(n, time.Now())))
	}

	require.NoError(t, s.InvalidateAll())

	for n := 1; n <= 3; n++ {
		_, ok := s.Get("artworks", 12, n)
		assert.False(t, ok, "page %d", n)
	}
}

func TestPageStoreInvalidateAllClearsDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPageStore(dir, "https://api.example.org/v1", 0)
	require.NoError(t, err)
	require.NoError(t, s.Put("artworks", 12, 1, samplePage(1, time.Now())))
	require.NoError(t, s.InvalidateAll())
	require.NoError(t, s.Close())

	s, err = NewPageStore(dir, "https://api.example.org/v1", 0)
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.Get("artworks", 12, 1)
	assert.False(t, ok)
}

func TestPageStoreKeyedByRequestNotReportedMeta(t *testing.T) {
	s, err := NewPageStore("", "", 0)
	require.NoError(t, err)
	defer s.Close()

	// Asked for 100 per page, the server capped it at 12
	require.NoError(t, s.Put("artworks", 100, 2, samplePage(2, time.Now())))

	got, ok := s.Get("artworks", 100, 2)
	require.True(t, ok)
	assert.Equal(t, 12, got.Meta.Limit)
	_, ok = s.Get("artworks", 12, 2)
	assert.False(t, ok)
}

func TestHashBaseURLNormalizes(t *testing.T) {
	assert.Equal(t, hashBaseURL("https://API.example.org/v1/"), hashBaseURL("https://api.example.org/v1"))
	assert.NotEqual(t, hashBaseURL("https://a.example.org"), hashBaseURL("https://b.example.org"))
}
