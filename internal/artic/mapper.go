package artic

import (
	"time"

	"github.com/mmcdole/vitrine/internal/domain"
)

// MapPage converts an API response into a domain page
func MapPage(resp *APIResponse, fetchedAt time.Time) *domain.Page {
	return &domain.Page{
		Records:   MapRecords(resp.Data),
		Meta:      MapMeta(resp.Pagination),
		FetchedAt: fetchedAt,
	}
}

// MapMeta converts pagination metadata
func MapMeta(p Pagination) domain.PageMeta {
	return domain.PageMeta{
		Total:       p.Total,
		Limit:       p.Limit,
		Offset:      p.Offset,
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
	}
}

// MapRecords converts artworks, preserving order
func MapRecords(items []Artwork) []domain.Record {
	records := make([]domain.Record, 0, len(items))
	for _, a := range items {
		records = append(records, domain.Record{
			ID:            a.ID,
			Title:         deref(a.Title),
			PlaceOfOrigin: deref(a.PlaceOfOrigin),
			ArtistDisplay: deref(a.ArtistDisplay),
			Inscriptions:  deref(a.Inscriptions),
			DateStart:     derefInt(a.DateStart),
			DateEnd:       derefInt(a.DateEnd),
		})
	}
	return records
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
