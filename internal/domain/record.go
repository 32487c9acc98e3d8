package domain

import "time"

// Record is one row returned by the collection API.
// Only ID matters for selection; the rest is display data.
type Record struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	PlaceOfOrigin string `json:"place_of_origin"`
	ArtistDisplay string `json:"artist_display"`
	Inscriptions  string `json:"inscriptions"`
	DateStart     int    `json:"date_start"` // year, 0 if unknown
	DateEnd       int    `json:"date_end"`   // year, 0 if unknown
}

// PageMeta describes the page that was loaded, not the whole dataset.
type PageMeta struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

// Page is one loaded page of records in dataset order.
type Page struct {
	Records   []Record  `json:"records"`
	Meta      PageMeta  `json:"meta"`
	FetchedAt time.Time `json:"fetched_at"`
	FromCache bool      `json:"-"`
}

// Number returns the 1-based page number reported by the source.
func (p *Page) Number() int {
	if p == nil {
		return 0
	}
	return p.Meta.CurrentPage
}

// IDs returns the record ids in page order.
func (p *Page) IDs() []int {
	if p == nil {
		return nil
	}
	ids := make([]int, len(p.Records))
	for i, r := range p.Records {
		ids[i] = r.ID
	}
	return ids
}
