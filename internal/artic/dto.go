package artic

// APIResponse is the envelope returned by collection list endpoints
type APIResponse struct {
	Pagination Pagination `json:"pagination"`
	Data       []Artwork  `json:"data"`
}

// Pagination describes the page in the response
type Pagination struct {
	Total       int    `json:"total"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	NextURL     string `json:"next_url,omitempty"`
}

// Artwork is one record. Everything but id may be null.
type Artwork struct {
	ID            int     `json:"id"`
	Title         *string `json:"title"`
	PlaceOfOrigin *string `json:"place_of_origin"`
	ArtistDisplay *string `json:"artist_display"`
	Inscriptions  *string `json:"inscriptions"`
	DateStart     *int    `json:"date_start"`
	DateEnd       *int    `json:"date_end"`
}

// requestedFields limits the response to the columns the table shows
var requestedFields = []string{
	"id",
	"title",
	"place_of_origin",
	"artist_display",
	"inscriptions",
	"date_start",
	"date_end",
}
