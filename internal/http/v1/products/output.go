package products

import (
	"github.com/lumiskin/skincare-api/internal/catalog"
)

// ListData is the response body for catalog browsing.
type ListData struct {
	Products []catalog.Item `json:"products" doc:"Catalog page"`
	Total    int            `json:"total"    doc:"Total items matching the filter"`
}

// ListOutput is the browse response wrapper with pagination Link header.
type ListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ListData
}

// QueryEcho reflects the effective retrieval parameters back to the caller.
type QueryEcho struct {
	Category string `json:"category,omitempty" doc:"Category filter applied"`
	Limit    int    `json:"limit"              doc:"Result limit applied"`
	MinScore int    `json:"minScore"           doc:"Score floor applied"`
}

// RecommendationsData is the response body for ranked retrieval.
type RecommendationsData struct {
	Products     []RankedProduct `json:"products"     doc:"Ranked products, best first"`
	TotalMatches int             `json:"totalMatches" doc:"Matches above the score floor before truncation"`
	Query        QueryEcho       `json:"query"        doc:"Effective query parameters"`
}

// RecommendationsOutput for recommendation endpoints.
type RecommendationsOutput struct {
	Body RecommendationsData
}

// RankedListOutput for category and ingredient retrieval.
type RankedListOutput struct {
	Body struct {
		Products []RankedProduct `json:"products" doc:"Ranked products, best first"`
	}
}

// RoutineOutput maps each routine slot to its suggestions.
type RoutineOutput struct {
	Body struct {
		Slots map[string][]RankedProduct `json:"slots" doc:"Suggestions per routine slot"`
	}
}
