package products

import (
	"github.com/lumiskin/skincare-api/internal/platform/pagination"
)

// ListInput defines query parameters for browsing the catalog.
type ListInput struct {
	pagination.Params
	Category string `query:"category" doc:"Filter by category" example:"cleanser" enum:"cleanser,toner,serum,moisturizer,sunscreen"`
}

// RecommendationsInput for GET /v1/products/recommendations
type RecommendationsInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier" example:"b5c7d9e1-4f2a-4c3b-9d8e-7f6a5b4c3d2e"`
	Category  string `query:"category"  doc:"Optional category filter"          example:"serum"`
	Limit     int    `query:"limit"     doc:"Maximum results"                   minimum:"1" maximum:"50"`
	MinScore  int    `query:"minScore"  doc:"Relevance score floor"             minimum:"0" maximum:"500"`
}

// CategoryInput for GET /v1/products/category/{category}
type CategoryInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier"`
	Category  string `path:"category"  doc:"Product category"  example:"moisturizer"`
	Limit     int    `query:"limit"    doc:"Maximum results"   minimum:"1" maximum:"50"`
}

// RoutineInput for GET /v1/products/routine
type RoutineInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier"`
}

// SearchInput for GET /v1/products/search
type SearchInput struct {
	SessionID  string `header:"X-Session-Id" doc:"Guest session identifier"`
	Ingredient string `query:"ingredient" doc:"Ingredient name or fragment" required:"true" minLength:"2" example:"niacinamide"`
	Limit      int    `query:"limit"      doc:"Maximum results"             minimum:"1" maximum:"50"`
}

// MeRecommendationsInput for GET /v1/me/recommendations
type MeRecommendationsInput struct {
	Category string `query:"category" doc:"Optional category filter"`
	Limit    int    `query:"limit"    doc:"Maximum results"       minimum:"1" maximum:"50"`
	MinScore int    `query:"minScore" doc:"Relevance score floor" minimum:"0" maximum:"500"`
}
