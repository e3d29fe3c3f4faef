package guest

// ProfileGetInput for GET /v1/session/profile
type ProfileGetInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier" required:"true"`
}

// ProfileUpdateInput for PATCH /v1/session/profile
type ProfileUpdateInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier" required:"true"`
	Body      struct {
		SkinType      *string        `json:"skinType,omitempty"      doc:"Skin type"                     example:"oily"`
		Concerns      []string       `json:"concerns,omitempty"      doc:"Concerns to add"`
		SurveyAnswers map[string]any `json:"surveyAnswers,omitempty" doc:"Skin quiz answers"`
		Location      *Location      `json:"location,omitempty"      doc:"Coarse location"`
		Preferences   map[string]any `json:"preferences,omitempty"   doc:"Ranking preferences (budget_range, cruelty_free, vegan, fragrance_free)"`
	}
}

// SaveProductInput for POST /v1/session/saved-products
type SaveProductInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier" required:"true"`
	Body      struct {
		ID       int    `json:"id"       doc:"Catalog item identifier" required:"true" example:"101"`
		Name     string `json:"name"     doc:"Product name"            required:"true" minLength:"1" maxLength:"200"`
		Brand    string `json:"brand"    doc:"Brand name"              maxLength:"100"`
		Category string `json:"category" doc:"Product category"        maxLength:"50"`
	}
}

// AddRoutineInput for POST /v1/session/routines
type AddRoutineInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier" required:"true"`
	Body      struct {
		ID        string   `json:"id,omitempty" doc:"Routine identifier; generated when omitted"`
		Name      string   `json:"name"         doc:"Routine name"  required:"true" minLength:"1" maxLength:"100"`
		TimeOfDay string   `json:"timeOfDay"    doc:"When the routine runs" enum:"morning,evening,both"`
		Steps     []string `json:"steps"        doc:"Ordered product steps"`
	}
}

// RecordSearchInput for POST /v1/session/searches
type RecordSearchInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier" required:"true"`
	Body      struct {
		Query string `json:"query" doc:"Search query" required:"true" minLength:"1" maxLength:"200"`
	}
}

// RecordViewInput for POST /v1/session/views
type RecordViewInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier" required:"true"`
	Body      struct {
		ProductID string `json:"productId" doc:"Viewed product identifier" required:"true" minLength:"1"`
	}
}

// RecordInteractionInput for POST /v1/session/interactions
type RecordInteractionInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier" required:"true"`
	Body      struct {
		Kind   string         `json:"kind"           doc:"Interaction kind" required:"true" example:"page_view"`
		Target string         `json:"target"         doc:"Interaction target" required:"true" example:"/products/cleansers"`
		Data   map[string]any `json:"data,omitempty" doc:"Optional details"`
	}
}

// BehaviorInput for GET /v1/session/behavior
type BehaviorInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier" required:"true"`
}

// ClearInput for DELETE /v1/session
type ClearInput struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session identifier" required:"true"`
}
