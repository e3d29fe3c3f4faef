package products

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lumiskin/skincare-api/internal/catalog"
	"github.com/lumiskin/skincare-api/internal/platform/auth"
	"github.com/lumiskin/skincare-api/internal/platform/pagination"
	"github.com/lumiskin/skincare-api/internal/service/account"
	"github.com/lumiskin/skincare-api/internal/session"
)

const cursorType = "product"

// Register wires product routes into the provided API router.
func Register(api huma.API, engine *catalog.Engine, sessions *session.Manager, accounts account.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/v1/products",
		Summary:     "Browse the catalog with cursor-based pagination",
		Description: "Returns a page of catalog items in canonical order. Use the cursor from the Link header to navigate.",
		Tags:        []string{"Products"},
	}, func(_ context.Context, input *ListInput) (*ListOutput, error) {
		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != cursorType {
			return nil, huma.Error400BadRequest("cursor type mismatch")
		}

		filtered := filterByCategory(engine.Items(), input.Category)

		query := url.Values{}
		if input.Category != "" {
			query.Set("category", input.Category)
		}

		result := pagination.Paginate(
			filtered,
			cursor,
			input.DefaultLimit(),
			cursorType,
			itemID,
			"/v1/products",
			query,
		)

		return &ListOutput{
			Link: result.LinkHeader,
			Body: ListData{
				Products: result.Items,
				Total:    result.Total,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-recommendations",
		Method:      http.MethodGet,
		Path:        "/v1/products/recommendations",
		Summary:     "Get ranked product suggestions for the guest session",
		Description: "Scores the catalog against the guest session profile. Without a session header a generic ranking is returned.",
		Tags:        []string{"Products"},
	}, func(_ context.Context, input *RecommendationsInput) (*RecommendationsOutput, error) {
		profile := guestRankProfile(sessions, input.SessionID)
		opts := catalog.Options{Category: input.Category, Limit: input.Limit, MinScore: input.MinScore}
		return recommendationsOutput(engine.Retrieve(profile, opts)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-products-by-category",
		Method:      http.MethodGet,
		Path:        "/v1/products/category/{category}",
		Summary:     "Get ranked products within one category",
		Tags:        []string{"Products"},
	}, func(_ context.Context, input *CategoryInput) (*RankedListOutput, error) {
		profile := guestRankProfile(sessions, input.SessionID)
		out := &RankedListOutput{}
		out.Body.Products = toRankedProducts(engine.ByCategory(input.Category, profile, input.Limit))
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-routine-products",
		Method:      http.MethodGet,
		Path:        "/v1/products/routine",
		Summary:     "Get product suggestions for each routine slot",
		Tags:        []string{"Products"},
	}, func(_ context.Context, input *RoutineInput) (*RoutineOutput, error) {
		profile := guestRankProfile(sessions, input.SessionID)
		slots := engine.RoutineProducts(profile)

		out := &RoutineOutput{}
		out.Body.Slots = make(map[string][]RankedProduct, len(slots))
		for slot, items := range slots {
			out.Body.Slots[slot] = toRankedProducts(items)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "search-products-by-ingredient",
		Method:      http.MethodGet,
		Path:        "/v1/products/search",
		Summary:     "Search products by key ingredient",
		Tags:        []string{"Products"},
	}, func(_ context.Context, input *SearchInput) (*RankedListOutput, error) {
		profile := guestRankProfile(sessions, input.SessionID)
		out := &RankedListOutput{}
		out.Body.Products = toRankedProducts(engine.SearchByIngredient(input.Ingredient, profile, input.Limit))
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-my-recommendations",
		Method:      http.MethodGet,
		Path:        "/v1/me/recommendations",
		Summary:     "Get ranked product suggestions for the authenticated user",
		Tags:        []string{"Products"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *MeRecommendationsInput) (*RecommendationsOutput, error) {
		user := auth.UserFromContext(ctx)

		profile := catalog.Profile{}
		stored, err := accounts.Get(ctx, user.UID)
		switch {
		case err == nil:
			profile = accountRankProfile(stored)
		case errors.Is(err, account.ErrNotFound):
			// no profile yet; generic ranking
		default:
			return nil, huma.Error500InternalServerError("failed to load profile")
		}

		opts := catalog.Options{Category: input.Category, Limit: input.Limit, MinScore: input.MinScore}
		return recommendationsOutput(engine.Retrieve(profile, opts)), nil
	})
}

func recommendationsOutput(result catalog.Result) *RecommendationsOutput {
	limit := result.Query.Limit
	if limit <= 0 {
		limit = catalog.DefaultLimit
	}
	minScore := result.Query.MinScore
	if minScore <= 0 {
		minScore = catalog.DefaultMinScore
	}
	return &RecommendationsOutput{
		Body: RecommendationsData{
			Products:     toRankedProducts(result.Products),
			TotalMatches: result.TotalMatches,
			Query: QueryEcho{
				Category: result.Query.Category,
				Limit:    limit,
				MinScore: minScore,
			},
		},
	}
}

// guestRankProfile reduces the guest session profile to the ranking view.
// An empty session ID yields a zero profile and a generic ranking.
func guestRankProfile(sessions *session.Manager, sessionID string) catalog.Profile {
	if sessionID == "" {
		return catalog.Profile{}
	}
	p := sessions.Store(sessionID).Profile()
	return catalog.Profile{
		SkinType:      p.SkinType,
		Concerns:      p.Concerns,
		BudgetRange:   stringPref(p.Preferences, account.PrefBudgetRange),
		CrueltyFree:   boolPref(p.Preferences, account.PrefCrueltyFree),
		Vegan:         boolPref(p.Preferences, account.PrefVegan),
		FragranceFree: boolPref(p.Preferences, account.PrefFragranceFree),
	}
}

// accountRankProfile reduces the account profile to the ranking view.
func accountRankProfile(p *account.Profile) catalog.Profile {
	return catalog.Profile{
		SkinType:      p.SkinType,
		Concerns:      p.Concerns,
		BudgetRange:   stringPref(p.Preferences, account.PrefBudgetRange),
		CrueltyFree:   boolPref(p.Preferences, account.PrefCrueltyFree),
		Vegan:         boolPref(p.Preferences, account.PrefVegan),
		FragranceFree: boolPref(p.Preferences, account.PrefFragranceFree),
	}
}

func stringPref(prefs map[string]any, key string) string {
	s, _ := prefs[key].(string)
	return s
}

func boolPref(prefs map[string]any, key string) bool {
	b, _ := prefs[key].(bool)
	return b
}

func filterByCategory(items []catalog.Item, category string) []catalog.Item {
	if category == "" {
		return items
	}
	out := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

func itemID(item catalog.Item) string {
	return strconv.Itoa(item.ID)
}
