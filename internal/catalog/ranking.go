package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Scoring weights. Bonuses are additive; no weight short-circuits another.
const (
	scoreCategoryMatch   = 30
	scoreSkinTypeMatch   = 25
	scoreConcernMatch    = 20
	scoreIngredientMatch = 20
	scoreBudgetMatch     = 15
	scorePreferenceFlag  = 10
	scoreTopRating       = 10
	scoreGoodRating      = 5
	scoreInStock         = 5
)

// Defaults for Retrieve.
const (
	DefaultMinScore = 10
	DefaultLimit    = 4
)

// ratingTopTier and ratingGoodTier bound the rating boost.
const (
	ratingTopTier  = 4.8
	ratingGoodTier = 4.5
)

// RoutineSlots are the routine categories RoutineProducts fills, in order.
var RoutineSlots = []string{"cleanser", "serum", "moisturizer", "sunscreen"}

// routineSlotLimit is the number of suggestions per routine slot.
const routineSlotLimit = 2

// budgetRanges bound the named price ranges. The boundaries overlap on
// purpose: a $28 product fits both "budget" and "mid".
var budgetRanges = map[string]struct{ min, max float64 }{
	"budget":  {0, 30},
	"mid":     {25, 50},
	"premium": {45, math.MaxFloat64},
}

// Profile is the view of a user the ranking engine scores against. Both the
// guest session profile and the account profile reduce to this shape.
type Profile struct {
	SkinType      string
	Concerns      []string
	BudgetRange   string
	CrueltyFree   bool
	Vegan         bool
	FragranceFree bool
}

// RankedItem pairs a catalog item with its relevance score and the reasons
// each bonus fired.
type RankedItem struct {
	Item
	Score   int
	Reasons []string
}

// Options controls a Retrieve call.
type Options struct {
	Category string
	Limit    int // defaults to DefaultLimit when <= 0
	MinScore int // defaults to DefaultMinScore when <= 0
}

// Result is the outcome of a Retrieve call. TotalMatches counts items above
// the score floor before truncation to Limit.
type Result struct {
	Products     []RankedItem
	TotalMatches int
	Query        Options
}

// Engine ranks catalog items against a profile. It holds only immutable
// reference data and is safe for concurrent use.
type Engine struct {
	items []Item
}

// NewEngine creates a ranking engine over the given catalog. The slice order
// is the canonical catalog order used for tie-breaking.
func NewEngine(items []Item) *Engine {
	return &Engine{items: items}
}

// Items returns the full catalog in canonical order.
func (e *Engine) Items() []Item {
	return e.items
}

// score computes the additive relevance score of one item with the reasons
// for each bonus. Every rule is evaluated; nothing exits early.
func (e *Engine) score(item Item, p Profile, category string) (int, []string) {
	total := 0
	var reasons []string

	if category != "" && strings.EqualFold(item.Category, category) {
		total += scoreCategoryMatch
		reasons = append(reasons, fmt.Sprintf("matches %s category", strings.ToLower(category)))
	}

	if p.SkinType != "" && (containsFold(item.SkinTypes, p.SkinType) || containsFold(item.SkinTypes, "all")) {
		total += scoreSkinTypeMatch
		reasons = append(reasons, fmt.Sprintf("suited for %s skin", strings.ToLower(p.SkinType)))
	}

	var matched []string
	for _, concern := range p.Concerns {
		if overlapsFold(item.Concerns, expandConcern(strings.ToLower(concern))) {
			total += scoreConcernMatch
			matched = append(matched, strings.ToLower(concern))
		}
	}
	if len(matched) > 0 {
		reasons = append(reasons, "targets "+strings.Join(matched, ", "))
	}

	if p.CrueltyFree && item.CrueltyFree {
		total += scorePreferenceFlag
		reasons = append(reasons, "cruelty-free")
	}
	if p.Vegan && item.Vegan {
		total += scorePreferenceFlag
		reasons = append(reasons, "vegan")
	}
	if p.FragranceFree && item.FragranceFree {
		total += scorePreferenceFlag
		reasons = append(reasons, "fragrance-free")
	}

	if r, ok := budgetRanges[p.BudgetRange]; ok && item.Price >= r.min && item.Price <= r.max {
		total += scoreBudgetMatch
		reasons = append(reasons, fmt.Sprintf("fits %s price range", p.BudgetRange))
	}

	switch {
	case item.Rating >= ratingTopTier:
		total += scoreTopRating
		reasons = append(reasons, fmt.Sprintf("highly rated (%.1f)", item.Rating))
	case item.Rating >= ratingGoodTier:
		total += scoreGoodRating
		reasons = append(reasons, fmt.Sprintf("well rated (%.1f)", item.Rating))
	}

	if item.InStock {
		total += scoreInStock
		reasons = append(reasons, "in stock")
	}

	return total, reasons
}

// Retrieve scores the whole catalog against the profile and returns the
// ordered, explained subset above the score floor, truncated to the limit.
// Given the same catalog and profile the result is identical on every call.
func (e *Engine) Retrieve(p Profile, opts Options) Result {
	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var ranked []RankedItem
	for _, item := range e.items {
		s, reasons := e.score(item, p, opts.Category)
		if s < minScore {
			continue
		}
		ranked = append(ranked, RankedItem{Item: item, Score: s, Reasons: reasons})
	}

	sortByScore(ranked)

	total := len(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return Result{Products: ranked, TotalMatches: total, Query: opts}
}

// ByCategory ranks only the items of one category. No score floor applies:
// a category browse should surface weak matches rather than hide them.
func (e *Engine) ByCategory(category string, p Profile, limit int) []RankedItem {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var ranked []RankedItem
	for _, item := range e.items {
		if !strings.EqualFold(item.Category, category) {
			continue
		}
		s, reasons := e.score(item, p, category)
		ranked = append(ranked, RankedItem{Item: item, Score: s, Reasons: reasons})
	}

	sortByScore(ranked)

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// RoutineProducts suggests products for each routine slot, two per slot.
func (e *Engine) RoutineProducts(p Profile) map[string][]RankedItem {
	out := make(map[string][]RankedItem, len(RoutineSlots))
	for _, slot := range RoutineSlots {
		out[slot] = e.ByCategory(slot, p, routineSlotLimit)
	}
	return out
}

// SearchByIngredient finds items whose key ingredients contain the given
// substring, re-scored with a flat ingredient-match bonus folded into the
// base score.
func (e *Engine) SearchByIngredient(ingredient string, p Profile, limit int) []RankedItem {
	if limit <= 0 {
		limit = DefaultLimit
	}
	needle := strings.ToLower(strings.TrimSpace(ingredient))
	if needle == "" {
		return nil
	}

	var ranked []RankedItem
	for _, item := range e.items {
		if !ingredientMatch(item.KeyIngredients, needle) {
			continue
		}
		s, reasons := e.score(item, p, "")
		s += scoreIngredientMatch
		reasons = append(reasons, fmt.Sprintf("contains %s", needle))
		ranked = append(ranked, RankedItem{Item: item, Score: s, Reasons: reasons})
	}

	sortByScore(ranked)

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// sortByScore orders descending by score. The sort is stable so ties keep
// the original catalog order; no secondary key is computed.
func sortByScore(ranked []RankedItem) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

func overlapsFold(values, targets []string) bool {
	for _, t := range targets {
		if containsFold(values, t) {
			return true
		}
	}
	return false
}

func ingredientMatch(ingredients []string, needle string) bool {
	for _, ing := range ingredients {
		if strings.Contains(strings.ToLower(ing), needle) {
			return true
		}
	}
	return false
}
