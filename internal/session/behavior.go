package session

import (
	"sort"
	"strings"
	"time"
)

// Engagement levels derived from the interaction log.
const (
	EngagementHigh   = "high"
	EngagementMedium = "medium"
	EngagementLow    = "low"
)

// Derivation limits.
const (
	maxPrimaryInterests  = 5
	maxPreferredFeatures = 3
)

// pageViewKind marks interactions that count as page visits.
const pageViewKind = "page_view"

// BehaviorPatterns summarizes the session's interaction log.
type BehaviorPatterns struct {
	EngagementLevel      string
	PrimaryInterests     []string
	PreferredFeatures    []string
	SessionDuration      time.Duration
	InteractionFrequency float64 // interactions per minute
}

// BehaviorPatterns derives engagement signals from the current snapshot.
//
// Engagement is high above 5 interactions/minute or 10 distinct pages,
// medium above 2/minute or 5 pages, low otherwise. Primary interests are
// the five most frequent interaction targets, ties broken by first-seen
// order; preferred features are the three most visited path segments.
func (s *Store) BehaviorPatterns() BehaviorPatterns {
	profile := s.Profile()
	log := s.Interactions()

	now := s.now().UTC()
	var duration time.Duration
	if !profile.StartedAt.IsZero() && now.After(profile.StartedAt) {
		duration = now.Sub(profile.StartedAt)
	}

	minutes := duration.Minutes()
	if minutes < 1 {
		minutes = 1
	}
	frequency := float64(len(log)) / minutes

	pages := make(map[string]struct{})
	for _, in := range log {
		if in.Kind == pageViewKind {
			pages[in.Target] = struct{}{}
		}
	}

	level := EngagementLow
	switch {
	case frequency > 5 || len(pages) > 10:
		level = EngagementHigh
	case frequency > 2 || len(pages) > 5:
		level = EngagementMedium
	}

	return BehaviorPatterns{
		EngagementLevel:      level,
		PrimaryInterests:     topByFrequency(targets(log), maxPrimaryInterests),
		PreferredFeatures:    topByFrequency(pathSegments(log), maxPreferredFeatures),
		SessionDuration:      duration,
		InteractionFrequency: frequency,
	}
}

func targets(log []Interaction) []string {
	out := make([]string, 0, len(log))
	for _, in := range log {
		if in.Target != "" {
			out = append(out, in.Target)
		}
	}
	return out
}

// pathSegments extracts the leading path segment of page-view targets,
// e.g. "/products/cleansers" yields "products".
func pathSegments(log []Interaction) []string {
	var out []string
	for _, in := range log {
		if in.Kind != pageViewKind {
			continue
		}
		seg := strings.TrimPrefix(in.Target, "/")
		if i := strings.IndexByte(seg, '/'); i >= 0 {
			seg = seg[:i]
		}
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// topByFrequency returns the most frequent values, ties broken by the order
// a value was first seen.
func topByFrequency(values []string, limit int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string
	for i, v := range values {
		if _, seen := counts[v]; !seen {
			firstSeen[v] = i
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
