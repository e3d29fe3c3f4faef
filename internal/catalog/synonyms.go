package catalog

// concernSynonyms expands a profile concern into the set of labels catalog
// items use for the same underlying concern. Keys and values are lowercase.
var concernSynonyms = map[string][]string{
	"acne":       {"acne", "breakouts", "blemishes", "pimples", "blackheads"},
	"dryness":    {"dryness", "dry", "dehydration", "dehydrated", "flaky"},
	"aging":      {"aging", "anti-aging", "wrinkles", "fine lines", "firmness"},
	"dark spots": {"dark spots", "hyperpigmentation", "discoloration", "uneven tone"},
	"redness":    {"redness", "sensitivity", "sensitive", "irritation", "rosacea"},
	"oiliness":   {"oiliness", "oily", "shine", "sebum"},
	"dullness":   {"dullness", "dull", "radiance", "uneven tone"},
	"texture":    {"texture", "rough", "pores"},
}

// expandConcern returns the synonym set for a concern. Unknown concerns map
// to themselves so an exact label match still counts.
func expandConcern(concern string) []string {
	if syns, ok := concernSynonyms[concern]; ok {
		return syns
	}
	return []string{concern}
}
