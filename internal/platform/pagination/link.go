package pagination

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildLinkHeader renders an RFC 8288 Link header with next and prev
// relations. Query parameters the caller already had (filters, limit) are
// carried into each link so the cursor alone never loses the view.
func BuildLinkHeader(baseURL string, query url.Values, nextCursor, prevCursor string) string {
	links := make([]string, 0, 2)
	for _, rel := range []struct{ name, cursor string }{
		{"next", nextCursor},
		{"prev", prevCursor},
	} {
		if rel.cursor == "" {
			continue
		}
		q := cloneValues(query)
		q.Set("cursor", rel.cursor)
		links = append(links, fmt.Sprintf("<%s?%s>; rel=%q", baseURL, q.Encode(), rel.name))
	}
	return strings.Join(links, ", ")
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
