package pagination

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{Type: "product", Value: "101"}
	decoded, err := DecodeCursor(c.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != c {
		t.Errorf("expected %+v, got %+v", c, decoded)
	}
}

func TestDecodeCursorEmpty(t *testing.T) {
	c, err := DecodeCursor("")
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if c != (Cursor{}) {
		t.Errorf("expected zero cursor, got %+v", c)
	}
}

func TestDecodeCursorInvalid(t *testing.T) {
	for _, bad := range []string{"!!!notbase64!!!", "dGVzdA"} {
		if _, err := DecodeCursor(bad); !errors.Is(err, ErrInvalidCursor) {
			t.Errorf("%q: expected ErrInvalidCursor, got %v", bad, err)
		}
	}
}

func pageItems(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func intID(v int) string { return strconv.Itoa(v) }

func TestPaginateFirstPage(t *testing.T) {
	result := Paginate(pageItems(10), Cursor{}, 4, "num", intID, "/nums", nil)

	if len(result.Items) != 4 || result.Items[0] != 1 {
		t.Fatalf("unexpected page %v", result.Items)
	}
	if result.Total != 10 {
		t.Errorf("expected total 10, got %d", result.Total)
	}
	if result.NextCursor == "" {
		t.Error("expected next cursor")
	}
	if result.PrevCursor != "" {
		t.Error("first page should have no prev cursor")
	}
	if !strings.Contains(result.LinkHeader, `rel="next"`) {
		t.Errorf("expected next link, got %q", result.LinkHeader)
	}
}

func TestPaginateMiddleAndLastPage(t *testing.T) {
	mid := Paginate(pageItems(10), Cursor{Type: "num", Value: "4"}, 4, "num", intID, "/nums", nil)
	if len(mid.Items) != 4 || mid.Items[0] != 5 {
		t.Fatalf("unexpected middle page %v", mid.Items)
	}
	if mid.NextCursor == "" || mid.PrevCursor == "" {
		t.Error("middle page should link both ways")
	}

	last := Paginate(pageItems(10), Cursor{Type: "num", Value: "8"}, 4, "num", intID, "/nums", nil)
	if len(last.Items) != 2 || last.Items[0] != 9 {
		t.Fatalf("unexpected last page %v", last.Items)
	}
	if last.NextCursor != "" {
		t.Error("last page should have no next cursor")
	}
}

func TestPaginatePreservesQuery(t *testing.T) {
	query := url.Values{}
	query.Set("category", "serum")

	result := Paginate(pageItems(10), Cursor{}, 4, "num", intID, "/nums", query)
	if !strings.Contains(result.LinkHeader, "category=serum") {
		t.Errorf("expected category preserved, got %q", result.LinkHeader)
	}
	if !strings.Contains(result.LinkHeader, "limit=4") {
		t.Errorf("expected limit preserved, got %q", result.LinkHeader)
	}
}

func TestPaginateUnknownCursorValueStartsOver(t *testing.T) {
	result := Paginate(pageItems(6), Cursor{Type: "num", Value: "999"}, 4, "num", intID, "/nums", nil)
	if len(result.Items) != 4 || result.Items[0] != 1 {
		t.Errorf("unknown cursor should restart from the top, got %v", result.Items)
	}
}
