package catalog

import "testing"

func TestLoadEmbeddedCatalog(t *testing.T) {
	items, err := Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected a non-empty catalog")
	}

	if items[0].ID != 101 {
		t.Errorf("expected first item 101, got %d", items[0].ID)
	}

	valid := map[string]bool{
		"cleanser": true, "toner": true, "serum": true,
		"moisturizer": true, "sunscreen": true,
	}
	seen := make(map[int]bool)
	for _, item := range items {
		if seen[item.ID] {
			t.Errorf("duplicate item id %d", item.ID)
		}
		seen[item.ID] = true

		if !valid[item.Category] {
			t.Errorf("item %d has unknown category %q", item.ID, item.Category)
		}
		if item.Price <= 0 {
			t.Errorf("item %d has non-positive price %f", item.ID, item.Price)
		}
		if item.Rating < 0 || item.Rating > 5 {
			t.Errorf("item %d has rating %f outside 0..5", item.ID, item.Rating)
		}
		if len(item.SkinTypes) == 0 {
			t.Errorf("item %d has no skin types", item.ID)
		}
	}
}
