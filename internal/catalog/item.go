package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// Item is an immutable catalog entry. The catalog is reference data loaded
// once at process start; items are never mutated afterwards.
type Item struct {
	ID             int      `json:"id"             doc:"Catalog item identifier"          example:"101"`
	Brand          string   `json:"brand"          doc:"Brand name"                       example:"CeraVe"`
	Name           string   `json:"name"           doc:"Product name"                     example:"Foaming Facial Cleanser"`
	Category       string   `json:"category"       doc:"Product category"                 example:"cleanser"`
	Price          float64  `json:"price"          doc:"Price in USD"                     example:"14.99"`
	Rating         float64  `json:"rating"         doc:"Average review rating"            example:"4.7"`
	ReviewCount    int      `json:"reviewCount"    doc:"Number of reviews"                example:"1532"`
	InStock        bool     `json:"inStock"        doc:"Availability flag"                example:"true"`
	SkinTypes      []string `json:"skinTypes"      doc:"Suitable skin types, or \"all\""`
	Concerns       []string `json:"concerns"       doc:"Skin concerns the product targets"`
	KeyIngredients []string `json:"keyIngredients" doc:"Key active ingredients"`
	CrueltyFree    bool     `json:"crueltyFree"    doc:"Cruelty-free flag"`
	Vegan          bool     `json:"vegan"          doc:"Vegan flag"`
	FragranceFree  bool     `json:"fragranceFree"  doc:"Fragrance-free flag"`
}

//go:embed catalog.json
var catalogData []byte

// Load decodes the embedded catalog. Order in the JSON document is the
// canonical catalog order and drives ranking tie-breaks.
func Load() ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(catalogData, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return items, nil
}
