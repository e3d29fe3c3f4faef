package products

import (
	"github.com/lumiskin/skincare-api/internal/catalog"
)

// RankedProduct is a catalog item with its relevance score and the reasons
// each scoring rule fired.
type RankedProduct struct {
	ID          int      `json:"id"          doc:"Catalog item identifier"`
	Brand       string   `json:"brand"       doc:"Brand name"`
	Name        string   `json:"name"        doc:"Product name"`
	Category    string   `json:"category"    doc:"Product category"`
	Price       float64  `json:"price"       doc:"Price in USD"`
	Rating      float64  `json:"rating"      doc:"Average review rating"`
	ReviewCount int      `json:"reviewCount" doc:"Number of reviews"`
	InStock     bool     `json:"inStock"     doc:"Availability flag"`
	Score       int      `json:"score"       doc:"Relevance score"`
	Reasons     []string `json:"reasons"     doc:"Why this product was suggested"`
}

func toRankedProduct(r catalog.RankedItem) RankedProduct {
	return RankedProduct{
		ID:          r.ID,
		Brand:       r.Brand,
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		InStock:     r.InStock,
		Score:       r.Score,
		Reasons:     r.Reasons,
	}
}

func toRankedProducts(items []catalog.RankedItem) []RankedProduct {
	out := make([]RankedProduct, 0, len(items))
	for _, r := range items {
		out = append(out, toRankedProduct(r))
	}
	return out
}
