package catalogModel

import "fmt"

type Product struct {
	Id          int64   `json:"id"`
	Name        string  `json:"product"`
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category"`
	Brand       string  `json:"brand"`
	SalePrice   float64 `json:"sale_price"`
	MarketPrice float64 `json:"market_price"`
	Kind        string  `json:"type"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// EmbeddingText is the canonical text a product is embedded under; changing
// this invalidates the vector index.
func (p Product) EmbeddingText() string {
	return fmt.Sprintf("Product: %s, Category: %s, Brand: %s, Rating: %.1f, Price: ₹%.2f",
		p.Name, p.Category, p.Brand, p.Rating, p.SalePrice)
}

// ProductChunk is one embeddable catalog entry headed for the vector index.
type ProductChunk struct {
	ChunkId string
	Product Product
	Text    string
}

// ProductMatch is a vector search hit handed to the LLM and returned to
// the client alongside a chat answer.
type ProductMatch struct {
	Id        int64   `json:"id"`
	Name      string  `json:"product"`
	Category  string  `json:"category"`
	Brand     string  `json:"brand"`
	SalePrice float64 `json:"sale_price"`
	Rating    float64 `json:"rating"`
	Score     float32 `json:"similarity_score"`
}

func (m ProductMatch) ContextLine() string {
	return fmt.Sprintf("%s\n   Brand: %s, Category: %s\n   Price: ₹%.2f, Rating: %.1f",
		m.Name, m.Brand, m.Category, m.SalePrice, m.Rating)
}
