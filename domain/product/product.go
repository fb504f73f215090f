// Package product holds the catalog domain: the product and stock records,
// the rules a candidate product must satisfy, and the normalization of raw
// input into a canonical Product.
package product

// Product is a sellable catalog entry.
//
// Count is carried alongside the product at ingestion time only. It is part
// of the JSON form (notifications, read responses) but is never persisted on
// the product item itself; stock lives in its own table as a StockEntry.
type Product struct {
	ID          string  `json:"id" dynamodbav:"id"`
	Title       string  `json:"title" dynamodbav:"title"`
	Description string  `json:"description" dynamodbav:"description"`
	Price       float64 `json:"price" dynamodbav:"price"`
	Count       int     `json:"count" dynamodbav:"-"`
}

// StockEntry is the available quantity of a product.
type StockEntry struct {
	ProductID string `json:"product_id" dynamodbav:"product_id"`
	Count     int    `json:"count" dynamodbav:"count"`
}

// Stock returns the stock entry that accompanies the product on creation.
func (p Product) Stock() StockEntry {
	return StockEntry{ProductID: p.ID, Count: p.Count}
}

// WithStock joins a stored product with its stock entry. A missing entry
// reads as zero stock.
func WithStock(p Product, stock *StockEntry) Product {
	p.Count = 0
	if stock != nil {
		p.Count = stock.Count
	}
	return p
}
