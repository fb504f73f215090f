package memory

import "catalog-backend/domain/product"

// PutStock seeds a stock entry without a product.
func (s *ProductStore) PutStock(entry product.StockEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks[entry.ProductID] = entry
}
