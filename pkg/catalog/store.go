package catalog

// Store holds the visible catalog of one storefront session.
//
// The store itself performs no locking: a session mutates its components
// from a single logical thread of control, so each call here is atomic
// with respect to that thread.
type Store struct {
	products []Product
}

// NewStore initializes a catalog with the given seed products. The seed
// order is preserved (the first seed entry is the first catalog entry).
func NewStore(seed []Product) *Store {
	products := make([]Product, len(seed))
	copy(products, seed)
	return &Store{products: products}
}

// Add prepends a product, so the catalog stays most-recent-first.
// Input is client-trusted: the caller supplies the unique id.
func (s *Store) Add(p Product) {
	s.products = append([]Product{p}, s.products...)
}

// Remove deletes the product with the given id. Removing an id that is
// not present is a no-op, not an error.
func (s *Store) Remove(id string) {
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// Find returns the product with the given id, or false if absent.
func (s *Store) Find(id string) (Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FindOrFirst returns the product with the given id, falling back to the
// first catalog entry when the id is absent. It returns false only when
// the catalog is empty.
func (s *Store) FindOrFirst(id string) (Product, bool) {
	if p, ok := s.Find(id); ok {
		return p, true
	}
	if len(s.products) == 0 {
		return Product{}, false
	}
	return s.products[0], true
}

// ListByVendor returns the products owned by the given vendor, preserving
// catalog order.
func (s *Store) ListByVendor(vendorID string) []Product {
	var result []Product
	for _, p := range s.products {
		if p.VendorID == vendorID {
			result = append(result, p)
		}
	}
	return result
}

// List returns a snapshot copy of the full catalog.
func (s *Store) List() []Product {
	result := make([]Product, len(s.products))
	copy(result, s.products)
	return result
}

// Len returns the number of products in the catalog.
func (s *Store) Len() int {
	return len(s.products)
}
