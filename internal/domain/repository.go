package domain

// CatalogRepository is the storefront's view of the hosted catalog tables.
type CatalogRepository interface {
	// List returns the records on a shelf matching the filter, newest first.
	List(shelf Shelf, filter BookFilter) ([]Book, error)
	// Get returns a record by id or ErrBookNotFound.
	Get(shelf Shelf, id string) (Book, error)
	// Create stores a new record. Returns an error if the id is taken.
	Create(book Book) error
	// Update overwrites an existing record or returns ErrBookNotFound.
	Update(book Book) error
	// Delete removes a record. Returns ErrBookNotFound if it does not exist.
	Delete(shelf Shelf, id string) error
}

// CartSnapshotStore persists the full line collection of one browsing
// session under its session key. Round-trip contract: loading a saved
// snapshot yields the same lines.
type CartSnapshotStore interface {
	// Load returns the persisted lines for a session; (nil, nil) when no
	// snapshot exists yet.
	Load(sessionID string) ([]CartLine, error)
	// Save overwrites the session snapshot with the given lines.
	Save(sessionID string, lines []CartLine) error
	// Delete drops the snapshot, used when a session's cart is cleared.
	Delete(sessionID string) error
}

// OrderRepository describes the order store requirements.
type OrderRepository interface {
	// Create stores a new order. Returns an error if the id already exists.
	Create(order Order) error
	// Get returns an order by id or ErrOrderNotFound.
	Get(id string) (Order, error)
	// List returns orders newest first, capped by limit when limit > 0.
	List(limit int) ([]Order, error)
	// Save applies updates to an order with optimistic locking.
	Save(order Order) error
	// Delete removes an order. Returns ErrOrderNotFound if it does not exist.
	Delete(id string) error
}
