package memory

import (
	"sort"
	"sync"

	"github.com/daralkutub/storefront/internal/domain"
)

type shelfKey struct {
	shelf domain.Shelf
	id    string
}

// catalogRepositoryInMemory is a simple in-memory CatalogRepository.
type catalogRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[shelfKey]domain.Book
}

// NewCatalogRepository returns an in-memory catalog for local development
// and tests.
func NewCatalogRepository() domain.CatalogRepository {
	return &catalogRepositoryInMemory{
		items: make(map[shelfKey]domain.Book),
	}
}

// List returns the shelf's records matching the filter, newest first.
func (r *catalogRepositoryInMemory) List(shelf domain.Shelf, filter domain.BookFilter) ([]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Book, 0, len(r.items))
	for key, book := range r.items {
		if key.shelf != shelf {
			continue
		}
		if !filter.Matches(book) {
			continue
		}
		result = append(result, book)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// Get returns a record or ErrBookNotFound.
func (r *catalogRepositoryInMemory) Get(shelf domain.Shelf, id string) (domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.items[shelfKey{shelf: shelf, id: id}]
	if !ok {
		return domain.Book{}, domain.ErrBookNotFound
	}
	return book, nil
}

// Create stores a new record if the id is free on its shelf.
func (r *catalogRepositoryInMemory) Create(book domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := shelfKey{shelf: book.Shelf, id: book.ID}
	if _, exists := r.items[key]; exists {
		return domain.ErrBookExists
	}
	// Store a copy to keep callers from mutating our state.
	r.items[key] = book
	return nil
}

// Update overwrites an existing record.
func (r *catalogRepositoryInMemory) Update(book domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := shelfKey{shelf: book.Shelf, id: book.ID}
	if _, ok := r.items[key]; !ok {
		return domain.ErrBookNotFound
	}
	r.items[key] = book
	return nil
}

// Delete removes a record from its shelf.
func (r *catalogRepositoryInMemory) Delete(shelf domain.Shelf, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := shelfKey{shelf: shelf, id: id}
	if _, ok := r.items[key]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.items, key)
	return nil
}

var _ domain.CatalogRepository = (*catalogRepositoryInMemory)(nil)
