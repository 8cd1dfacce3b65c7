package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
)

// Service exposes the catalog to the storefront and the admin back office.
// Reads are public; Create/Update/Delete sit behind the admin surface.
type Service struct {
	repo   domain.CatalogRepository
	logger *log.Entry
	now    func() time.Time
	newID  func() string
}

// NewService creates a catalog service.
func NewService(repo domain.CatalogRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns the records on a shelf, newest first, narrowed by the filter.
func (s *Service) List(shelf domain.Shelf, filter domain.BookFilter) ([]domain.Book, error) {
	if !shelf.Valid() {
		return nil, domain.ErrShelfInvalid
	}
	return s.repo.List(shelf, filter)
}

// Get returns a single record.
func (s *Service) Get(shelf domain.Shelf, id string) (domain.Book, error) {
	if !shelf.Valid() {
		return domain.Book{}, domain.ErrShelfInvalid
	}
	if id == "" {
		return domain.Book{}, domain.ErrBookIDRequired
	}
	return s.repo.Get(shelf, id)
}

// Featured returns the records flagged for the landing page sections.
func (s *Service) Featured(shelf domain.Shelf) ([]domain.Book, error) {
	books, err := s.List(shelf, domain.BookFilter{})
	if err != nil {
		return nil, err
	}
	featured := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if b.Featured {
			featured = append(featured, b)
		}
	}
	return featured, nil
}

// Create validates and stores a new record, assigning an id when absent.
func (s *Service) Create(book domain.Book) (domain.Book, error) {
	book.Title = strings.TrimSpace(book.Title)
	book.Author = strings.TrimSpace(book.Author)

	if errs := book.Validate(); len(errs) > 0 {
		return domain.Book{}, errors.Join(errs...)
	}

	if book.ID == "" {
		book.ID = s.newID()
	}
	now := s.now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	if err := s.repo.Create(book); err != nil {
		return domain.Book{}, fmt.Errorf("failed to create catalog record: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"shelf":   book.Shelf,
		"book_id": book.ID,
		"title":   book.Title,
	}).Info("catalog record created")
	return book, nil
}

// Update validates and overwrites an existing record.
func (s *Service) Update(book domain.Book) (domain.Book, error) {
	if book.ID == "" {
		return domain.Book{}, domain.ErrBookIDRequired
	}
	book.Title = strings.TrimSpace(book.Title)
	book.Author = strings.TrimSpace(book.Author)

	if errs := book.Validate(); len(errs) > 0 {
		return domain.Book{}, errors.Join(errs...)
	}

	current, err := s.repo.Get(book.Shelf, book.ID)
	if err != nil {
		return domain.Book{}, err
	}
	book.CreatedAt = current.CreatedAt
	book.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(book); err != nil {
		return domain.Book{}, fmt.Errorf("failed to update catalog record: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"shelf":   book.Shelf,
		"book_id": book.ID,
	}).Info("catalog record updated")
	return book, nil
}

// Delete removes a record from a shelf.
func (s *Service) Delete(shelf domain.Shelf, id string) error {
	if !shelf.Valid() {
		return domain.ErrShelfInvalid
	}
	if id == "" {
		return domain.ErrBookIDRequired
	}
	if err := s.repo.Delete(shelf, id); err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{
		"shelf":   shelf,
		"book_id": id,
	}).Info("catalog record deleted")
	return nil
}
