package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daralkutub/storefront/internal/domain"
)

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates the PostgreSQL CatalogRepository. Each shelf
// maps to its own table, mirroring the hosted schema.
func NewCatalogRepository(store *Store) domain.CatalogRepository {
	return &catalogRepository{db: store.DB()}
}

// tableFor resolves a shelf to a whitelisted table name. The shelf value is
// never interpolated into SQL without passing through here.
func tableFor(shelf domain.Shelf) (string, error) {
	switch shelf {
	case domain.ShelfBooks:
		return "books", nil
	case domain.ShelfQuran:
		return "quran_books", nil
	default:
		return "", domain.ErrShelfInvalid
	}
}

const bookColumns = `id, title, author, description, price_minor, cover_image,
	category, language, publisher, rating, in_stock,
	featured, new_arrival, best_seller, created_at, updated_at`

func (r *catalogRepository) List(shelf domain.Shelf, filter domain.BookFilter) ([]domain.Book, error) {
	table, err := tableFor(shelf)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR language = $2)
		ORDER BY created_at DESC, id DESC
	`, bookColumns, table)

	rows, err := r.db.QueryContext(ctx, query, filter.Category, filter.Language)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	books := make([]domain.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		book.Shelf = shelf
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", table, err)
	}

	return books, nil
}

func (r *catalogRepository) Get(shelf domain.Shelf, id string) (domain.Book, error) {
	table, err := tableFor(shelf)
	if err != nil {
		return domain.Book{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, bookColumns, table)

	book, err := scanBook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Book{}, domain.ErrBookNotFound
		}
		return domain.Book{}, fmt.Errorf("select from %s: %w", table, err)
	}
	book.Shelf = shelf

	return book, nil
}

func (r *catalogRepository) Create(book domain.Book) error {
	table, err := tableFor(book.Shelf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, title, author, description, price_minor, cover_image,
			category, language, publisher, rating, in_stock,
			featured, new_arrival, best_seller, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`, table)

	_, err = r.db.ExecContext(ctx, query,
		book.ID, book.Title, book.Author, book.Description, book.PriceMinor, book.CoverImage,
		book.Category, book.Language, book.Publisher, book.Rating, book.InStock,
		book.Featured, book.NewArrival, book.BestSeller, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrBookExists
		}
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	return nil
}

func (r *catalogRepository) Update(book domain.Book) error {
	table, err := tableFor(book.Shelf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2,
		    author = $3,
		    description = $4,
		    price_minor = $5,
		    cover_image = $6,
		    category = $7,
		    language = $8,
		    publisher = $9,
		    rating = $10,
		    in_stock = $11,
		    featured = $12,
		    new_arrival = $13,
		    best_seller = $14,
		    updated_at = $15
		WHERE id = $1
	`, table)

	res, err := r.db.ExecContext(ctx, query,
		book.ID, book.Title, book.Author, book.Description, book.PriceMinor, book.CoverImage,
		book.Category, book.Language, book.Publisher, book.Rating, book.InStock,
		book.Featured, book.NewArrival, book.BestSeller, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrBookNotFound
	}

	return nil
}

func (r *catalogRepository) Delete(shelf domain.Shelf, id string) error {
	table, err := tableFor(shelf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrBookNotFound
	}

	return nil
}

func scanBook(row rowScanner) (domain.Book, error) {
	var book domain.Book
	err := row.Scan(
		&book.ID, &book.Title, &book.Author, &book.Description, &book.PriceMinor, &book.CoverImage,
		&book.Category, &book.Language, &book.Publisher, &book.Rating, &book.InStock,
		&book.Featured, &book.NewArrival, &book.BestSeller, &book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

var _ domain.CatalogRepository = (*catalogRepository)(nil)
