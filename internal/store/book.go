package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Xunop/e-library/internal/log"
	"github.com/Xunop/e-library/internal/model"
	"go.uber.org/zap"
)

// AddBook inserts a book and returns the stored row. The caller validates
// the fields, the store writes whatever it is given.
func (s *Store) AddBook(ctx context.Context, create *model.BookCreate) (*model.Book, error) {
	stmt := `
        INSERT INTO books (
            title,
            author,
            language,
            description,
            file_path
        ) VALUES (?,?,?,?,?)
        RETURNING book_id, title, author, language, description, file_path`
	args := []any{
		create.Title,
		create.Author,
		create.Language,
		create.Description,
		create.Link,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, WrapError("add book", err)
	}
	defer tx.Rollback()

	var book model.Book
	if err := tx.QueryRowContext(ctx, stmt, args...).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Language,
		&book.Description,
		&book.Link,
	); err != nil {
		log.Error("Failed to insert book", zap.Error(err))
		return nil, WrapError("add book", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, WrapError("add book", err)
	}

	log.Info("Book added", zap.Int64("book_id", book.ID), zap.String("title", book.Title))
	return &book, nil
}

// SearchBooks returns the books whose title, author or language contains
// find.Term, ignoring case. Rows come back in storage order.
func (s *Store) SearchBooks(ctx context.Context, find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find != nil && find.Term != "" {
		pattern := "%" + escapeLike(strings.ToLower(find.Term)) + "%"
		where = append(where, `(fold(title) LIKE ? ESCAPE '\' OR fold(author) LIKE ? ESCAPE '\' OR fold(language) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	query := `
        SELECT
            book_id,
            COALESCE(title, ''),
            COALESCE(author, ''),
            COALESCE(language, ''),
            COALESCE(description, ''),
            COALESCE(file_path, '')
        FROM books
        WHERE ` + strings.Join(where, " AND ")

	log.Debug("SQL query and args", zap.String("query", query), zap.String("args", fmt.Sprint(args)))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, WrapError("search books", err)
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Language,
			&book.Description,
			&book.Link,
		); err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, WrapError("search books", err)
		}
		list = append(list, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError("search books", err)
	}

	return list, nil
}

// CountBooks returns the number of stored books.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&count); err != nil {
		return 0, WrapError("count books", err)
	}
	return count, nil
}

// escapeLike makes %, _ and the escape character itself match literally.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
