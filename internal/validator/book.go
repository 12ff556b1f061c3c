package validator // import "github.com/Xunop/e-library/internal/validator"

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Xunop/e-library/internal/model"
)

// MsgBookRequired is shown when the add-book form misses a required field.
const MsgBookRequired = "Title, Author, and File URL are required."

// ValidationError lists the required fields a submission is missing.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message + " (missing: " + strings.Join(e.Fields, ", ") + ")"
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateBookCreateRequest checks that title, author and link are set.
// Language and description may be empty.
func ValidateBookCreateRequest(book *model.BookCreate) error {
	if book == nil {
		return errors.New("book is nil")
	}

	missing := make([]string, 0, 3)
	if strings.TrimSpace(book.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(book.Author) == "" {
		missing = append(missing, "author")
	}
	if strings.TrimSpace(book.Link) == "" {
		missing = append(missing, "link")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Message: MsgBookRequired}
	}
	return nil
}
