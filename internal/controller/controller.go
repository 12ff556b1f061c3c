// Package controller runs one render pass per user interaction: it applies
// the event to the session's reveal states, queries the store and returns
// everything the page needs to draw.
package controller // import "github.com/Xunop/e-library/internal/controller"

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Xunop/e-library/internal/log"
	"github.com/Xunop/e-library/internal/model"
	"github.com/Xunop/e-library/internal/session"
	"github.com/Xunop/e-library/internal/validator"
)

const (
	MsgNoBooks    = "No books found matching your search."
	MsgClickAgain = "Click once more to open the book!"
)

// BookStore is the part of the store a render pass needs.
type BookStore interface {
	AddBook(ctx context.Context, create *model.BookCreate) (*model.Book, error)
	SearchBooks(ctx context.Context, find *model.FindBook) ([]*model.Book, error)
	CountBooks(ctx context.Context) (int, error)
}

// Event is what the user did in this pass. Click and Submit are optional;
// a pass with neither only re-renders for the current term.
type Event struct {
	Term   string
	Click  *int64
	Submit *model.BookCreate
}

type MessageKind string

const (
	MessageInfo    MessageKind = "info"
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

type Message struct {
	Kind MessageKind
	Text string
}

// Result is one book of the list as drawn in this pass.
type Result struct {
	Book  *model.Book
	State model.RevealState
	// Message is set only for the book clicked in this pass.
	Message *Message
	// Revealed means the link is drawn as an anchor in this pass.
	Revealed bool
}

type Form struct {
	Message *Message
	// Values refill the inputs after a rejected submission.
	Values model.BookCreate
	// Fields lists the inputs that failed validation.
	Fields []string
}

type View struct {
	Term    string
	Results []Result
	// Notice is the informational line shown for an empty result list.
	Notice *Message
	Form   Form
	// Total is the number of stored books, shown in the footer.
	Total int
}

type Controller struct {
	store BookStore
}

func NewController(store BookStore) *Controller {
	return &Controller{store: store}
}

// Render runs one full pass for sess. A storage failure aborts the pass and
// leaves the session untouched.
func (c *Controller) Render(ctx context.Context, sess *session.Session, ev Event) (*View, error) {
	sess.Lock()
	defer sess.Unlock()

	view := &View{Term: ev.Term}

	if ev.Submit != nil {
		form, err := c.submit(ctx, ev.Submit)
		if err != nil {
			return nil, err
		}
		view.Form = *form
	}

	books, err := c.store.SearchBooks(ctx, &model.FindBook{Term: ev.Term})
	if err != nil {
		return nil, errors.Wrap(err, "render")
	}
	if view.Total, err = c.store.CountBooks(ctx); err != nil {
		return nil, errors.Wrap(err, "render")
	}
	if len(books) == 0 {
		view.Notice = &Message{Kind: MessageInfo, Text: MsgNoBooks}
	}

	visible := make(map[int64]struct{}, len(books))
	view.Results = make([]Result, 0, len(books))
	for _, book := range books {
		visible[book.ID] = struct{}{}
		result := Result{Book: book, State: sess.RevealState(book.ID)}

		if ev.Click != nil && *ev.Click == book.ID {
			next, revealed := result.State.Click()
			result.State = next
			result.Revealed = revealed
			if revealed {
				result.Message = &Message{Kind: MessageSuccess, Text: fmt.Sprintf("Opening: %s", book.Title)}
				log.Debug("Book link revealed", zap.String("session", sess.ID), zap.Int64("book_id", book.ID))
			} else {
				result.Message = &Message{Kind: MessageInfo, Text: MsgClickAgain}
			}
			sess.SetRevealState(book.ID, next)
		}
		view.Results = append(view.Results, result)
	}

	// Books that left the list lose their state, they come back idle.
	sess.Retain(visible)
	sess.SetTerm(ev.Term)

	return view, nil
}

// submit validates and stores the add-book form. A validation failure is
// reported on the form, only storage failures are returned.
func (c *Controller) submit(ctx context.Context, create *model.BookCreate) (*Form, error) {
	create.Normalize()
	if err := validator.ValidateBookCreateRequest(create); err != nil {
		var ve *validator.ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		return &Form{
			Message: &Message{Kind: MessageError, Text: ve.Message},
			Values:  *create,
			Fields:  ve.Fields,
		}, nil
	}

	book, err := c.store.AddBook(ctx, create)
	if err != nil {
		return nil, errors.Wrap(err, "submit book")
	}
	return &Form{
		Message: &Message{Kind: MessageSuccess, Text: fmt.Sprintf("Book '%s' added successfully!", book.Title)},
	}, nil
}
