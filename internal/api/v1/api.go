package v1

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Xunop/e-library/internal/middleware"
	"github.com/Xunop/e-library/internal/model"
)

// BookStore is what the JSON API reads and writes.
type BookStore interface {
	AddBook(ctx context.Context, create *model.BookCreate) (*model.Book, error)
	SearchBooks(ctx context.Context, find *model.FindBook) ([]*model.Book, error)
}

type Handler struct {
	store BookStore
}

// NewHandler is a constructor for the v1.Handler
func NewHandler(store BookStore) *Handler {
	return &Handler{
		store: store,
	}
}

func Server(router *mux.Router, handler *Handler) {
	sr := router.PathPrefix("/api/v1").Subrouter()
	sr.Use(middleware.HandleCORS)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.addBook).Methods(http.MethodPost)
}
