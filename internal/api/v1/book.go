package v1

import (
	"encoding/json"
	"net/http"

	"github.com/Xunop/e-library/internal/http/request"
	"github.com/Xunop/e-library/internal/http/response"
	"github.com/Xunop/e-library/internal/log"
	"github.com/Xunop/e-library/internal/model"
	"github.com/Xunop/e-library/internal/validator"
	"go.uber.org/zap"
)

// listBooks searches with the q query parameter. No q lists every book.
func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	find := &model.FindBook{Term: request.QueryStringParam(r, "q", "")}

	books, err := h.store.SearchBooks(r.Context(), find)
	if err != nil {
		log.Error("Error searching books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) addBook(w http.ResponseWriter, r *http.Request) {
	var create model.BookCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	create.Normalize()
	if err := validator.ValidateBookCreateRequest(&create); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	book, err := h.store.AddBook(r.Context(), &create)
	if err != nil {
		log.Error("Failed to add book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, book)
}
