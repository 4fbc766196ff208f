package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"clinic-api/internal/usecase"
	"clinic-api/pkg/jsonpatch"
	"clinic-api/pkg/response"
	"clinic-api/pkg/validator"

	"github.com/gorilla/mux"
)

// CrudHandler exposes the uniform clinic CRUD surface for one entity type.
type CrudHandler[E any] struct {
	usecase   usecase.CrudUsecase[E]
	validator *validator.CustomValidator
	label     string
}

// NewCrudHandler builds a handler; label names the entity in response messages, e.g. "Doctor".
func NewCrudHandler[E any](uc usecase.CrudUsecase[E], validator *validator.CustomValidator, label string) *CrudHandler[E] {
	return &CrudHandler[E]{
		usecase:   uc,
		validator: validator,
		label:     label,
	}
}

func (h *CrudHandler[E]) notFoundMessage() string {
	return h.label + " not found."
}

// Create handles record creation
func (h *CrudHandler[E]) Create(w http.ResponseWriter, r *http.Request) {
	var item E
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&item); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.usecase.Create(r.Context(), &item)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidUserKind) {
			response.BadRequest(w, "Invalid user type.")
			return
		}
		response.TransactionFailed(w, err)
		return
	}

	response.OK(w, created)
}

// GetAll handles listing every record
func (h *CrudHandler[E]) GetAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.usecase.GetAll(r.Context())
	if err != nil {
		response.TransactionFailed(w, err)
		return
	}

	if items == nil {
		items = []E{}
	}
	response.OK(w, items)
}

// GetByID handles fetching one record
func (h *CrudHandler[E]) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	item, err := h.usecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, item)
}

// Update handles whole-record replacement
func (h *CrudHandler[E]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var item E
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&item); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.usecase.Update(r.Context(), id, &item); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

// Patch handles RFC 6902 partial updates
func (h *CrudHandler[E]) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	patch, err := jsonpatch.Decode(body)
	if err != nil {
		if errors.Is(err, jsonpatch.ErrEmptyPatch) {
			response.BadRequest(w, "")
			return
		}
		response.BadRequest(w, "Invalid request body")
		return
	}

	item, err := h.usecase.Patch(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, item)
}

// Delete handles record removal
func (h *CrudHandler[E]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.usecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	response.Message(w, http.StatusOK, h.label+" deleted successfully.")
}

func (h *CrudHandler[E]) parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid "+h.label+" ID")
		return 0, false
	}
	return id, true
}

func (h *CrudHandler[E]) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		response.NotFound(w, h.notFoundMessage())
	case errors.Is(err, usecase.ErrIDMismatch):
		response.BadRequest(w, "")
	default:
		response.TransactionFailed(w, err)
	}
}
