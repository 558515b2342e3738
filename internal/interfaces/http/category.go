package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"centavo/internal/domain/category"
	"centavo/internal/shared/messages"
	"centavo/internal/shared/middleware"
)

// CategoryHandler exposes category CRUD over HTTP. Categories have no
// business rules beyond validation, so the handler talks to the repository
// directly.
type CategoryHandler struct {
	categoryRepo category.Repository
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryRepo category.Repository) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo}
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// HandleCategories handles collection-level operations (GET list, POST create)
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		categories, err := h.categoryRepo.ListByUserID(r.Context(), userID)
		if err != nil {
			log.Printf("Error listing categories for user %d: %v", userID, err)
			respondError(w, http.StatusInternalServerError, messages.ErrInternal)
			return
		}
		if categories == nil {
			categories = []*category.Category{}
		}
		respondData(w, http.StatusOK, categories)
	case http.MethodPost:
		h.handleCreateCategory(w, r, userID)
	default:
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
	}
}

func (h *CategoryHandler) handleCreateCategory(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	params := category.CreateParams{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   req.Name,
		Kind:   req.Kind,
	}
	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.categoryRepo.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating category for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}

	respondData(w, http.StatusCreated, created)
}

// HandleCategoryByID handles operations on a specific category (GET, DELETE)
func (h *CategoryHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}

	categoryID := r.PathValue("id")
	if categoryID == "" {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	switch r.Method {
	case http.MethodGet:
		found, err := h.categoryRepo.GetByIDAndUser(r.Context(), categoryID, userID)
		if err != nil {
			h.respondCategoryError(w, userID, err)
			return
		}
		respondData(w, http.StatusOK, found)
	case http.MethodDelete:
		if err := h.categoryRepo.Delete(r.Context(), categoryID, userID); err != nil {
			h.respondCategoryError(w, userID, err)
			return
		}
		respondOK(w)
	default:
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
	}
}

func (h *CategoryHandler) respondCategoryError(w http.ResponseWriter, userID int64, err error) {
	if errors.Is(err, category.ErrCategoryNotFound) {
		respondError(w, http.StatusNotFound, messages.ErrCategoryNotFound)
		return
	}
	log.Printf("Category operation failed for user %d: %v", userID, err)
	respondError(w, http.StatusInternalServerError, messages.ErrInternal)
}
