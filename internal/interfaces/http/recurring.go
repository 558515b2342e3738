package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/recurring"
	"centavo/internal/domain/wallet"
	"centavo/internal/shared/messages"
	"centavo/internal/shared/middleware"
)

// RecurringHandler exposes recurring rule operations over HTTP
type RecurringHandler struct {
	recurringService *recurring.Service
}

// NewRecurringHandler creates a new recurring rule handler
func NewRecurringHandler(recurringService *recurring.Service) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

type CreateRuleRequest struct {
	WalletID    string          `json:"walletId"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Frequency   string          `json:"frequency"`
	NextRunAt   time.Time       `json:"nextRunAt"`
}

type SetRuleActiveRequest struct {
	Active bool `json:"active"`
}

// HandleRules handles collection-level operations (GET list, POST create)
func (h *RecurringHandler) HandleRules(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		rules, err := h.recurringService.ListRules(r.Context(), userID)
		if err != nil {
			log.Printf("Error listing recurring rules for user %d: %v", userID, err)
			respondError(w, http.StatusInternalServerError, messages.ErrInternal)
			return
		}
		if rules == nil {
			rules = []*recurring.Rule{}
		}
		respondData(w, http.StatusOK, rules)
	case http.MethodPost:
		h.handleCreateRule(w, r, userID)
	default:
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
	}
}

func (h *RecurringHandler) handleCreateRule(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	created, err := h.recurringService.CreateRule(r.Context(), recurring.CreateParams{
		UserID:      userID,
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Description: req.Description,
		Frequency:   req.Frequency,
		NextRunAt:   req.NextRunAt,
	})
	if err != nil {
		h.respondRuleError(w, userID, err)
		return
	}

	respondData(w, http.StatusCreated, created)
}

// HandleRuleByID handles operations on a specific rule (PATCH active, DELETE)
func (h *RecurringHandler) HandleRuleByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}

	ruleID := r.PathValue("id")
	if ruleID == "" {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var req SetRuleActiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
			return
		}
		if err := h.recurringService.SetRuleActive(r.Context(), ruleID, userID, req.Active); err != nil {
			h.respondRuleError(w, userID, err)
			return
		}
		respondOK(w)
	case http.MethodDelete:
		if err := h.recurringService.DeleteRule(r.Context(), ruleID, userID); err != nil {
			h.respondRuleError(w, userID, err)
			return
		}
		respondOK(w)
	default:
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
	}
}

func (h *RecurringHandler) respondRuleError(w http.ResponseWriter, userID int64, err error) {
	switch {
	case errors.Is(err, recurring.ErrRuleNotFound):
		respondError(w, http.StatusNotFound, messages.ErrRuleNotFound)
	case errors.Is(err, wallet.ErrWalletNotFound):
		respondError(w, http.StatusNotFound, messages.ErrWalletNotFound)
	case errors.Is(err, recurring.ErrInvalidFrequency),
		errors.Is(err, recurring.ErrInvalidAmount),
		errors.Is(err, recurring.ErrInvalidKind):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Recurring rule operation failed for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
	}
}
