package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/transaction"
	"centavo/internal/domain/wallet"
	"centavo/internal/shared/messages"
	"centavo/internal/shared/middleware"
)

// TransactionHandler exposes transaction operations over HTTP
type TransactionHandler struct {
	transactionService *transaction.Service
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *transaction.Service) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

type CreateTransactionRequest struct {
	WalletID    string          `json:"walletId"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// HandleTransactions handles collection-level operations (GET list, POST create)
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleListTransactions(w, r, userID)
	case http.MethodPost:
		h.handleCreateTransaction(w, r, userID)
	default:
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
	}
}

func (h *TransactionHandler) handleListTransactions(w http.ResponseWriter, r *http.Request, userID int64) {
	walletID := r.URL.Query().Get("walletId")

	transactions, err := h.transactionService.ListTransactions(r.Context(), userID, walletID)
	if err != nil {
		log.Printf("Error listing transactions for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}

	if transactions == nil {
		transactions = []*transaction.Transaction{}
	}
	respondData(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) handleCreateTransaction(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	if req.OccurredAt.IsZero() {
		req.OccurredAt = time.Now()
	}

	created, err := h.transactionService.CreateTransaction(r.Context(), transaction.CreateParams{
		UserID:      userID,
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Description: req.Description,
		OccurredAt:  req.OccurredAt,
	})
	if err != nil {
		h.respondTransactionError(w, userID, err)
		return
	}

	respondData(w, http.StatusCreated, created)
}

// HandleTransactionByID handles operations on a specific transaction (GET, DELETE)
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}

	transactionID := r.PathValue("id")
	if transactionID == "" {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	switch r.Method {
	case http.MethodGet:
		found, err := h.transactionService.GetTransaction(r.Context(), transactionID, userID)
		if err != nil {
			h.respondTransactionError(w, userID, err)
			return
		}
		respondData(w, http.StatusOK, found)
	case http.MethodDelete:
		if err := h.transactionService.DeleteTransaction(r.Context(), transactionID, userID); err != nil {
			h.respondTransactionError(w, userID, err)
			return
		}
		respondOK(w)
	default:
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
	}
}

func (h *TransactionHandler) respondTransactionError(w http.ResponseWriter, userID int64, err error) {
	switch {
	case errors.Is(err, transaction.ErrTransactionNotFound):
		respondError(w, http.StatusNotFound, messages.ErrTransactionNotFound)
	case errors.Is(err, wallet.ErrWalletNotFound):
		respondError(w, http.StatusNotFound, messages.ErrWalletNotFound)
	case errors.Is(err, transaction.ErrInvalidKind),
		errors.Is(err, transaction.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Transaction operation failed for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
	}
}
