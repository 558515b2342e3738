package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/transfer"
	"centavo/internal/domain/wallet"
	"centavo/internal/shared/messages"
	"centavo/internal/shared/middleware"
)

// TransferHandler exposes wallet-to-wallet transfer operations over HTTP
type TransferHandler struct {
	transferService *transfer.Service
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *transfer.Service) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

type CreateTransferRequest struct {
	FromWalletID string          `json:"fromWalletId"`
	ToWalletID   string          `json:"toWalletId"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	OccurredAt   time.Time       `json:"occurredAt"`
}

// HandleTransfers handles collection-level operations (GET list, POST create)
func (h *TransferHandler) HandleTransfers(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleListTransfers(w, r, userID)
	case http.MethodPost:
		h.handleCreateTransfer(w, r, userID)
	default:
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
	}
}

func (h *TransferHandler) handleListTransfers(w http.ResponseWriter, r *http.Request, userID int64) {
	transfers, err := h.transferService.ListTransfers(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing transfers for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}

	if transfers == nil {
		transfers = []*transfer.Transfer{}
	}
	respondData(w, http.StatusOK, transfers)
}

func (h *TransferHandler) handleCreateTransfer(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	if req.OccurredAt.IsZero() {
		req.OccurredAt = time.Now()
	}

	created, err := h.transferService.CreateTransfer(r.Context(), transfer.CreateParams{
		UserID:       userID,
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.ToWalletID,
		Amount:       req.Amount,
		Description:  req.Description,
		OccurredAt:   req.OccurredAt,
	})
	if err != nil {
		h.respondTransferError(w, userID, err)
		return
	}

	respondData(w, http.StatusCreated, created)
}

// HandleTransferByID returns a specific transfer
func (h *TransferHandler) HandleTransferByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
		return
	}

	transferID := r.PathValue("id")
	if transferID == "" {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	found, err := h.transferService.GetTransfer(r.Context(), transferID, userID)
	if err != nil {
		h.respondTransferError(w, userID, err)
		return
	}
	respondData(w, http.StatusOK, found)
}

func (h *TransferHandler) respondTransferError(w http.ResponseWriter, userID int64, err error) {
	switch {
	case errors.Is(err, transfer.ErrTransferNotFound):
		respondError(w, http.StatusNotFound, messages.ErrTransferNotFound)
	case errors.Is(err, wallet.ErrWalletNotFound):
		respondError(w, http.StatusNotFound, messages.ErrWalletNotFound)
	case errors.Is(err, transfer.ErrSameWallet):
		respondError(w, http.StatusBadRequest, messages.ErrSameWallet)
	case errors.Is(err, transfer.ErrInsufficientFunds):
		respondError(w, http.StatusUnprocessableEntity, messages.ErrInsufficientFunds)
	case errors.Is(err, transfer.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Transfer operation failed for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
	}
}
