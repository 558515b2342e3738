package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/wallet"
	"centavo/internal/shared/messages"
	"centavo/internal/shared/middleware"
)

// WalletHandler exposes wallet CRUD and the two deletion modes over HTTP
type WalletHandler struct {
	walletService *wallet.Service
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

type CreateWalletRequest struct {
	Name        string           `json:"name"`
	Kind        string           `json:"kind"`
	Balance     decimal.Decimal  `json:"balance"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
	IsDefault   bool             `json:"isDefault"`
}

type UpdateWalletRequest struct {
	Name        *string          `json:"name"`
	Kind        *string          `json:"kind"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
}

// HandleWallets handles collection-level operations (GET list, POST create)
func (h *WalletHandler) HandleWallets(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleListWallets(w, r, userID)
	case http.MethodPost:
		h.handleCreateWallet(w, r, userID)
	default:
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
	}
}

func (h *WalletHandler) handleListWallets(w http.ResponseWriter, r *http.Request, userID int64) {
	wallets, err := h.walletService.ListWallets(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing wallets for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}

	if wallets == nil {
		wallets = []*wallet.Wallet{}
	}
	respondData(w, http.StatusOK, wallets)
}

func (h *WalletHandler) handleCreateWallet(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	created, err := h.walletService.CreateWallet(r.Context(), wallet.CreateParams{
		UserID:      userID,
		Name:        req.Name,
		Kind:        req.Kind,
		Balance:     req.Balance,
		CreditLimit: req.CreditLimit,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		h.respondWalletError(w, userID, err)
		return
	}

	respondData(w, http.StatusCreated, created)
}

// HandleWalletByID handles operations on a specific wallet (GET, PUT, DELETE)
func (h *WalletHandler) HandleWalletByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}

	walletID := r.PathValue("id")
	if walletID == "" {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGetWallet(w, r, userID, walletID)
	case http.MethodPut:
		h.handleUpdateWallet(w, r, userID, walletID)
	case http.MethodDelete:
		h.handleDeleteWalletSafe(w, r, userID, walletID)
	default:
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
	}
}

func (h *WalletHandler) handleGetWallet(w http.ResponseWriter, r *http.Request, userID int64, walletID string) {
	found, err := h.walletService.GetWallet(r.Context(), walletID, userID)
	if err != nil {
		h.respondWalletError(w, userID, err)
		return
	}
	respondData(w, http.StatusOK, found)
}

func (h *WalletHandler) handleUpdateWallet(w http.ResponseWriter, r *http.Request, userID int64, walletID string) {
	var req UpdateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	updated, err := h.walletService.UpdateWallet(r.Context(), walletID, userID, wallet.UpdateParams{
		Name:        req.Name,
		Kind:        req.Kind,
		CreditLimit: req.CreditLimit,
	})
	if err != nil {
		h.respondWalletError(w, userID, err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

// handleDeleteWalletSafe deletes a wallet only when nothing references it
func (h *WalletHandler) handleDeleteWalletSafe(w http.ResponseWriter, r *http.Request, userID int64, walletID string) {
	if err := h.walletService.DeleteWalletSafe(r.Context(), walletID, userID); err != nil {
		h.respondWalletError(w, userID, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": messages.WalletDeleted})
}

// HandleWalletCascadeDelete removes a wallet and everything referencing it
func (h *WalletHandler) HandleWalletCascadeDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}

	walletID := r.PathValue("id")
	if walletID == "" {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	result, err := h.walletService.DeleteWalletCascade(r.Context(), walletID, userID)
	if err != nil {
		h.respondWalletError(w, userID, err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"message":             messages.CascadeSummary(result.TransactionsDeleted, result.TransfersDeleted),
		"transactionsDeleted": result.TransactionsDeleted,
		"transfersDeleted":    result.TransfersDeleted,
	})
}

// HandleSetDefaultWallet marks a wallet as the user's default
func (h *WalletHandler) HandleSetDefaultWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
		return
	}

	walletID := r.PathValue("id")
	if walletID == "" {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	if err := h.walletService.SetDefaultWallet(r.Context(), walletID, userID); err != nil {
		h.respondWalletError(w, userID, err)
		return
	}
	respondOK(w)
}

// respondWalletError maps domain errors to HTTP status codes and the
// Portuguese messages shown to the user.
func (h *WalletHandler) respondWalletError(w http.ResponseWriter, userID int64, err error) {
	switch {
	case errors.Is(err, wallet.ErrWalletNotFound):
		respondError(w, http.StatusNotFound, messages.ErrWalletNotFound)
	case errors.Is(err, wallet.ErrDefaultWallet):
		respondError(w, http.StatusConflict, messages.ErrDefaultWallet)
	case errors.Is(err, wallet.ErrHasTransactions):
		respondError(w, http.StatusConflict, messages.ErrWalletHasTransactions)
	case errors.Is(err, wallet.ErrHasTransfers):
		respondError(w, http.StatusConflict, messages.ErrWalletHasTransfers)
	case errors.Is(err, wallet.ErrInvalidWalletKind),
		errors.Is(err, wallet.ErrCreditLimitRequired),
		errors.Is(err, wallet.ErrCreditLimitTooLow):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Wallet operation failed for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
	}
}
