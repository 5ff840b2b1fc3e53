package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arfin-foysal/crypto-sub001/internal/adapter/http/dto"
	"github.com/arfin-foysal/crypto-sub001/internal/domain"
	"github.com/arfin-foysal/crypto-sub001/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateDeposit(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
	CreateWithdrawal(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
	UpdateDepositStatus(ctx context.Context, id string, newStatus domain.TransactionStatus) (*domain.Transaction, error)
	UpdateWithdrawalStatus(ctx context.Context, id string, newStatus domain.TransactionStatus) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListUserTransactions(ctx context.Context, input usecase.ListUserTransactionsInput) ([]*domain.Transaction, error)
}

// TransactionHandler handles deposit and withdrawal HTTP requests.
type TransactionHandler struct {
	txnUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txnUC TransactionService) *TransactionHandler {
	return &TransactionHandler{txnUC: txnUC}
}

// CreateDeposit records a deposit.
func (h *TransactionHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.txnUC.CreateDeposit)
}

// CreateWithdrawal records a withdrawal.
func (h *TransactionHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.txnUC.CreateWithdrawal)
}

func (h *TransactionHandler) create(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := fn(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// UpdateDepositStatus moves a deposit to a new status.
func (h *TransactionHandler) UpdateDepositStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.txnUC.UpdateDepositStatus)
}

// UpdateWithdrawalStatus moves a withdrawal to a new status.
func (h *TransactionHandler) UpdateWithdrawalStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.txnUC.UpdateWithdrawalStatus)
}

func (h *TransactionHandler) updateStatus(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string, status domain.TransactionStatus) (*domain.Transaction, error)) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := fn(r.Context(), id, domain.TransactionStatus(req.Status))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatusUpdateFromDomain(txn))
}

// Get retrieves a single ledger entry.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.txnUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// ListByUser lists a user's transaction history.
func (h *TransactionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	txns, err := h.txnUC.ListUserTransactions(r.Context(), usecase.ListUserTransactionsInput{
		UserID: userID,
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}
