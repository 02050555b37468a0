package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bankcore/banking/internal/apperrors"
	"github.com/bankcore/banking/internal/core/domain"
	portssvc "github.com/bankcore/banking/internal/core/ports/services"
	"github.com/bankcore/banking/internal/dto"
	"github.com/bankcore/banking/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for money movement. It resolves
// account handles through the account service and delegates all business
// rules to the ledger service.
type ledgerHandler struct {
	accountService portssvc.AccountReaderSvc
	ledgerService  portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(as portssvc.AccountReaderSvc, ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		accountService: as,
		ledgerService:  ls,
	}
}

// registerLedgerRoutes registers the money movement routes.
func registerLedgerRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(accountService, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("/deposit", h.deposit)
		accounts.POST("/withdraw", h.withdraw)
		accounts.POST("/transfer", h.transfer)
	}
}

// deposit godoc
// @Summary Deposit cash into an account
// @Description Credits the amount and appends a DEPOSIT transaction
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input or rejected amount"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /accounts/deposit [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, ok := h.resolveAccount(c, req.AccountNumber)
	if !ok {
		return
	}

	if err := h.ledgerService.Deposit(c.Request.Context(), account, req.Amount); err != nil {
		h.rejectOperation(c, err, "deposit")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account.Snapshot()))
}

// withdraw godoc
// @Summary Withdraw cash from an account
// @Description Debits the amount and appends a WITHDRAWAL transaction
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input, rejected amount or insufficient funds"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /accounts/withdraw [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, ok := h.resolveAccount(c, req.AccountNumber)
	if !ok {
		return
	}

	if err := h.ledgerService.Withdraw(c.Request.Context(), account, req.Amount); err != nil {
		h.rejectOperation(c, err, "withdrawal")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account.Snapshot()))
}

// transfer godoc
// @Summary Transfer funds between two accounts
// @Description Debits the source and credits the destination as one atomic unit
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Invalid input, rejected amount, same account or insufficient funds"
// @Failure 404 {object} ErrorResponse "One or both accounts not found"
// @Router /accounts/transfer [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	source, err := h.accountService.GetAccount(ctx, req.SourceAccountNumber)
	var destination *domain.Account
	if err == nil {
		destination, err = h.accountService.GetAccount(ctx, req.DestinationAccountNumber)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transfer account lookup failed", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": "One or both accounts not found."})
		} else {
			logger.Error("Failed to resolve transfer accounts", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve accounts"})
		}
		return
	}

	if err := h.ledgerService.Transfer(ctx, source, destination, req.Amount); err != nil {
		h.rejectOperation(c, err, "transfer")
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		Message:            "Transfer successful",
		SourceBalance:      source.Snapshot().Balance,
		DestinationBalance: destination.Snapshot().Balance,
	})
}

// resolveAccount fetches the account for single-account operations and
// writes the error response itself when the lookup fails.
func (h *ledgerHandler) resolveAccount(c *gin.Context, accountNumber string) (*domain.Account, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, err := h.accountService.GetAccount(c.Request.Context(), accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found", slog.String("account_number", accountNumber))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found."})
		} else {
			logger.Error("Failed to resolve account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve account"})
		}
		return nil, false
	}
	return account, true
}

// rejectOperation maps ledger errors onto HTTP responses. Every rejection
// from the engine is a client error; anything else is unexpected.
func (h *ledgerHandler) rejectOperation(c *gin.Context, err error, operation string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrSameAccount),
		errors.Is(err, apperrors.ErrInvalidReference):
		logger.Warn("Operation rejected", slog.String("operation", operation), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Operation failed", slog.String("operation", operation), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}
