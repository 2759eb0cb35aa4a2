package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/dto"
	"github.com/obsbank/obs_backend/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService   portssvc.AccountSvcFacade
	transferService  portssvc.TransferSvcFacade
	statementService portssvc.StatementRenderer
}

func newAccountHandler(account portssvc.AccountSvcFacade, transfer portssvc.TransferSvcFacade, statement portssvc.StatementRenderer) *accountHandler {
	return &accountHandler{
		accountService:   account,
		transferService:  transfer,
		statementService: statement,
	}
}

// registerAccountRoutes registers the customer-facing account routes.
func registerAccountRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAccountHandler(services.Account, services.Transfer, services.Statement)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listMyAccounts)
		accounts.GET("/:accountNumber", h.getAccount)
		accounts.GET("/:accountNumber/transactions", h.getTransactions)
		accounts.GET("/:accountNumber/statement", h.getStatement)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	username, ok := mustUsername(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listMyAccounts(c *gin.Context) {
	username, ok := mustUsername(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.GetMyAccounts(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	username, ok := mustUsername(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetOwnedAccount(c.Request.Context(), c.Param("accountNumber"), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) getTransactions(c *gin.Context) {
	username, ok := mustUsername(c)
	if !ok {
		return
	}

	txns, err := h.transferService.GetTransactionHistory(c.Request.Context(), c.Param("accountNumber"), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

func (h *accountHandler) getStatement(c *gin.Context) {
	username, ok := mustUsername(c)
	if !ok {
		return
	}

	accountNumber := c.Param("accountNumber")
	account, err := h.accountService.GetOwnedAccount(c.Request.Context(), accountNumber, username)
	if err != nil {
		respondError(c, err)
		return
	}

	txns, err := h.transferService.GetTransactionHistory(c.Request.Context(), accountNumber, username)
	if err != nil {
		respondError(c, err)
		return
	}

	statement, err := h.statementService.RenderStatement(c.Request.Context(), *account, txns)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", statement)
}
