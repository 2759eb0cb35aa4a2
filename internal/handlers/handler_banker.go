package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/obsbank/obs_backend/internal/core/domain"
	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/dto"
	"github.com/obsbank/obs_backend/internal/middleware"
)

// bankerHandler handles the approval queue, cash deposits and account search.
type bankerHandler struct {
	transferService portssvc.TransferSvcFacade
	accountService  portssvc.AccountSvcFacade
}

func newBankerHandler(transfer portssvc.TransferSvcFacade, account portssvc.AccountSvcFacade) *bankerHandler {
	return &bankerHandler{transferService: transfer, accountService: account}
}

// registerBankerRoutes registers routes restricted to the BANKER role.
func registerBankerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBankerHandler(services.Transfer, services.Account)

	banker := rg.Group("/banker", middleware.RequireRole(string(domain.RoleBanker)))
	{
		banker.GET("/transactions/pending", h.listPending)
		banker.POST("/transactions/:id/approve", h.approve)
		banker.POST("/transactions/:id/reject", h.reject)
		banker.POST("/accounts/:accountNumber/deposit", h.deposit)
		banker.GET("/accounts/:accountNumber", h.searchAccount)
	}
}

// registerAdminRoutes registers routes restricted to the ADMIN role.
func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBankerHandler(services.Transfer, services.Account)

	admin := rg.Group("/admin", middleware.RequireRole(string(domain.RoleAdmin)))
	{
		admin.POST("/accounts/:accountNumber/toggle-active", h.toggleActive)
	}
}

func (h *bankerHandler) listPending(c *gin.Context) {
	txns, err := h.transferService.GetPendingTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

func (h *bankerHandler) approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	if err := h.transferService.ApproveTransaction(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction approved"})
}

func (h *bankerHandler) reject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	if err := h.transferService.RejectTransaction(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction rejected and refunded"})
}

func (h *bankerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	bankerUsername, ok := mustUsername(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	newBalance, err := h.accountService.Deposit(c.Request.Context(), c.Param("accountNumber"), req.Amount, bankerUsername)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deposit recorded", "balance": newBalance})
}

func (h *bankerHandler) searchAccount(c *gin.Context) {
	account, err := h.accountService.SearchAccount(c.Request.Context(), c.Param("accountNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *bankerHandler) toggleActive(c *gin.Context) {
	active, err := h.accountService.ToggleAccountActive(c.Request.Context(), c.Param("accountNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accountNumber": c.Param("accountNumber"), "active": active})
}
