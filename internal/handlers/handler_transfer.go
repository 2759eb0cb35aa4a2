package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/dto"
	"github.com/obsbank/obs_backend/internal/middleware"
)

// transferHandler handles customer fund transfers and transaction receipts.
type transferHandler struct {
	transferService  portssvc.TransferSvcFacade
	accountService   portssvc.AccountSvcFacade
	statementService portssvc.StatementRenderer
}

func newTransferHandler(transfer portssvc.TransferSvcFacade, account portssvc.AccountSvcFacade, statement portssvc.StatementRenderer) *transferHandler {
	return &transferHandler{
		transferService:  transfer,
		accountService:   account,
		statementService: statement,
	}
}

// registerTransferRoutes registers the transfer routes.
func registerTransferRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTransferHandler(services.Transfer, services.Account, services.Statement)

	rg.POST("/transfers", h.transfer)
	rg.GET("/transactions/:id/receipt", h.getReceipt)
}

func (h *transferHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	username, ok := mustUsername(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	outcome, err := h.transferService.TransferFunds(c.Request.Context(), req, username)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	message := "Transfer completed"
	if outcome == dto.OutcomePending {
		status = http.StatusAccepted
		message = "Transfer held for approval"
	}
	c.JSON(status, dto.TransferResponse{Status: outcome, Message: message})
}

func (h *transferHandler) getReceipt(c *gin.Context) {
	username, ok := mustUsername(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	txn, err := h.transferService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	// Ownership is enforced through the account lookup.
	if _, err := h.accountService.GetOwnedAccount(c.Request.Context(), txn.AccountNumber, username); err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.statementService.RenderReceipt(c.Request.Context(), *txn)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", receipt)
}
