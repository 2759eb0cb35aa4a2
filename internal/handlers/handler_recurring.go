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

// recurringHandler handles standing-order management.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

func newRecurringHandler(recurring portssvc.RecurringSvcFacade) *recurringHandler {
	return &recurringHandler{recurringService: recurring}
}

// registerRecurringRoutes registers the recurring payment routes.
func registerRecurringRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newRecurringHandler(services.Recurring)

	recurring := rg.Group("/recurring-payments")
	{
		recurring.POST("", h.create)
		recurring.GET("", h.listByAccount)
		recurring.POST("/:id/stop", h.stop)
	}
}

func (h *recurringHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	username, ok := mustUsername(c)
	if !ok {
		return
	}

	var req dto.CreateRecurringPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRecurringPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.recurringService.CreateRecurringPayment(c.Request.Context(), req, username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecurringPaymentResponse(payment))
}

func (h *recurringHandler) listByAccount(c *gin.Context) {
	username, ok := mustUsername(c)
	if !ok {
		return
	}

	accountNumber := c.Query("accountNumber")
	if accountNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountNumber query parameter is required"})
		return
	}

	payments, err := h.recurringService.GetRecurringPaymentsByAccount(c.Request.Context(), accountNumber, username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringPaymentResponses(payments))
}

func (h *recurringHandler) stop(c *gin.Context) {
	username, ok := mustUsername(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recurring payment id"})
		return
	}

	if err := h.recurringService.StopRecurringPayment(c.Request.Context(), id, username); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recurring payment stopped"})
}
