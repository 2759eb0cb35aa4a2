package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/dto"
	"github.com/obsbank/obs_backend/internal/middleware"
)

// billPaymentHandler handles bill payments and the per-user bill history.
type billPaymentHandler struct {
	billPaymentService portssvc.BillPaymentSvcFacade
	userService        portssvc.UserSvcFacade
}

func newBillPaymentHandler(bill portssvc.BillPaymentSvcFacade, user portssvc.UserSvcFacade) *billPaymentHandler {
	return &billPaymentHandler{billPaymentService: bill, userService: user}
}

// registerBillPaymentRoutes registers the bill payment routes.
func registerBillPaymentRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBillPaymentHandler(services.BillPayment, services.User)

	bills := rg.Group("/bill-payments")
	{
		bills.POST("", h.payBill)
		bills.GET("", h.listMyBills)
	}
}

func (h *billPaymentHandler) payBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.billPaymentService.PayBill(c.Request.Context(), user.ID, req.AccountNumber, req.BillerName, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill paid"})
}

func (h *billPaymentHandler) listMyBills(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	bills, err := h.billPaymentService.GetMyBills(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBillPaymentResponses(bills))
}

// currentUser resolves the authenticated username to its user record. The bill
// payment service keys history by user id, not username.
func (h *billPaymentHandler) currentUser(c *gin.Context) (*dto.UserResponse, bool) {
	username, ok := mustUsername(c)
	if !ok {
		return nil, false
	}

	user, err := h.userService.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	resp := dto.ToUserResponse(user)
	return &resp, true
}
