package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/obsbank/obs_backend/internal/apperrors"
	"github.com/obsbank/obs_backend/internal/core/domain"
	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/dto"
	"github.com/obsbank/obs_backend/internal/handlers"
	"github.com/obsbank/obs_backend/internal/platform/config"
	"github.com/obsbank/obs_backend/internal/utils"
)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) TransferFunds(ctx context.Context, req dto.TransferRequest, username string) (dto.TransferOutcome, error) {
	args := m.Called(ctx, req, username)
	return args.Get(0).(dto.TransferOutcome), args.Error(1)
}
func (m *MockTransferService) ExecuteRecurringTransfer(ctx context.Context, fromAccount domain.Account, targetAccountNumber string, amount decimal.Decimal) error {
	args := m.Called(ctx, fromAccount, targetAccountNumber, amount)
	return args.Error(0)
}
func (m *MockTransferService) ApproveTransaction(ctx context.Context, transactionID int64) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}
func (m *MockTransferService) RejectTransaction(ctx context.Context, transactionID int64) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}
func (m *MockTransferService) GetPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransferService) GetTransactionHistory(ctx context.Context, accountNumber, username string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountNumber, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransferService) GetTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Test Suite ---
type TransferHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockTransferService *MockTransferService
	jwtSecret           string
}

func (suite *TransferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTransferService = new(MockTransferService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	services := &portssvc.ServiceContainer{
		Transfer: suite.mockTransferService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *TransferHandlerTestSuite) generateTestToken(username string) string {
	token, err := utils.GenerateJWT(username, []string{string(domain.RoleCustomer)}, suite.jwtSecret, time.Hour, "obs-backend-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *TransferHandlerTestSuite) postTransfer(body dto.TransferRequest, token string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransferHandlerTestSuite) TestTransfer_Success() {
	body := dto.TransferRequest{
		FromAccountNumber: "1000111122223333",
		ToAccountNumber:   "1000444455556666",
		Amount:            decimal.NewFromInt(250),
	}

	suite.mockTransferService.On("TransferFunds",
		mock.Anything,
		mock.MatchedBy(func(r dto.TransferRequest) bool {
			return r.FromAccountNumber == body.FromAccountNumber && r.Amount.Equal(body.Amount)
		}),
		"alice",
	).Return(dto.OutcomeSuccess, nil).Once()

	w := suite.postTransfer(body, suite.generateTestToken("alice"))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.OutcomeSuccess, resp.Status)
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestTransfer_HeldReturns202() {
	body := dto.TransferRequest{
		FromAccountNumber: "1000111122223333",
		ToAccountNumber:   "1000444455556666",
		Amount:            decimal.NewFromInt(15000),
	}

	suite.mockTransferService.On("TransferFunds", mock.Anything, mock.Anything, "alice").
		Return(dto.OutcomePending, nil).Once()

	w := suite.postTransfer(body, suite.generateTestToken("alice"))

	suite.Equal(http.StatusAccepted, w.Code)

	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.OutcomePending, resp.Status)
}

func (suite *TransferHandlerTestSuite) TestTransfer_InsufficientFundsReturns422() {
	body := dto.TransferRequest{
		FromAccountNumber: "1000111122223333",
		ToAccountNumber:   "1000444455556666",
		Amount:            decimal.NewFromInt(999999),
	}

	suite.mockTransferService.On("TransferFunds", mock.Anything, mock.Anything, "alice").
		Return(dto.TransferOutcome(""), apperrors.ErrInsufficientFunds).Once()

	w := suite.postTransfer(body, suite.generateTestToken("alice"))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *TransferHandlerTestSuite) TestTransfer_InvalidAccountNumberRejectedAtBinding() {
	body := dto.TransferRequest{
		FromAccountNumber: "not-an-account",
		ToAccountNumber:   "1000444455556666",
		Amount:            decimal.NewFromInt(10),
	}

	w := suite.postTransfer(body, suite.generateTestToken("alice"))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransferService.AssertNotCalled(suite.T(), "TransferFunds")
}

func (suite *TransferHandlerTestSuite) TestTransfer_MissingTokenReturns401() {
	body := dto.TransferRequest{
		FromAccountNumber: "1000111122223333",
		ToAccountNumber:   "1000444455556666",
		Amount:            decimal.NewFromInt(10),
	}

	w := suite.postTransfer(body, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransferService.AssertNotCalled(suite.T(), "TransferFunds")
}

func TestTransferHandler(t *testing.T) {
	suite.Run(t, new(TransferHandlerTestSuite))
}
