package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/obsbank/obs_backend/internal/core/domain"
	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/core/services"
)

type StatementServiceTestSuite struct {
	suite.Suite
	service portssvc.StatementRenderer
	account domain.Account
	entries []domain.Transaction
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.service = services.NewStatementService()

	suite.account = domain.Account{
		ID:            1,
		AccountNumber: "1000111122223333",
		AccountType:   domain.Savings,
		OwnerUsername: "alice",
		Balance:       decimal.NewFromFloat(1234.5),
	}
	suite.entries = []domain.Transaction{
		{
			ID:            42,
			AccountNumber: suite.account.AccountNumber,
			Amount:        decimal.NewFromInt(-250),
			Type:          domain.Debit,
			Status:        domain.StatusSuccess,
			Description:   "Transfer to bob",
			Timestamp:     time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:            41,
			AccountNumber: suite.account.AccountNumber,
			Amount:        decimal.NewFromInt(500),
			Type:          domain.Credit,
			Status:        domain.StatusSuccess,
			Description:   "Cash Deposit by Banker [banker]",
			Timestamp:     time.Date(2025, time.May, 28, 14, 0, 0, 0, time.UTC),
		},
	}
}

func (suite *StatementServiceTestSuite) TestRenderStatement() {
	out, err := suite.service.RenderStatement(context.Background(), suite.account, suite.entries)
	suite.Require().NoError(err)

	text := string(out)
	suite.Contains(text, "ACCOUNT STATEMENT")
	suite.Contains(text, "1000111122223333")
	suite.Contains(text, string(domain.Savings))
	suite.Contains(text, "alice")
	suite.Contains(text, "1234.50")

	suite.Contains(text, "TXN00000042")
	suite.Contains(text, "2025-06-01 09:30:00")
	suite.Contains(text, "-250.00")
	suite.Contains(text, "Transfer to bob")
	suite.Contains(text, "TXN00000041")
	suite.Contains(text, "500.00")

	// Debit entry was given first, so it renders before the credit.
	suite.Less(strings.Index(text, "TXN00000042"), strings.Index(text, "TXN00000041"))
}

func (suite *StatementServiceTestSuite) TestRenderStatement_NoEntries() {
	out, err := suite.service.RenderStatement(context.Background(), suite.account, nil)
	suite.Require().NoError(err)

	text := string(out)
	suite.Contains(text, "ACCOUNT STATEMENT")
	suite.Contains(text, "DESCRIPTION")
	// The column header still says "TXN ID", so check for entry rows instead.
	suite.NotContains(text, "TXN0")
}

func (suite *StatementServiceTestSuite) TestRenderReceipt() {
	entry := suite.entries[0]
	entry.TargetAccountNumber = "1000444455556666"

	out, err := suite.service.RenderReceipt(context.Background(), entry)
	suite.Require().NoError(err)

	text := string(out)
	suite.Contains(text, "TRANSACTION RECEIPT")
	suite.Contains(text, "TXN00000042")
	suite.Contains(text, "1000111122223333")
	suite.Contains(text, "1000444455556666")
	suite.Contains(text, "-250.00")
	suite.Contains(text, string(domain.StatusSuccess))
}

func (suite *StatementServiceTestSuite) TestRenderReceipt_NoCounterparty() {
	out, err := suite.service.RenderReceipt(context.Background(), suite.entries[1])
	suite.Require().NoError(err)

	suite.NotContains(string(out), "Counterparty")
}

func TestStatementService(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
