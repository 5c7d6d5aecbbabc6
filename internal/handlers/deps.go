package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/pennyboard/pennyboard-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client
	UserSvc         UserService
	LinkSvc         LinkService
	BankSvc         BankService
	SyncSvc         SyncService
	BalanceSvc      BalanceService
	TransactionSvc  TransactionService
	SummarySvc      SummaryService
	ViewSvc         ViewService
}
