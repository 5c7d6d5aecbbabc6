package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/pennyboard/pennyboard-backend/internal/bootstrap"
	"github.com/pennyboard/pennyboard-backend/internal/config"
	"github.com/pennyboard/pennyboard-backend/internal/crypto"
	"github.com/pennyboard/pennyboard-backend/internal/handlers"
	"github.com/pennyboard/pennyboard-backend/internal/response"
	"github.com/pennyboard/pennyboard-backend/internal/router"
	"github.com/pennyboard/pennyboard-backend/internal/services"
	"github.com/pennyboard/pennyboard-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	kmsHelper := crypto.NewKMS(bs.KMS, cfg.KMSKeyName)

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	istore := store.NewBankItemStore(bs.Firestore, kmsHelper)
	astore := store.NewAccountStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	vstore := store.NewSavedViewStore(bs.Firestore)

	// services
	userv := services.NewUserService(ustore)
	balserv := services.NewBalanceService(bs.PlaidAdapter, astore)
	linkserv := services.NewLinkService(bs.PlaidAdapter, istore, astore, balserv)
	syncserv := services.NewSyncService(bs.PlaidAdapter, istore, astore, tstore, balserv, cfg.SyncPageSize, cfg.SyncLookbackDays)
	bserv := services.NewBankService(istore, astore, tstore)
	txserv := services.NewTransactionService(tstore)
	sumserv := services.NewSummaryService(tstore)
	vserv := services.NewViewService(vstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.UserSvc = userv
	deps.LinkSvc = linkserv
	deps.BankSvc = bserv
	deps.SyncSvc = syncserv
	deps.BalanceSvc = balserv
	deps.TransactionSvc = txserv
	deps.SummarySvc = sumserv
	deps.ViewSvc = vserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
