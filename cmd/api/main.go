package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "bankportal-backend/internal/adapter/http"
	idemp "bankportal-backend/internal/adapter/middleware"
	"bankportal-backend/internal/adapter/pubsub"
	"bankportal-backend/internal/adapter/repository/mysql"
	"bankportal-backend/internal/config"
	"bankportal-backend/internal/domain/catalog"
	"bankportal-backend/internal/infrastructure/cache"
	"bankportal-backend/internal/infrastructure/db"
	"bankportal-backend/internal/infrastructure/mail"
	"bankportal-backend/internal/usecase/backoffice"
	deposituc "bankportal-backend/internal/usecase/deposit"
	loanuc "bankportal-backend/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	var mailer backoffice.Mailer
	if cfg.EmailSender != "" {
		m, err := mail.NewSESMailer(context.Background(), cfg.SESRegion, cfg.EmailSender)
		if err != nil {
			log.Fatal(err)
		}
		mailer = m
	}

	loans := mysql.NewLoanRepository(gdb)
	deposits := mysql.NewDepositRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	cat := catalog.NewStatic()
	events := pubsub.NewRedisPublisher(rdb)

	loanUC := loanuc.NewUsecase(loans, deposits, uow, cat, events)
	depositUC := deposituc.NewUsecase(uow, events)
	adminUC := backoffice.NewUsecase(uow, events, mailer)

	h := httpadp.NewHandler(cat)
	loanH := httpadp.NewLoanHandler(loanUC)
	depositH := httpadp.NewDepositHandler(depositUC)
	adminH := httpadp.NewBackofficeHandler(adminUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	e.GET("/health", h.Health)
	e.GET("/products", h.Products)

	api := e.Group("", idemp.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	api.POST("/loans", loanH.Apply)
	api.GET("/loans", loanH.List)
	api.GET("/loans/:loan_id", loanH.Get)
	api.POST("/loans/:loan_id/deposit", depositH.Settle)
	api.POST("/loans/:loan_id/repay", depositH.Repay)

	admin := e.Group("/admin")
	admin.POST("/loans/:loan_id/approve", adminH.Approve)
	admin.POST("/loans/:loan_id/reject", adminH.Reject)
	admin.POST("/loans/:loan_id/close", adminH.Close)
	admin.POST("/deposits/:deposit_id/confirm", adminH.ConfirmDeposit)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
