package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpadp "autolend-backend/internal/adapter/http"
	mw "autolend-backend/internal/adapter/middleware"
	"autolend-backend/internal/adapter/repository/mysql"
	"autolend-backend/internal/adapter/vinlookup"
	"autolend-backend/internal/config"
	"autolend-backend/internal/infrastructure/cache"
	"autolend-backend/internal/infrastructure/db"
	"autolend-backend/internal/infrastructure/logger"
	ucLoan "autolend-backend/internal/usecase/loan"
	ucOffer "autolend-backend/internal/usecase/offer"
	ucUser "autolend-backend/internal/usecase/user"
	ucValuation "autolend-backend/internal/usecase/valuation"
	ucVehicle "autolend-backend/internal/usecase/vehicle"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal("mysql connect failed", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis connect failed", zap.Error(err))
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	offerRepo := mysql.NewOfferRepository(gdb)
	vehicleRepo := mysql.NewVehicleRepository(gdb)
	userRepo := mysql.NewUserRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	vinClient := vinlookup.New(cfg.RapidAPIKey, cfg.RapidAPIURL, cfg.ValuationTimeout, log)
	valuationUC := ucValuation.NewUsecase(vinClient)
	loanUC := ucLoan.NewUsecase(loanRepo, vehicleRepo, userRepo, valuationUC, uow)
	offerUC := ucOffer.NewUsecase(loanRepo, offerRepo, uow)
	vehicleUC := ucVehicle.NewUsecase(vehicleRepo, loanRepo, valuationUC)
	userUC := ucUser.NewUsecase(userRepo)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(loanUC)
	offerH := httpadp.NewOfferHandler(offerUC)
	vehicleH := httpadp.NewVehicleHandler(vehicleUC)
	valuationH := httpadp.NewValuationHandler(valuationUC)
	userH := httpadp.NewUserHandler(userUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	idemp := mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	loans := e.Group("/loans")
	loans.POST("/apply", loanH.Submit, idemp)
	loans.GET("", loanH.List)
	loans.GET("/applicant/:email", loanH.ListByApplicant)
	loans.GET("/:loan_id", loanH.Get)
	loans.PATCH("/:loan_id/status", loanH.UpdateStatus, idemp)
	loans.GET("/:loan_id/summary", loanH.Summary)

	offers := e.Group("/offers")
	offers.POST("/:id", offerH.Create, idemp)
	offers.GET("/loan/:loan_id", offerH.ListForLoan)
	offers.PATCH("/:id/accept", offerH.Accept, idemp)

	vehicles := e.Group("/vehicles")
	vehicles.POST("", vehicleH.Create)
	vehicles.GET("", vehicleH.List)
	vehicles.GET("/search", vehicleH.Search)
	vehicles.GET("/stats/manufacturers", vehicleH.ManufacturerStats)
	vehicles.GET("/:id_or_vin", vehicleH.Get)
	vehicles.PATCH("/:id_or_vin", vehicleH.Update)
	vehicles.DELETE("/:id_or_vin", vehicleH.Delete)
	vehicles.GET("/:id_or_vin/valuation", vehicleH.ValuationByVIN)

	valuations := e.Group("/valuations")
	valuations.POST("", valuationH.Estimate)
	valuations.POST("/batch", valuationH.EstimateBatch)
	valuations.GET("/:vin/history", valuationH.History)
	valuations.GET("/stats", valuationH.Stats)

	users := e.Group("/users")
	users.POST("", userH.Create)
	users.GET("/:user_id", userH.Get)
	users.PATCH("/:user_id", userH.Update)

	addr := ":" + cfg.AppPort
	log.Info("listening", zap.String("addr", addr), zap.Bool("vin_lookup_live", vinClient.Configured()))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
