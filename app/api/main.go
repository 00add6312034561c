package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/sealedbid/goapi/base/ctx"
	"github.com/sealedbid/goapi/base/database/mongoclient"
	"github.com/sealedbid/goapi/base/log"
	bValidator "github.com/sealedbid/goapi/base/validator"
	"github.com/sealedbid/goapi/domain"
	"github.com/sealedbid/goapi/domain/auction"
	mmiddleware "github.com/sealedbid/goapi/middleware"
	"github.com/sealedbid/goapi/service/assetgw"
	"github.com/sealedbid/goapi/service/query"
	auction_delivery "github.com/sealedbid/goapi/stores/auction/delivery/http"
	auction_repository "github.com/sealedbid/goapi/stores/auction/repository"
	auction_usecase "github.com/sealedbid/goapi/stores/auction/usecase"
	hc_delivery "github.com/sealedbid/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/sealedbid/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/sealedbid/goapi/stores/healthcheck/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	mmiddleware.SetupCache()

	// init asset gateway
	context.Info("init asset gateway")
	gateway := assetgw.NewClient(&assetgw.ClientCfg{
		HttpClient:  http.Client{},
		Timeout:     viper.GetDuration("assetGateway.timeout"),
		Endpoint:    viper.GetString("assetGateway.endpoint"),
		CallbackUrl: viper.GetString("assetGateway.callbackUrl"),
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient)
	recordRepo := auction_repository.NewRecordRepo(q)
	bidRepo := auction_repository.NewBidRepo(q)

	hc := hc_usecase.New(hcRepo)
	auctionUC := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		RecordRepo: recordRepo,
		BidRepo:    bidRepo,
		Gateway:    gateway,
		Query:      q,
	})

	if err := auctionUC.Bootstrap(context, &auction.Record{
		AuctionAddress: domain.Address(viper.GetString("auction.address")),
		Seller:         domain.Address(viper.GetString("auction.seller")),
		SellAsset:      domain.Address(viper.GetString("auction.sellAsset")),
		BidAsset:       domain.Address(viper.GetString("auction.bidAsset")),
		SellAmount:     viper.GetString("auction.sellAmount"),
		MinimumBid:     viper.GetString("auction.minimumBid"),
		Description:    viper.GetString("auction.description"),
	}); err != nil {
		context.WithField("err", err).Panic("failed to bootstrap auction")
	}

	hc_delivery.New(e, hc)
	auction_delivery.New(e, auctionUC)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
