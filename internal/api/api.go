package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"

	"github.com/ougirez/agrodash/internal/api/controller"
	"github.com/ougirez/agrodash/internal/pkg/constants"
	"github.com/ougirez/agrodash/internal/pkg/logger"
	"github.com/ougirez/agrodash/internal/pkg/store"
	"github.com/ougirez/agrodash/internal/service/ingest"
	"github.com/ougirez/agrodash/internal/service/query"
)

type APIService struct {
	router        *echo.Echo
	queryService  *query.Service
	ingestService *ingest.Service
}

func (svc *APIService) Serve(addr string) {
	err := svc.router.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		// Shutdown was asked for; let main finish its cleanup.
		return
	}
	logger.Fatal(context.Background(), err)
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(store store.Store) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.OFF)
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = NewSerializer()
	svc.router.Use(middleware.Logger())
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{viper.GetString(constants.ViperKeyCORSOrigin)},
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type"},
	}))

	svc.queryService = query.NewService(store)
	svc.ingestService = ingest.NewService(store, viper.GetInt(constants.ViperKeyBatchSize))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.queryService, svc.ingestService)

	regions := api.Group("/regions")
	regions.GET("/list", cntrl.ListRegions)

	modules := api.Group("/modules")
	modules.GET("/list", cntrl.ListModules)

	projections := api.Group("/projections")
	projections.GET("/list", cntrl.ListProjections)
	projections.GET("/aggregate", cntrl.AggregateProjections)

	stats := api.Group("/stats")
	stats.GET("/headline", cntrl.HeadlineStats)

	ingestGroup := api.Group("/ingest")
	ingestGroup.POST("/backfill", cntrl.BackfillProjections)

	return svc, nil
}
