package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/ougirez/agrodash/internal/api"
	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/pkg/constants"
	"github.com/ougirez/agrodash/internal/pkg/logger"
	"github.com/ougirez/agrodash/internal/pkg/registry"
	"github.com/ougirez/agrodash/internal/pkg/store"
	"github.com/ougirez/agrodash/internal/pkg/store/memory"
	"github.com/ougirez/agrodash/internal/pkg/store/xpgx"
)

func main() {
	initConfig()

	ctx := context.Background()
	if err := logger.Init(viper.GetBool(constants.ViperKeyLogDebug)); err != nil {
		logger.Fatal(ctx, err)
	}
	defer logger.Sync()

	st, closeStore, err := openStore(ctx)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer closeStore()

	if err := st.Migrate(ctx); err != nil {
		logger.Fatal(ctx, err)
	}
	if err := st.SeedRegions(ctx, seedRegions()); err != nil {
		logger.Fatal(ctx, err)
	}

	svc, err := api.NewAPIService(st)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(viper.GetString(constants.ViperKeyServerAddr))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown: %s", err.Error())
	}
}

func initConfig() {
	viper.SetDefault(constants.ViperKeyServerAddr, constants.DefaultServerAddr)
	viper.SetDefault(constants.ViperKeyCORSOrigin, constants.DefaultCORSOrigin)
	viper.SetDefault(constants.ViperKeyBatchSize, constants.DefaultBatchSize)

	viper.SetEnvPrefix("AGRODASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()
}

// openStore picks the backend from the DSN; "memory" runs without
// Postgres for local development.
func openStore(ctx context.Context) (store.Store, func(), error) {
	dsn := viper.GetString(constants.ViperKeyPostgresDSN)
	if dsn == "" || dsn == "memory" {
		return memory.New(), func() {}, nil
	}

	pool, err := xpgx.Connect(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return store.NewStore(pool), pool.Close, nil
}

func seedRegions() []domain.Region {
	codes := registry.Regions()
	regions := make([]domain.Region, 0, len(codes))
	for _, c := range codes {
		regions = append(regions, domain.Region{Code: c.Code, Name: c.Label})
	}
	return regions
}
