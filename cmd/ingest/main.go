// Command ingest loads a GLOBIOM projection CSV into the fact store and
// prints the run summary. It is the administrative, exclusive write path:
// run at most one ingestion per module at a time.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/pkg/constants"
	"github.com/ougirez/agrodash/internal/pkg/logger"
	"github.com/ougirez/agrodash/internal/pkg/registry"
	"github.com/ougirez/agrodash/internal/pkg/store"
	"github.com/ougirez/agrodash/internal/pkg/store/xpgx"
	"github.com/ougirez/agrodash/internal/service/ingest"
)

func main() {
	csvPath := flag.String("csv", "data.csv", "path to the projection CSV")
	maxRejections := flag.Int("max-rejections", 20, "rejection details to print")
	flag.Parse()

	initConfig()

	ctx := context.Background()
	if err := logger.Init(viper.GetBool(constants.ViperKeyLogDebug)); err != nil {
		logger.Fatal(ctx, err)
	}
	defer logger.Sync()

	pool, err := xpgx.Connect(ctx, viper.GetString(constants.ViperKeyPostgresDSN))
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer pool.Close()

	st := store.NewStore(pool)
	if err := st.Migrate(ctx); err != nil {
		logger.Fatal(ctx, err)
	}
	if err := st.SeedRegions(ctx, seedRegions()); err != nil {
		logger.Fatal(ctx, err)
	}

	svc := ingest.NewService(st, viper.GetInt(constants.ViperKeyBatchSize))
	summary, err := svc.RunFile(ctx, *csvPath)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	fmt.Printf("Ingestion complete\n")
	fmt.Printf("  Accepted: %d\n", summary.Accepted)
	fmt.Printf("  Rejected: %d\n", summary.Rejected)
	for i, r := range summary.Rejections {
		if i >= *maxRejections {
			fmt.Fprintf(os.Stderr, "  ... %d more rejections\n", len(summary.Rejections)-i)
			break
		}
		fmt.Fprintf(os.Stderr, "  row %d: %s: %s\n", r.Row, r.Reason, r.Detail)
	}
}

func initConfig() {
	viper.SetDefault(constants.ViperKeyBatchSize, constants.DefaultBatchSize)

	viper.SetEnvPrefix("AGRODASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()
}

func seedRegions() []domain.Region {
	codes := registry.Regions()
	regions := make([]domain.Region, 0, len(codes))
	for _, c := range codes {
		regions = append(regions, domain.Region{Code: c.Code, Name: c.Label})
	}
	return regions
}
