package query

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/domain/dto"
	"github.com/ougirez/agrodash/internal/pkg/constants"
	"github.com/ougirez/agrodash/internal/pkg/registry"
	"github.com/ougirez/agrodash/internal/pkg/store"
	"github.com/ougirez/agrodash/internal/pkg/store/memory"
)

func newFixtureService(t *testing.T) (*Service, *memory.Memory) {
	t.Helper()
	ctx := context.Background()

	m := memory.New()
	seed := make([]domain.Region, 0)
	for _, r := range registry.Regions() {
		seed = append(seed, domain.Region{Code: r.Code, Name: r.Label})
	}
	require.NoError(t, m.SeedRegions(ctx, seed))

	regions, err := m.ListRegions(ctx)
	require.NoError(t, err)
	ids := make(map[string]int64, len(regions))
	for _, r := range regions {
		ids[r.Code] = r.ID
	}

	put := func(module domain.Module, region string, year domain.Year, item, variable, unit, value string) {
		v, err := decimal.NewFromString(value)
		require.NoError(t, err)
		require.NoError(t, m.UpsertFacts(ctx, module, []*dto.FactRow{{
			Module:   module,
			RegionID: ids[region],
			Region:   region,
			Year:     year,
			Item:     item,
			Variable: variable,
			Unit:     unit,
			Value:    v,
			UUID:     uuid.New(),
		}}))
	}

	put(domain.ModuleCrop, "bra", 2020, "wht", "prod", "t", "100.1")
	put(domain.ModuleCrop, "bra", 2030, "wht", "prod", "t", "120")
	put(domain.ModuleCrop, "usa", 2020, "wht", "prod", "t", "250.4")
	put(domain.ModuleCrop, "bra", 2020, "ric", "prod", "t", "80")
	put(domain.ModuleCrop, "bra", 2020, "wht", "area", "ha", "55")
	put(domain.ModuleAnimal, "bra", 2020, "rum", "prod", "t", "30")
	put(domain.ModuleAnimal, "bra", 2020, "rum", "cons", "t", "28")
	put(domain.ModuleBioenergy, "bra", 2020, "sgc", "prod", "t", "500")
	put(domain.ModuleLandCover, "bra", 2020, "crp", "land", "ha", "90000")

	return NewService(m), m
}

func requireCoded(t *testing.T, err error, code int) {
	t.Helper()
	var coded *constants.CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, code, coded.Code())
}

func TestListProjectionsPointedFilter(t *testing.T) {
	svc, _ := newFixtureService(t)

	year := 2020
	out, err := svc.ListProjections(context.Background(), Filter{
		Module:    "crop",
		Item:      "wht",
		Variable:  "area",
		Region:    "bra",
		YearStart: &year,
		YearEnd:   &year,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ha", out[0].Unit)
	assert.Equal(t, "55", out[0].Value.String())
	assert.Equal(t, "Wheat", out[0].ItemLabel)
	assert.Equal(t, "Harvested Area", out[0].VariableLabel)
	assert.Equal(t, "Brazil", out[0].RegionName)
}

func TestListProjectionsAllKeyword(t *testing.T) {
	svc, _ := newFixtureService(t)

	out, err := svc.ListProjections(context.Background(), Filter{
		Module:   "crop",
		Item:     "all",
		Variable: "prod",
		Region:   "all",
	})
	require.NoError(t, err)
	assert.Len(t, out, 4)
}

func TestListProjectionsInvalidFilters(t *testing.T) {
	svc, _ := newFixtureService(t)
	ctx := context.Background()

	_, err := svc.ListProjections(ctx, Filter{Module: "forestry"})
	requireCoded(t, err, http.StatusBadRequest)

	_, err = svc.ListProjections(ctx, Filter{Module: "crop", Item: "rum"})
	requireCoded(t, err, http.StatusBadRequest)

	_, err = svc.ListProjections(ctx, Filter{Module: "crop", Variable: "land"})
	requireCoded(t, err, http.StatusBadRequest)

	_, err = svc.ListProjections(ctx, Filter{Module: "crop", Region: "atl"})
	requireCoded(t, err, http.StatusBadRequest)

	bad := 1990
	_, err = svc.ListProjections(ctx, Filter{Module: "crop", YearStart: &bad})
	requireCoded(t, err, http.StatusBadRequest)

	start, end := 2030, 2020
	_, err = svc.ListProjections(ctx, Filter{Module: "crop", YearStart: &start, YearEnd: &end})
	requireCoded(t, err, http.StatusBadRequest)
}

func TestAggregateGroupedByYear(t *testing.T) {
	svc, _ := newFixtureService(t)

	grouped, unit, err := svc.Aggregate(context.Background(), Filter{
		Module:   "crop",
		Item:     "wht",
		Variable: "prod",
	}, store.GroupByYear)
	require.NoError(t, err)
	assert.Equal(t, "t", unit)
	require.Len(t, grouped, 2)
	assert.Equal(t, "350.5", grouped["2020"].String())
	assert.Equal(t, "120", grouped["2030"].String())
}

func TestAggregateGroupedByRegion(t *testing.T) {
	svc, _ := newFixtureService(t)

	grouped, unit, err := svc.Aggregate(context.Background(), Filter{
		Module:   "crop",
		Variable: "prod",
	}, store.GroupByRegion)
	require.NoError(t, err)
	assert.Equal(t, "t", unit)
	assert.Equal(t, "300.1", grouped["bra"].String())
	assert.Equal(t, "250.4", grouped["usa"].String())
}

func TestAggregateRequiresVariable(t *testing.T) {
	svc, _ := newFixtureService(t)

	_, _, err := svc.Aggregate(context.Background(), Filter{Module: "crop"}, store.GroupByYear)
	requireCoded(t, err, http.StatusBadRequest)

	_, _, err = svc.Aggregate(context.Background(), Filter{Module: "crop", Variable: "prod"}, store.GroupBy("month"))
	requireCoded(t, err, http.StatusBadRequest)
}

func TestHeadlineStatsSpanModules(t *testing.T) {
	svc, _ := newFixtureService(t)

	stats, err := svc.HeadlineStats(context.Background(), nil, "")
	require.NoError(t, err)
	require.Len(t, stats, 4)

	// prod sums across crop, animal and bioenergy partitions.
	assert.Equal(t, "1080.5", stats["prod"].Value.String())
	assert.Equal(t, "t", stats["prod"].Unit)
	assert.Equal(t, "Production", stats["prod"].Label)

	assert.Equal(t, "28", stats["cons"].Value.String())

	// No yild or nett facts loaded: the totals are present and zero.
	assert.True(t, stats["yild"].Value.IsZero())
	assert.True(t, stats["nett"].Value.IsZero())
	assert.Equal(t, "t/ha", stats["yild"].Unit)
}

func TestHeadlineStatsScoped(t *testing.T) {
	svc, _ := newFixtureService(t)

	year := 2020
	stats, err := svc.HeadlineStats(context.Background(), &year, "wht")
	require.NoError(t, err)
	assert.Equal(t, "350.5", stats["prod"].Value.String())

	year = 2030
	stats, err = svc.HeadlineStats(context.Background(), &year, "")
	require.NoError(t, err)
	assert.Equal(t, "120", stats["prod"].Value.String())
}

func TestHeadlineStatsInvalidInputs(t *testing.T) {
	svc, _ := newFixtureService(t)

	bad := 1999
	_, err := svc.HeadlineStats(context.Background(), &bad, "")
	requireCoded(t, err, http.StatusBadRequest)

	_, err = svc.HeadlineStats(context.Background(), nil, "alg")
	requireCoded(t, err, http.StatusBadRequest)
}

func TestListRegions(t *testing.T) {
	svc, _ := newFixtureService(t)

	regions, err := svc.ListRegions(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 19)
	assert.Equal(t, "ame", regions[0].Code)
}

