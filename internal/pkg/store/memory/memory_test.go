package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/domain/dto"
	"github.com/ougirez/agrodash/internal/pkg/constants"
	"github.com/ougirez/agrodash/internal/pkg/store"
)

func seeded(t *testing.T) *Memory {
	t.Helper()
	m := New()
	require.NoError(t, m.SeedRegions(context.Background(), []domain.Region{
		{Code: "bra", Name: "Brazil"},
		{Code: "usa", Name: "United States"},
	}))
	return m
}

func row(m *Memory, t *testing.T, region string, year domain.Year, item, variable, value string) *dto.FactRow {
	t.Helper()
	r, err := m.GetRegionByCode(context.Background(), region)
	require.NoError(t, err)
	v, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return &dto.FactRow{
		RegionID: r.ID,
		Region:   region,
		Year:     year,
		Item:     item,
		Variable: variable,
		Unit:     "t",
		Value:    v,
		UUID:     uuid.New(),
	}
}

func TestSeedRegionsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)

	before, err := m.GetRegionByCode(ctx, "bra")
	require.NoError(t, err)

	require.NoError(t, m.SeedRegions(ctx, []domain.Region{{Code: "bra", Name: "Brasil"}}))

	after, err := m.GetRegionByCode(ctx, "bra")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, "Brasil", after.Name)

	regions, err := m.ListRegions(ctx)
	require.NoError(t, err)
	assert.Len(t, regions, 2)
}

func TestGetRegionByCodeNotFound(t *testing.T) {
	m := seeded(t)

	_, err := m.GetRegionByCode(context.Background(), "atl")
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}

func TestUpsertFactsKeyedOnNaturalTuple(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)

	first := row(m, t, "bra", 2020, "wht", "prod", "100")
	require.NoError(t, m.UpsertFacts(ctx, domain.ModuleCrop, []*dto.FactRow{first}))

	second := row(m, t, "bra", 2020, "wht", "prod", "222")
	require.NoError(t, m.UpsertFacts(ctx, domain.ModuleCrop, []*dto.FactRow{second}))

	facts, err := m.ListFacts(ctx, store.FactFilter{Module: domain.ModuleCrop})
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "222", facts[0].Value.String())
	// The identifier from the first insert wins; a value update never
	// reassigns it.
	assert.Equal(t, first.UUID, facts[0].UUID)
}

func TestDeleteRegionBlockedByFacts(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)

	require.NoError(t, m.UpsertFacts(ctx, domain.ModuleCrop, []*dto.FactRow{
		row(m, t, "bra", 2020, "wht", "prod", "100"),
	}))

	err := m.DeleteRegion(ctx, "bra")
	assert.ErrorIs(t, err, constants.ErrRegionReferenced)

	require.NoError(t, m.DeleteRegion(ctx, "usa"))
	_, err = m.GetRegionByCode(ctx, "usa")
	assert.ErrorIs(t, err, constants.ErrDBNotFound)

	err = m.DeleteRegion(ctx, "usa")
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}

func TestSumFactsDecimalExact(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)

	require.NoError(t, m.UpsertFacts(ctx, domain.ModuleCrop, []*dto.FactRow{
		row(m, t, "bra", 2020, "wht", "prod", "0.1"),
		row(m, t, "bra", 2021, "wht", "prod", "0.2"),
		row(m, t, "usa", 2020, "wht", "prod", "0.3"),
	}))

	total, err := m.SumFacts(ctx, store.FactFilter{Module: domain.ModuleCrop, Variable: "prod"})
	require.NoError(t, err)
	assert.Equal(t, "0.6", total.String())

	start, end := 2020, 2020
	total, err = m.SumFacts(ctx, store.FactFilter{
		Module:    domain.ModuleCrop,
		Variable:  "prod",
		YearStart: &start,
		YearEnd:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "0.4", total.String())

	grouped, err := m.SumFactsGrouped(ctx, store.FactFilter{Module: domain.ModuleCrop}, store.GroupByRegion)
	require.NoError(t, err)
	assert.Equal(t, "0.3", grouped["bra"].String())
	assert.Equal(t, "0.3", grouped["usa"].String())
}

func TestSumFactsUnknownRegionFilter(t *testing.T) {
	ctx := context.Background()
	m := seeded(t)

	total, err := m.SumFacts(ctx, store.FactFilter{Module: domain.ModuleCrop, Region: "atl"})
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
