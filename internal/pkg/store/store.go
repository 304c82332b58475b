package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/domain/dto"
	"github.com/ougirez/agrodash/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

// GroupBy selects the dimension a grouped aggregate is keyed on.
type GroupBy string

const (
	GroupByYear   GroupBy = "year"
	GroupByItem   GroupBy = "item"
	GroupByRegion GroupBy = "region"
)

func (g GroupBy) Valid() bool {
	switch g {
	case GroupByYear, GroupByItem, GroupByRegion:
		return true
	}
	return false
}

// FactFilter narrows a fact query. Module is always required; empty
// Region/Item/Variable mean no filter on that dimension. Year bounds are
// inclusive.
type FactFilter struct {
	Module    domain.Module
	Region    string
	Item      string
	Variable  string
	YearStart *domain.Year
	YearEnd   *domain.Year
}

// Store is shared by all readers and the single ingestion writer per
// module. Callers serialize ingestion runs per module; reads are safe to
// run concurrently.
type Store interface {
	Migrate(ctx context.Context) error

	SeedRegions(ctx context.Context, regions []domain.Region) error
	ListRegions(ctx context.Context) ([]*domain.Region, error)
	GetRegionByCode(ctx context.Context, code string) (*domain.Region, error)
	// DeleteRegion fails with ErrRegionReferenced while any fact
	// references the region.
	DeleteRegion(ctx context.Context, code string) error

	// UpsertFacts applies one batch keyed on (region, year, item,
	// variable); existing rows get the new value, fresh rows get the
	// generated identifier.
	UpsertFacts(ctx context.Context, module domain.Module, rows []*dto.FactRow) error
	ListFacts(ctx context.Context, filter FactFilter) ([]*domain.Projection, error)
	SumFacts(ctx context.Context, filter FactFilter) (decimal.Decimal, error)
	SumFactsGrouped(ctx context.Context, filter FactFilter, groupBy GroupBy) (map[string]decimal.Decimal, error)
}

type store struct {
	pool *Pool
}

func NewStore(pool *Pool) Store {
	return &store{pool: pool}
}
