package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/domain/dto"
	"github.com/ougirez/agrodash/internal/pkg/store/xpgx"
)

// UpsertFacts writes one batch into the module's partition. The conflict
// branch only touches value and updated_at, so uuid and created_at stay
// stable across re-ingestion and the whole batch is idempotent.
func (s *store) UpsertFacts(ctx context.Context, module domain.Module, rows []*dto.FactRow) error {
	if len(rows) == 0 {
		return nil
	}

	table, ok := factTables[module]
	if !ok {
		return fmt.Errorf("unknown module %q", module)
	}

	query := builder().Insert(table).
		Columns("uuid", "region_id", "year", "item", "variable", "unit", "value")

	for _, row := range rows {
		query = query.Values(row.UUID, row.RegionID, row.Year, row.Item, row.Variable, row.Unit, row.Value)
	}

	query = query.Suffix(`
on conflict (region_id, year, item, variable)
do update
set
	value = excluded.value,
	updated_at = now()`)

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return fmt.Errorf("upsert %s: %w", table, wrapErr(err))
	}

	return nil
}

func factSelect(table string, filter FactFilter) sq.SelectBuilder {
	query := builder().Select(
		"f.uuid", "r.code as region", "r.name as region_name",
		"f.year", "f.item", "f.variable", "f.value", "f.unit").
		From(table + " f").
		Join(tableRegions + " r on r.id = f.region_id")

	return applyFilter(query, filter)
}

func applyFilter(query sq.SelectBuilder, filter FactFilter) sq.SelectBuilder {
	if filter.Region != "" {
		query = query.Where(sq.Eq{"r.code": filter.Region})
	}
	if filter.Item != "" {
		query = query.Where(sq.Eq{"f.item": filter.Item})
	}
	if filter.Variable != "" {
		query = query.Where(sq.Eq{"f.variable": filter.Variable})
	}
	if filter.YearStart != nil {
		query = query.Where(sq.GtOrEq{"f.year": *filter.YearStart})
	}
	if filter.YearEnd != nil {
		query = query.Where(sq.LtOrEq{"f.year": *filter.YearEnd})
	}
	return query
}

func (s *store) ListFacts(ctx context.Context, filter FactFilter) ([]*domain.Projection, error) {
	table, ok := factTables[filter.Module]
	if !ok {
		return nil, fmt.Errorf("unknown module %q", filter.Module)
	}

	query := factSelect(table, filter).
		OrderBy("r.code", "f.item", "f.variable", "f.year")

	selected, err := xpgx.Selectx[domain.Projection](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

type sumRow struct {
	Total decimal.Decimal `db:"total"`
}

type groupedSumRow struct {
	Grp   string          `db:"grp"`
	Total decimal.Decimal `db:"total"`
}

func (s *store) SumFacts(ctx context.Context, filter FactFilter) (decimal.Decimal, error) {
	table, ok := factTables[filter.Module]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown module %q", filter.Module)
	}

	query := applyFilter(
		builder().Select("coalesce(sum(f.value), 0) as total").
			From(table+" f").
			Join(tableRegions+" r on r.id = f.region_id"),
		filter,
	)

	row, err := xpgx.Getx[sumRow](ctx, s.pool, query)
	if err != nil {
		return decimal.Zero, wrapErr(err)
	}

	return row.Total, nil
}

func (s *store) SumFactsGrouped(ctx context.Context, filter FactFilter, groupBy GroupBy) (map[string]decimal.Decimal, error) {
	table, ok := factTables[filter.Module]
	if !ok {
		return nil, fmt.Errorf("unknown module %q", filter.Module)
	}

	var groupExpr string
	switch groupBy {
	case GroupByYear:
		groupExpr = "f.year::text"
	case GroupByItem:
		groupExpr = "f.item"
	case GroupByRegion:
		groupExpr = "r.code"
	default:
		return nil, fmt.Errorf("unknown group dimension %q", groupBy)
	}

	query := applyFilter(
		builder().Select(groupExpr+" as grp", "sum(f.value) as total").
			From(table+" f").
			Join(tableRegions+" r on r.id = f.region_id"),
		filter,
	).GroupBy(groupExpr).OrderBy("grp")

	rows, err := xpgx.Selectx[groupedSumRow](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	grouped := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		grouped[row.Grp] = row.Total
	}

	return grouped, nil
}
