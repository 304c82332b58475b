// Package query is the aggregation engine behind the chart and headline
// stat endpoints. Filter specs are validated against the code registry
// before any storage is touched; an invalid filter fails the whole call,
// never a partial result.
package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/pkg/constants"
	"github.com/ougirez/agrodash/internal/pkg/registry"
	"github.com/ougirez/agrodash/internal/pkg/store"
)

type Service struct {
	store store.Store
}

func NewService(store store.Store) *Service {
	return &Service{store: store}
}

// Filter is the caller-facing filter spec. Empty or "all" on the optional
// dimensions means no filter.
type Filter struct {
	Module    string
	Item      string
	Variable  string
	Region    string
	YearStart *domain.Year
	YearEnd   *domain.Year
}

// HeadlineStat is one cross-module total for a variable-of-interest.
type HeadlineStat struct {
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
	Label string          `json:"label"`
}

func optional(v string) string {
	if v == "all" {
		return ""
	}
	return v
}

// resolve validates every named code in the filter; any invalid member is
// a configuration error that aborts the call.
func resolve(f Filter, requireVariable bool) (store.FactFilter, error) {
	module := domain.Module(f.Module)
	if !module.Valid() {
		return store.FactFilter{}, constants.InvalidFilterf("invalid module %q", f.Module)
	}

	out := store.FactFilter{Module: module}

	if item := optional(f.Item); item != "" {
		if !registry.ModuleHasItem(module, item) {
			return store.FactFilter{}, constants.InvalidFilterf("invalid item %q for module %q", item, module)
		}
		out.Item = item
	}

	variable := optional(f.Variable)
	if variable == "" && requireVariable {
		return store.FactFilter{}, constants.InvalidFilterf("variable is required")
	}
	if variable != "" {
		if !registry.ModuleHasVariable(module, variable) {
			return store.FactFilter{}, constants.InvalidFilterf("invalid variable %q for module %q", variable, module)
		}
		out.Variable = variable
	}

	if region := optional(f.Region); region != "" {
		if !registry.KnownRegion(region) {
			return store.FactFilter{}, constants.InvalidFilterf("invalid region %q", region)
		}
		out.Region = region
	}

	if err := validateYears(f.YearStart, f.YearEnd); err != nil {
		return store.FactFilter{}, err
	}
	out.YearStart = f.YearStart
	out.YearEnd = f.YearEnd

	return out, nil
}

func validateYears(start, end *domain.Year) error {
	if start != nil && !registry.ValidYear(*start) {
		return constants.InvalidFilterf("year %d is outside %d-%d", *start, registry.YearMin, registry.YearMax)
	}
	if end != nil && !registry.ValidYear(*end) {
		return constants.InvalidFilterf("year %d is outside %d-%d", *end, registry.YearMin, registry.YearMax)
	}
	if start != nil && end != nil && *start > *end {
		return constants.InvalidFilterf("year_start %d is after year_end %d", *start, *end)
	}
	return nil
}

// ListProjections returns the matching facts with display labels attached.
func (s *Service) ListProjections(ctx context.Context, f Filter) ([]*domain.Projection, error) {
	filter, err := resolve(f, false)
	if err != nil {
		return nil, err
	}

	projections, err := s.store.ListFacts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("store.ListFacts: %w", err)
	}

	for _, p := range projections {
		p.ItemLabel, _ = registry.ItemLabel(p.Item)
		p.VariableLabel, _ = registry.VariableLabel(p.Variable)
	}

	return projections, nil
}

// Aggregate returns the decimal sum of value grouped by one dimension,
// with the variable's canonical unit.
func (s *Service) Aggregate(ctx context.Context, f Filter, groupBy store.GroupBy) (map[string]decimal.Decimal, string, error) {
	if !groupBy.Valid() {
		return nil, "", constants.InvalidFilterf("invalid group dimension %q", groupBy)
	}

	filter, err := resolve(f, true)
	if err != nil {
		return nil, "", err
	}

	grouped, err := s.store.SumFactsGrouped(ctx, filter, groupBy)
	if err != nil {
		return nil, "", fmt.Errorf("store.SumFactsGrouped: %w", err)
	}

	unit, _ := registry.UnitFor(filter.Variable)
	return grouped, unit, nil
}

// HeadlineStats sums each variable-of-interest across all four module
// partitions into one flat total. A module that does not track the
// variable, or whose item set lacks the requested item, contributes zero.
func (s *Service) HeadlineStats(ctx context.Context, year *domain.Year, item string) (map[string]HeadlineStat, error) {
	if err := validateYears(year, nil); err != nil {
		return nil, err
	}
	item = optional(item)
	if item != "" && !registry.KnownItem(item) {
		return nil, constants.InvalidFilterf("invalid item %q", item)
	}

	totals := make(map[string]decimal.Decimal, len(registry.HeadlineVariables))
	for _, v := range registry.HeadlineVariables {
		totals[v] = decimal.Zero
	}

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)

	for _, module := range domain.Modules() {
		for _, variable := range registry.HeadlineVariables {
			if !registry.ModuleHasVariable(module, variable) {
				continue
			}
			if item != "" && !registry.ModuleHasItem(module, item) {
				continue
			}

			module, variable := module, variable
			eg.Go(func() error {
				filter := store.FactFilter{
					Module:    module,
					Variable:  variable,
					Item:      item,
					YearStart: year,
					YearEnd:   year,
				}
				sum, err := s.store.SumFacts(egCtx, filter)
				if err != nil {
					return fmt.Errorf("sum %s/%s: %w", module, variable, err)
				}
				mu.Lock()
				totals[variable] = totals[variable].Add(sum)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	stats := make(map[string]HeadlineStat, len(totals))
	for variable, total := range totals {
		unit, _ := registry.UnitFor(variable)
		label, _ := registry.VariableLabel(variable)
		stats[variable] = HeadlineStat{Value: total, Unit: unit, Label: label}
	}

	return stats, nil
}

// ListRegions returns the seeded reference set.
func (s *Service) ListRegions(ctx context.Context) ([]*domain.Region, error) {
	regions, err := s.store.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListRegions: %w", err)
	}

	return regions, nil
}
