// Package memory provides an in-memory Store for tests and local runs
// without Postgres. It mirrors the persistent semantics: upsert keyed on
// the natural uniqueness tuple, stable identifiers, region delete
// protection, decimal sums.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/domain/dto"
	"github.com/ougirez/agrodash/internal/pkg/constants"
	"github.com/ougirez/agrodash/internal/pkg/store"
)

type factKey struct {
	RegionID int64
	Year     domain.Year
	Item     string
	Variable string
}

type fact struct {
	UUID      uuid.UUID
	Unit      string
	Value     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Memory struct {
	mu      sync.RWMutex
	nextID  int64
	regions map[string]*domain.Region
	byID    map[int64]string
	facts   map[domain.Module]map[factKey]*fact
}

func New() *Memory {
	m := &Memory{
		nextID:  1,
		regions: make(map[string]*domain.Region),
		byID:    make(map[int64]string),
		facts:   make(map[domain.Module]map[factKey]*fact),
	}
	for _, module := range domain.Modules() {
		m.facts[module] = make(map[factKey]*fact)
	}
	return m
}

func (m *Memory) Migrate(_ context.Context) error {
	return nil
}

func (m *Memory) SeedRegions(_ context.Context, regions []domain.Region) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, r := range regions {
		if existing, ok := m.regions[r.Code]; ok {
			existing.Name = r.Name
			existing.Description = r.Description
			existing.UpdatedAt = now
			continue
		}
		region := r
		region.ID = m.nextID
		region.CreatedAt = now
		region.UpdatedAt = now
		m.nextID++
		m.regions[region.Code] = &region
		m.byID[region.ID] = region.Code
	}
	return nil
}

func (m *Memory) ListRegions(_ context.Context) ([]*domain.Region, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Region, 0, len(m.regions))
	for _, r := range m.regions {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *Memory) GetRegionByCode(_ context.Context, code string) (*domain.Region, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.regions[code]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *Memory) DeleteRegion(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.regions[code]
	if !ok {
		return fmt.Errorf("region %s: %w", code, constants.ErrDBNotFound)
	}
	for _, partition := range m.facts {
		for k := range partition {
			if k.RegionID == r.ID {
				return constants.ErrRegionReferenced
			}
		}
	}
	delete(m.byID, r.ID)
	delete(m.regions, code)
	return nil
}

func (m *Memory) UpsertFacts(_ context.Context, module domain.Module, rows []*dto.FactRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	partition, ok := m.facts[module]
	if !ok {
		return fmt.Errorf("unknown module %q", module)
	}

	now := time.Now()
	for _, row := range rows {
		if _, ok := m.byID[row.RegionID]; !ok {
			return fmt.Errorf("region id %d: %w", row.RegionID, constants.ErrDBNotFound)
		}
		k := factKey{RegionID: row.RegionID, Year: row.Year, Item: row.Item, Variable: row.Variable}
		if existing, ok := partition[k]; ok {
			existing.Value = row.Value
			existing.UpdatedAt = now
			continue
		}
		partition[k] = &fact{
			UUID:      row.UUID,
			Unit:      row.Unit,
			Value:     row.Value,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return nil
}

func (m *Memory) matchLocked(filter store.FactFilter) ([]factKey, []*fact, error) {
	partition, ok := m.facts[filter.Module]
	if !ok {
		return nil, nil, fmt.Errorf("unknown module %q", filter.Module)
	}

	var regionID int64 = -1
	if filter.Region != "" {
		r, ok := m.regions[filter.Region]
		if !ok {
			return nil, nil, nil
		}
		regionID = r.ID
	}

	var keys []factKey
	var facts []*fact
	for k, f := range partition {
		if regionID >= 0 && k.RegionID != regionID {
			continue
		}
		if filter.Item != "" && k.Item != filter.Item {
			continue
		}
		if filter.Variable != "" && k.Variable != filter.Variable {
			continue
		}
		if filter.YearStart != nil && k.Year < *filter.YearStart {
			continue
		}
		if filter.YearEnd != nil && k.Year > *filter.YearEnd {
			continue
		}
		keys = append(keys, k)
		facts = append(facts, f)
	}
	return keys, facts, nil
}

func (m *Memory) ListFacts(_ context.Context, filter store.FactFilter) ([]*domain.Projection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys, facts, err := m.matchLocked(filter)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Projection, 0, len(keys))
	for i, k := range keys {
		code := m.byID[k.RegionID]
		out = append(out, &domain.Projection{
			UUID:       facts[i].UUID,
			Region:     code,
			RegionName: m.regions[code].Name,
			Year:       k.Year,
			Item:       k.Item,
			Variable:   k.Variable,
			Value:      facts[i].Value,
			Unit:       facts[i].Unit,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		if a.Item != b.Item {
			return a.Item < b.Item
		}
		if a.Variable != b.Variable {
			return a.Variable < b.Variable
		}
		return a.Year < b.Year
	})
	return out, nil
}

func (m *Memory) SumFacts(_ context.Context, filter store.FactFilter) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, facts, err := m.matchLocked(filter)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, f := range facts {
		total = total.Add(f.Value)
	}
	return total, nil
}

func (m *Memory) SumFactsGrouped(_ context.Context, filter store.FactFilter, groupBy store.GroupBy) (map[string]decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys, facts, err := m.matchLocked(filter)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]decimal.Decimal)
	for i, k := range keys {
		var grp string
		switch groupBy {
		case store.GroupByYear:
			grp = strconv.Itoa(k.Year)
		case store.GroupByItem:
			grp = k.Item
		case store.GroupByRegion:
			grp = m.byID[k.RegionID]
		default:
			return nil, fmt.Errorf("unknown group dimension %q", groupBy)
		}
		grouped[grp] = grouped[grp].Add(facts[i].Value)
	}
	return grouped, nil
}
