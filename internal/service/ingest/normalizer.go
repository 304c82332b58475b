package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/domain/dto"
	"github.com/ougirez/agrodash/internal/pkg/registry"
)

// Normalizer converts one raw record into a typed, unit-consistent fact
// payload, or a structured rejection naming the first violated invariant.
// Checks run in a fixed order (region, year, item, variable/unit, value)
// so a given malformed row always produces the same rejection.
type Normalizer struct {
	regionIDs map[string]int64
}

// NewNormalizer indexes the seeded region set. A region code missing from
// the store is treated the same as one missing from the registry: the row
// is rejected, never defaulted.
func NewNormalizer(regions []*domain.Region) *Normalizer {
	ids := make(map[string]int64, len(regions))
	for _, r := range regions {
		ids[r.Code] = r.ID
	}
	return &Normalizer{regionIDs: ids}
}

func (n *Normalizer) Normalize(row int, raw dto.RawRow) (*dto.FactRow, *domain.Rejection) {
	region := strings.TrimSpace(raw.Region)
	regionID, ok := n.regionIDs[region]
	if !ok || !registry.KnownRegion(region) {
		return nil, reject(row, domain.ReasonUnknownRegion, "region %q is not a recognized region code", region)
	}

	yearStr := strings.TrimSpace(raw.Year)
	year, err := strconv.Atoi(yearStr)
	if err != nil || !registry.ValidYear(year) {
		return nil, reject(row, domain.ReasonYearOutOfRange, "year %q is outside %d-%d", yearStr, registry.YearMin, registry.YearMax)
	}

	item := strings.TrimSpace(raw.Item)
	variable := strings.TrimSpace(raw.Variable)
	if !registry.KnownItem(item) {
		return nil, reject(row, domain.ReasonUnknownItem, "item %q belongs to no module", item)
	}

	unit, ok := registry.UnitFor(variable)
	if !ok {
		return nil, reject(row, domain.ReasonUnknownVariable, "variable %q is not in the variable set", variable)
	}

	module, _ := registry.ModuleFor(item, variable)
	if !registry.ModuleHasVariable(module, variable) {
		return nil, reject(row, domain.ReasonUnknownVariable, "variable %q is not tracked by the %s module", variable, module)
	}

	// Mismatched units are rejected, never coerced.
	if label := strings.TrimSpace(raw.Unit); label != unit {
		return nil, reject(row, domain.ReasonUnitMismatch, "unit %q does not match canonical unit %q for variable %q", label, unit, variable)
	}

	value, err := decimal.NewFromString(strings.TrimSpace(raw.Value))
	if err != nil {
		return nil, reject(row, domain.ReasonBadValue, "value %q is not numeric", raw.Value)
	}

	return &dto.FactRow{
		Module:   module,
		RegionID: regionID,
		Region:   region,
		Year:     year,
		Item:     item,
		Variable: variable,
		Unit:     unit,
		Value:    value,
		UUID:     uuid.New(),
	}, nil
}

func reject(row int, reason domain.RejectReason, format string, args ...interface{}) *domain.Rejection {
	return &domain.Rejection{
		Row:    row,
		Reason: reason,
		Detail: fmt.Sprintf(format, args...),
	}
}
