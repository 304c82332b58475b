package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ougirez/agrodash/internal/domain"
)

// RawRow is one untyped input record as read from the source, header
// {region, year, item, variable, unit, value}.
type RawRow struct {
	Region   string
	Year     string
	Item     string
	Variable string
	Unit     string
	Value    string
}

// FactRow is a validated fact payload tagged with its target module,
// ready for the store. UUID is generated at normalization time; the
// upsert only uses it when the row is a fresh insert, so re-ingesting an
// existing logical row never changes the stored identifier.
type FactRow struct {
	Module   domain.Module
	RegionID int64
	Region   string
	Year     domain.Year
	Item     string
	Variable string
	Unit     string
	Value    decimal.Decimal
	UUID     uuid.UUID
}
