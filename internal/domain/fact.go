package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Year = int

// Module partitions the fact schema by commodity domain. Every fact lives
// in exactly one module's table.
type Module string

const (
	ModuleCrop      Module = "crop"
	ModuleAnimal    Module = "animal"
	ModuleBioenergy Module = "bioenergy"
	ModuleLandCover Module = "landcover"
)

func Modules() []Module {
	return []Module{ModuleCrop, ModuleAnimal, ModuleBioenergy, ModuleLandCover}
}

func (m Module) Valid() bool {
	switch m {
	case ModuleCrop, ModuleAnimal, ModuleBioenergy, ModuleLandCover:
		return true
	}
	return false
}

func (m Module) Label() string {
	switch m {
	case ModuleCrop:
		return "Crop Module"
	case ModuleAnimal:
		return "Animal Module"
	case ModuleBioenergy:
		return "Bioenergy Module"
	case ModuleLandCover:
		return "Land Cover"
	}
	return string(m)
}

// Region is immutable reference data, seeded once at setup and never
// mutated by ingestion.
type Region struct {
	ID          int64     `db:"id" json:"-"`
	Code        string    `db:"code" json:"code"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// Fact is one normalized (region, year, item, variable) -> value record
// within a module's partition.
type Fact struct {
	ID        int64           `db:"id"`
	UUID      uuid.UUID       `db:"uuid"`
	RegionID  int64           `db:"region_id"`
	Year      Year            `db:"year"`
	Item      string          `db:"item"`
	Variable  string          `db:"variable"`
	Unit      string          `db:"unit"`
	Value     decimal.Decimal `db:"value"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// Projection is a fact joined with its region, the shape served to the
// presentation layer.
type Projection struct {
	UUID       uuid.UUID       `db:"uuid" json:"uuid"`
	Region     string          `db:"region" json:"region"`
	RegionName string          `db:"region_name" json:"region_name"`
	Year       Year            `db:"year" json:"year"`
	Item       string          `db:"item" json:"item"`
	Variable   string          `db:"variable" json:"variable"`
	Value      decimal.Decimal `db:"value" json:"value"`
	Unit       string          `db:"unit" json:"unit"`

	ItemLabel     string `db:"-" json:"item_label,omitempty"`
	VariableLabel string `db:"-" json:"variable_label,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
