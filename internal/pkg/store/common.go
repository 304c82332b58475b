package store

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/pkg/constants"
)

const tableRegions = "regions"

// factTables maps each module to its fact partition. The partitions share
// one schema; module dispatch is a table-name lookup.
var factTables = map[domain.Module]string{
	domain.ModuleCrop:      "crop_facts",
	domain.ModuleAnimal:    "animal_facts",
	domain.ModuleBioenergy: "bioenergy_facts",
	domain.ModuleLandCover: "landcover_facts",
}

const pgFKViolation = "23503"

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgFKViolation {
		return constants.ErrRegionReferenced
	}
	return err
}

// builder возвращает squirrel SQL Builder обьект.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
