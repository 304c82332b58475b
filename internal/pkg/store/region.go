package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/pkg/constants"
	"github.com/ougirez/agrodash/internal/pkg/store/xpgx"
)

var regionColumns = []string{"id", "code", "name", "description", "created_at", "updated_at"}

// SeedRegions inserts the reference set once; re-running refreshes names
// without ever deleting or renumbering existing rows.
func (s *store) SeedRegions(ctx context.Context, regions []domain.Region) error {
	if len(regions) == 0 {
		return nil
	}

	query := builder().Insert(tableRegions).
		Columns("code", "name", "description")

	for _, r := range regions {
		query = query.Values(r.Code, r.Name, r.Description)
	}

	query = query.Suffix(`
on conflict (code)
do update
set
	name = excluded.name,
	description = excluded.description,
	updated_at = now()`)

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return fmt.Errorf("seed regions: %w", wrapErr(err))
	}

	return nil
}

func (s *store) ListRegions(ctx context.Context) ([]*domain.Region, error) {
	query := builder().Select(regionColumns...).
		From(tableRegions).
		OrderBy("code")

	selected, err := xpgx.Selectx[domain.Region](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) GetRegionByCode(ctx context.Context, code string) (*domain.Region, error) {
	query := builder().Select(regionColumns...).
		From(tableRegions).
		Where(sq.Eq{"code": code})

	selected, err := xpgx.Getx[domain.Region](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) DeleteRegion(ctx context.Context, code string) error {
	query := builder().Delete(tableRegions).
		Where(sq.Eq{"code": code})

	tag, err := s.pool.Execx(ctx, query)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("region %s: %w", code, constants.ErrDBNotFound)
	}

	return nil
}
