package store

import (
	"context"
	"fmt"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/pkg/registry"
)

const regionsSchema = `
create table if not exists regions (
	id bigserial primary key,
	code text not null unique,
	name text not null,
	description text not null default '',
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);`

// factSchema is instantiated once per module partition. The year check
// and the natural uniqueness key are enforced here so no write path can
// bypass them.
const factSchema = `
create table if not exists %[1]s (
	id bigserial primary key,
	uuid uuid not null,
	region_id bigint not null references regions (id) on delete restrict,
	year int not null check (year between %[2]d and %[3]d),
	item text not null,
	variable text not null,
	unit text not null,
	value numeric not null,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now(),
	unique (region_id, year, item, variable)
);
create index if not exists idx_%[1]s_region_item_year on %[1]s (region_id, item, year);
create index if not exists idx_%[1]s_item_variable on %[1]s (item, variable);`

func (s *store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, regionsSchema); err != nil {
		return fmt.Errorf("migrate regions: %w", err)
	}

	for _, module := range domain.Modules() {
		ddl := fmt.Sprintf(factSchema, factTables[module], registry.YearMin, registry.YearMax)
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("migrate %s: %w", factTables[module], err)
		}
	}

	return nil
}
