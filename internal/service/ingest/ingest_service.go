// Package ingest implements the ingestion pipeline: it streams delimited
// projection rows, normalizes each against the code registry, and applies
// the accepted facts as batched upserts. Rows fail independently; one
// bad row never aborts the load. The caller serializes runs per module,
// runs on disjoint modules only touch disjoint partitions.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/domain/dto"
	"github.com/ougirez/agrodash/internal/pkg/logger"
	"github.com/ougirez/agrodash/internal/pkg/store"
)

var columns = []string{"region", "year", "item", "variable", "unit", "value"}

type Service struct {
	store     store.Store
	batchSize int
}

func NewService(store store.Store, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &Service{store: store, batchSize: batchSize}
}

// RunFile ingests a CSV file at path and returns the run summary.
func (s *Service) RunFile(ctx context.Context, path string) (*domain.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return s.Run(ctx, f)
}

// Run ingests delimited rows with header
// {region, year, item, variable, unit, value}. Re-running on an unchanged
// source is a no-op: every accepted row upserts onto the same uniqueness
// key.
func (s *Service) Run(ctx context.Context, r io.Reader) (*domain.Summary, error) {
	regions, err := s.store.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListRegions: %w", err)
	}
	normalizer := NewNormalizer(regions)

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// A ragged row is that row's problem, not the stream's: disable the
	// field-count check and let the normalizer reject what is missing.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	summary := &domain.Summary{}
	batches := make(map[domain.Module][]*dto.FactRow, len(domain.Modules()))

	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		fact, rejection := normalizer.Normalize(row, rawRow(record, index))
		if rejection != nil {
			summary.Rejected++
			summary.Rejections = append(summary.Rejections, *rejection)
			logger.Warnf(ctx, "row %d rejected: %s: %s", rejection.Row, rejection.Reason, rejection.Detail)
			continue
		}

		summary.Accepted++
		batches[fact.Module] = append(batches[fact.Module], fact)

		if len(batches[fact.Module]) >= s.batchSize {
			if err := s.store.UpsertFacts(ctx, fact.Module, batches[fact.Module]); err != nil {
				return nil, fmt.Errorf("flush %s batch: %w", fact.Module, err)
			}
			batches[fact.Module] = nil
		}
	}

	// Remaining partial batches hit disjoint tables, flush them concurrently.
	eg, egCtx := errgroup.WithContext(ctx)
	for module, batch := range batches {
		if len(batch) == 0 {
			continue
		}
		module, batch := module, batch
		eg.Go(func() error {
			if err := s.store.UpsertFacts(egCtx, module, batch); err != nil {
				return fmt.Errorf("flush %s batch: %w", module, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger.Infof(ctx, "ingestion complete: accepted=%d rejected=%d", summary.Accepted, summary.Rejected)
	return summary, nil
}

func mapHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q in header", col)
		}
	}
	return index, nil
}

func rawRow(record []string, index map[string]int) dto.RawRow {
	get := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}
	return dto.RawRow{
		Region:   get("region"),
		Year:     get("year"),
		Item:     get("item"),
		Variable: get("variable"),
		Unit:     get("unit"),
		Value:    get("value"),
	}
}
