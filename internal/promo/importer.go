package promo

import (
	"context"
	"fmt"
	"sync"

	"github.com/Ziad-Belal/strike-api/internal/repository"

	"github.com/rs/zerolog"
)

// importer implements Importer by loading promo files and upserting every
// code into the repository.
type importer struct {
	loader Loader
	repo   repository.PromoRepository
	logger zerolog.Logger
}

// NewImporter creates a new promo importer.
func NewImporter(loader Loader, repo repository.PromoRepository, logger zerolog.Logger) Importer {
	return &importer{
		loader: loader,
		repo:   repo,
		logger: logger.With().Str("component", "promo-importer").Logger(),
	}
}

// Import reads a promo definition file and upserts every row.
func (i *importer) Import(ctx context.Context, path string) (int, error) {
	promos, err := i.loader.Load(ctx, path)
	if err != nil {
		return 0, err
	}

	for n := range promos {
		if err := i.repo.Upsert(ctx, &promos[n]); err != nil {
			return n, fmt.Errorf("failed to import promo %s: %w", promos[n].Code, err)
		}
	}

	i.logger.Info().
		Str("file", path).
		Int("count", len(promos)).
		Msg("promo codes imported")

	return len(promos), nil
}

// ImportAll imports a set of promo files concurrently and returns the total
// number of codes imported. The first error aborts the batch.
func ImportAll(ctx context.Context, imp Importer, paths []string, logger zerolog.Logger) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	type result struct {
		path  string
		count int
		err   error
	}

	resultChan := make(chan result, len(paths))
	var wg sync.WaitGroup

	for _, path := range paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			count, err := imp.Import(ctx, p)
			resultChan <- result{path: p, count: count, err: err}
		}(path)
	}

	wg.Wait()
	close(resultChan)

	total := 0
	for res := range resultChan {
		if res.err != nil {
			logger.Error().Err(res.err).Str("file", res.path).Msg("promo import failed")
			return total, res.err
		}
		total += res.count
	}

	return total, nil
}
