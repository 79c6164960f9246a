package promo

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped promo definition files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based promo loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "promo-loader").Logger(),
	}
}

// Load reads a gzipped CSV promo file and returns the parsed codes.
// Expected columns: code, discount_type, discount_value, max_usages,
// expires_at (RFC 3339), is_active. Empty max_usages and expires_at mean
// unlimited and non-expiring.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.PromoCode, error) {
	l.logger.Info().Str("file", path).Msg("loading promo file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open promo file")
		return nil, fmt.Errorf("failed to open promo file %s: %w", path, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
	}
	defer gzipReader.Close()

	promos, err := parsePromoCSV(ctx, gzipReader)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to parse promo file")
		return nil, fmt.Errorf("failed to parse promo file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("count", len(promos)).
		Msg("promo file loaded")

	return promos, nil
}

// parsePromoCSV reads promo rows from a CSV stream. A header row starting
// with "code" is skipped.
func parsePromoCSV(ctx context.Context, r io.Reader) ([]model.PromoCode, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 6
	reader.TrimLeadingSpace = true

	var promos []model.PromoCode
	line := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		if line == 1 && strings.EqualFold(record[0], "code") {
			continue
		}

		promo, err := parsePromoRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		promos = append(promos, promo)
	}

	return promos, nil
}

func parsePromoRecord(record []string) (model.PromoCode, error) {
	code := model.NormalizePromoCode(record[0])
	if code == "" {
		return model.PromoCode{}, fmt.Errorf("empty promo code")
	}

	discountType := strings.ToLower(strings.TrimSpace(record[1]))
	if discountType != model.DiscountPercentage && discountType != model.DiscountFixed {
		return model.PromoCode{}, fmt.Errorf("unknown discount type %q", record[1])
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil || value <= 0 {
		return model.PromoCode{}, fmt.Errorf("invalid discount value %q", record[2])
	}

	var maxUsages *int
	if s := strings.TrimSpace(record[3]); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return model.PromoCode{}, fmt.Errorf("invalid max usages %q", record[3])
		}
		maxUsages = &n
	}

	var expiresAt *time.Time
	if s := strings.TrimSpace(record[4]); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return model.PromoCode{}, fmt.Errorf("invalid expiration %q", record[4])
		}
		expiresAt = &t
	}

	active := true
	if s := strings.TrimSpace(record[5]); s != "" {
		active, err = strconv.ParseBool(s)
		if err != nil {
			return model.PromoCode{}, fmt.Errorf("invalid active flag %q", record[5])
		}
	}

	return model.PromoCode{
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: value,
		MaxUsages:     maxUsages,
		ExpiresAt:     expiresAt,
		Active:        active,
	}, nil
}
