// Package ingest performs the one-time bulk load of cereal records from a
// semicolon-delimited file into the store.
package ingest

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cereal-api/internal/model"

	"github.com/rs/zerolog"
)

// fieldCount is the number of columns in a valid data row.
const fieldCount = 16

// Store is the subset of the cereal repository the ingestion job needs.
type Store interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, c *model.Cereal) (int, error)
	Count(ctx context.Context) (int, error)
}

// Job reads a delimited cereal file and inserts its rows one at a time.
// Each insert commits independently, so a rerun after a partial load skips
// the rows that already made it in.
type Job struct {
	store  Store
	logger zerolog.Logger
}

// New creates a new ingestion job.
func New(store Store, logger zerolog.Logger) *Job {
	return &Job{
		store:  store,
		logger: logger.With().Str("component", "ingest").Logger(),
	}
}

// RunIfEmpty runs the job only when the store holds no records.
func (j *Job) RunIfEmpty(ctx context.Context, filePath string) error {
	count, err := j.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count existing records: %w", err)
	}

	if count > 0 {
		j.logger.Info().Int("count", count).Msg("data already present, skipping ingestion")
		return nil
	}

	return j.Run(ctx, filePath)
}

// Run ingests the file at filePath. The first two lines (header and
// sub-header) are discarded. Rows that do not split into exactly 16 fields,
// rows whose name is already present, and rows that fail to parse or insert
// are logged and skipped; only file-level errors abort the job.
func (j *Job) Run(ctx context.Context, filePath string) error {
	j.logger.Info().Str("file", filePath).Msg("loading cereal file")

	file, err := os.Open(filePath)
	if err != nil {
		j.logger.Error().Err(err).Str("file", filePath).Msg("failed to open cereal file")
		return fmt.Errorf("failed to open cereal file %s: %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	// Header and sub-header.
	for i := 0; i < 2 && scanner.Scan(); i++ {
	}

	inserted := 0
	rowNum := 0
	for scanner.Scan() {
		rowNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) != fieldCount {
			j.logger.Error().
				Int("row", rowNum).
				Int("fields", len(fields)).
				Msg("incorrect number of values in row")
			continue
		}

		exists, err := j.store.ExistsByName(ctx, fields[0])
		if err != nil {
			j.logger.Error().Err(err).Int("row", rowNum).Str("name", fields[0]).
				Msg("failed to check for existing cereal")
			continue
		}
		if exists {
			j.logger.Info().Str("name", fields[0]).Msg("cereal already exists, skipping insertion")
			continue
		}

		cereal, err := parseRow(fields)
		if err != nil {
			j.logger.Error().Err(err).
				Int("row", rowNum).
				Str("line", line).
				Msg("failed to parse row")
			continue
		}

		if _, err := j.store.Insert(ctx, cereal); err != nil {
			j.logger.Error().Err(err).
				Int("row", rowNum).
				Str("line", line).
				Msg("failed to insert row")
			continue
		}
		inserted++
	}

	if err := scanner.Err(); err != nil {
		j.logger.Error().Err(err).Str("file", filePath).Msg("error reading cereal file")
		return fmt.Errorf("error reading cereal file %s: %w", filePath, err)
	}

	j.logger.Info().
		Str("file", filePath).
		Int("rows_inserted", inserted).
		Msg("cereal file loaded")

	return nil
}

// parseRow converts a 16-field row into a cereal record. Field order:
// name;mfr;type;calories;protein;fat;sodium;fiber;carbo;sugars;potass;
// vitamins;shelf;weight;cups;rating.
func parseRow(fields []string) (*model.Cereal, error) {
	ints := make([]int, 0, 9)
	for _, idx := range []int{3, 4, 5, 6, 9, 10, 11, 12} {
		v, err := strconv.Atoi(strings.TrimSpace(fields[idx]))
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", idx, err)
		}
		ints = append(ints, v)
	}

	floats := make([]float64, 0, 4)
	for _, idx := range []int{7, 8, 13, 14} {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[idx]), 64)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", idx, err)
		}
		floats = append(floats, v)
	}

	rating, err := normalizeRating(fields[15])
	if err != nil {
		return nil, fmt.Errorf("field 15: %w", err)
	}

	return &model.Cereal{
		Name:     fields[0],
		Mfr:      fields[1],
		Type:     fields[2],
		Calories: ints[0],
		Protein:  ints[1],
		Fat:      ints[2],
		Sodium:   ints[3],
		Fiber:    floats[0],
		Carbo:    floats[1],
		Sugars:   ints[4],
		Potass:   ints[5],
		Vitamins: ints[6],
		Shelf:    ints[7],
		Weight:   floats[2],
		Cups:     floats[3],
		Rating:   rating,
	}, nil
}

// normalizeRating strips every period and comma from the raw rating string
// before parsing it as a float. This is deliberately lossy: "68.402973"
// becomes 68402973, not 68.402973. The stored data and its consumers expect
// this digit-concatenated form, so do not replace it with decimal parsing.
func normalizeRating(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ".", "")
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}
