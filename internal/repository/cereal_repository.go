package repository

import (
	"context"
	"fmt"

	"cereal-api/internal/model"
	"cereal-api/internal/query"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const cerealColumns = `id, name, mfr, type, calories, protein, fat, sodium, fiber, carbo, sugars, potass, vitamins, shelf, weight, cups, rating`

// cerealRepository implements the CerealRepository interface using PostgreSQL.
type cerealRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCerealRepository creates a new PostgreSQL-backed cereal repository.
func NewCerealRepository(pool *pgxpool.Pool, logger zerolog.Logger) CerealRepository {
	return &cerealRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cereal").Logger(),
	}
}

func scanCereal(row pgx.Row, c *model.Cereal) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Mfr, &c.Type,
		&c.Calories, &c.Protein, &c.Fat, &c.Sodium,
		&c.Fiber, &c.Carbo, &c.Sugars, &c.Potass,
		&c.Vitamins, &c.Shelf, &c.Weight, &c.Cups, &c.Rating,
	)
}

// List retrieves cereals, optionally restricted to a single-column
// comparison. The filter column has been validated against the allow-list
// in the query package before it reaches the SQL text.
func (r *cerealRepository) List(ctx context.Context, filter *query.Filter) ([]model.Cereal, error) {
	q := `SELECT ` + cerealColumns + ` FROM cereals`
	var args []any

	if filter != nil {
		clause, filterArgs := filter.Where()
		q += clause
		args = filterArgs
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("query", q).Msg("failed to query cereals")
		return nil, fmt.Errorf("failed to query cereals: %w", err)
	}
	defer rows.Close()

	var cereals []model.Cereal
	for rows.Next() {
		var c model.Cereal
		if err := scanCereal(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cereal row")
			return nil, fmt.Errorf("failed to scan cereal: %w", err)
		}
		cereals = append(cereals, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cereal rows")
		return nil, fmt.Errorf("error iterating cereals: %w", err)
	}

	return cereals, nil
}

// GetByID retrieves a single cereal by its identifier.
func (r *cerealRepository) GetByID(ctx context.Context, id int) (*model.Cereal, error) {
	q := `SELECT ` + cerealColumns + ` FROM cereals WHERE id = $1`

	var c model.Cereal
	err := scanCereal(r.pool.QueryRow(ctx, q, id), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int("cereal_id", id).Msg("cereal not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("cereal_id", id).Msg("failed to query cereal")
		return nil, fmt.Errorf("failed to query cereal: %w", err)
	}

	return &c, nil
}

// Insert creates a new cereal record and returns its assigned identifier.
func (r *cerealRepository) Insert(ctx context.Context, c *model.Cereal) (int, error) {
	q := `
		INSERT INTO cereals (name, mfr, type, calories, protein, fat, sodium, fiber, carbo, sugars, potass, vitamins, shelf, weight, cups, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	var id int
	err := r.pool.QueryRow(ctx, q,
		c.Name, c.Mfr, c.Type,
		c.Calories, c.Protein, c.Fat, c.Sodium,
		c.Fiber, c.Carbo, c.Sugars, c.Potass,
		c.Vitamins, c.Shelf, c.Weight, c.Cups, c.Rating,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).
			Str("name", c.Name).
			Str("query", q).
			Msg("failed to insert cereal")
		return 0, fmt.Errorf("failed to insert cereal: %w", err)
	}

	return id, nil
}

// Update overwrites all fields of the record with the given identifier.
func (r *cerealRepository) Update(ctx context.Context, c *model.Cereal) error {
	q := `
		UPDATE cereals
		SET name = $1, mfr = $2, type = $3, calories = $4, protein = $5, fat = $6, sodium = $7,
		    fiber = $8, carbo = $9, sugars = $10, potass = $11, vitamins = $12, shelf = $13,
		    weight = $14, cups = $15, rating = $16
		WHERE id = $17
	`

	_, err := r.pool.Exec(ctx, q,
		c.Name, c.Mfr, c.Type,
		c.Calories, c.Protein, c.Fat, c.Sodium,
		c.Fiber, c.Carbo, c.Sugars, c.Potass,
		c.Vitamins, c.Shelf, c.Weight, c.Cups, c.Rating,
		c.ID,
	)
	if err != nil {
		r.logger.Error().Err(err).Int("cereal_id", c.ID).Msg("failed to update cereal")
		return fmt.Errorf("failed to update cereal: %w", err)
	}

	return nil
}

// DeleteByName removes the record with the given name.
func (r *cerealRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cereals WHERE name = $1`, name)
	if err != nil {
		r.logger.Error().Err(err).Str("name", name).Msg("failed to delete cereal")
		return 0, fmt.Errorf("failed to delete cereal: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ExistsByID reports whether a record with the given identifier exists.
func (r *cerealRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cereals WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Int("cereal_id", id).Msg("failed to check cereal existence")
		return false, fmt.Errorf("failed to check cereal existence: %w", err)
	}

	return exists, nil
}

// ExistsByName reports whether a record with the given name exists.
func (r *cerealRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cereals WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("name", name).Msg("failed to check cereal existence")
		return false, fmt.Errorf("failed to check cereal existence: %w", err)
	}

	return exists, nil
}

// Count returns the total number of cereal records.
func (r *cerealRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cereals`).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count cereals")
		return 0, fmt.Errorf("failed to count cereals: %w", err)
	}

	return count, nil
}
