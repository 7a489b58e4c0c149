package service

import (
	"context"
	"fmt"

	"cereal-api/internal/model"
	"cereal-api/internal/query"
	"cereal-api/internal/repository"

	"github.com/rs/zerolog"
)

// cerealService implements CerealService.
type cerealService struct {
	repo   repository.CerealRepository
	logger zerolog.Logger
}

// NewCerealService creates a new cereal service.
func NewCerealService(repo repository.CerealRepository, logger zerolog.Logger) CerealService {
	return &cerealService{
		repo:   repo,
		logger: logger.With().Str("service", "cereal").Logger(),
	}
}

// List runs the optional filter in SQL and the optional sort in memory on
// the filtered set. Filter and sort are independent.
func (s *cerealService) List(ctx context.Context, params ListParams) ([]model.Cereal, error) {
	var filter *query.Filter
	if params.Column != "" && params.Value != "" {
		if !query.ValidColumn(params.Column) {
			s.logger.Warn().Str("column", params.Column).Msg("unknown filter column")
			return nil, model.ErrInvalidFilterColumn
		}
		filter = &query.Filter{
			Column: params.Column,
			Value:  params.Value,
			Op:     query.ParseOperator(params.Operator),
		}
	}

	cereals, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list cereals")
		return nil, fmt.Errorf("failed to list cereals: %w", err)
	}

	if err := query.SortCereals(cereals, params.SortBy); err != nil {
		s.logger.Warn().Str("sort_by", params.SortBy).Msg("unknown sort column")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(cereals)).
		Str("sort_by", params.SortBy).
		Msg("retrieved cereals")

	return cereals, nil
}

// GetByID retrieves a single cereal by identifier.
func (s *cerealService) GetByID(ctx context.Context, id int) (*model.Cereal, error) {
	cereal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("cereal_id", id).Msg("failed to get cereal by ID")
		return nil, fmt.Errorf("failed to get cereal: %w", err)
	}

	if cereal == nil {
		s.logger.Debug().Int("cereal_id", id).Msg("cereal not found")
		return nil, model.ErrCerealNotFound
	}

	return cereal, nil
}

// CreateOrUpdate inserts the payload as a new record when it carries no
// identifier. No duplicate-name pre-check runs on this path; a colliding
// name surfaces as a constraint error from the database. With an
// identifier, the record must exist and every field is overwritten.
func (s *cerealService) CreateOrUpdate(ctx context.Context, req *model.CerealRequest) (*model.Cereal, error) {
	cereal := req.Cereal()

	if req.ID == nil {
		id, err := s.repo.Insert(ctx, cereal)
		if err != nil {
			s.logger.Error().Err(err).Str("name", cereal.Name).Msg("failed to insert cereal")
			return nil, fmt.Errorf("failed to insert cereal: %w", err)
		}
		cereal.ID = id
		s.logger.Info().Int("cereal_id", id).Str("name", cereal.Name).Msg("cereal inserted")
		return cereal, nil
	}

	exists, err := s.repo.ExistsByID(ctx, *req.ID)
	if err != nil {
		s.logger.Error().Err(err).Int("cereal_id", *req.ID).Msg("failed to check cereal existence")
		return nil, fmt.Errorf("failed to check cereal existence: %w", err)
	}
	if !exists {
		s.logger.Debug().Int("cereal_id", *req.ID).Msg("cereal not found for update")
		return nil, model.ErrCerealNotFound
	}

	if err := s.repo.Update(ctx, cereal); err != nil {
		s.logger.Error().Err(err).Int("cereal_id", cereal.ID).Msg("failed to update cereal")
		return nil, fmt.Errorf("failed to update cereal: %w", err)
	}

	s.logger.Info().Int("cereal_id", cereal.ID).Str("name", cereal.Name).Msg("cereal updated")
	return cereal, nil
}

// DeleteByName removes the named record.
func (s *cerealService) DeleteByName(ctx context.Context, name string) error {
	affected, err := s.repo.DeleteByName(ctx, name)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to delete cereal")
		return fmt.Errorf("failed to delete cereal: %w", err)
	}

	if affected == 0 {
		s.logger.Debug().Str("name", name).Msg("cereal not found for delete")
		return model.ErrCerealNotFound
	}

	s.logger.Info().Str("name", name).Msg("cereal deleted")
	return nil
}
