package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/repository"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

// TeamService exposes the team/domain skill taxonomy and the task views
// derived from categorization records.
type TeamService struct {
	teams           repository.TeamRepository
	tasks           repository.TaskRepository
	categorizations repository.CategorizationRepository
}

// TeamDependencies bundles repositories for the team service.
type TeamDependencies struct {
	TeamRepo           repository.TeamRepository
	TaskRepo           repository.TaskRepository
	CategorizationRepo repository.CategorizationRepository
}

// DomainInput carries taxonomy domain create/update fields.
type DomainInput struct {
	ID          string
	Name        string
	Description string
	Skills      []string
	Color       string
}

// TeamOverview pairs a team with its domains.
type TeamOverview struct {
	Team    domain.Team             `json:"team"`
	Domains []domain.TaxonomyDomain `json:"domains"`
}

// NewTeamService constructs the service.
func NewTeamService(deps TeamDependencies) *TeamService {
	return &TeamService{
		teams:           deps.TeamRepo,
		tasks:           deps.TaskRepo,
		categorizations: deps.CategorizationRepo,
	}
}

// ListTeams returns all teams with their domains.
func (s *TeamService) ListTeams(ctx context.Context) ([]TeamOverview, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	result := make([]TeamOverview, 0, len(teams))
	for _, team := range teams {
		domains, err := s.teams.ListDomains(ctx, team.Key)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		result = append(result, TeamOverview{Team: team, Domains: domains})
	}
	return result, nil
}

// GetTeam returns one team with its domains.
func (s *TeamService) GetTeam(ctx context.Context, key string) (*TeamOverview, error) {
	team, err := s.teams.GetTeam(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("team", map[string]any{"team_key": key})
		}
		return nil, apperrors.MapError(err)
	}
	domains, err := s.teams.ListDomains(ctx, key)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &TeamOverview{Team: *team, Domains: domains}, nil
}

// CreateDomain adds a skill domain under a team.
func (s *TeamService) CreateDomain(ctx context.Context, teamKey string, input DomainInput) (*domain.TaxonomyDomain, error) {
	if _, err := s.teams.GetTeam(ctx, teamKey); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("team", map[string]any{"team_key": teamKey})
		}
		return nil, apperrors.MapError(err)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("domain name required", nil)
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = slugify(input.Name)
	}
	d := &domain.TaxonomyDomain{
		ID:          id,
		TeamKey:     teamKey,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Skills:      input.Skills,
		Color:       input.Color,
	}
	if err := s.teams.CreateDomain(ctx, d); err != nil {
		return nil, apperrors.MapError(err)
	}
	return d, nil
}

// UpdateDomain replaces a domain's fields. Existing categorizations are not
// recomputed.
func (s *TeamService) UpdateDomain(ctx context.Context, teamKey, domainID string, input DomainInput) (*domain.TaxonomyDomain, error) {
	d, err := s.teams.GetDomain(ctx, teamKey, domainID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("domain", map[string]any{"team_key": teamKey, "domain_id": domainID})
		}
		return nil, apperrors.MapError(err)
	}

	if strings.TrimSpace(input.Name) != "" {
		d.Name = strings.TrimSpace(input.Name)
	}
	d.Description = strings.TrimSpace(input.Description)
	if input.Skills != nil {
		d.Skills = input.Skills
	}
	if input.Color != "" {
		d.Color = input.Color
	}

	if err := s.teams.UpdateDomain(ctx, d); err != nil {
		return nil, apperrors.MapError(err)
	}
	return d, nil
}

// DeleteDomain removes a domain and the categorization records pointing at
// it, so tasks fall back to uncategorized.
func (s *TeamService) DeleteDomain(ctx context.Context, teamKey, domainID string) error {
	if err := s.teams.DeleteDomain(ctx, teamKey, domainID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("domain", map[string]any{"team_key": teamKey, "domain_id": domainID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// DomainTasks returns tasks categorized under the given domain.
func (s *TeamService) DomainTasks(ctx context.Context, teamKey, domainID string) ([]domain.Task, error) {
	if _, err := s.teams.GetDomain(ctx, teamKey, domainID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("domain", map[string]any{"team_key": teamKey, "domain_id": domainID})
		}
		return nil, apperrors.MapError(err)
	}
	cats, err := s.categorizations.ListByDomain(ctx, teamKey, domainID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	tasks := make([]domain.Task, 0, len(cats))
	for _, cat := range cats {
		task, err := s.tasks.GetByID(ctx, cat.TaskID)
		if err != nil {
			// Stale index entry for a deleted task; skip it.
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, apperrors.MapError(err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

// TaskCategorization returns the categorization record for a task, or nil
// when the task is uncategorized.
func (s *TeamService) TaskCategorization(ctx context.Context, taskID string) (*domain.TaskCategorization, error) {
	cat, err := s.categorizations.GetByTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.MapError(err)
	}
	return cat, nil
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
