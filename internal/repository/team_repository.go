package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/taskflow/internal/domain"
)

// TeamRepository manages the team/domain skill taxonomy.
type TeamRepository interface {
	ListTeams(ctx context.Context) ([]domain.Team, error)
	GetTeam(ctx context.Context, key string) (*domain.Team, error)
	ListDomains(ctx context.Context, teamKey string) ([]domain.TaxonomyDomain, error)
	ListAllDomains(ctx context.Context) ([]domain.TaxonomyDomain, error)
	GetDomain(ctx context.Context, teamKey, domainID string) (*domain.TaxonomyDomain, error)
	CreateDomain(ctx context.Context, d *domain.TaxonomyDomain) error
	UpdateDomain(ctx context.Context, d *domain.TaxonomyDomain) error
	DeleteDomain(ctx context.Context, teamKey, domainID string) error
}

type teamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository constructs repository.
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	const query = `
        SELECT key, name, description, created_at, updated_at
        FROM teams ORDER BY key ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Team
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.Key, &team.Name, &team.Description, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, team)
	}
	return result, rows.Err()
}

func (r *teamRepository) GetTeam(ctx context.Context, key string) (*domain.Team, error) {
	const query = `
        SELECT key, name, description, created_at, updated_at
        FROM teams WHERE key=$1`
	var team domain.Team
	if err := r.pool.QueryRow(ctx, query, key).Scan(
		&team.Key,
		&team.Name,
		&team.Description,
		&team.CreatedAt,
		&team.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &team, nil
}

const domainColumns = `id, team_key, name, description, skills, color, created_at, updated_at`

func (r *teamRepository) ListDomains(ctx context.Context, teamKey string) ([]domain.TaxonomyDomain, error) {
	query := `SELECT ` + domainColumns + ` FROM taxonomy_domains WHERE team_key=$1 ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, teamKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDomains(rows)
}

// ListAllDomains returns every domain ordered by team key then domain id.
// Categorization relies on this stable order for its first-seen-wins
// tie handling.
func (r *teamRepository) ListAllDomains(ctx context.Context) ([]domain.TaxonomyDomain, error) {
	query := `SELECT ` + domainColumns + ` FROM taxonomy_domains ORDER BY team_key ASC, id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDomains(rows)
}

func (r *teamRepository) GetDomain(ctx context.Context, teamKey, domainID string) (*domain.TaxonomyDomain, error) {
	query := `SELECT ` + domainColumns + ` FROM taxonomy_domains WHERE team_key=$1 AND id=$2`
	var d domain.TaxonomyDomain
	if err := r.pool.QueryRow(ctx, query, teamKey, domainID).Scan(
		&d.ID,
		&d.TeamKey,
		&d.Name,
		&d.Description,
		&d.Skills,
		&d.Color,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *teamRepository) CreateDomain(ctx context.Context, d *domain.TaxonomyDomain) error {
	const query = `
        INSERT INTO taxonomy_domains (id, team_key, name, description, skills, color)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		d.ID,
		d.TeamKey,
		d.Name,
		d.Description,
		d.Skills,
		d.Color,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *teamRepository) UpdateDomain(ctx context.Context, d *domain.TaxonomyDomain) error {
	const query = `
        UPDATE taxonomy_domains
        SET name=$1, description=$2, skills=$3, color=$4, updated_at=NOW()
        WHERE team_key=$5 AND id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		d.Name,
		d.Description,
		d.Skills,
		d.Color,
		d.TeamKey,
		d.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *teamRepository) DeleteDomain(ctx context.Context, teamKey, domainID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM taxonomy_domains WHERE team_key=$1 AND id=$2`, teamKey, domainID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanDomains(rows pgx.Rows) ([]domain.TaxonomyDomain, error) {
	var result []domain.TaxonomyDomain
	for rows.Next() {
		var d domain.TaxonomyDomain
		if err := rows.Scan(
			&d.ID,
			&d.TeamKey,
			&d.Name,
			&d.Description,
			&d.Skills,
			&d.Color,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
