package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/taskflow/internal/domain"
)

// CategorizationRepository stores the derived task-to-domain index.
type CategorizationRepository interface {
	// Replace installs the categorization for its task, removing any prior
	// record so at most one row per task exists.
	Replace(ctx context.Context, cat *domain.TaskCategorization) error
	GetByTask(ctx context.Context, taskID string) (*domain.TaskCategorization, error)
	ListByDomain(ctx context.Context, teamKey, domainID string) ([]domain.TaskCategorization, error)
	ListByTeam(ctx context.Context, teamKey string) ([]domain.TaskCategorization, error)
	DeleteByTask(ctx context.Context, taskID string) error
}

type categorizationRepository struct {
	pool *pgxpool.Pool
}

// NewCategorizationRepository builds the repository.
func NewCategorizationRepository(pool *pgxpool.Pool) CategorizationRepository {
	return &categorizationRepository{pool: pool}
}

func (r *categorizationRepository) Replace(ctx context.Context, cat *domain.TaskCategorization) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM task_categorizations WHERE task_id=$1`, cat.TaskID); err != nil {
		return err
	}
	const insert = `
        INSERT INTO task_categorizations (task_id, team_key, domain_id, match_score, matched_skills)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at`
	if err := tx.QueryRow(ctx, insert,
		cat.TaskID,
		cat.TeamKey,
		cat.DomainID,
		cat.MatchScore,
		cat.MatchedSkills,
	).Scan(&cat.CreatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *categorizationRepository) GetByTask(ctx context.Context, taskID string) (*domain.TaskCategorization, error) {
	const query = `
        SELECT task_id, team_key, domain_id, match_score, matched_skills, created_at
        FROM task_categorizations WHERE task_id=$1`
	var cat domain.TaskCategorization
	if err := r.pool.QueryRow(ctx, query, taskID).Scan(
		&cat.TaskID,
		&cat.TeamKey,
		&cat.DomainID,
		&cat.MatchScore,
		&cat.MatchedSkills,
		&cat.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categorizationRepository) ListByDomain(ctx context.Context, teamKey, domainID string) ([]domain.TaskCategorization, error) {
	const query = `
        SELECT task_id, team_key, domain_id, match_score, matched_skills, created_at
        FROM task_categorizations WHERE team_key=$1 AND domain_id=$2
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, teamKey, domainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskCategorization
	for rows.Next() {
		var cat domain.TaskCategorization
		if err := rows.Scan(
			&cat.TaskID,
			&cat.TeamKey,
			&cat.DomainID,
			&cat.MatchScore,
			&cat.MatchedSkills,
			&cat.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, cat)
	}
	return result, rows.Err()
}

func (r *categorizationRepository) ListByTeam(ctx context.Context, teamKey string) ([]domain.TaskCategorization, error) {
	const query = `
        SELECT task_id, team_key, domain_id, match_score, matched_skills, created_at
        FROM task_categorizations WHERE team_key=$1
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, teamKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskCategorization
	for rows.Next() {
		var cat domain.TaskCategorization
		if err := rows.Scan(
			&cat.TaskID,
			&cat.TeamKey,
			&cat.DomainID,
			&cat.MatchScore,
			&cat.MatchedSkills,
			&cat.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, cat)
	}
	return result, rows.Err()
}

func (r *categorizationRepository) DeleteByTask(ctx context.Context, taskID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM task_categorizations WHERE task_id=$1`, taskID)
	if err == pgx.ErrNoRows {
		return nil
	}
	return err
}
