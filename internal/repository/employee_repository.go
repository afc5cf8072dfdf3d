package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/taskflow/internal/domain"
)

// EmployeeFilter defines query params for employee listing.
type EmployeeFilter struct {
	Status      *domain.EmployeeStatus
	Department  *string
	MaxWorkload *int
	Limit       int
	Offset      int
}

// EmployeeRepository handles persistence for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	Delete(ctx context.Context, id string) error
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, name, role, department, email, avatar, status, skills,
       performance_score, current_workload, active_tasks, completed_tasks,
       rating, avg_task_time, join_date, last_active, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, role, department, email, avatar, status, skills,
            performance_score, current_workload, active_tasks, completed_tasks,
            rating, avg_task_time, join_date, last_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		emp.Name,
		emp.Role,
		emp.Department,
		emp.Email,
		emp.Avatar,
		emp.Status,
		emp.Skills,
		emp.PerformanceScore,
		emp.CurrentWorkload,
		emp.ActiveTasks,
		emp.CompletedTasks,
		emp.Rating,
		emp.AvgTaskTime,
		emp.JoinDate,
		emp.LastActive,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees
        SET name=$1, role=$2, department=$3, email=$4, avatar=$5, status=$6, skills=$7,
            performance_score=$8, current_workload=$9, active_tasks=$10, completed_tasks=$11,
            rating=$12, avg_task_time=$13, join_date=$14, last_active=$15, updated_at=NOW()
        WHERE id=$16`
	cmd, err := r.pool.Exec(ctx, query,
		emp.Name,
		emp.Role,
		emp.Department,
		emp.Email,
		emp.Avatar,
		emp.Status,
		emp.Skills,
		emp.PerformanceScore,
		emp.CurrentWorkload,
		emp.ActiveTasks,
		emp.CompletedTasks,
		emp.Rating,
		emp.AvgTaskTime,
		emp.JoinDate,
		emp.LastActive,
		emp.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanEmployee(row)
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	args := []any{}
	clauses := []string{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Department != nil {
		args = append(args, *filter.Department)
		clauses = append(clauses, fmt.Sprintf("department=$%d", len(args)))
	}
	if filter.MaxWorkload != nil {
		args = append(args, *filter.MaxWorkload)
		clauses = append(clauses, fmt.Sprintf("current_workload < $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY id ASC"
	query += paginationClause(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var emp domain.Employee
	if err := row.Scan(
		&emp.ID,
		&emp.Name,
		&emp.Role,
		&emp.Department,
		&emp.Email,
		&emp.Avatar,
		&emp.Status,
		&emp.Skills,
		&emp.PerformanceScore,
		&emp.CurrentWorkload,
		&emp.ActiveTasks,
		&emp.CompletedTasks,
		&emp.Rating,
		&emp.AvgTaskTime,
		&emp.JoinDate,
		&emp.LastActive,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}
