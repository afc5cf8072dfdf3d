package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/repository"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// In-memory repository fakes shared by the service tests.

type fakeTaskRepo struct {
	mu    sync.Mutex
	seq   int
	tasks map[string]*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	task.ID = fmt.Sprintf("task-%d", r.seq)
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return pgx.ErrNoRows
	}
	task.UpdatedAt = time.Now()
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *task
	return &clone, nil
}

func (r *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Task
	for _, task := range r.tasks {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, task.Status) {
			continue
		}
		if filter.Unassigned && task.AssignedTo != nil {
			continue
		}
		if filter.AssignedTo != nil && (task.AssignedTo == nil || *task.AssignedTo != *filter.AssignedTo) {
			continue
		}
		if filter.ProjectID != nil && (task.ProjectID == nil || *task.ProjectID != *filter.ProjectID) {
			continue
		}
		if filter.DueBefore != nil && (task.DueDate == nil || !task.DueDate.Before(*filter.DueBefore)) {
			continue
		}
		result = append(result, *task)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, task := range r.tasks {
		if task.AutoDeleteAt != nil && !task.AutoDeleteAt.After(now) {
			delete(r.tasks, id)
			deleted++
		}
	}
	return deleted, nil
}

func containsStatus(list []domain.TaskStatus, s domain.TaskStatus) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	seq       int
	employees map[string]*domain.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if emp.ID == "" {
		r.seq++
		emp.ID = fmt.Sprintf("emp-%d", r.seq)
	}
	clone := *emp
	r.employees[emp.ID] = &clone
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, emp *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[emp.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *emp
	r.employees[emp.ID] = &clone
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *emp
	return &clone, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Employee
	for _, emp := range r.employees {
		if filter.Status != nil && emp.Status != *filter.Status {
			continue
		}
		if filter.Department != nil && emp.Department != *filter.Department {
			continue
		}
		if filter.MaxWorkload != nil && emp.CurrentWorkload > *filter.MaxWorkload {
			continue
		}
		result = append(result, *emp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.employees, id)
	return nil
}

type fakeTeamRepo struct {
	mu      sync.Mutex
	teams   map[string]*domain.Team
	domains []*domain.TaxonomyDomain
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*domain.Team)}
}

func (r *fakeTeamRepo) addTeam(key, name string) {
	r.teams[key] = &domain.Team{Key: key, Name: name}
}

func (r *fakeTeamRepo) addDomain(teamKey, id, name string, skills []string) {
	r.domains = append(r.domains, &domain.TaxonomyDomain{
		ID: id, TeamKey: teamKey, Name: name, Skills: skills,
	})
}

func (r *fakeTeamRepo) ListTeams(_ context.Context) ([]domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Team
	for _, team := range r.teams {
		result = append(result, *team)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (r *fakeTeamRepo) GetTeam(_ context.Context, key string) (*domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[key]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *team
	return &clone, nil
}

func (r *fakeTeamRepo) ListDomains(_ context.Context, teamKey string) ([]domain.TaxonomyDomain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.TaxonomyDomain
	for _, d := range r.domains {
		if d.TeamKey == teamKey {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (r *fakeTeamRepo) ListAllDomains(_ context.Context) ([]domain.TaxonomyDomain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.TaxonomyDomain, 0, len(r.domains))
	for _, d := range r.domains {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TeamKey != result[j].TeamKey {
			return result[i].TeamKey < result[j].TeamKey
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *fakeTeamRepo) GetDomain(_ context.Context, teamKey, domainID string) (*domain.TaxonomyDomain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.domains {
		if d.TeamKey == teamKey && d.ID == domainID {
			clone := *d
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTeamRepo) CreateDomain(_ context.Context, d *domain.TaxonomyDomain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *d
	r.domains = append(r.domains, &clone)
	return nil
}

func (r *fakeTeamRepo) UpdateDomain(_ context.Context, d *domain.TaxonomyDomain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.domains {
		if existing.TeamKey == d.TeamKey && existing.ID == d.ID {
			clone := *d
			r.domains[i] = &clone
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeTeamRepo) DeleteDomain(_ context.Context, teamKey, domainID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.domains {
		if existing.TeamKey == teamKey && existing.ID == domainID {
			r.domains = append(r.domains[:i], r.domains[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeCategorizationRepo struct {
	mu   sync.Mutex
	cats map[string]*domain.TaskCategorization
}

func newFakeCategorizationRepo() *fakeCategorizationRepo {
	return &fakeCategorizationRepo{cats: make(map[string]*domain.TaskCategorization)}
}

func (r *fakeCategorizationRepo) Replace(_ context.Context, cat *domain.TaskCategorization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cat.CreatedAt = time.Now()
	clone := *cat
	r.cats[cat.TaskID] = &clone
	return nil
}

func (r *fakeCategorizationRepo) GetByTask(_ context.Context, taskID string) (*domain.TaskCategorization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cat, ok := r.cats[taskID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *cat
	return &clone, nil
}

func (r *fakeCategorizationRepo) ListByDomain(_ context.Context, teamKey, domainID string) ([]domain.TaskCategorization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.TaskCategorization
	for _, cat := range r.cats {
		if cat.TeamKey == teamKey && cat.DomainID == domainID {
			result = append(result, *cat)
		}
	}
	return result, nil
}

func (r *fakeCategorizationRepo) ListByTeam(_ context.Context, teamKey string) ([]domain.TaskCategorization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.TaskCategorization
	for _, cat := range r.cats {
		if cat.TeamKey == teamKey {
			result = append(result, *cat)
		}
	}
	return result, nil
}

func (r *fakeCategorizationRepo) DeleteByTask(_ context.Context, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cats, taskID)
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	seq           int
	notifications []*domain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	n.ID = fmt.Sprintf("notif-%d", r.seq)
	n.CreatedAt = time.Now()
	clone := *n
	r.notifications = append(r.notifications, &clone)
	return nil
}

func (r *fakeNotificationRepo) List(_ context.Context, filter repository.NotificationFilter) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Notification
	for _, n := range r.notifications {
		if filter.UnreadOnly && n.Read {
			continue
		}
		if len(filter.Types) > 0 {
			matched := false
			for _, t := range filter.Types {
				if n.Type == t {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		result = append(result, *n)
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	for _, n := range r.notifications {
		if !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notifications {
		if n.ID == id {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeNotificationRepo) ExistsForTask(_ context.Context, taskID string, nType domain.NotificationType) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.Type == nType && n.RelatedTask != nil && *n.RelatedTask == taskID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) byType(nType domain.NotificationType) []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Notification
	for _, n := range r.notifications {
		if n.Type == nType {
			result = append(result, *n)
		}
	}
	return result
}

// messagesContain reports whether any notification message holds the substring.
func messagesContain(list []domain.Notification, substr string) bool {
	for _, n := range list {
		if strings.Contains(n.Message, substr) {
			return true
		}
	}
	return false
}

func titlesContain(list []domain.Notification, title string) bool {
	for _, n := range list {
		if n.Title == title {
			return true
		}
	}
	return false
}
