package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/engine"
	"github.com/spec-kit/taskflow/internal/repository"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

const analyticsCacheKey = "taskflow:analytics:snapshot"
const analyticsCacheTTL = 5 * time.Minute

// AnalyticsSnapshot aggregates dashboard statistics.
type AnalyticsSnapshot struct {
	GeneratedAt        time.Time                 `json:"generated_at"`
	TotalTasks         int                       `json:"total_tasks"`
	TasksByStatus      map[domain.TaskStatus]int `json:"tasks_by_status"`
	TasksByPriority    map[string]int            `json:"tasks_by_priority"`
	UnassignedPending  int                       `json:"unassigned_pending"`
	OverdueTasks       int                       `json:"overdue_tasks"`
	TotalEmployees     int                       `json:"total_employees"`
	AvailableEmployees int                       `json:"available_employees"`
	AverageWorkload    int                       `json:"average_workload"`
	OverloadedCount    int                       `json:"overloaded_count"`
	TeamWorkload       map[string]TeamLoad       `json:"team_workload"`
}

// TeamLoad summarizes the categorized task load for one team.
type TeamLoad struct {
	OpenTasks      int `json:"open_tasks"`
	CompletedTasks int `json:"completed_tasks"`
}

// AnalyticsService computes dashboard snapshots, caching the latest one in
// Redis so every dashboard poll does not re-walk the tables.
type AnalyticsService struct {
	tasks           repository.TaskRepository
	employees       repository.EmployeeRepository
	categorizations repository.CategorizationRepository
	teams           repository.TeamRepository
	cache           *redis.Client
	logger          *zap.Logger
	now             func() time.Time
}

// AnalyticsDependencies bundles collaborators for the analytics service.
type AnalyticsDependencies struct {
	TaskRepo           repository.TaskRepository
	EmployeeRepo       repository.EmployeeRepository
	CategorizationRepo repository.CategorizationRepository
	TeamRepo           repository.TeamRepository
	Cache              *redis.Client
	Logger             *zap.Logger
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(deps AnalyticsDependencies) *AnalyticsService {
	return &AnalyticsService{
		tasks:           deps.TaskRepo,
		employees:       deps.EmployeeRepo,
		categorizations: deps.CategorizationRepo,
		teams:           deps.TeamRepo,
		cache:           deps.Cache,
		logger:          deps.Logger,
		now:             time.Now,
	}
}

// Snapshot returns the cached snapshot when fresh, recomputing otherwise.
func (s *AnalyticsService) Snapshot(ctx context.Context) (*AnalyticsSnapshot, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}
	return s.Recompute(ctx)
}

// Recompute builds a fresh snapshot and stores it in the cache.
func (s *AnalyticsService) Recompute(ctx context.Context) (*AnalyticsSnapshot, error) {
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	employees, err := s.employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	snap := &AnalyticsSnapshot{
		GeneratedAt:     now,
		TotalTasks:      len(tasks),
		TasksByStatus:   make(map[domain.TaskStatus]int),
		TasksByPriority: make(map[string]int),
		TeamWorkload:    make(map[string]TeamLoad),
	}

	catByTask := make(map[string]string)
	if teams, err := s.teams.ListTeams(ctx); err == nil {
		for _, team := range teams {
			snap.TeamWorkload[team.Key] = TeamLoad{}
			cats, err := s.categorizations.ListByTeam(ctx, team.Key)
			if err != nil {
				continue
			}
			for _, cat := range cats {
				catByTask[cat.TaskID] = team.Key
			}
		}
	}

	for _, t := range tasks {
		snap.TasksByStatus[t.Status]++
		snap.TasksByPriority[string(t.Priority)]++
		if t.Status == domain.TaskStatusPending && t.AssignedTo == nil {
			snap.UnassignedPending++
		}
		if t.DueDate != nil && t.Status != domain.TaskStatusCompleted && t.DueDate.Before(now) {
			snap.OverdueTasks++
		}
		if teamKey, ok := catByTask[t.ID]; ok {
			load := snap.TeamWorkload[teamKey]
			if t.Status == domain.TaskStatusCompleted {
				load.CompletedTasks++
			} else {
				load.OpenTasks++
			}
			snap.TeamWorkload[teamKey] = load
		}
	}

	snap.TotalEmployees = len(employees)
	workloadSum := 0
	for _, emp := range employees {
		workloadSum += emp.CurrentWorkload
		if emp.Status == domain.EmployeeStatusAvailable {
			snap.AvailableEmployees++
		}
		if emp.CurrentWorkload >= engine.OverloadAlertBound {
			snap.OverloadedCount++
		}
	}
	if len(employees) > 0 {
		snap.AverageWorkload = workloadSum / len(employees)
	}

	s.writeCache(ctx, snap)
	return snap, nil
}

func (s *AnalyticsService) readCache(ctx context.Context) *AnalyticsSnapshot {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, analyticsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("analytics cache read failed", zap.Error(err))
		}
		return nil
	}
	var snap AnalyticsSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil
	}
	return &snap
}

func (s *AnalyticsService) writeCache(ctx context.Context, snap *AnalyticsSnapshot) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, analyticsCacheKey, raw, analyticsCacheTTL).Err(); err != nil {
		s.logger.Warn("analytics cache write failed", zap.Error(err))
	}
}
