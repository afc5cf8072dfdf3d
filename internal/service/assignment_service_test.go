package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/repository"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

type assignmentFixture struct {
	*taskFixture
	svc *AssignmentService
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	base := newTaskFixture(t)
	return &assignmentFixture{
		taskFixture: base,
		svc: NewAssignmentService(AssignmentDependencies{
			TaskRepo:     base.tasks,
			EmployeeRepo: base.employees,
			TaskService:  base.svc,
			Logger:       testLogger(),
		}),
	}
}

func (f *assignmentFixture) addSkilled(id string, workload, performance int, skills ...string) {
	f.employees.employees[id] = &domain.Employee{
		ID:               id,
		Name:             "Employee " + id,
		Status:           domain.EmployeeStatusAvailable,
		CurrentWorkload:  workload,
		PerformanceScore: performance,
		Skills:           skills,
	}
}

func TestRecommendRanksBestFirst(t *testing.T) {
	f := newAssignmentFixture(t)
	f.addSkilled("emp-strong", 20, 90, "Go", "PostgreSQL")
	f.addSkilled("emp-weak", 70, 50)

	task, err := f.taskFixture.svc.CreateTask(context.Background(), TaskCreateInput{
		Title:          "Build API",
		RequiredSkills: []string{"Go", "PostgreSQL"},
	})
	require.NoError(t, err)

	candidates, err := f.svc.Recommend(context.Background(), task.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "emp-strong", candidates[0].Employee.ID)
	assert.Greater(t, candidates[0].MatchScore, candidates[1].MatchScore)
	assert.Equal(t, "Perfect skill match", candidates[0].Reason)
}

func TestRecommendUnknownTask(t *testing.T) {
	f := newAssignmentFixture(t)
	_, err := f.svc.Recommend(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAutoAssignPendingAssignsAboveThreshold(t *testing.T) {
	f := newAssignmentFixture(t)
	// Full skill match, low workload, strong performance: well above 60.
	f.addSkilled("emp-1", 10, 90, "Go")

	task, err := f.taskFixture.svc.CreateTask(context.Background(), TaskCreateInput{
		Title:          "Migrate schema",
		RequiredSkills: []string{"Go"},
	})
	require.NoError(t, err)

	results, err := f.svc.AutoAssignPending(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, task.ID, results[0].TaskID)
	assert.Equal(t, "emp-1", results[0].EmployeeID)

	assigned, err := f.taskFixture.svc.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, assigned.Status)
}

func TestAutoAssignSkipsAtOrBelowThreshold(t *testing.T) {
	f := newAssignmentFixture(t)
	// No skill overlap, workload 60, performance 50:
	// 0.4*0 + 0.3*0.4 + 0.3*0.5 = 0.27 -> 27, below the bar.
	f.addSkilled("emp-weak", 60, 50, "Copywriting")

	_, err := f.taskFixture.svc.CreateTask(context.Background(), TaskCreateInput{
		Title:          "Tune queries",
		RequiredSkills: []string{"PostgreSQL", "Go"},
	})
	require.NoError(t, err)

	results, err := f.svc.AutoAssignPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)

	pending, err := f.taskFixture.svc.ListTasks(context.Background(), repository.TaskFilter{
		Statuses: []domain.TaskStatus{domain.TaskStatusPending},
	})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Nil(t, pending[0].AssignedTo)
}

func TestAutoAssignThresholdIsExclusive(t *testing.T) {
	f := newAssignmentFixture(t)
	// Neutral skill match 0.5 -> 20, workload 0 -> 30, performance 33 -> 9.9;
	// total rounds to exactly 60, which must not assign.
	f.addSkilled("emp-edge", 0, 33)

	_, err := f.taskFixture.svc.CreateTask(context.Background(), TaskCreateInput{
		Title: "Edge case task",
	})
	require.NoError(t, err)

	results, err := f.svc.AutoAssignPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAutoAssignSequentialWorkloadAccumulates(t *testing.T) {
	f := newAssignmentFixture(t)
	f.addSkilled("emp-1", 0, 100, "Go")

	for i := 0; i < 2; i++ {
		_, err := f.taskFixture.svc.CreateTask(context.Background(), TaskCreateInput{
			Title:          "Task",
			RequiredSkills: []string{"Go"},
		})
		require.NoError(t, err)
	}

	results, err := f.svc.AutoAssignPending(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	// The second assignment scored against the workload the first added.
	assert.Greater(t, results[0].Score, results[1].Score)

	emp, err := f.employees.GetByID(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 30, emp.CurrentWorkload)
	assert.Equal(t, 2, emp.ActiveTasks)
}

func TestAutoAssignSweepRecordsSummary(t *testing.T) {
	f := newAssignmentFixture(t)
	f.addSkilled("emp-1", 10, 90, "Go")

	_, err := f.taskFixture.svc.CreateTask(context.Background(), TaskCreateInput{
		Title:          "Wire alerting",
		RequiredSkills: []string{"Go"},
	})
	require.NoError(t, err)

	results, err := f.svc.AutoAssignPending(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	recorded := f.notifications.byType(domain.NotificationSystem)
	assert.True(t, titlesContain(recorded, "Auto-Assignment Complete"))
	assert.True(t, messagesContain(recorded, "auto-assigned 1 tasks"))
}

func TestAutoAssignEmptySweepSkipsSummary(t *testing.T) {
	f := newAssignmentFixture(t)

	results, err := f.svc.AutoAssignPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, titlesContain(f.notifications.byType(domain.NotificationSystem), "Auto-Assignment Complete"))
}
