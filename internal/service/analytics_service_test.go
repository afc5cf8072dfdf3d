package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/taskflow/internal/domain"
)

func newAnalyticsFixture(t *testing.T) (*AnalyticsService, *taskFixture) {
	t.Helper()
	base := newTaskFixture(t)
	svc := NewAnalyticsService(AnalyticsDependencies{
		TaskRepo:           base.tasks,
		EmployeeRepo:       base.employees,
		CategorizationRepo: base.cats,
		TeamRepo:           base.teams,
		Logger:             testLogger(),
	})
	return svc, base
}

func TestSnapshotCountsTasksAndEmployees(t *testing.T) {
	svc, f := newAnalyticsFixture(t)
	f.teams.addTeam("engineering", "Engineering")
	f.teams.addDomain("engineering", "backend", "Backend", []string{"Go"})
	f.addEmployee("emp-1", 40)
	f.addEmployee("emp-2", 85)
	f.employees.employees["emp-2"].Status = domain.EmployeeStatusBusy

	_, err := f.svc.CreateTask(context.Background(), TaskCreateInput{
		Title:          "Open work",
		RequiredSkills: []string{"Go"},
	})
	require.NoError(t, err)
	done, err := f.svc.CreateTask(context.Background(), TaskCreateInput{
		Title:          "Done work",
		RequiredSkills: []string{"Go"},
	})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(context.Background(), done.ID, domain.TaskStatusCompleted)
	require.NoError(t, err)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, snap.TotalTasks)
	assert.Equal(t, 1, snap.TasksByStatus[domain.TaskStatusPending])
	assert.Equal(t, 1, snap.TasksByStatus[domain.TaskStatusCompleted])
	assert.Equal(t, 1, snap.UnassignedPending)

	assert.Equal(t, 2, snap.TotalEmployees)
	assert.Equal(t, 1, snap.AvailableEmployees)
	assert.Equal(t, 62, snap.AverageWorkload)
	assert.Equal(t, 1, snap.OverloadedCount)

	load := snap.TeamWorkload["engineering"]
	assert.Equal(t, 1, load.OpenTasks)
	assert.Equal(t, 1, load.CompletedTasks)
}

func TestSnapshotCountsOverdue(t *testing.T) {
	svc, f := newAnalyticsFixture(t)
	past := time.Now().Add(-48 * time.Hour)
	_, err := f.svc.CreateTask(context.Background(), TaskCreateInput{
		Title:   "Late task",
		DueDate: &past,
	})
	require.NoError(t, err)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.OverdueTasks)
}

func TestSnapshotEmptySystem(t *testing.T) {
	svc, _ := newAnalyticsFixture(t)
	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Zero(t, snap.TotalTasks)
	assert.Zero(t, snap.AverageWorkload)
}
