package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/taskflow/internal/domain"
)

func employee(id string, workload, performance int, skills ...string) domain.Employee {
	return domain.Employee{
		ID:               id,
		Name:             "emp " + id,
		Status:           domain.EmployeeStatusAvailable,
		Skills:           skills,
		PerformanceScore: performance,
		CurrentWorkload:  workload,
	}
}

func TestRecommendRanksSkilledCandidateFirst(t *testing.T) {
	task := &domain.Task{ID: "t1", RequiredSkills: []string{"React"}}
	pool := []domain.Employee{
		employee("b", 20, 90),
		employee("a", 20, 90, "React"),
	}

	ranked := Recommend(task, pool)
	require.Len(t, ranked, 2)

	// 100*(0.4*1 + 0.3*0.8 + 0.3*0.9) = 91
	assert.Equal(t, "a", ranked[0].Employee.ID)
	assert.Equal(t, 91, ranked[0].MatchScore)
	// 100*(0.4*0 + 0.3*0.8 + 0.3*0.9) = 51
	assert.Equal(t, "b", ranked[1].Employee.ID)
	assert.Equal(t, 51, ranked[1].MatchScore)
}

func TestRecommendNoRequiredSkillsUsesNeutralMatch(t *testing.T) {
	task := &domain.Task{ID: "t1"}
	pool := []domain.Employee{
		employee("a", 40, 70, "React", "Go"),
		employee("b", 40, 70),
	}

	ranked := Recommend(task, pool)
	require.Len(t, ranked, 2)
	assert.Equal(t, ranked[0].MatchScore, ranked[1].MatchScore,
		"skill sets must not matter when the task has no required skills")
}

func TestRecommendWorkloadBoundary(t *testing.T) {
	task := &domain.Task{ID: "t1"}
	pool := []domain.Employee{
		employee("at-bound", 90, 80),
		employee("below-bound", 89, 80),
	}

	ranked := Recommend(task, pool)
	require.Len(t, ranked, 1)
	assert.Equal(t, "below-bound", ranked[0].Employee.ID)
}

func TestRecommendExcludesUnavailable(t *testing.T) {
	task := &domain.Task{ID: "t1"}
	busy := employee("busy", 10, 95)
	busy.Status = domain.EmployeeStatusBusy
	offline := employee("offline", 10, 95)
	offline.Status = domain.EmployeeStatusOffline

	ranked := Recommend(task, []domain.Employee{busy, offline, employee("ok", 10, 95)})
	require.Len(t, ranked, 1)
	assert.Equal(t, "ok", ranked[0].Employee.ID)
}

func TestRecommendMonotonicInPerformance(t *testing.T) {
	task := &domain.Task{ID: "t1", RequiredSkills: []string{"Go"}}
	prev := -1
	for perf := 0; perf <= 100; perf += 10 {
		ranked := Recommend(task, []domain.Employee{employee("a", 50, perf, "Go")})
		require.Len(t, ranked, 1)
		assert.GreaterOrEqual(t, ranked[0].MatchScore, prev)
		prev = ranked[0].MatchScore
	}
}

func TestRecommendMonotonicInFreeCapacity(t *testing.T) {
	task := &domain.Task{ID: "t1", RequiredSkills: []string{"Go"}}
	prev := -1
	for workload := 89; workload >= 0; workload -= 10 {
		ranked := Recommend(task, []domain.Employee{employee("a", workload, 70, "Go")})
		require.Len(t, ranked, 1)
		assert.GreaterOrEqual(t, ranked[0].MatchScore, prev)
		prev = ranked[0].MatchScore
	}
}

func TestRecommendTieBreakByEmployeeID(t *testing.T) {
	task := &domain.Task{ID: "t1"}
	pool := []domain.Employee{
		employee("zeta", 30, 80),
		employee("alpha", 30, 80),
		employee("mid", 30, 80),
	}

	ranked := Recommend(task, pool)
	require.Len(t, ranked, 3)
	assert.Equal(t, "alpha", ranked[0].Employee.ID)
	assert.Equal(t, "mid", ranked[1].Employee.ID)
	assert.Equal(t, "zeta", ranked[2].Employee.ID)
}

func TestRecommendReasonLabels(t *testing.T) {
	cases := []struct {
		name   string
		skills []string
		reason string
	}{
		{"all matched", []string{"Go", "React", "SQL"}, "Perfect skill match"},
		{"two of three", []string{"Go", "React"}, "Good skill match"},
		{"one of three", []string{"Go"}, "Available capacity"},
	}
	task := &domain.Task{ID: "t1", RequiredSkills: []string{"Go", "React", "SQL"}}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ranked := Recommend(task, []domain.Employee{employee("a", 10, 80, tc.skills...)})
			require.Len(t, ranked, 1)
			assert.Equal(t, tc.reason, ranked[0].Reason)
		})
	}
}

func TestClampWorkload(t *testing.T) {
	assert.Equal(t, 0, ClampWorkload(-5))
	assert.Equal(t, 100, ClampWorkload(140))
	assert.Equal(t, 55, ClampWorkload(55))
}
