package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/engine"
)

func TestRecommendationResponseCarriesCandidateProfile(t *testing.T) {
	cand := engine.Candidate{
		Employee: domain.Employee{
			ID:               "emp-1",
			Name:             "Dana",
			Role:             "Backend Engineer",
			Skills:           []string{"Go", "PostgreSQL"},
			CurrentWorkload:  35,
			PerformanceScore: 88,
		},
		MatchScore: 91,
		Reason:     "Perfect skill match",
	}

	resp := recommendationResponse(cand)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "Dana", resp.EmployeeName)
	assert.Equal(t, "Backend Engineer", resp.Role)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, resp.Skills)
	assert.Equal(t, 35, resp.Workload)
	assert.Equal(t, 88, resp.PerformanceScore)
	assert.Equal(t, 91, resp.MatchScore)
	assert.Equal(t, "Perfect skill match", resp.Reason)
}
