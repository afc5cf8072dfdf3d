package engine

import (
	"math"
	"sort"

	"github.com/spec-kit/taskflow/internal/domain"
)

// Scoring weights for candidate recommendation.
const (
	weightSkillMatch  = 0.4
	weightWorkload    = 0.3
	weightPerformance = 0.3

	// neutralSkillMatch is used when the task declares no required skills.
	neutralSkillMatch = 0.5
)

// Candidate is a scored employee for a specific task.
type Candidate struct {
	Employee   domain.Employee
	MatchScore int
	Reason     string
}

// Recommend scores every eligible employee against the task and returns them
// ranked best-first. The candidate pool is restricted to available employees
// below WorkloadExclusionBound. Ties are broken by employee ID ascending so
// the ranking is deterministic regardless of input order.
func Recommend(task *domain.Task, employees []domain.Employee) []Candidate {
	candidates := make([]Candidate, 0, len(employees))
	for _, emp := range employees {
		if emp.Status != domain.EmployeeStatusAvailable || emp.CurrentWorkload >= WorkloadExclusionBound {
			continue
		}
		skillMatch := skillMatchRatio(task.RequiredSkills, &emp)
		candidates = append(candidates, Candidate{
			Employee:   emp,
			MatchScore: overallScore(skillMatch, emp.CurrentWorkload, emp.PerformanceScore),
			Reason:     matchReason(skillMatch),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].MatchScore != candidates[j].MatchScore {
			return candidates[i].MatchScore > candidates[j].MatchScore
		}
		return candidates[i].Employee.ID < candidates[j].Employee.ID
	})
	return candidates
}

// skillMatchRatio is the fraction of required skills the employee lists
// verbatim, or neutralSkillMatch when the task requires none.
func skillMatchRatio(required []string, emp *domain.Employee) float64 {
	if len(required) == 0 {
		return neutralSkillMatch
	}
	matched := 0
	for _, skill := range required {
		if emp.HasSkill(skill) {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

func overallScore(skillMatch float64, workload, performance int) int {
	workloadTerm := float64(100-workload) / 100
	perfTerm := float64(performance) / 100
	return int(math.Round((skillMatch*weightSkillMatch + workloadTerm*weightWorkload + perfTerm*weightPerformance) * 100))
}

func matchReason(skillMatch float64) string {
	switch {
	case skillMatch > 0.7:
		return "Perfect skill match"
	case skillMatch > 0.4:
		return "Good skill match"
	default:
		return "Available capacity"
	}
}
