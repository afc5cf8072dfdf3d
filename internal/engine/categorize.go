package engine

import (
	"math"
	"strings"

	"github.com/spec-kit/taskflow/internal/domain"
)

// Categorize selects the best-matching (team, domain) pair for a task's
// required skills. A required skill matches a domain when either string
// contains the other, case-insensitively. Returns nil when requiredSkills is
// empty or when no pair clears CategorizeThreshold; absence of a match is a
// normal outcome, not an error.
//
// The best match is tracked with a strictly-greater comparison, so on equal
// scores the first pair in iteration order wins. Callers pass domains in a
// stable order (team key, then domain id) to keep results deterministic.
func Categorize(taskID string, requiredSkills []string, domains []domain.TaxonomyDomain) *domain.TaskCategorization {
	if len(requiredSkills) == 0 {
		return nil
	}

	var best *domain.TaskCategorization
	highest := 0.0

	for _, d := range domains {
		matched := matchSkills(requiredSkills, d.Skills)
		if len(matched) == 0 {
			continue
		}
		score := float64(len(matched)) / float64(len(requiredSkills)) * 100

		if score > highest {
			highest = score
			best = &domain.TaskCategorization{
				TaskID:        taskID,
				TeamKey:       d.TeamKey,
				DomainID:      d.ID,
				MatchScore:    int(math.Round(score)),
				MatchedSkills: matched,
			}
		}
	}

	if best == nil || best.MatchScore <= CategorizeThreshold {
		return nil
	}
	return best
}

// matchSkills returns the subset of required skills matched by the domain's
// skill list under the bidirectional substring test.
func matchSkills(required, domainSkills []string) []string {
	var matched []string
	for _, skill := range required {
		lower := strings.ToLower(skill)
		for _, ds := range domainSkills {
			dsLower := strings.ToLower(ds)
			if strings.Contains(dsLower, lower) || strings.Contains(lower, dsLower) {
				matched = append(matched, skill)
				break
			}
		}
	}
	return matched
}
