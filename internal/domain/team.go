package domain

import "time"

// Team is a top-level group in the skill taxonomy, keyed by a stable slug
// such as "engineering" or "design".
type Team struct {
	Key         string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaxonomyDomain is a skill area under a team. Its skill list drives task
// categorization.
type TaxonomyDomain struct {
	ID          string
	TeamKey     string
	Name        string
	Description string
	Skills      []string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskCategorization links a task to its best-matching (team, domain) pair.
// At most one live categorization exists per task; re-categorizing replaces
// the prior record. It is a derived index, not authoritative task state.
type TaskCategorization struct {
	TaskID        string
	TeamKey       string
	DomainID      string
	MatchScore    int
	MatchedSkills []string
	CreatedAt     time.Time
}
