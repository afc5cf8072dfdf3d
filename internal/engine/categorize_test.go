package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/taskflow/internal/domain"
)

func taxonomy() []domain.TaxonomyDomain {
	return []domain.TaxonomyDomain{
		{
			ID:      "frontend",
			TeamKey: "engineering",
			Name:    "Frontend Development",
			Skills:  []string{"React", "TypeScript", "CSS", "JavaScript", "Next.js"},
		},
		{
			ID:      "backend",
			TeamKey: "engineering",
			Name:    "Backend Development",
			Skills:  []string{"Node.js", "Python", "PostgreSQL", "Docker", "API Design"},
		},
		{
			ID:      "ui",
			TeamKey: "design",
			Name:    "UI Design",
			Skills:  []string{"Figma", "Sketch", "Design Systems"},
		},
	}
}

func TestCategorizePartialMatch(t *testing.T) {
	cat := Categorize("t1", []string{"React", "Figma"}, taxonomy())

	require.NotNil(t, cat)
	assert.Equal(t, "engineering", cat.TeamKey)
	assert.Equal(t, "frontend", cat.DomainID)
	assert.Equal(t, 50, cat.MatchScore)
	assert.Equal(t, []string{"React"}, cat.MatchedSkills)
}

func TestCategorizeNoMatchAnywhere(t *testing.T) {
	assert.Nil(t, Categorize("t1", []string{"Welding"}, taxonomy()))
}

func TestCategorizeEmptySkillsSkipped(t *testing.T) {
	assert.Nil(t, Categorize("t1", nil, taxonomy()))
	assert.Nil(t, Categorize("t1", []string{}, taxonomy()))
}

func TestCategorizeThresholdIsExclusive(t *testing.T) {
	// One of four skills matches: score 25, below the >30 bar.
	cat := Categorize("t1", []string{"React", "Welding", "Plumbing", "Carpentry"}, taxonomy())
	assert.Nil(t, cat)

	// One of three matches: score 33, clears the bar.
	cat = Categorize("t1", []string{"React", "Welding", "Plumbing"}, taxonomy())
	require.NotNil(t, cat)
	assert.Equal(t, 33, cat.MatchScore)
}

func TestCategorizeSubstringMatchIsBidirectional(t *testing.T) {
	// Required "SQL" is contained in domain skill "PostgreSQL".
	cat := Categorize("t1", []string{"SQL"}, taxonomy())
	require.NotNil(t, cat)
	assert.Equal(t, "backend", cat.DomainID)

	// Required "API Design Patterns" contains domain skill "API Design".
	cat = Categorize("t1", []string{"API Design Patterns"}, taxonomy())
	require.NotNil(t, cat)
	assert.Equal(t, "backend", cat.DomainID)
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	cat := Categorize("t1", []string{"react", "TYPESCRIPT"}, taxonomy())
	require.NotNil(t, cat)
	assert.Equal(t, "frontend", cat.DomainID)
	assert.Equal(t, 100, cat.MatchScore)
}

func TestCategorizeFirstSeenWinsOnTie(t *testing.T) {
	domains := []domain.TaxonomyDomain{
		{ID: "first", TeamKey: "engineering", Skills: []string{"Go"}},
		{ID: "second", TeamKey: "engineering", Skills: []string{"Go"}},
	}
	cat := Categorize("t1", []string{"Go"}, domains)
	require.NotNil(t, cat)
	assert.Equal(t, "first", cat.DomainID)
}

func TestCategorizeDeterministicForSameInput(t *testing.T) {
	first := Categorize("t1", []string{"React", "CSS"}, taxonomy())
	second := Categorize("t1", []string{"React", "CSS"}, taxonomy())
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first, second)
}
