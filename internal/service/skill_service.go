package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/taskflow/internal/repository"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

const skillCacheKey = "taskflow:skills:vocabulary"

// supplementarySkills pads the employee-derived vocabulary with common skills
// nobody on staff lists yet, so autocomplete stays useful for new hires.
var supplementarySkills = []string{
	"React", "TypeScript", "JavaScript", "Node.js", "Python", "Java",
	"C++", "C#", "HTML", "CSS", "Tailwind", "Bootstrap",
	"Vue.js", "Angular", "Svelte", "Express", "FastAPI", "Django",
	"Spring Boot", "ASP.NET", "MongoDB", "PostgreSQL", "MySQL", "Redis",
	"SQLite", "Docker", "Kubernetes", "AWS", "Azure", "GCP",
	"Terraform", "Git", "GitHub", "GitLab", "CI/CD", "Jenkins",
	"DevOps", "Figma", "Adobe XD", "Sketch", "Photoshop", "Illustrator",
	"UI Design", "UX Design", "Wireframing", "Prototyping", "Design Systems", "Testing",
	"Jest", "Cypress", "Selenium", "Unit Testing", "Integration Testing", "Machine Learning",
	"Data Analysis", "Statistics", "Tableau", "Power BI", "Project Management", "Agile",
	"Scrum", "Kanban", "JIRA", "Confluence", "Technical Writing", "Documentation",
	"API Design", "REST", "GraphQL", "Security", "Authentication", "JWT",
	"OAuth", "OWASP", "Penetration Testing",
}

// SkillService exposes the deduplicated skill vocabulary collected from every
// employee profile, with a Redis cache in front of the database walk.
type SkillService struct {
	employees repository.EmployeeRepository
	cache     *redis.Client
	ttl       time.Duration
	logger    *zap.Logger
}

// SkillDependencies bundles collaborators for the skill service.
type SkillDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Cache        *redis.Client
	CacheTTL     time.Duration
	Logger       *zap.Logger
}

// NewSkillService constructs the service. Cache may be nil; the service then
// recomputes the vocabulary on every call.
func NewSkillService(deps SkillDependencies) *SkillService {
	return &SkillService{
		employees: deps.EmployeeRepo,
		cache:     deps.Cache,
		ttl:       deps.CacheTTL,
		logger:    deps.Logger,
	}
}

// Vocabulary returns the sorted, case-insensitively deduplicated union of
// every employee's skills plus the supplementary list.
func (s *SkillService) Vocabulary(ctx context.Context) ([]string, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	employees, err := s.employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	seen := make(map[string]string)
	add := func(skill string) {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; !ok {
			seen[key] = skill
		}
	}
	for _, emp := range employees {
		for _, skill := range emp.Skills {
			add(skill)
		}
	}
	for _, skill := range supplementarySkills {
		add(skill)
	}

	vocabulary := make([]string, 0, len(seen))
	for _, skill := range seen {
		vocabulary = append(vocabulary, skill)
	}
	sort.Slice(vocabulary, func(i, j int) bool {
		return strings.ToLower(vocabulary[i]) < strings.ToLower(vocabulary[j])
	})

	s.writeCache(ctx, vocabulary)
	return vocabulary, nil
}

// Invalidate drops the cached vocabulary after an employee profile change.
func (s *SkillService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, skillCacheKey).Err(); err != nil {
		s.logger.Warn("skill cache invalidation failed", zap.Error(err))
	}
}

func (s *SkillService) readCache(ctx context.Context) []string {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, skillCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("skill cache read failed", zap.Error(err))
		}
		return nil
	}
	var vocabulary []string
	if err := json.Unmarshal(raw, &vocabulary); err != nil {
		return nil
	}
	return vocabulary
}

func (s *SkillService) writeCache(ctx context.Context, vocabulary []string) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(vocabulary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, skillCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("skill cache write failed", zap.Error(err))
	}
}
