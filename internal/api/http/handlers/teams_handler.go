package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taskflow/internal/api/dto"
	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/service"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

// TeamsHandler manages the team taxonomy endpoints.
type TeamsHandler struct {
	teams *service.TeamService
}

// NewTeamsHandler constructs handler.
func NewTeamsHandler(teams *service.TeamService) *TeamsHandler {
	return &TeamsHandler{teams: teams}
}

// ListTeams GET /teams.
func (h *TeamsHandler) ListTeams(c *fiber.Ctx) error {
	overviews, err := h.teams.ListTeams(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TeamResponse, 0, len(overviews))
	for _, ov := range overviews {
		items = append(items, teamResponse(ov))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTeam GET /teams/:key.
func (h *TeamsHandler) GetTeam(c *fiber.Ctx) error {
	overview, err := h.teams.GetTeam(c.Context(), c.Params("key"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": teamResponse(*overview)})
}

// CreateDomain POST /teams/:key/domains.
func (h *TeamsHandler) CreateDomain(c *fiber.Ctx) error {
	var req dto.DomainRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	d, err := h.teams.CreateDomain(c.Context(), c.Params("key"), service.DomainInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Skills:      req.Skills,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": domainResponse(*d)})
}

// UpdateDomain PUT /teams/:key/domains/:domainId.
func (h *TeamsHandler) UpdateDomain(c *fiber.Ctx) error {
	var req dto.DomainRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	d, err := h.teams.UpdateDomain(c.Context(), c.Params("key"), c.Params("domainId"), service.DomainInput{
		Name:        req.Name,
		Description: req.Description,
		Skills:      req.Skills,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": domainResponse(*d)})
}

// DeleteDomain DELETE /teams/:key/domains/:domainId.
func (h *TeamsHandler) DeleteDomain(c *fiber.Ctx) error {
	if err := h.teams.DeleteDomain(c.Context(), c.Params("key"), c.Params("domainId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DomainTasks GET /teams/:key/domains/:domainId/tasks.
func (h *TeamsHandler) DomainTasks(c *fiber.Ctx) error {
	tasks, err := h.teams.DomainTasks(c.Context(), c.Params("key"), c.Params("domainId"))
	if err != nil {
		return err
	}
	items := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, taskResponse(&tasks[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func teamResponse(ov service.TeamOverview) dto.TeamResponse {
	domains := make([]dto.DomainResponse, 0, len(ov.Domains))
	for _, d := range ov.Domains {
		domains = append(domains, domainResponse(d))
	}
	return dto.TeamResponse{
		Key:         ov.Team.Key,
		Name:        ov.Team.Name,
		Description: ov.Team.Description,
		Domains:     domains,
	}
}

func domainResponse(d domain.TaxonomyDomain) dto.DomainResponse {
	return dto.DomainResponse{
		ID:          d.ID,
		TeamKey:     d.TeamKey,
		Name:        d.Name,
		Description: d.Description,
		Skills:      d.Skills,
		Color:       d.Color,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
