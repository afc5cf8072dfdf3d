package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taskflow/internal/api/dto"
	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/engine"
	"github.com/spec-kit/taskflow/internal/repository"
	"github.com/spec-kit/taskflow/internal/service"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

// TasksHandler manages task endpoints.
type TasksHandler struct {
	tasks       *service.TaskService
	assignments *service.AssignmentService
	teams       *service.TeamService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(tasks *service.TaskService, assignments *service.AssignmentService, teams *service.TeamService) *TasksHandler {
	return &TasksHandler{tasks: tasks, assignments: assignments, teams: teams}
}

// CreateTask POST /tasks.
func (h *TasksHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.tasks.CreateTask(c.Context(), service.TaskCreateInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		ProjectID:      req.ProjectID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		RequiredSkills: req.RequiredSkills,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": taskResponse(task)})
}

// ListTasks GET /tasks.
func (h *TasksHandler) ListTasks(c *fiber.Ctx) error {
	filter := parseTaskQuery(c)
	tasks, err := h.tasks.ListTasks(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, taskResponse(&tasks[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTask GET /tasks/:id.
func (h *TasksHandler) GetTask(c *fiber.Ctx) error {
	task, err := h.tasks.GetTask(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponse(task)})
}

// UpdateTask PUT /tasks/:id.
func (h *TasksHandler) UpdateTask(c *fiber.Ctx) error {
	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.tasks.UpdateTask(c.Context(), c.Params("id"), service.TaskUpdateInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		ProjectID:      req.ProjectID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		RequiredSkills: req.RequiredSkills,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponse(task)})
}

// DeleteTask DELETE /tasks/:id.
func (h *TasksHandler) DeleteTask(c *fiber.Ctx) error {
	if err := h.tasks.DeleteTask(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AssignTask POST /tasks/:id/assign.
func (h *TasksHandler) AssignTask(c *fiber.Ctx) error {
	var req dto.AssignTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EmployeeID == "" {
		return apperrors.NewValidationError("employee_id required", nil)
	}

	task, err := h.tasks.AssignTask(c.Context(), c.Params("id"), req.EmployeeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponse(task)})
}

// UpdateStatus PATCH /tasks/:id/status.
func (h *TasksHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	switch req.Status {
	case domain.TaskStatusPending, domain.TaskStatusInProgress, domain.TaskStatusCompleted:
	default:
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}

	task, err := h.tasks.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponse(task)})
}

// Recommendations GET /tasks/:id/recommendations.
func (h *TasksHandler) Recommendations(c *fiber.Ctx) error {
	candidates, err := h.assignments.Recommend(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.RecommendationResponse, 0, len(candidates))
	for _, cand := range candidates {
		items = append(items, recommendationResponse(cand))
	}
	return c.JSON(fiber.Map{"data": items})
}

func recommendationResponse(cand engine.Candidate) dto.RecommendationResponse {
	return dto.RecommendationResponse{
		EmployeeID:       cand.Employee.ID,
		EmployeeName:     cand.Employee.Name,
		Role:             cand.Employee.Role,
		Skills:           cand.Employee.Skills,
		Workload:         cand.Employee.CurrentWorkload,
		PerformanceScore: cand.Employee.PerformanceScore,
		MatchScore:       cand.MatchScore,
		Reason:           cand.Reason,
	}
}

// Categorization GET /tasks/:id/categorization.
func (h *TasksHandler) Categorization(c *fiber.Ctx) error {
	if _, err := h.tasks.GetTask(c.Context(), c.Params("id")); err != nil {
		return err
	}
	cat, err := h.teams.TaskCategorization(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if cat == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.CategorizationResponse{
		TaskID:        cat.TaskID,
		TeamKey:       cat.TeamKey,
		DomainID:      cat.DomainID,
		MatchScore:    cat.MatchScore,
		MatchedSkills: cat.MatchedSkills,
	}})
}

// AutoAssign POST /tasks/auto-assign.
func (h *TasksHandler) AutoAssign(c *fiber.Ctx) error {
	results, err := h.assignments.AutoAssignPending(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AutoAssignResponse, 0, len(results))
	for _, r := range results {
		items = append(items, dto.AutoAssignResponse{
			TaskID:     r.TaskID,
			TaskTitle:  r.TaskTitle,
			EmployeeID: r.EmployeeID,
			Score:      r.Score,
			Reason:     r.Reason,
		})
	}
	return c.JSON(fiber.Map{"data": items, "assigned": len(items)})
}

func parseTaskQuery(c *fiber.Ctx) repository.TaskFilter {
	var filter repository.TaskFilter
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			filter.Statuses = append(filter.Statuses, domain.TaskStatus(strings.TrimSpace(s)))
		}
	}
	if raw := c.Query("priority"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			filter.Priorities = append(filter.Priorities, domain.TaskPriority(strings.TrimSpace(p)))
		}
	}
	if v := c.Query("assigned_to"); v != "" {
		filter.AssignedTo = &v
	}
	if v := c.Query("project_id"); v != "" {
		filter.ProjectID = &v
	}
	if c.QueryBool("unassigned") {
		filter.Unassigned = true
	}
	if v := c.Query("search"); v != "" {
		filter.SearchTerm = &v
	}
	if v := c.Query("due_before"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DueBefore = &ts
		}
	}
	filter.Limit = c.QueryInt("limit", 100)
	filter.Offset = c.QueryInt("offset", 0)
	return filter
}

func taskResponse(task *domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		AssignedTo:     task.AssignedTo,
		ProjectID:      task.ProjectID,
		DueDate:        task.DueDate,
		EstimatedHours: task.EstimatedHours,
		RequiredSkills: task.RequiredSkills,
		CompletedAt:    task.CompletedAt,
		AutoDeleteAt:   task.AutoDeleteAt,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}
