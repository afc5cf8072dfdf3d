package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taskflow/internal/api/dto"
	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/repository"
	"github.com/spec-kit/taskflow/internal/service"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

// EmployeesHandler manages workforce endpoints.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// CreateEmployee POST /employees.
func (h *EmployeesHandler) CreateEmployee(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	emp, err := h.employees.CreateEmployee(c.Context(), employeeInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": employeeResponse(emp)})
}

// ListEmployees GET /employees.
func (h *EmployeesHandler) ListEmployees(c *fiber.Ctx) error {
	var filter repository.EmployeeFilter
	if v := c.Query("status"); v != "" {
		status := domain.EmployeeStatus(v)
		filter.Status = &status
	}
	if v := c.Query("department"); v != "" {
		filter.Department = &v
	}
	if v := c.QueryInt("max_workload", -1); v >= 0 {
		filter.MaxWorkload = &v
	}
	filter.Limit = c.QueryInt("limit", 200)
	filter.Offset = c.QueryInt("offset", 0)

	employees, err := h.employees.ListEmployees(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, employeeResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetEmployee GET /employees/:id.
func (h *EmployeesHandler) GetEmployee(c *fiber.Ctx) error {
	emp, err := h.employees.GetEmployee(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(emp)})
}

// UpdateEmployee PUT /employees/:id.
func (h *EmployeesHandler) UpdateEmployee(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	emp, err := h.employees.UpdateEmployee(c.Context(), c.Params("id"), employeeInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(emp)})
}

// UpdateStatus PATCH /employees/:id/status.
func (h *EmployeesHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateEmployeeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	emp, err := h.employees.SetStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(emp)})
}

// DeleteEmployee DELETE /employees/:id.
func (h *EmployeesHandler) DeleteEmployee(c *fiber.Ctx) error {
	if err := h.employees.DeleteEmployee(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// EmployeeTasks GET /employees/:id/tasks.
func (h *EmployeesHandler) EmployeeTasks(c *fiber.Ctx) error {
	tasks, err := h.employees.EmployeeTasks(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, taskResponse(&tasks[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func employeeInput(req dto.EmployeeRequest) service.EmployeeInput {
	return service.EmployeeInput{
		Name:             req.Name,
		Role:             req.Role,
		Department:       req.Department,
		Email:            req.Email,
		Avatar:           req.Avatar,
		Status:           req.Status,
		Skills:           req.Skills,
		PerformanceScore: req.PerformanceScore,
		CurrentWorkload:  req.CurrentWorkload,
		Rating:           req.Rating,
		AvgTaskTime:      req.AvgTaskTime,
		JoinDate:         req.JoinDate,
	}
}

func employeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:               emp.ID,
		Name:             emp.Name,
		Role:             emp.Role,
		Department:       emp.Department,
		Email:            emp.Email,
		Avatar:           emp.Avatar,
		Status:           emp.Status,
		Skills:           emp.Skills,
		PerformanceScore: emp.PerformanceScore,
		CurrentWorkload:  emp.CurrentWorkload,
		ActiveTasks:      emp.ActiveTasks,
		CompletedTasks:   emp.CompletedTasks,
		Rating:           emp.Rating,
		AvgTaskTime:      emp.AvgTaskTime,
		JoinDate:         emp.JoinDate,
		LastActive:       emp.LastActive,
		CreatedAt:        emp.CreatedAt,
		UpdatedAt:        emp.UpdatedAt,
	}
}
