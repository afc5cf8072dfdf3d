package dto

import (
	"time"

	"github.com/spec-kit/taskflow/internal/domain"
)

// NotificationResponse response.
type NotificationResponse struct {
	ID              string                  `json:"id"`
	Type            domain.NotificationType `json:"type"`
	Title           string                  `json:"title"`
	Message         string                  `json:"message"`
	Priority        domain.TaskPriority     `json:"priority"`
	Read            bool                    `json:"read"`
	RelatedEmployee *string                 `json:"related_employee"`
	RelatedTask     *string                 `json:"related_task"`
	CreatedAt       time.Time               `json:"created_at"`
}
