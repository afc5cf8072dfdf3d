package domain

import "time"

// NotificationType enumerates supported notification kinds.
type NotificationType string

const (
	NotificationTaskAssigned    NotificationType = "task_assigned"
	NotificationTaskCompleted   NotificationType = "task_completed"
	NotificationTaskCategorized NotificationType = "task_categorized"
	NotificationDeadlineWarning NotificationType = "deadline_warning"
	NotificationOverloadAlert   NotificationType = "overload_alert"
	NotificationSystem          NotificationType = "system"
)

// Notification is an append-only, user-dismissible event record.
type Notification struct {
	ID              string
	Type            NotificationType
	Title           string
	Message         string
	Priority        TaskPriority
	Read            bool
	RelatedEmployee *string
	RelatedTask     *string
	CreatedAt       time.Time
}
