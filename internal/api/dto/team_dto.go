package dto

import "time"

// DomainRequest payload for creating or updating a taxonomy domain.
type DomainRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Color       string   `json:"color"`
}

// DomainResponse response.
type DomainResponse struct {
	ID          string    `json:"id"`
	TeamKey     string    `json:"team_key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamResponse response with nested domains.
type TeamResponse struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Domains     []DomainResponse `json:"domains"`
}
