// Package domain holds DTOs for the chat surface
package domain

import "context"

// ChatInput is one user turn
type ChatInput struct {
	Message        string `json:"message" validate:"required,min=1" example:"recommend a sci-fi movie"`
	ConversationID string `json:"conversation_id,omitempty" example:"default"`
}

// ChatOutput is the rendered reply for one turn
type ChatOutput struct {
	Response       string         `json:"response"`
	ConversationID string         `json:"conversation_id" example:"default"`
	Suggestions    []string       `json:"suggestions,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
	Intent         string         `json:"intent,omitempty" example:"recommend"`
	ResponseType   string         `json:"response_type,omitempty" example:"recommendations"`
	ProcessingTime float64        `json:"processing_time" example:"0.42"`
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Chat(ctx context.Context, in ChatInput) (ChatOutput, error)
}
