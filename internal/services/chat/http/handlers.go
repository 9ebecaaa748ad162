// Package http provides http transport for the chat surface
package http

import (
	stdhttp "net/http"
	"strings"

	"cinechat/internal/modkit/httpkit"
	perr "cinechat/internal/platform/errors"
	"cinechat/internal/services/chat/domain"
)

// Register mounts the chat endpoint
func Register(r httpkit.Router, svc domain.ServicePort) {
	h := &handlers{svc: svc}

	httpkit.PostJSON[domain.ChatInput](r, "/", h.chat)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Chat with the movie assistant
// @Description Classifies the message, resolves entities against conversation context, and renders a reply
// @Tags Chat
// @Accept json
// @Produce json
// @Param payload body domain.ChatInput true "User message"
// @Success 200 {object} domain.ChatOutput "ok"
// @Failure 400 {object} phttp.Envelope "empty message"
// @Router /chat [post]
func (h *handlers) chat(r *stdhttp.Request, in domain.ChatInput) (any, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, perr.Validationf("message cannot be empty")
	}
	return h.svc.Chat(r.Context(), in)
}
