// Package http provides http transport for conversations
package http

import (
	"fmt"
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cinechat/internal/modkit/httpkit"
	perr "cinechat/internal/platform/errors"
	"cinechat/internal/services/convo/domain"
)

// Register mounts the conversation routes
func Register(r httpkit.Router, store domain.StorePort, archive domain.ArchivePort) {
	h := &handlers{store: store, archive: archive}

	httpkit.Get(r, "/{id}", h.get)
	httpkit.Get(r, "/{id}/archive", h.archived)
	httpkit.Delete(r, "/{id}", h.clear)
}

type handlers struct {
	store   domain.StorePort
	archive domain.ArchivePort
}

// ConversationOutput wraps one conversation's remembered state
type ConversationOutput struct {
	ConversationID string       `json:"conversation_id" example:"default"`
	Conversation   domain.State `json:"conversation"`
}

// ClearedOutput confirms a deletion
type ClearedOutput struct {
	Message string `json:"message" example:"Conversation default cleared"`
}

// @Summary Conversation history
// @Tags Conversations
// @Produce json
// @Param id path string true "Conversation id"
// @Success 200 {object} ConversationOutput "ok"
// @Router /conversations/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "id")
	state, ok := h.store.Snapshot(id)
	if !ok {
		return nil, perr.NotFoundf("conversation %q not found", id)
	}
	return ConversationOutput{ConversationID: id, Conversation: state}, nil
}

// ArchiveOutput lists durably stored turns, newest first
type ArchiveOutput struct {
	ConversationID string                `json:"conversation_id" example:"default"`
	Turns          []domain.ArchivedTurn `json:"turns"`
	Total          int                   `json:"total" example:"2"`
}

// @Summary Archived turns for a conversation
// @Tags Conversations
// @Produce json
// @Param id path string true "Conversation id"
// @Param limit query int false "Max turns to return"
// @Success 200 {object} ArchiveOutput "ok"
// @Router /conversations/{id}/archive [get]
func (h *handlers) archived(r *stdhttp.Request) (any, error) {
	if h.archive == nil || !h.archive.Enabled() {
		return nil, perr.NotFoundf("conversation archive is not enabled")
	}
	id := chi.URLParam(r, "id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	turns, err := h.archive.History(r.Context(), id, limit)
	if err != nil {
		return nil, err
	}
	return ArchiveOutput{ConversationID: id, Turns: turns, Total: len(turns)}, nil
}

// @Summary Clear a conversation
// @Tags Conversations
// @Produce json
// @Param id path string true "Conversation id"
// @Success 200 {object} ClearedOutput "ok"
// @Router /conversations/{id} [delete]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "id")
	if !h.store.Delete(id) {
		return nil, perr.NotFoundf("conversation %q not found", id)
	}
	return ClearedOutput{Message: fmt.Sprintf("Conversation %s cleared", id)}, nil
}
