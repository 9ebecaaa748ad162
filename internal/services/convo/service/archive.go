package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cinechat/internal/modkit/repokit"
	perr "cinechat/internal/platform/errors"
	"cinechat/internal/platform/logger"
	"cinechat/internal/services/convo/domain"
	"cinechat/internal/services/convo/repo"
)

// maxHistory bounds an archive read back
const maxHistory = 50

// Archiver ships completed turns to postgres when a database is wired,
// and is a silent no-op otherwise. Failures are logged and swallowed so a
// broken archive can never break a chat reply
type Archiver struct {
	repo    repo.Repo
	timeout time.Duration
	log     *logger.Logger
}

// NewArchiver constructs an Archiver; db may be nil to disable archiving
func NewArchiver(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Archiver {
	a := &Archiver{
		timeout: 5 * time.Second,
		log:     logger.Named("convo.archive"),
	}
	if db != nil && binder != nil {
		a.repo = binder.Bind(db)
	}
	return a
}

// Enabled reports whether turns actually reach storage
func (a *Archiver) Enabled() bool { return a.repo != nil }

// ArchiveTurn writes one turn without blocking the caller
func (a *Archiver) ArchiveTurn(ctx context.Context, t domain.Turn) {
	if a.repo == nil {
		return
	}
	t.ID = uuid.NewString()
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()
		a.logResult(t, a.repo.InsertTurn(ctx, t))
	}()
}

// History reads back the newest archived turns; not found when archiving is off
func (a *Archiver) History(ctx context.Context, conversationID string, limit int) ([]domain.ArchivedTurn, error) {
	if a.repo == nil {
		return nil, perr.NotFoundf("conversation archive is not enabled")
	}
	if limit <= 0 || limit > maxHistory {
		limit = maxHistory
	}
	return a.repo.RecentTurns(ctx, conversationID, limit)
}

// logResult grades an archive failure by its database cause
func (a *Archiver) logResult(t domain.Turn, err error) {
	switch {
	case err == nil:
	case perr.IsDuplicateKey(err):
		a.log.Debug().Str("turn_id", t.ID).Str("conversation_id", t.ConversationID).Msg("turn already archived")
	case perr.IsConnectionUnavailable(err) || perr.Retryable(err):
		a.log.Warn().Err(err).Str("conversation_id", t.ConversationID).Msg("turn archive unavailable")
	default:
		a.log.Error().Err(err).Str("conversation_id", t.ConversationID).Msg("turn archive failed")
	}
}
