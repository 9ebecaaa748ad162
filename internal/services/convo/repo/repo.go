// Package repo provides postgres access for the conversation archive
package repo

import (
	"context"

	"cinechat/internal/modkit/repokit"
	perr "cinechat/internal/platform/errors"
	"cinechat/internal/platform/store"
	"cinechat/internal/services/convo/domain"
)

// Repo is the minimal persistence surface for archived turns
type Repo interface {
	InsertTurn(ctx context.Context, t domain.Turn) error
	CountTurns(ctx context.Context, conversationID string) (int64, error)
	RecentTurns(ctx context.Context, conversationID string, limit int) ([]domain.ArchivedTurn, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) InsertTurn(ctx context.Context, t domain.Turn) error {
	const sql = `
insert into turns (id, conversation_id, user_message, bot_reply, intent, confidence, created_at)
values ($1, $2, $3, $4, $5, $6, $7)
`
	if err := store.ExecOne(ctx, r.q, sql,
		t.ID, t.ConversationID, t.UserMessage, t.BotReply, t.Intent, t.Confidence, t.At,
	); err != nil {
		return perr.FromPostgresf(err, "insert turn %s", t.ID)
	}
	return nil
}

func (r *queries) RecentTurns(ctx context.Context, conversationID string, limit int) ([]domain.ArchivedTurn, error) {
	const sql = `
select id::text as id, conversation_id, user_message, bot_reply, intent, confidence, created_at
from turns
where conversation_id = $1
order by created_at desc
limit $2
`
	turns, err := store.StructsByName[domain.ArchivedTurn](ctx, r.q, sql, conversationID, limit)
	if err != nil {
		return nil, perr.FromPostgresf(err, "read turns for %s", conversationID)
	}
	return turns, nil
}

func (r *queries) CountTurns(ctx context.Context, conversationID string) (int64, error) {
	const sql = `
select count(*) from turns
where conversation_id = $1
`
	n, err := store.Scalar[int64](ctx, r.q, sql, conversationID)
	if err != nil {
		return 0, perr.FromPostgresf(err, "count turns for %s", conversationID)
	}
	return n, nil
}
