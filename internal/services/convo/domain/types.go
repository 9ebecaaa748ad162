// Package domain holds conversation state and the windowing rules over it
package domain

import (
	"time"

	"cinechat/internal/core/extract"
)

// Window bounds applied after every append
const (
	// MaxMessages bounds the message log per conversation
	MaxMessages = 10
	// MaxRecent bounds the recent title and genre windows
	MaxRecent = 5
	// MaxBotLogged bounds how much of a bot reply is kept in the log
	MaxBotLogged = 100
)

// Message is one logged turn; exactly one of User or Bot is set
type Message struct {
	User      string       `json:"user,omitempty"`
	Bot       string       `json:"bot,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
	Intent    string       `json:"intent,omitempty"`
	Entities  *extract.Bag `json:"entities,omitempty"`
}

// Context carries the rolling entity windows used for follow-up resolution
type Context struct {
	RecentTitles []string `json:"recent_titles"`
	RecentGenres []string `json:"recent_genres"`
}

// State is the whole remembered conversation
type State struct {
	Messages  []Message `json:"messages"`
	Context   Context   `json:"context"`
	CreatedAt time.Time `json:"created_at"`
}

// NewState returns an empty conversation created now
func NewState(now time.Time) State {
	return State{
		Messages:  []Message{},
		Context:   Context{RecentTitles: []string{}, RecentGenres: []string{}},
		CreatedAt: now,
	}
}

// AppendUser logs a user turn and rolls the message window
func (s *State) AppendUser(msg string, it string, entities *extract.Bag, now time.Time) {
	s.Messages = append(s.Messages, Message{User: msg, Timestamp: now, Intent: it, Entities: entities})
	s.trimMessages()
}

// AppendBot logs a bot reply truncated to MaxBotLogged characters
func (s *State) AppendBot(reply string, now time.Time) {
	s.Messages = append(s.Messages, Message{Bot: TruncateReply(reply), Timestamp: now})
	s.trimMessages()
}

// NoteTitle pushes a title into the recent window
func (s *State) NoteTitle(title string) {
	if title == "" {
		return
	}
	s.Context.RecentTitles = trimWindow(append(s.Context.RecentTitles, title))
}

// NoteGenre pushes a genre into the recent window
func (s *State) NoteGenre(genre string) {
	if genre == "" {
		return
	}
	s.Context.RecentGenres = trimWindow(append(s.Context.RecentGenres, genre))
}

// LastBot returns the most recent bot reply in the log, if any
func (s *State) LastBot() (string, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Bot != "" {
			return s.Messages[i].Bot, true
		}
	}
	return "", false
}

// Clone returns a deep copy safe to hand outside the store's locks
func (s State) Clone() State {
	out := s
	out.Messages = append([]Message(nil), s.Messages...)
	out.Context.RecentTitles = append([]string(nil), s.Context.RecentTitles...)
	out.Context.RecentGenres = append([]string(nil), s.Context.RecentGenres...)
	return out
}

func (s *State) trimMessages() {
	if n := len(s.Messages); n > MaxMessages {
		s.Messages = append(s.Messages[:0:0], s.Messages[n-MaxMessages:]...)
	}
}

func trimWindow(in []string) []string {
	if n := len(in); n > MaxRecent {
		return append(in[:0:0], in[n-MaxRecent:]...)
	}
	return in
}

// TruncateReply shortens a bot reply for the log, rune safe
func TruncateReply(reply string) string {
	runes := []rune(reply)
	if len(runes) <= MaxBotLogged {
		return reply
	}
	return string(runes[:MaxBotLogged]) + "..."
}

// Stats summarizes the store for the meta surface
type Stats struct {
	ActiveConversations int `json:"active_conversations"`
	TotalMessages       int `json:"total_messages"`
}

// Turn is one completed exchange, shipped to the optional archive
// ID is minted by the archiver right before the write
type Turn struct {
	ID             string
	ConversationID string
	UserMessage    string
	BotReply       string
	Intent         string
	Confidence     float64
	At             time.Time
}

// ArchivedTurn is a turn read back from durable storage
type ArchivedTurn struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	UserMessage    string    `db:"user_message" json:"user_message"`
	BotReply       string    `db:"bot_reply" json:"bot_reply"`
	Intent         string    `db:"intent" json:"intent"`
	Confidence     float64   `db:"confidence" json:"confidence"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
