package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"cinechat/internal/core/extract"
	"cinechat/internal/core/intent"
	"cinechat/internal/core/normalize"
	perr "cinechat/internal/platform/errors"
	"cinechat/internal/platform/logger"
	catalogdomain "cinechat/internal/services/catalog/domain"
	"cinechat/internal/services/chat/domain"
	convodomain "cinechat/internal/services/convo/domain"
)

// DefaultConversationID is used when a request does not name a conversation
const DefaultConversationID = "default"

// vaguePhrases are follow-ups resolved against conversation context instead
// of the classifier; matched on the lowercased message verbatim
var vaguePhrases = map[string]struct{}{
	"tell me more about these movies": {},
	"tell me more":                    {},
	"more info on these":              {},
	"details on these movies":         {},
	"what else?":                      {},
	"anything else?":                  {},
	"more info":                       {},
	"more details":                    {},
	"elaborate":                       {},
	"expand":                          {},
	"explain":                         {},
}

// Svc implements domain.ServicePort
type Svc struct {
	catalog catalogdomain.CatalogPort
	store   convodomain.StorePort
	archive convodomain.ArchivePort
	folder  *normalize.Folder
	render  *renderer
	log     *logger.Logger
}

// New constructs the chat service. Panics on missing deps per platform convention
func New(catalog catalogdomain.CatalogPort, store convodomain.StorePort, archive convodomain.ArchivePort, seed int64) *Svc {
	if catalog == nil {
		panic("chat service requires a catalog port")
	}
	if store == nil {
		panic("chat service requires a conversation store")
	}
	return &Svc{
		catalog: catalog,
		store:   store,
		archive: archive,
		folder:  normalize.New(),
		render:  &renderer{catalog: catalog, rnd: rand.New(rand.NewSource(seed))},
		log:     logger.Named("chat"),
	}
}

// Chat runs one exchange: resolve direct movie asks, then vague follow-ups,
// then the classified intent. Failures past input validation degrade to an
// apology payload rather than an error status
func (s *Svc) Chat(ctx context.Context, in domain.ChatInput) (out domain.ChatOutput, err error) {
	start := time.Now()

	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return domain.ChatOutput{}, perr.InvalidArgf("message cannot be empty")
	}

	convID := in.ConversationID
	if convID == "" {
		convID = DefaultConversationID
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("conversation_id", convID).Msg("chat exchange panicked")
			out = s.apology(convID, start)
			err = nil
		}
	}()

	s.log.Debug().Str("conversation_id", convID).Int("message_len", len(msg)).Msg("processing chat message")

	// state exists from the first message on, even when a short path answers
	s.store.Update(convID, func(*convodomain.State) {})

	res := intent.Classify(msg)
	bag := extract.Extract(msg, res.Intent)

	// direct movie ask, either by lead phrase or by echoing a recent title
	if title, ok := s.directTitle(convID, msg); ok {
		if reply, found := s.movieInfo(ctx, title); found {
			return s.finish(convID, "movie_info", reply, start), nil
		}
	} else if _, vague := vaguePhrases[strings.ToLower(msg)]; vague && !bag.HasTitle() {
		return s.finish(convID, "clarification", s.clarify(convID), start), nil
	}

	s.store.Update(convID, func(st *convodomain.State) {
		now := time.Now()
		st.NoteTitle(bag.Title)
		st.NoteGenre(bag.Genre)
		st.AppendUser(msg, string(res.Intent), &bag, now)
	})

	reply := s.render.render(ctx, res, bag)

	s.store.Update(convID, func(st *convodomain.State) {
		st.AppendBot(reply.Content, time.Now())
	})

	if s.archive != nil {
		s.archive.ArchiveTurn(ctx, convodomain.Turn{
			ConversationID: convID,
			UserMessage:    msg,
			BotReply:       reply.Content,
			Intent:         string(res.Intent),
			Confidence:     res.Confidence,
			At:             start,
		})
	}

	out = s.finish(convID, string(res.Intent), reply, start)
	return out, nil
}

// directTitle resolves a movie title the user is plainly asking about,
// either via a lead phrase or a short echo of a recently mentioned title
func (s *Svc) directTitle(convID, msg string) (string, bool) {
	if title, ok := extract.LeadTitle(msg); ok {
		return title, true
	}
	if len(strings.Fields(msg)) > 3 {
		return "", false
	}
	for _, title := range s.store.RecentTitles(convID) {
		if s.folder.ContainsFold(msg, title) {
			return title, true
		}
	}
	return "", false
}

// movieInfo builds the direct answer card; false lets dispatch fall through
func (s *Svc) movieInfo(ctx context.Context, title string) (reply, bool) {
	movies, err := s.catalog.SearchMovies(ctx, title, 0, 1)
	if err != nil || len(movies) == 0 {
		return reply{}, false
	}
	movie := movies[0]

	var b strings.Builder
	fmt.Fprintf(&b, "🎬 **%s** (%s)\n\n", movie.Title, movie.Year)
	fmt.Fprintf(&b, "**Rating:** %.1f/10\n\n", movie.Rating)
	fmt.Fprintf(&b, "**Plot:** %s\n\n", movie.Overview)

	data := map[string]any{"movie": movie}
	if details, derr := s.catalog.MovieDetails(ctx, movie.ID); derr == nil {
		if len(details.Cast) > 0 {
			fmt.Fprintf(&b, "**Cast:** %s\n\n", joinCast(details.Cast, 5))
		}
		if details.Director != "" {
			fmt.Fprintf(&b, "**Director:** %s\n\n", details.Director)
		}
		data["movie"] = details
	}

	return reply{
		Content: b.String(),
		Data:    data,
		Suggestions: []string{
			"More movies like " + movie.Title,
			"Trivia about " + movie.Title,
			"Recommend something else",
		},
		ResponseType: "movie_info",
	}, true
}

// clarify answers a vague follow-up from the remembered context
func (s *Svc) clarify(convID string) reply {
	st, ok := s.store.Snapshot(convID)
	if ok {
		if titles := st.Context.RecentTitles; len(titles) > 0 {
			suggestions := make([]string, 0, len(titles))
			for _, t := range titles {
				suggestions = append(suggestions, "Tell me about "+t)
			}
			return reply{
				Content: fmt.Sprintf(
					"Would you like more details about one of these movies: %s? Please specify the title! 📖",
					strings.Join(titles, ", "),
				),
				Suggestions: suggestions,
			}
		}
		if genres := st.Context.RecentGenres; len(genres) > 0 {
			suggestions := make([]string, 0, len(genres))
			for _, g := range genres {
				suggestions = append(suggestions, "Recommend more "+g+" movies")
			}
			return reply{
				Content: fmt.Sprintf(
					"Are you interested in more movies from these genres: %s? You can ask for recommendations or details! 🎬",
					strings.Join(genres, ", "),
				),
				Suggestions: suggestions,
			}
		}
	}
	return reply{Content: "Which movie or genre would you like to know more about? Please specify! 📖"}
}

func (s *Svc) finish(convID, it string, r reply, start time.Time) domain.ChatOutput {
	return domain.ChatOutput{
		Response:       r.Content,
		ConversationID: convID,
		Suggestions:    r.Suggestions,
		Data:           r.Data,
		Intent:         it,
		ResponseType:   r.ResponseType,
		ProcessingTime: time.Since(start).Seconds(),
	}
}

func (s *Svc) apology(convID string, start time.Time) domain.ChatOutput {
	return domain.ChatOutput{
		Response:       "I'm sorry, but I encountered an error processing your request. Please try again! 🎬",
		ConversationID: convID,
		Suggestions:    []string{"Try a different question", "Search for a movie", "Ask for recommendations"},
		Intent:         "error",
		ProcessingTime: time.Since(start).Seconds(),
	}
}
