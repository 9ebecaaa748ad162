package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"cinechat/internal/core/extract"
	"cinechat/internal/core/intent"
	"cinechat/internal/core/normalize"
	catalogdomain "cinechat/internal/services/catalog/domain"
)

// reply is a rendered template before the transport envelope is applied
type reply struct {
	Content      string
	Data         map[string]any
	Suggestions  []string
	ResponseType string
}

// renderer turns an intent and its entities into a reply using catalog data
// All catalog failures degrade to the unknown reply so a provider outage
// reads as a polite shrug rather than an error page
type renderer struct {
	catalog catalogdomain.CatalogPort
	rnd     *rand.Rand
}

var greetingReplies = []string{
	"Hello! 🎬 I'm your movie discovery assistant. I can help you find great films, share movie trivia, or discuss your favorite genres. What are you in the mood for?",
	"Hey there! 🎭 Ready to dive into the world of cinema? I can recommend movies, share fascinating facts, or help you explore new genres. What sounds interesting?",
	"Hi! 🍿 I'm here to help you discover amazing movies. Whether you want recommendations, trivia, or just want to chat about films, I'm ready! What can I help you with?",
}

var unknownReplies = []string{
	"I'm not sure I understood. You can ask for recommendations, trivia, or details about a movie!",
	"Try asking things like: 'Recommend me a comedy', 'Tell me about Inception', 'Who stars in Titanic', or 'Give me a fun fact about movies.'",
	"Need help? Try: 'What should I watch tonight?', 'Show me trending movies', 'Tell me something interesting about movies.'",
}

type debateTopic struct {
	Title    string   `json:"title"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

var debateTopics = []debateTopic{
	{
		Title:    "Marvel vs DC",
		Question: "🦸 **Marvel vs DC Debate**\n\nWhich cinematic universe do you think creates better superhero movies and why?",
		Options:  []string{"Marvel has better storytelling", "DC has more depth", "Both are great in different ways"},
	},
	{
		Title:    "Sequels",
		Question: "🎬 **Sequels Debate**\n\nDo you think sequels generally enhance or diminish the original movie's legacy?",
		Options:  []string{"Sequels often ruin originals", "Good sequels enhance the story", "It depends on the execution"},
	},
	{
		Title:    "Cinema Experience",
		Question: "🎭 **Cinema Experience Debate**\n\nWith streaming platforms, do you think the traditional movie theater experience is still important?",
		Options:  []string{"Nothing beats the cinema", "Streaming is more convenient", "Both have their place"},
	},
	{
		Title:    "Effects",
		Question: "🎨 **Effects Debate**\n\nDo you prefer movies with practical effects or modern CGI, and why?",
		Options:  []string{"Practical effects feel more real", "CGI allows more creativity", "Best when combined well"},
	},
}

// render dispatches on the classified intent
func (t *renderer) render(ctx context.Context, res intent.Result, bag extract.Bag) reply {
	switch res.Intent {
	case intent.Greeting:
		return t.greeting()
	case intent.Recommend:
		return t.recommend(ctx, bag)
	case intent.Search:
		return t.search(ctx, bag)
	case intent.Trivia:
		return t.trivia(ctx, bag)
	case intent.Debate:
		return t.debate(ctx, bag)
	case intent.ActorInfo:
		return t.actorInfo(ctx, bag)
	case intent.DirectorInfo:
		return t.directorInfo(ctx, bag)
	case intent.GenreQuery:
		return t.genreQuery(ctx, bag)
	case intent.PlotQuery:
		return t.plotQuery(ctx, bag)
	case intent.RatingQuery:
		return t.ratingQuery(ctx, bag)
	default:
		return t.unknown()
	}
}

func (t *renderer) greeting() reply {
	return reply{
		Content: greetingReplies[t.rnd.Intn(len(greetingReplies))],
		Suggestions: []string{
			"Recommend me a movie",
			"Tell me some movie trivia",
			"Find action movies from 2023",
			"What's a good comedy to watch?",
		},
	}
}

func (t *renderer) unknown() reply {
	return reply{
		Content: unknownReplies[t.rnd.Intn(len(unknownReplies))],
		Suggestions: []string{
			"Recommend a movie",
			"Show me trending movies",
			"Tell me about [movie title]",
			"Who stars in [movie title]",
			"Tell me movie trivia",
			"Find movies by genre",
			"Give me a classic movie",
		},
	}
}

func (t *renderer) recommend(ctx context.Context, bag extract.Bag) reply {
	if genre := bag.FirstGenre(); genre != "" {
		var years *catalogdomain.YearRange
		if bag.Year != 0 {
			years = &catalogdomain.YearRange{From: bag.Year - 2, To: bag.Year + 2}
		}
		movies, err := t.catalog.GenreRecommendations(ctx, genre, years, 3)
		if err == nil && len(movies) > 0 {
			var b strings.Builder
			fmt.Fprintf(&b, "Here are some great %s movies I recommend:\n\n", genre)
			writeMovieList(&b, movies, 100)
			fmt.Fprintf(&b, "Would you like more %s recommendations or details about any of these movies?", genre)

			return reply{
				Content: b.String(),
				Data:    map[string]any{"movies": movies, "genre": genre},
				Suggestions: []string{
					"Tell me more about " + movies[0].Title,
					"More " + genre + " movies",
					"Different genre recommendations",
				},
				ResponseType: "recommendations",
			}
		}
	}

	// no usable genre; fall back to broadly popular picks
	popular, err := t.catalog.GenreRecommendations(ctx, "action", nil, 3)
	if err == nil && len(popular) > 0 {
		var b strings.Builder
		b.WriteString("Here are some popular movies you might enjoy:\n\n")
		writeMovieList(&b, popular, 100)
		b.WriteString("What genre are you in the mood for? I can give you more specific recommendations!")

		return reply{
			Content:      b.String(),
			Suggestions:  []string{"Comedy movies", "Horror films", "Romantic movies", "Sci-fi recommendations"},
			ResponseType: "recommendations",
		}
	}

	return reply{
		Content:      "I'd love to recommend some movies! What genre are you interested in? Action, comedy, drama, or something else? 🎬",
		Suggestions:  []string{"Action movies", "Comedy films", "Drama recommendations"},
		ResponseType: "recommendations",
	}
}

func (t *renderer) search(ctx context.Context, bag extract.Bag) reply {
	if !bag.HasTitle() {
		return reply{Content: "What movie are you looking for? Please tell me the title and I'll find it for you! 🔍"}
	}

	movies, err := t.catalog.SearchMovies(ctx, bag.Title, bag.Year, 3)
	if err != nil || len(movies) == 0 {
		return reply{Content: fmt.Sprintf(
			"I couldn't find any movies matching '%s'. Could you check the spelling or try a different title? 🎬", bag.Title,
		)}
	}

	if len(movies) == 1 {
		if details, derr := t.catalog.MovieDetails(ctx, movies[0].ID); derr == nil {
			var b strings.Builder
			fmt.Fprintf(&b, "**%s** (%s)\n\n", details.Title, details.Year)
			fmt.Fprintf(&b, "⭐ Rating: %.1f/10 (TMDb)", details.RatingTMDB)
			if details.RatingIMDB != "" {
				fmt.Fprintf(&b, " | %s/10 (IMDb)", details.RatingIMDB)
			}
			fmt.Fprintf(&b, "\n\n📽️ **Director:** %s\n", details.Director)
			fmt.Fprintf(&b, "🎭 **Cast:** %s\n", joinCast(details.Cast, 3))
			fmt.Fprintf(&b, "🏷️ **Genres:** %s\n", strings.Join(details.Genres, ", "))
			fmt.Fprintf(&b, "⏱️ **Runtime:** %d minutes\n\n", details.Runtime)
			fmt.Fprintf(&b, "**Plot:** %s", details.Overview)

			return reply{
				Content: b.String(),
				Data:    map[string]any{"movie": details},
				Suggestions: []string{
					"Movies like " + details.Title,
					"More " + details.Director + " films",
					"Trivia about this movie",
				},
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found several movies matching '%s':\n\n", bag.Title)
	writeMovieList(&b, movies, 80)
	b.WriteString("Which one are you interested in?")

	suggestions := make([]string, 0, 3)
	for _, m := range movies[:min(3, len(movies))] {
		suggestions = append(suggestions, "Tell me about "+m.Title)
	}
	return reply{Content: b.String(), Data: map[string]any{"movies": movies}, Suggestions: suggestions}
}

func (t *renderer) trivia(ctx context.Context, bag extract.Bag) reply {
	if bag.HasTitle() {
		movies, err := t.catalog.SearchMovies(ctx, bag.Title, 0, 1)
		if err == nil && len(movies) > 0 {
			facts, terr := t.catalog.MovieTrivia(ctx, movies[0].ID)
			if terr == nil && len(facts) > 0 {
				var b strings.Builder
				fmt.Fprintf(&b, "🎬 **Fun facts about %s:**\n\n", movies[0].Title)
				for i, fact := range facts {
					fmt.Fprintf(&b, "%d. %s\n\n", i+1, fact)
				}
				return reply{
					Content: b.String(),
					Suggestions: []string{
						"More about " + movies[0].Title,
						"Random movie trivia",
						"Movies like " + movies[0].Title,
					},
					ResponseType: "trivia",
				}
			}
		}
	}

	// random fact from a broadly popular movie
	popular, err := t.catalog.GenreRecommendations(ctx, "action", nil, 5)
	if err == nil && len(popular) > 0 {
		movie := popular[t.rnd.Intn(len(popular))]
		content := fmt.Sprintf("🎬 **Did you know?** (About %s)\n\n", movie.Title)
		if facts, terr := t.catalog.MovieTrivia(ctx, movie.ID); terr == nil && len(facts) > 0 {
			content += facts[0]
		} else {
			content += fmt.Sprintf("%s was released in %s and has a rating of %.1f/10!", movie.Title, movie.Year, movie.Rating)
		}
		return reply{
			Content: content,
			Suggestions: []string{
				"More movie trivia",
				"Tell me about " + movie.Title,
				"Random movie facts",
			},
			ResponseType: "trivia",
		}
	}

	return reply{
		Content:      "I'd love to share some movie trivia! Which movie are you curious about? 🎭",
		ResponseType: "trivia",
	}
}

func (t *renderer) debate(ctx context.Context, bag extract.Bag) reply {
	if bag.HasTitle() {
		movies, err := t.catalog.SearchMovies(ctx, bag.Title, 0, 1)
		if err == nil && len(movies) > 0 {
			movie := movies[0]
			var b strings.Builder
			fmt.Fprintf(&b, "🎬 **Let's debate about %s!**\n\n", movie.Title)
			fmt.Fprintf(&b, "This %s film has a %.1f/10 rating. ", movie.Year, movie.Rating)
			b.WriteString("What's your take on it? Is it overrated, underrated, or perfectly rated?\n\n")
			fmt.Fprintf(&b, "**%s** - What do you think?", movie.Title)

			return reply{
				Content: b.String(),
				Data:    map[string]any{"movie": movie, "debate_type": "movie_rating"},
				Suggestions: []string{
					movie.Title + " is overrated",
					movie.Title + " is underrated",
					movie.Title + " is perfectly rated",
					"Compare it to similar movies",
				},
				ResponseType: "debate",
			}
		}
	}

	topic := debateTopics[t.rnd.Intn(len(debateTopics))]
	return reply{
		Content:      topic.Question,
		Data:         map[string]any{"debate_topic": topic},
		Suggestions:  append(append([]string(nil), topic.Options...), "Different debate topic"),
		ResponseType: "debate",
	}
}

func (t *renderer) actorInfo(ctx context.Context, bag extract.Bag) reply {
	if len(bag.PersonNames) > 0 {
		person, err := t.catalog.SearchPerson(ctx, bag.PersonNames[0])
		if err == nil && person != nil {
			var b strings.Builder
			fmt.Fprintf(&b, "🎭 **%s**\n\n", person.Name)
			if person.Biography != "" {
				fmt.Fprintf(&b, "%s...\n\n", clip(person.Biography, 200))
			}
			if person.Birthday != "" {
				fmt.Fprintf(&b, "📅 **Born:** %s", person.Birthday)
				if person.PlaceOfBirth != "" {
					fmt.Fprintf(&b, " in %s", person.PlaceOfBirth)
				}
				b.WriteString("\n\n")
			}
			if len(person.PopularMovies) > 0 {
				b.WriteString("🎬 **Popular Movies:**\n")
				for _, m := range person.PopularMovies[:min(3, len(person.PopularMovies))] {
					fmt.Fprintf(&b, "• %s (%s)", m.Title, m.Year)
					if m.Character != "" {
						fmt.Fprintf(&b, " as %s", m.Character)
					}
					b.WriteString("\n")
				}
			}
			return reply{
				Content: b.String(),
				Data:    map[string]any{"person": person},
				Suggestions: []string{
					"More " + person.Name + " movies",
					"Tell me about their latest film",
					"Other popular actors",
				},
			}
		}
	}

	return reply{Content: "Which actor are you interested in learning about? Please tell me their name! 🎭"}
}

func (t *renderer) directorInfo(ctx context.Context, bag extract.Bag) reply {
	if len(bag.PersonNames) > 0 {
		person, err := t.catalog.SearchPerson(ctx, bag.PersonNames[0])
		if err == nil && person != nil && len(person.DirectedMovies) > 0 {
			var b strings.Builder
			fmt.Fprintf(&b, "🎬 **%s** (Director)\n\n", person.Name)
			if person.Biography != "" {
				fmt.Fprintf(&b, "%s...\n\n", clip(person.Biography, 200))
			}
			b.WriteString("🎥 **Directed Films:**\n")
			for _, m := range person.DirectedMovies[:min(5, len(person.DirectedMovies))] {
				fmt.Fprintf(&b, "• %s (%s)\n", m.Title, m.Year)
			}
			return reply{
				Content: b.String(),
				Data:    map[string]any{"director": person},
				Suggestions: []string{
					"More " + person.Name + " films",
					"Tell me about their best movie",
					"Other famous directors",
				},
			}
		}
	}

	return reply{Content: "Which director would you like to know about? Please tell me their name! 🎥"}
}

func (t *renderer) genreQuery(ctx context.Context, bag extract.Bag) reply {
	if genre := bag.FirstGenre(); genre != "" {
		movies, err := t.catalog.GenreRecommendations(ctx, genre, nil, 5)
		if err == nil && len(movies) > 0 {
			var b strings.Builder
			fmt.Fprintf(&b, "🎬 **Great %s Movies:**\n\n", normalize.TitleLabel(genre))
			writeMovieList(&b, movies[:min(3, len(movies))], 80)
			fmt.Fprintf(&b, "Would you like more %s recommendations or details about any of these?", genre)

			return reply{
				Content: b.String(),
				Data:    map[string]any{"movies": movies, "genre": genre},
				Suggestions: []string{
					"More " + genre + " movies",
					"Best " + genre + " movies of 2023",
					"Different genre",
				},
				ResponseType: "recommendations",
			}
		}
	}

	return reply{
		Content:      "What genre are you interested in? Action, comedy, horror, romance, sci-fi, or something else? 🎭",
		ResponseType: "recommendations",
	}
}

func (t *renderer) plotQuery(ctx context.Context, bag extract.Bag) reply {
	if bag.HasTitle() {
		movies, err := t.catalog.SearchMovies(ctx, bag.Title, 0, 1)
		if err == nil && len(movies) > 0 {
			movie := movies[0]
			content := fmt.Sprintf("**%s** (%s)\n\n📖 **Plot:** %s", movie.Title, movie.Year, movie.Overview)
			return reply{
				Content: content,
				Suggestions: []string{
					"Cast of " + movie.Title,
					"Movies like " + movie.Title,
					"More details about this movie",
				},
			}
		}
	}

	return reply{Content: "Which movie's plot would you like to know about? Please tell me the title! 📖"}
}

func (t *renderer) ratingQuery(ctx context.Context, bag extract.Bag) reply {
	if bag.HasTitle() {
		movies, err := t.catalog.SearchMovies(ctx, bag.Title, 0, 1)
		if err == nil && len(movies) > 0 {
			if details, derr := t.catalog.MovieDetails(ctx, movies[0].ID); derr == nil {
				var b strings.Builder
				fmt.Fprintf(&b, "**%s** (%s) Ratings:\n\n", details.Title, details.Year)
				fmt.Fprintf(&b, "⭐ **TMDb:** %.1f/10\n", details.RatingTMDB)
				if details.RatingIMDB != "" {
					fmt.Fprintf(&b, "🎬 **IMDb:** %s/10\n", details.RatingIMDB)
				}
				if details.RatingRT != "" {
					fmt.Fprintf(&b, "🍅 **Rotten Tomatoes:** %s\n", details.RatingRT)
				}
				b.WriteString(verdict(details.RatingTMDB))

				return reply{
					Content: b.String(),
					Suggestions: []string{
						"Tell me more about " + details.Title,
						"Movies like " + details.Title,
						"Other highly rated movies",
					},
				}
			}
		}
	}

	return reply{Content: "Which movie's rating would you like to know? Please tell me the title! ⭐"}
}

// verdict is the tiered one-liner under a ratings block
func verdict(tmdb float64) string {
	switch {
	case tmdb >= 8.0:
		return "\n🏆 This is considered an excellent movie!"
	case tmdb >= 7.0:
		return "\n👍 This is a well-rated movie!"
	case tmdb >= 6.0:
		return "\n👌 This movie has decent ratings."
	default:
		return "\n📝 This movie has mixed reviews."
	}
}

func writeMovieList(b *strings.Builder, movies []catalogdomain.Movie, overviewLen int) {
	for i, m := range movies {
		fmt.Fprintf(b, "%d. **%s** (%s) - ⭐ %.1f/10\n", i+1, m.Title, m.Year, m.Rating)
		fmt.Fprintf(b, "   %s...\n\n", clip(m.Overview, overviewLen))
	}
}

func joinCast(cast []catalogdomain.CastMember, n int) string {
	names := make([]string, 0, n)
	for _, c := range cast[:min(n, len(cast))] {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
