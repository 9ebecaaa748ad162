// Package intent implements rule-based intent detection for movie chat turns
package intent

import (
	"regexp"
	"strings"
)

// Intent is a closed set of user intent categories
type Intent string

const (
	// Greeting covers salutations and smalltalk openers
	Greeting Intent = "greeting"
	// Recommend covers recommendation and what-should-I-watch requests
	Recommend Intent = "recommend"
	// Search covers lookups of a specific movie
	Search Intent = "search"
	// Trivia covers fun-fact and behind-the-scenes requests
	Trivia Intent = "trivia"
	// Debate covers opinion and comparison prompts
	Debate Intent = "debate"
	// ActorInfo covers questions about actors and casts
	ActorInfo Intent = "actor_info"
	// DirectorInfo covers questions about directors
	DirectorInfo Intent = "director_info"
	// GenreQuery covers genre and mood based requests
	GenreQuery Intent = "genre_query"
	// YearQuery covers release-year and era based requests
	YearQuery Intent = "year_query"
	// RatingQuery covers rating and review questions
	RatingQuery Intent = "rating_query"
	// PlotQuery covers plot and synopsis questions
	PlotQuery Intent = "plot_query"
	// Unknown is returned when no rule matches
	Unknown Intent = "unknown"
)

// Result is the outcome of classifying one message
type Result struct {
	Intent     Intent
	Confidence float64
	Original   string
}

// Rule pairs an intent with its trigger patterns
// Patterns run against the lowercased trimmed message and match anywhere
type Rule struct {
	Intent   Intent
	Patterns []*regexp.Regexp
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// rules is scored top to bottom
// On a score tie the earlier entry wins, so table order is the priority order
var rules = []Rule{
	{Greeting, compile(
		`\b(hi|hello|hey|greetings|good morning|good afternoon|good evening|sup|yo)\b`,
		`^(hi|hello|hey|sup|yo)$`,
		`\b(how are you|what's up|whats up)\b`,
	)},
	{Recommend, compile(
		`\b(recommend|suggest|advise|propose|pick for me|choose for me)\b`,
		`\b(what should i watch|what to watch|something to watch|what's good to watch|what's popular)\b`,
		`\b(good movie|great film|best movie|top movie|must-see|worth watching|hidden gem|underrated|overrated)\b`,
		`\b(movie recommendation|film recommendation|movie list|top picks|favorites)\b`,
		`\b(movies like|similar to|in the style of|reminds me of|if i liked|if i enjoyed)\b`,
		`\b(i want to watch|looking for|need something|show me|find me|give me|suggest me)\b.*\b(movie|film)\b`,
		`\b(any suggestions|help me find|got anything|anything fun|anything new|anything trending|anything classic|anything old|anything recent|anything popular)\b`,
		`\b(i'm bored|bored|nothing to watch|need entertainment|want to relax|want to laugh|want to cry|want to be scared|want to be inspired)\b`,
		`\b(tonight|weekend|date night|with friends|family night|movie night|rainy day|sick day|holiday|vacation)\b.*\b(movie|watch)\b`,
		`\b(what's good|whats good|anything good|what's trending|trending now|new releases|recently released|classic movies|old movies|timeless|iconic|cult classic)\b`,
		`\b(got any|have any|know any|can you recommend|can you suggest)\b.*\b(movie|film)\b`,
		`any good \w+? films`,
		`got any \w+? movies`,
		`what should i watch`,
		`what do you recommend`,
		`pick a movie for me`,
		`give me something to watch`,
		`anything worth watching`,
	)},
	{Search, compile(
		`\b(find|search|look for|tell me about|info about|details about|show info|show details|show plot|show cast|show director|show rating|show reviews)\b.*\b(movie|film|about|on|regarding)\b`,
		`\b(what is|who is|when was|where was|who stars in|who directed|who made|who created|who acted in|who played|who's in|who's starring)\b.*\b(movie|film|about|on|regarding)\b`,
		`"([^"]+)"`,
		`\b(have you seen|do you know|heard of|tell me about|give me info|give me details|what can you tell me|give me more info|give me more details|what else can you say|elaborate|expand|explain)\b.*\b(movie|film|about|on|regarding)\b`,
		`\b(is there a movie|movie called|film called|movie named|film named)\b`,
		`\b(who stars in|who directed|who made|who created|who acted in|who played|who's in|who's starring)\b.*`,
		`\b(plot of|story of|summary of|synopsis of|what happens in|what is .+ about|what can you tell me about .+)\b`,
		`\b(who is in .+|who directed .+|when was .+ released|give me details about .+)\b`,
	)},
	{Trivia, compile(
		`\b(trivia|fact|facts|did you know|behind the scenes|interesting|random)\b`,
		`\b(tell me something|fun fact|movie fact|cool fact|interesting fact|any fun facts|any trivia|any interesting details|any secrets|any easter eggs|any hidden details)\b`,
		`\b(surprise me|something interesting|blow my mind|anything else|what else|more info|more details|elaborate|expand|explain)\b`,
		`\b(easter egg|hidden detail|secret)\b`,
	)},
	{Debate, compile(
		`\b(debate|argue|discuss|opinion|think|believe|disagree)\b`,
		`\b(better than|worse than|compare|vs|versus)\b`,
		`\b(overrated|underrated|best|worst)\b`,
		`\b(controversial|unpopular opinion|hot take)\b`,
		`\b(fight|battle|showdown|face-off)\b.*\b(movie|film)\b`,
	)},
	{ActorInfo, compile(
		`\b(actor|actress|star|starring|cast|who plays|who stars|who's in)\b`,
		`\b(acted in|appears in|stars in|featured in)\b`,
		`\b(main character|lead actor|protagonist)\b`,
	)},
	{DirectorInfo, compile(
		`\b(director|directed by|filmmaker|made by|created by)\b`,
		`\b(who directed|who made|who created)\b`,
	)},
	{GenreQuery, compile(
		`\b(action|comedy|drama|horror|romance|sci-fi|science fiction|thriller|fantasy|documentary|animation|crime|mystery|western|biography|musical|adventure|family|war|history|sport)\b`,
		`\b(funny|hilarious|laugh|humor|comic)\b`,
		`\b(scary|frightening|terrifying|creepy|spooky)\b`,
		`\b(romantic|love|relationship|couple|dating)\b`,
		`\b(exciting|adrenaline|fast-paced|intense)\b`,
		`\b(sad|emotional|touching|heartbreaking|tear-jerker)\b`,
		`\b(futuristic|space|alien|robot|technology)\b`,
		`\b(magical|fantasy|wizard|fairy|mythical)\b`,
		`\b(real|true story|documentary|based on)\b`,
		`\b(animated|cartoon|pixar|disney)\b`,
		`\b(genre|type|category|kind)\b`,
		`\b(mood for|in the mood|feel like)\b`,
	)},
	{YearQuery, compile(
		`\b(year|when|released|came out|made in|from)\b`,
		`\b(19\d{2}|20\d{2})\b`,
		`\b(recent|new|latest|old|classic|vintage)\b`,
		`\b(90s|80s|70s|60s|2000s|2010s|2020s)\b`,
	)},
	{RatingQuery, compile(
		`\b(rating|score|imdb|rotten tomatoes|critics|review|reviews)\b`,
		`\b(good|bad|worth watching|any good)\b`,
		`\b(popular|highly rated|top rated|best)\b`,
	)},
	{PlotQuery, compile(
		`\b(plot|story|about|synopsis|summary|premise)\b`,
		`\bwhat.*\b(happens|about|is it)\b`,
		`\b(storyline|narrative|what's it about)\b`,
	)},
}

// Classify scores a message against every rule table and returns the winner
// The score for an intent is the number of its rules that match at least once,
// not the number of matches. Confidence is the winner's score over the sum of
// all scores, so it always lands in [0,1] and is 0 for Unknown
func Classify(message string) Result {
	lower := strings.ToLower(strings.TrimSpace(message))

	best := Unknown
	bestScore, total := 0, 0
	for _, rule := range rules {
		score := 0
		for _, p := range rule.Patterns {
			if p.MatchString(lower) {
				score++
			}
		}
		total += score
		if score > bestScore {
			best, bestScore = rule.Intent, score
		}
	}

	conf := 0.0
	if total > 0 {
		conf = float64(bestScore) / float64(total)
	}
	return Result{Intent: best, Confidence: conf, Original: message}
}
