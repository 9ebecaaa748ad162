// Package domain holds the catalog types shared by transport and other modules
package domain

// Movie is the compact card returned by searches and recommendation lists
type Movie struct {
	ID        int64    `json:"id" example:"27205"`
	Title     string   `json:"title" example:"Inception"`
	Year      string   `json:"year" example:"2010"`
	Overview  string   `json:"overview" example:"Cobb, a skilled thief..."`
	Rating    float64  `json:"rating" example:"8.4"`
	PosterURL string   `json:"poster_url,omitempty" example:"https://image.tmdb.org/t/p/w500/poster.jpg"`
	Genres    []string `json:"genres,omitempty" example:"Action,Sci-Fi"`
}

// CastMember is one credited actor on a movie
type CastMember struct {
	Name      string `json:"name" example:"Leonardo DiCaprio"`
	Character string `json:"character,omitempty" example:"Cobb"`
}

// MovieDetails is the full record for a single movie
// IMDb and Rotten Tomatoes ratings come from the secondary provider and are
// empty when it is not configured or has no match
type MovieDetails struct {
	ID                  int64        `json:"id" example:"27205"`
	Title               string       `json:"title" example:"Inception"`
	Year                string       `json:"year" example:"2010"`
	Overview            string       `json:"overview"`
	Runtime             int          `json:"runtime" example:"148"`
	RatingTMDB          float64      `json:"rating_tmdb" example:"8.4"`
	RatingIMDB          string       `json:"rating_imdb,omitempty" example:"8.8"`
	RatingRT            string       `json:"rating_rt,omitempty" example:"87%"`
	Genres              []string     `json:"genres"`
	Cast                []CastMember `json:"cast"`
	Director            string       `json:"director" example:"Christopher Nolan"`
	PosterURL           string       `json:"poster_url,omitempty"`
	Budget              int64        `json:"budget" example:"160000000"`
	Revenue             int64        `json:"revenue" example:"825532764"`
	ProductionCompanies []string     `json:"production_companies"`
}

// CreditRef is a movie reference inside a person's filmography
type CreditRef struct {
	Title     string `json:"title" example:"Forrest Gump"`
	Year      string `json:"year" example:"1994"`
	Character string `json:"character,omitempty" example:"Forrest Gump"`
}

// Person is an actor or director profile
type Person struct {
	ID             int64       `json:"id" example:"31"`
	Name           string      `json:"name" example:"Tom Hanks"`
	Biography      string      `json:"biography"`
	Birthday       string      `json:"birthday,omitempty" example:"1956-07-09"`
	PlaceOfBirth   string      `json:"place_of_birth,omitempty" example:"Concord, California, USA"`
	KnownFor       string      `json:"known_for_department,omitempty" example:"Acting"`
	ProfileURL     string      `json:"profile_url,omitempty"`
	PopularMovies  []CreditRef `json:"popular_movies"`
	DirectedMovies []CreditRef `json:"directed_movies"`
}

// YearRange bounds a discover query by primary release date, inclusive
type YearRange struct {
	From int `json:"from" example:"2021"`
	To   int `json:"to" example:"2025"`
}
