package domain

import "context"

// NoJoke is rendered in place of a missing joke.
const NoJoke = "no joke"

// Joke is a single joke as returned by a provider. ID and Status are
// provider metadata and carry no meaning for the greeting.
type Joke struct {
	ID     string
	Text   string
	Status int
}

// String returns the joke text, or NoJoke for a nil joke.
func (j *Joke) String() string {
	if j == nil {
		return NoJoke
	}
	return j.Text
}

// JokeProvider sources one joke per call. Every call is independent and may
// return a different joke.
type JokeProvider interface {
	FetchJoke(ctx context.Context) (*Joke, error)
}

// JokeProviderFunc adapts a plain function to JokeProvider.
type JokeProviderFunc func(ctx context.Context) (*Joke, error)

// FetchJoke calls f(ctx).
func (f JokeProviderFunc) FetchJoke(ctx context.Context) (*Joke, error) {
	return f(ctx)
}
