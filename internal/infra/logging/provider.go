package logging

import (
	"context"
	"time"

	"hellojoke/internal/domain"
)

// JokeProvider wraps next so that every fetch is logged with its duration
// and outcome.
func JokeProvider(next domain.JokeProvider) domain.JokeProvider {
	return &jokeProviderLogger{next: next}
}

type jokeProviderLogger struct {
	next domain.JokeProvider
}

func (l *jokeProviderLogger) FetchJoke(ctx context.Context) (joke *domain.Joke, err error) {
	defer func(begin time.Time) {
		took := time.Since(begin).String()
		if err != nil {
			Warn("Joke fetch failed", "took", took, "error", err)
			return
		}
		id := ""
		if joke != nil {
			id = joke.ID
		}
		Info("Joke fetched", "joke_id", id, "took", took)
	}(time.Now())

	return l.next.FetchJoke(ctx)
}
