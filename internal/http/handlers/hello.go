package handlers

import (
	"context"
	"errors"
	"html"

	"github.com/gofiber/fiber/v2"

	"hellojoke/internal/domain"
	"hellojoke/internal/greeting"
	"hellojoke/internal/infra/logging"
)

// TargetNameParam is the query parameter naming who to greet.
const TargetNameParam = "targetName"

// HelloService serves the greeting endpoint.
type HelloService struct {
	Provider    domain.JokeProvider
	DefaultName string
}

// NewHelloService creates a HelloService. An empty defaultName falls back to
// greeting.DefaultTargetName.
func NewHelloService(provider domain.JokeProvider, defaultName string) *HelloService {
	if defaultName == "" {
		defaultName = greeting.DefaultTargetName
	}
	return &HelloService{
		Provider:    provider,
		DefaultName: defaultName,
	}
}

// HandleHelloRequest returns a Fiber handler for GET /hello.
func HandleHelloRequest(provider domain.JokeProvider, defaultName string) fiber.Handler {
	svc := NewHelloService(provider, defaultName)
	return svc.HandleHello
}

// HandleHello greets the target name with one freshly fetched joke.
func (svc *HelloService) HandleHello(c *fiber.Ctx) error {
	name := c.Query(TargetNameParam, svc.DefaultName)

	joke, err := svc.Provider.FetchJoke(c.UserContext())
	if err != nil {
		return jokeError(c, err)
	}
	if joke == nil {
		return jokeError(c, domain.ErrNoJoke)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(greeting.Compose(html.EscapeString(name), escapeJoke(joke)))
}

// escapeJoke returns a copy of joke whose text is safe to embed in HTML.
func escapeJoke(joke *domain.Joke) *domain.Joke {
	return &domain.Joke{ID: joke.ID, Text: html.EscapeString(joke.Text), Status: joke.Status}
}

// jokeError maps a provider failure onto a gateway error.
func jokeError(c *fiber.Ctx, err error) error {
	requestID := c.GetRespHeader(fiber.HeaderXRequestID)
	logging.Error("Joke unavailable", "path", c.Path(), "request_id", requestID, "error", err)

	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.NewError(fiber.StatusGatewayTimeout, "Joke provider timed out")
	}
	return fiber.NewError(fiber.StatusBadGateway, "Joke unavailable")
}
