// Package greeting builds the response body of the hello endpoint.
package greeting

import "hellojoke/internal/domain"

// DefaultTargetName is used when a request names nobody.
const DefaultTargetName = "Stephanie"

// Compose returns the greeting for name followed by joke. The name is used
// as given; resolving a default is the caller's job. A nil joke is rendered
// as domain.NoJoke.
func Compose(name string, joke *domain.Joke) string {
	return "Hello " + name + "<br/>" + "Dad joke of the moment: " + joke.String()
}
