// Package assistant forwards user text to a generative-language model with a
// fixed persona and always produces an answer, falling back to canned text
// when the model fails.
package assistant

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// Outcome labels how a response was produced.
type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeEmpty     Outcome = "empty"
	OutcomeFailed    Outcome = "failed"
)

// Service answers assistant requests.
type Service struct {
	gen      Generator
	timeout  time.Duration
	log      zerolog.Logger
	observer func(endpoint string, outcome Outcome)
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds each generation call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithObserver registers a callback invoked once per response.
func WithObserver(fn func(endpoint string, outcome Outcome)) Option {
	return func(s *Service) { s.observer = fn }
}

// NewService creates a Service backed by gen. A nil gen behaves like Disabled.
func NewService(gen Generator, opts ...Option) *Service {
	if gen == nil {
		gen = Disabled
	}
	s := &Service{gen: gen, timeout: 15 * time.Second, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Respond produces the answer for req on endpoint. It never fails: empty or
// failed generations are replaced by the endpoint's fallback text.
func (s *Service) Respond(ctx context.Context, ep Endpoint, req Request) string {
	text, err := s.generate(ctx, ep.Prompt(req))
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("endpoint", ep.Name).Msg("generation failed, using fallback")
		s.observe(ep.Name, OutcomeFailed)
		fallbacks := ep.ErrorFallbacks(req)
		return fallbacks[rand.IntN(len(fallbacks))]
	case text == "":
		s.observe(ep.Name, OutcomeEmpty)
		return ep.EmptyFallback(req)
	default:
		s.observe(ep.Name, OutcomeGenerated)
		return text
	}
}

func (s *Service) generate(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return Clean(raw), nil
}

func (s *Service) observe(endpoint string, outcome Outcome) {
	if s.observer != nil {
		s.observer(endpoint, outcome)
	}
}
