package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"trims", "  hello  ", "hello"},
		{"bold and italic", "**so** *proud* of you", "so proud of you"},
		{"headings", "## Title here", "Title here"},
		{"control characters", "hi\x00 there\x07\u0085", "hi there"},
		{"collapses blank lines", "one\n\n\n\ntwo", "one\n\ntwo"},
		{"keeps single blank line", "one\n\ntwo", "one\n\ntwo"},
		{"drops carriage returns", "a\r\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestRespondReturnsCleanedText(t *testing.T) {
	var gotPrompt string
	svc := NewService(GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "**Great job** on *Yoga*!", nil
	}))

	got := svc.Respond(context.Background(), GirlfriendTaskCompletion, Request{TaskName: "Yoga"})
	assert.Equal(t, "Great job on Yoga!", got)
	assert.Contains(t, gotPrompt, `"Yoga"`)
	assert.True(t, strings.HasPrefix(gotPrompt, girlfriendPersona))
}

func TestRespondFallsBackOnEveryEndpoint(t *testing.T) {
	failing := GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	})
	empty := GeneratorFunc(func(context.Context, string) (string, error) {
		return "  **  ", nil
	})
	panicking := GeneratorFunc(func(context.Context, string) (string, error) {
		panic("boom")
	})

	req := Request{TaskName: "Walk", Message: "hi", Query: "sleep?"}
	for _, ep := range Endpoints {
		t.Run(ep.Name, func(t *testing.T) {
			var outcomes []Outcome
			observe := WithObserver(func(_ string, o Outcome) { outcomes = append(outcomes, o) })

			got := NewService(failing, observe).Respond(context.Background(), ep, req)
			assert.NotEmpty(t, got)
			assert.Contains(t, ep.ErrorFallbacks(req), got)

			got = NewService(panicking, observe).Respond(context.Background(), ep, req)
			assert.Contains(t, ep.ErrorFallbacks(req), got)

			got = NewService(empty, observe).Respond(context.Background(), ep, req)
			assert.Equal(t, ep.EmptyFallback(req), got)
			assert.NotEmpty(t, got)

			assert.Equal(t, []Outcome{OutcomeFailed, OutcomeFailed, OutcomeEmpty}, outcomes)
		})
	}
}

func TestRespondTimesOut(t *testing.T) {
	slow := GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	svc := NewService(slow, WithTimeout(20*time.Millisecond))

	start := time.Now()
	got := svc.Respond(context.Background(), GirlfriendChat, Request{Message: "hello"})
	require.Less(t, time.Since(start), time.Second)
	assert.Contains(t, GirlfriendChat.ErrorFallbacks(Request{}), got)
}

func TestNilGeneratorIsDisabled(t *testing.T) {
	got := NewService(nil).Respond(context.Background(), GirlfriendGreeting, Request{})
	assert.Contains(t, GirlfriendGreeting.ErrorFallbacks(Request{}), got)
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestPromptsIncludeOptionalContext(t *testing.T) {
	withCtx := WellnessAdvice.Prompt(Request{Query: "sleep", Context: "exams"})
	assert.Contains(t, withCtx, "Context: exams")

	withoutCtx := WellnessAdvice.Prompt(Request{Query: "sleep"})
	assert.NotContains(t, withoutCtx, "Context:")

	assert.Contains(t, MoodSupport.Prompt(Request{Message: "meh"}), "User's current mood: not specified")
	assert.Contains(t, GirlfriendMotivational.Prompt(Request{}), "Your partner just completed a wellness task.")
}

func TestPromptsQuoteUserTextVerbatim(t *testing.T) {
	text := "she said \"hi\"\nand left"

	assert.Contains(t, GirlfriendChat.Prompt(Request{Message: text}), `Your partner just said: "`+text+`"`)
	assert.Contains(t, MoodSupport.Prompt(Request{Message: text}), `User message: "`+text+`"`)
	assert.Contains(t, WellnessAdvice.Prompt(Request{Query: text}), `User query: "`+text+`"`)
	assert.Contains(t, GirlfriendTaskCompletion.Prompt(Request{TaskName: text}), `wellness task: "`+text+`"`)
}
