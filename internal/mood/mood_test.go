package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   Mood
		wantOK bool
	}{
		{"happy wins over sad", "I'm happy but also feeling sad", Happy, true},
		{"case insensitive", "I am SO Stressed today", Anxious, true},
		{"sad keyword", "I've been crying all night", Sad, true},
		{"depressed resolves to sad first", "feeling depressed", Sad, true},
		{"depressed category", "everything feels hopeless", Depressed, true},
		{"multi word keyword", "I'm completely worn out", Tired, true},
		{"angry", "my boss made me furious", Angry, true},
		{"calm", "a peaceful evening", Calm, true},
		{"word boundary", "I feel unhappy and sadly nothing", "", false},
		{"no keywords", "the weather report", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFallsBackToGivenMood(t *testing.T) {
	assert.Equal(t, Tired, Resolve("just checking in", Tired))
	assert.Equal(t, Happy, Resolve("what a great day", Tired))
}

func TestComposeStaysInCategory(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.Contains(t, Replies(Happy), Compose("I'm happy but also feeling sad", Calm))
		assert.Contains(t, Replies(Calm), Compose("hello there", Calm))
		assert.Contains(t, Replies(Excited), Compose("hello there", Excited))
	}
}

func TestComposeUnknownMoodUsesGenericPool(t *testing.T) {
	got := Compose("nothing to see", Mood("confused"))
	assert.Contains(t, genericReplies, got)
}

func TestWelcome(t *testing.T) {
	assert.Contains(t, Welcomes(Sad), Welcome(Sad))
	assert.Contains(t, genericWelcomes, Welcome(""))
}

func TestEveryCategoryHasPools(t *testing.T) {
	for _, d := range detectors {
		assert.NotEmpty(t, replies[d.mood], "replies for %s", d.mood)
		assert.NotEmpty(t, welcomes[d.mood], "welcomes for %s", d.mood)
	}
}
