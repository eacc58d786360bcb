// Package mood detects a mood category from free text and picks canned
// companion replies for it.
package mood

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// Mood is a mood category label. Labels come from clients, so any string is
// accepted; only the constants below have dedicated reply pools.
type Mood string

// Known mood categories.
const (
	Happy     Mood = "happy"
	Sad       Mood = "sad"
	Anxious   Mood = "anxious"
	Angry     Mood = "angry"
	Tired     Mood = "tired"
	Depressed Mood = "depressed"
	Calm      Mood = "calm"
	Excited   Mood = "excited"
)

type detector struct {
	mood    Mood
	pattern *regexp.Regexp
}

func keywords(words ...string) *regexp.Regexp {
	return regexp.MustCompile(`\b(` + strings.Join(words, "|") + `)\b`)
}

// Checked in order; the first matching category wins.
var detectors = []detector{
	{Happy, keywords("happy", "joy", "excited", "amazing", "wonderful", "great", "fantastic", "thrilled", "elated", "cheerful", "delighted")},
	{Sad, keywords("sad", "depressed", "down", "heartbroken", "devastated", "miserable", "upset", "crying", "tears")},
	{Anxious, keywords("anxious", "worried", "nervous", "stressed", "panic", "overwhelmed", "scared", "frightened", "tense")},
	{Angry, keywords("angry", "mad", "furious", "irritated", "frustrated", "annoyed", "rage", "pissed", "livid")},
	{Tired, keywords("tired", "exhausted", "drained", "weary", "fatigued", "worn out", "depleted", "spent")},
	{Depressed, keywords("depressed", "hopeless", "empty", "numb", "worthless", "suicidal", "meaningless", "dark")},
	{Calm, keywords("calm", "peaceful", "serene", "relaxed", "tranquil", "centered", "balanced", "zen")},
}

// Detect returns the first mood category whose keywords appear in text as
// whole words, ignoring case.
func Detect(text string) (Mood, bool) {
	lower := strings.ToLower(text)
	for _, d := range detectors {
		if d.pattern.MatchString(lower) {
			return d.mood, true
		}
	}
	return "", false
}

// Resolve returns the mood detected in text, or fallback when no keyword
// matches.
func Resolve(text string, fallback Mood) Mood {
	if m, ok := Detect(text); ok {
		return m
	}
	return fallback
}

// Compose picks a companion reply for text. The category is chosen
// deterministically by Resolve; the string within the category is random.
func Compose(text string, fallback Mood) string {
	return pick(Replies(Resolve(text, fallback)))
}

// Welcome picks a greeting for someone who joined feeling m.
func Welcome(m Mood) string {
	return pick(Welcomes(m))
}

// Replies returns the reply pool used for m.
func Replies(m Mood) []string {
	if pool, ok := replies[m]; ok {
		return pool
	}
	return genericReplies
}

// Welcomes returns the greeting pool used for m.
func Welcomes(m Mood) []string {
	if pool, ok := welcomes[m]; ok {
		return pool
	}
	return genericWelcomes
}

func pick(pool []string) string {
	return pool[rand.IntN(len(pool))]
}
