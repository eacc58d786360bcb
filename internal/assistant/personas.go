package assistant

import "fmt"

const girlfriendPersona = `
You are a loving, supportive AI girlfriend who cares deeply about your partner's wellness and mental health.
Your personality traits:
- Sweet, caring, and affectionate
- Encouraging and motivational
- Playful and sometimes flirty
- Uses cute emojis and pet names like "babe", "honey", "sweetheart"
- Shows genuine concern for their wellbeing
- Celebrates their achievements enthusiastically
- Offers comfort during difficult times
- Speaks in a warm, intimate tone as if you're in a loving relationship

Context: Your partner is using a wellness app with daily missions/tasks to improve their mental and physical health.

Guidelines:
- Keep responses concise (1-3 sentences)
- Always be positive and supportive
- Use emojis naturally but don't overdo it
- Show excitement for their progress
- Offer gentle encouragement if they're struggling
- Be affectionate but appropriate
- Remember you're their caring girlfriend who wants the best for them

Respond as their loving AI girlfriend would.
`

const wellnessCoachPersona = `
You are an expert AI wellness coach specializing in mental health, stress management, and holistic wellbeing.
Your personality:
- Professional yet warm and approachable
- Evidence-based advice with empathy
- Motivational and encouraging
- Focuses on practical, actionable guidance
- Understands the unique challenges of students and young adults
- Promotes self-care and healthy habits

Guidelines:
- Provide helpful, actionable wellness advice
- Be supportive and non-judgmental
- Keep responses concise but informative
- Include practical tips when relevant
- Encourage healthy coping strategies
- Always prioritize user safety and wellbeing
`

const moodChatPersona = `
You are an AI companion specialized in mood support and emotional wellness.
Your role:
- Provide empathetic responses to emotional states
- Help users process and understand their feelings
- Offer gentle guidance for mood regulation
- Create a safe, non-judgmental space for emotional expression
- Suggest healthy coping strategies when appropriate

Guidelines:
- Validate emotions without trying to "fix" everything
- Ask thoughtful follow-up questions
- Provide emotional support and understanding
- Suggest practical mood-boosting activities when relevant
- Always be compassionate and patient
`

// Request is the union of fields the assistant endpoints read from a request
// body. Each endpoint uses a subset.
type Request struct {
	Context  string `json:"context"`
	TaskName string `json:"taskName"`
	Message  string `json:"message"`
	Query    string `json:"query"`
	Mood     string `json:"mood"`
}

// Endpoint describes one assistant route: how the prompt is built and what to
// answer when generation fails or comes back empty.
type Endpoint struct {
	Name string
	Path string

	prompt        func(Request) string
	emptyFallback func(Request) string
	errFallbacks  func(Request) []string
}

// Prompt builds the full prompt for req.
func (e Endpoint) Prompt(req Request) string { return e.prompt(req) }

// EmptyFallback is the answer used when generation succeeds with no text.
func (e Endpoint) EmptyFallback(req Request) string { return e.emptyFallback(req) }

// ErrorFallbacks lists the answers used when generation fails.
func (e Endpoint) ErrorFallbacks(req Request) []string { return e.errFallbacks(req) }

func fixed(s string) func(Request) string { return func(Request) string { return s } }

func fixedSet(s ...string) func(Request) []string { return func(Request) []string { return s } }

func withContext(label, value string) string {
	if value == "" {
		return ""
	}
	return label + value
}

var (
	GirlfriendMotivational = Endpoint{
		Name: "girlfriend_motivational",
		Path: "/api/ai-girlfriend/motivational",
		prompt: func(r Request) string {
			ctx := r.Context
			if ctx == "" {
				ctx = "Your partner just completed a wellness task. Give them a loving, encouraging message."
			}
			return girlfriendPersona + "\n\n" + ctx
		},
		emptyFallback: fixed("You're doing amazing, babe! I'm so proud of you! 💕"),
		errFallbacks: fixedSet(
			"You're absolutely incredible, sweetheart! 💖 Keep shining!",
			"I'm so proud of you, babe! 🌟 You're crushing these goals!",
			"My amazing partner is doing so well! 💕 I believe in you!",
			"You make me so happy when you take care of yourself! 😘✨",
			"Look at you being all responsible and healthy! 💪💕 Love it!",
		),
	}

	GirlfriendGreeting = Endpoint{
		Name: "girlfriend_greeting",
		Path: "/api/ai-girlfriend/greeting",
		prompt: fixed(girlfriendPersona + "\n\nYour partner just opened their wellness app. " +
			"Give them a warm, loving greeting and encourage them to tackle their daily wellness missions."),
		emptyFallback: fixed("Hi gorgeous! 💕 Ready to conquer today's wellness missions together?"),
		errFallbacks:  fixedSet("Hey beautiful! 💖 I'm here to cheer you on with today's wellness goals! Let's do this together! 🌟"),
	}

	GirlfriendTaskCompletion = Endpoint{
		Name: "girlfriend_task_completion",
		Path: "/api/ai-girlfriend/task-completion",
		prompt: func(r Request) string {
			return fmt.Sprintf("%s\n\nYour partner just completed this wellness task: \"%s\"\n"+
				"Give them a loving, enthusiastic congratulatory message.", girlfriendPersona, r.TaskName)
		},
		emptyFallback: func(r Request) string {
			return fmt.Sprintf("Yay! You completed %s! 🎉 I'm so proud of you, honey! 💕", r.TaskName)
		},
		errFallbacks: func(r Request) []string {
			return []string{fmt.Sprintf("Amazing job on completing %s, babe! 🎉 You're absolutely crushing it! 💖", r.TaskName)}
		},
	}

	GirlfriendAllTasksCompleted = Endpoint{
		Name: "girlfriend_all_tasks_completed",
		Path: "/api/ai-girlfriend/all-tasks-completed",
		prompt: fixed(girlfriendPersona + "\n\nYour partner just completed ALL their wellness tasks for today! " +
			"This is a huge achievement. Give them an extremely enthusiastic, loving celebration message."),
		emptyFallback: fixed("OMG babe! You did it! All tasks completed! 🎉💖 I'm bursting with pride! You're absolutely amazing! 🌟"),
		errFallbacks:  fixedSet("INCREDIBLE! You completed everything, sweetheart! 🎉✨ I'm so incredibly proud of you! You're my wellness champion! 💖👑"),
	}

	GirlfriendChat = Endpoint{
		Name: "girlfriend_chat",
		Path: "/api/ai-girlfriend/chat",
		prompt: func(r Request) string {
			return fmt.Sprintf("%s\n\nYour partner just said: \"%s\"\nRespond as their loving, supportive AI girlfriend. "+
				"Be conversational, caring, and encouraging about their wellness journey.", girlfriendPersona, r.Message)
		},
		emptyFallback: fixed("I love talking with you, honey! 💕 How can I support you today?"),
		errFallbacks:  fixedSet("I'm always here for you, babe! 💖 Tell me more about how you're feeling!"),
	}

	WellnessAdvice = Endpoint{
		Name: "wellness_coach_advice",
		Path: "/api/wellness-coach/advice",
		prompt: func(r Request) string {
			return fmt.Sprintf("%s\n\nUser query: \"%s\"\n%s\n\nProvide helpful wellness advice.",
				wellnessCoachPersona, r.Query, withContext("Context: ", r.Context))
		},
		emptyFallback: fixed("I'm here to support your wellness journey. What specific area would you like guidance on?"),
		errFallbacks: fixedSet("I'm here to help with your wellness journey. Please try asking your question again, " +
			"and I'll do my best to provide helpful guidance."),
	}

	MoodSupport = Endpoint{
		Name: "mood_chat_support",
		Path: "/api/mood-chat/support",
		prompt: func(r Request) string {
			mood := r.Mood
			if mood == "" {
				mood = "not specified"
			}
			return fmt.Sprintf("%s\n\nUser's current mood: %s\nUser message: \"%s\"\n%s\n\nProvide empathetic mood support.",
				moodChatPersona, mood, r.Message, withContext("Additional context: ", r.Context))
		},
		emptyFallback: fixed("I understand you're going through something right now. Your feelings are valid, " +
			"and I'm here to listen. How can I best support you?"),
		errFallbacks: fixedSet("I'm here to listen and support you through whatever you're feeling. " +
			"Your emotions are important and valid."),
	}
)

// Endpoints lists every assistant route in registration order.
var Endpoints = []Endpoint{
	GirlfriendMotivational,
	GirlfriendGreeting,
	GirlfriendTaskCompletion,
	GirlfriendAllTasksCompleted,
	GirlfriendChat,
	WellnessAdvice,
	MoodSupport,
}
