package mood

var welcomes = map[Mood][]string{
	Happy: {
		"I can sense your positive energy! That's wonderful. What's been bringing you joy today?",
		"Your happiness is contagious! I'm here to celebrate the good moments with you. What's making you smile?",
		"It's beautiful to connect with someone feeling so upbeat! Tell me what's lighting up your world.",
	},
	Sad: {
		"I'm here with you in this difficult moment. You don't have to carry these feelings alone. What's weighing on your heart?",
		"Thank you for trusting me with your vulnerability. Sometimes sharing our sadness helps lighten the load. How are you really feeling?",
		"I can sense you're going through something tough. I'm here to listen without judgment. What's troubling you?",
	},
	Anxious: {
		"I notice you're feeling anxious, and that takes courage to acknowledge. Let's take this one breath at a time. What's on your mind?",
		"Anxiety can feel overwhelming, but you're not facing it alone. I'm here to help you work through these feelings. What's causing you worry?",
		"Your anxiety is valid, and so are you. Let's explore these feelings together in a safe space. What's making you feel unsettled?",
	},
	Angry: {
		"I can feel the intensity of your emotions, and that's completely valid. This is a safe space to express how you're feeling. What's frustrated you?",
		"Anger often masks deeper feelings. I'm here to help you explore what's really going on. What's triggered these strong emotions?",
		"Your feelings matter, including your anger. Let's talk through what's bothering you in a healthy way.",
	},
	Tired: {
		"I hear the exhaustion in your energy, and that's okay. Sometimes we all need to acknowledge when we're running on empty. What's been draining you?",
		"Being tired isn't just physical - it can be emotional too. I'm here to provide gentle support. How long have you been feeling this way?",
		"Rest is important, and so is having someone who understands. What's been taking so much out of you lately?",
	},
	Depressed: {
		"I want you to know that reaching out today took strength, even if you don't feel strong right now. How are you managing?",
		"Depression can make everything feel heavy and distant. You're not alone in this darkness. What's been the hardest part recently?",
		"Thank you for being here, even when it's difficult. Every day you show up matters. How can I support you right now?",
	},
	Calm: {
		"There's something peaceful about your presence. It's wonderful that you're in a calm state. What helps you maintain this serenity?",
		"Your calm energy is grounding. Sometimes the most profound conversations happen in moments of peace. What's on your mind?",
		"I appreciate the tranquil space you're creating. How are you feeling in this moment of calm?",
	},
	Excited: {
		"I can feel your excitement radiating through! That kind of energy is infectious. What has you so thrilled?",
		"Your enthusiasm is wonderful to witness! There's something beautiful about pure excitement. What's got you so energized?",
		"Excitement is such a precious feeling - I love that you're experiencing it. Tell me what's creating this amazing energy!",
	},
}

var genericWelcomes = []string{
	"I'm here to support you on your emotional journey. How are you feeling right now, really?",
	"Thank you for connecting with MoodSync today. I'm here to listen and understand. What's in your heart?",
	"Every emotion is valid and welcome here. I'm honored to be part of your emotional wellness journey.",
}

var replies = map[Mood][]string{
	Happy: {
		"That sounds absolutely wonderful! Your joy is so uplifting. How does it feel to experience this happiness?",
		"I love hearing about the things that bring you joy. What else has been lighting up your life lately?",
		"Your positive energy is beautiful. How long have you been feeling this good about things?",
		"It's amazing when life feels this bright. What do you think is contributing most to these good feelings?",
	},
	Sad: {
		"I hear the pain in your words, and I want you to know that your feelings are completely valid. What would help you most right now?",
		"Sometimes sadness needs to be felt fully before it can begin to heal. I'm here with you through this. How long have you been carrying this?",
		"Your sadness matters, and so do you. Would it help to talk about what's bringing up these feelings?",
		"Thank you for sharing something so personal. It takes courage to be vulnerable. How are you taking care of yourself through this?",
	},
	Anxious: {
		"I can sense the worry in your words. Anxiety can feel so overwhelming, but you're handling it by reaching out. What's your biggest concern right now?",
		"Your anxiety makes sense given what you're going through. Let's slow down and take this one thought at a time. What feels most urgent?",
		"Anxiety often comes from caring deeply about outcomes. What's the underlying fear you're experiencing?",
		"You're not alone with these anxious thoughts. Sometimes talking through them helps. What scenario is your mind creating?",
	},
	Angry: {
		"I can feel the strength of your emotions, and anger often signals that something important to you has been affected. What's at the core of this feeling?",
		"Your anger is telling us something important. Behind anger, there's often hurt or frustration. What's really going on?",
		"It's healthy to acknowledge anger rather than suppress it. What boundary has been crossed or what value has been challenged?",
		"Thank you for expressing this in a safe space. What would justice or resolution look like for you in this situation?",
	},
	Tired: {
		"Exhaustion - both physical and emotional - is your body and mind asking for care. What's been demanding so much of your energy?",
		"Being tired often means we've been giving a lot of ourselves. What haven't you been able to rest from?",
		"Sometimes tired is a signal that we need to reassess our boundaries and priorities. What's been overwhelming you?",
		"Fatigue can be so isolating. You don't have to carry everything alone. What support do you need right now?",
	},
	Depressed: {
		"Depression can make everything feel muted and distant. I want you to know that your feelings are valid and you matter. How are you getting through each day?",
		"Thank you for sharing despite how difficult it must be to put these feelings into words. What's been the hardest part about feeling this way?",
		"Depression tells us lies about our worth and future. You showed strength by reaching out today. What tiny thing has brought you any comfort recently?",
		"I see you trying, even when it feels impossible. That takes incredible courage. What's one small way I can support you right now?",
	},
	Calm: {
		"There's something beautiful about finding moments of peace. What helps you access this sense of calm?",
		"Your tranquil energy is grounding. How do you cultivate and maintain this peaceful state?",
		"Calm can be such a gift, both to yourself and others around you. What thoughts or practices bring you to this place?",
	},
	Excited: {
		"Your excitement is contagious! It's wonderful to witness such enthusiasm. What's creating this amazing energy for you?",
		"I love the vibrant energy you're bringing! Excitement can be such a powerful motivator. What possibilities are you seeing?",
		"There's something magical about pure excitement. How does it feel to be experiencing life so intensely right now?",
	},
}

var genericReplies = []string{
	"I can hear the emotion in your words. Thank you for sharing so openly with me. What feels most important for you to express right now?",
	"Your feelings are completely valid. I'm here to listen and support you through whatever you're experiencing. What's in your heart?",
	"Every emotion tells us something important about our inner world. What is this feeling trying to tell you?",
	"I appreciate your honesty and vulnerability. How can I best support you in this moment?",
}
