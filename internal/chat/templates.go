package chat

import "github.com/suPer8Hu/study-assistant/internal/nlp"

var greetingReplies = []string{
	"Hello! I'm your educational assistant. How can I help you with your studies today?",
	"Hi there! Ready to learn something new? What subject interests you?",
	"Welcome! I'm here to help with your academic questions and study planning.",
	"Hello! Whether you need help with homework, study tips, or scheduling, I'm here for you!",
}

var goodbyeReplies = []string{
	"Goodbye! Keep up the great work with your studies!",
	"See you later! Remember to stay curious and keep learning!",
	"Farewell! Don't forget to review your notes and stay organized!",
	"Bye! Wishing you success in all your academic endeavors!",
}

var fallbackReplies = []string{
	"I'm not sure I understand that completely. Could you rephrase your question?",
	"That's an interesting question! Could you provide more details so I can help better?",
	"I'd love to help! Can you be more specific about what you're looking for?",
	"Let me try to help you with that. Could you clarify what subject or topic you're interested in?",
}

var generalStudyTips = []string{
	"Try the Pomodoro Technique: Study for 25 minutes, then take a 5-minute break!",
	"Create a dedicated study space free from distractions.",
	"Use active recall - test yourself instead of just re-reading notes.",
	"Break large topics into smaller, manageable chunks.",
	"Teach someone else what you've learned - it reinforces your understanding!",
	"Use the Cornell note-taking method to organize your thoughts better.",
	"Review material within 24 hours to improve retention.",
	"Get enough sleep - your brain consolidates memories during rest!",
}

var subjectStudyTips = map[nlp.Subject][]string{
	nlp.SubjectMathematics: {
		"Practice problems daily - math requires consistent practice!",
		"Work through problems step by step and show all your work.",
		"Use visual aids like graphs and diagrams to understand concepts.",
		"Form study groups to discuss different problem-solving approaches.",
	},
	nlp.SubjectScience: {
		"Create concept maps to connect different scientific principles.",
		"Conduct experiments or simulations to see theories in action.",
		"Use mnemonics to remember scientific facts and formulas.",
		"Relate scientific concepts to real-world examples.",
	},
	nlp.SubjectHistory: {
		"Create timelines to understand chronological relationships.",
		"Use storytelling techniques to remember historical events.",
		"Connect historical events to current events for better understanding.",
		"Study primary sources to get firsthand perspectives.",
	},
	nlp.SubjectEnglish: {
		"Read actively - take notes and ask questions while reading.",
		"Practice writing regularly to improve your skills.",
		"Analyze literary devices and their effects on meaning.",
		"Discuss literature with others to gain different perspectives.",
	},
}

const (
	subjectTipFormat = "Here's a study tip for %s:\n\n%s\n\nWould you like more specific advice for any particular topic?"
	generalTipFormat = "Here's a helpful study tip:\n\n%s\n\nWould you like tips for a specific subject?"

	askForQuestion = "What would you like to know? Please ask me a specific question about any subject!"

	questionMatchFormat = "**%s**\n\n%s"
	questionMoreFormat  = "\n\nI found %d related topics. Would you like to know more about any specific aspect?"
	subjectIntroFormat  = "I found some information about %s:\n\n"
	subjectEntryFormat  = "• **%s**: %s\n\n"
	subjectOutro        = "Would you like me to explain any of these topics in detail?"
	noInformation       = "I don't have specific information about that topic yet. However, I can help you with study strategies or connect you with resources. What specific aspect would you like to explore?"

	reminderGuide = "I can help you set up reminders! To create a reminder, please provide:\n" +
		"1. What you want to be reminded about\n" +
		"2. The date (e.g., 'tomorrow', '12/25/2024')\n" +
		"3. The time (e.g., '3:00 PM', 'morning')\n\n" +
		"For example: 'Remind me to study chemistry tomorrow at 2 PM'"
	reminderPrompt = "I'd be happy to help you set reminders for your studies! " +
		"Please tell me what you want to be reminded about and when. " +
		"For example: 'Remind me to review math notes tomorrow at 3 PM'"

	scheduleGuide = "I can help you create a study schedule! Please provide:\n" +
		"1. Subject you want to study\n" +
		"2. Topics you need to cover\n" +
		"3. Available time slots\n" +
		"4. Your goals or deadlines\n\n" +
		"For example: 'Schedule math study sessions for algebra and geometry, " +
		"I have 2 hours daily after 4 PM'"
	scheduleListIntro   = "Here are your upcoming study sessions:\n\n"
	scheduleEntryFormat = "• **%s** - %s\n  📅 %s at %s\n  ⏱️ %d minutes\n\n"
	scheduleListOutro   = "Would you like to add more sessions or modify existing ones?"
	scheduleEmpty       = "You don't have any scheduled study sessions yet. " +
		"Would you like me to help you create a study schedule?"

	noteGuide = "I can help you with note-taking strategies! Here are some effective methods:\n\n" +
		"📝 **Cornell Method**: Divide your page into notes, cues, and summary sections\n" +
		"📝 **Mind Mapping**: Create visual connections between concepts\n" +
		"📝 **Outline Method**: Use hierarchical structure with main points and sub-points\n" +
		"📝 **Charting Method**: Use tables for comparing information\n\n" +
		"Would you like me to explain any of these methods in detail?"

	generalMatchFormat = "I found this information that might help:\n\n**%s**\n%s\n\nWould you like to know more about this topic?"
	subjectsSuffix     = "\n\nI can help you with: %s"
	moreSubjects       = " and more!"

	apologyReply = "I'm sorry, I encountered an error. Please try again."

	suggestStart      = "Start by asking me questions about any subject you're studying!"
	suggestInterested = "Based on our conversations, you seem interested in %s. Would you like some advanced topics or practice problems in this area?"
	suggestAnything   = "Feel free to ask me about any subject - I'm here to help with your studies!"
)
