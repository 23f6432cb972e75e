package responder

import "github.com/seu-repo/campus-assistant/internal/domain"

var responseTemplates = map[string][]string{
	domain.IntentLibrary: {
		"I can help you with library information! The main library is located at the center of campus.",
		"For library services, you can visit the main campus library or use the online portal.",
		"The library offers various resources including books, study spaces, and computer labs.",
	},
	domain.IntentAcademic: {
		"I can assist you with academic questions! What specific information do you need about classes or courses?",
		"For academic matters, I can help you find information about schedules, professors, or course requirements.",
		"Academic support is available! Let me know what you're looking for regarding your studies.",
	},
	domain.IntentEvent: {
		"I can help you find information about campus events! What type of event are you interested in?",
		"Campus events are happening regularly! Let me help you find what's coming up.",
		"There's always something happening on campus! What kind of events interest you?",
	},
	domain.IntentDining: {
		"I can help you with dining options on campus! The main cafeteria serves meals throughout the day.",
		"Campus dining offers various options including the cafeteria, coffee shops, and food courts.",
		"Hungry? I can help you find dining options and their hours on campus.",
	},
	domain.IntentHelp: {
		"I'm here to help! What do you need assistance with?",
		"I can definitely help you! Let me know what you're looking for.",
		"Help is here! What can I assist you with today?",
		"I'm at your service! What do you need help with?",
	},
	domain.IntentGeneralInquiry: {
		"I'm your campus assistant! I can help you with various campus-related questions.",
		"I'm here to assist you with campus information. What would you like to know?",
		"As your campus assistant, I can provide information about locations, events, and services.",
		"I'm here to help! Ask me anything about campus life and services.",
	},
}

// greetingTemplates are bucketed by time of day: morning 05:00-11:59,
// afternoon 12:00-16:59, evening otherwise.
var greetingTemplates = map[timeBucket][]string{
	bucketMorning: {
		"Good morning! I'm your campus assistant. How can I help you start your day?",
		"Morning! Ready to help with anything campus-related.",
		"Good morning! What can I do for you today?",
	},
	bucketAfternoon: {
		"Good afternoon! I'm your campus assistant. What can I help you with?",
		"Afternoon! How can I assist you on campus today?",
		"Good afternoon! Ask me anything about campus life.",
	},
	bucketEvening: {
		"Good evening! I'm your campus assistant. How can I help you tonight?",
		"Evening! Still here to help with campus questions.",
		"Good evening! What would you like to know?",
	},
}

const greetingFollowUp = "Feel free to ask about locations, events, classes, or anything else campus-related."

// followUps is keyed by intent then time bucket; lookup falls back to the
// general_inquiry table, then any bucket for the intent, then a fixed
// generic sentence.
var followUps = map[string]map[timeBucket]string{
	domain.IntentLibrary: {
		bucketMorning:   "The library just opened, so study rooms should still be free. Want me to check hours?",
		bucketAfternoon: "Afternoons get busy at the library. Want hours or quiet-floor information?",
		bucketEvening:   "The library closes later tonight. Want the exact closing time?",
	},
	domain.IntentDining: {
		bucketMorning:   "Breakfast service is running now. Want to know what's open?",
		bucketAfternoon: "Lunch options are in full swing. Want locations or hours?",
		bucketEvening:   "Dinner service winds down in the evening. Want closing times?",
	},
	domain.IntentEvent: {
		bucketMorning:   "Want me to list today's events?",
		bucketEvening:   "Some evening events may still have space. Want the list?",
	},
	domain.IntentAcademic: {
		bucketMorning:   "Are you looking for class schedules, professor information, or course details?",
		bucketAfternoon: "Are you looking for class schedules, professor information, or course details?",
		bucketEvening:   "Are you looking for class schedules, professor information, or course details?",
	},
	domain.IntentHelp: {
		bucketMorning:   "You can ask me about campus locations, events, academic information, or general assistance.",
		bucketAfternoon: "You can ask me about campus locations, events, academic information, or general assistance.",
		bucketEvening:   "You can ask me about campus locations, events, academic information, or general assistance.",
	},
	domain.IntentGeneralInquiry: {
		bucketMorning:   "Feel free to ask about specific campus locations, events, or services.",
		bucketAfternoon: "Feel free to ask about specific campus locations, events, or services.",
		bucketEvening:   "Feel free to ask about specific campus locations, events, or services.",
	},
}

const genericFollowUp = "Is there anything else campus-related I can help you with?"

var fallbackResponses = []string{
	"I'm not sure I understand. Could you please rephrase your question?",
	"I'm still learning! Could you try asking in a different way?",
	"I didn't quite catch that. Could you provide more details?",
	"I want to help, but I need more information. Could you be more specific?",
}

const errorResponse = "I apologize, but I'm having trouble generating a response right now. Please try again."

const noUpcomingEvents = "I could not find any upcoming events right now."
