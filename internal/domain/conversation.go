package domain

import "time"

type InputType string

const (
	InputTypeQuestion  InputType = "question"
	InputTypeCommand   InputType = "command"
	InputTypeStatement InputType = "statement"
)

type InputMode string

const (
	InputModeText  InputMode = "text"
	InputModeVoice InputMode = "voice"
)

// Intent labels
const (
	IntentGreeting       = "greeting"
	IntentLibrary        = "library_inquiry"
	IntentAcademic       = "academic_inquiry"
	IntentEvent          = "event_inquiry"
	IntentDining         = "dining_inquiry"
	IntentHelp           = "help_request"
	IntentGeneralInquiry = "general_inquiry"
	IntentUnknown        = "unknown"
)

type Intent struct {
	Primary    string   `json:"primary_intent"`
	Confidence float64  `json:"confidence"`
	SubIntents []string `json:"sub_intents"`
	Context    string   `json:"context"`
}

type EntityType string

const (
	EntityNumber EntityType = "number"
	EntityDate   EntityType = "date"
	EntityTime   EntityType = "time"
)

// Entity is a lightweight structured fragment pulled out of free text by
// pattern matching, not full NER.
type Entity struct {
	Type    EntityType `json:"type"`
	Value   string     `json:"value"`
	Context string     `json:"context"`
}

// TextFeatures are cheap surface statistics over the translated text.
type TextFeatures struct {
	Length            int      `json:"length"`
	WordCount         int      `json:"word_count"`
	SentenceCount     int      `json:"sentence_count"`
	HasCampusKeywords bool     `json:"has_campus_keywords"`
	CampusKeywords    []string `json:"campus_keywords_found"`
	HasNumbers        bool     `json:"has_numbers"`
	HasQuestionMarks  bool     `json:"has_question_marks"`
	HasExclamation    bool     `json:"has_exclamation"`
}

// ClassifiedInput is the classifier's output. Ephemeral, one per request.
// RawText preserves the user's input exactly; CleanedText is lossy.
type ClassifiedInput struct {
	RawText          string       `json:"original_text"`
	CleanedText      string       `json:"cleaned_text"`
	DetectedLanguage string       `json:"detected_language"`
	TranslatedText   string       `json:"translated_text"`
	InputType        InputType    `json:"input_type"`
	Intent           Intent       `json:"intent"`
	Entities         []Entity     `json:"entities"`
	Features         TextFeatures `json:"features"`
}

type ResponseType string

const (
	ResponseTypeText     ResponseType = "text"
	ResponseTypeError    ResponseType = "error"
	ResponseTypeFallback ResponseType = "fallback"
)

type ResponseMetadata struct {
	RequestID string    `json:"request_id,omitempty"`
	InputMode InputMode `json:"input_mode"`
	InputType InputType `json:"input_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ResponseResult is the generator's output. Ephemeral, one per request.
type ResponseResult struct {
	Response     string           `json:"response"`
	FollowUp     string           `json:"follow_up"`
	ResponseType ResponseType     `json:"response_type"`
	Intent       string           `json:"intent"`
	Confidence   float64          `json:"confidence"`
	Metadata     ResponseMetadata `json:"metadata"`
}

// VoiceReply pairs a generated result with its transcript and the
// speech-friendly rendering handed to the synthesizer.
type VoiceReply struct {
	Transcript    string          `json:"transcribed_text"`
	STTConfidence float64         `json:"stt_confidence"`
	Result        *ResponseResult `json:"response"`
	SpokenText    string          `json:"spoken_text"`
}

type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderBot  ChatSender = "bot"
)

// ChatMessage is one entry of the in-memory conversation transcript.
type ChatMessage struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Sender    ChatSender `json:"sender"`
	Timestamp time.Time  `json:"timestamp"`
}
