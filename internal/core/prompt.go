package core

import (
	"fmt"
	"strings"
)

const (
	// DefaultLanguage is the language the underlying models were mostly
	// trained on; every other language needs the reinforced prompt below.
	DefaultLanguage = "en"

	// historyLimit caps how many prior turns are sent to the LLM.
	historyLimit = 10
)

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"kn": "Kannada",
	"ml": "Malayalam",
	"bn": "Bengali",
	"mr": "Marathi",
	"gu": "Gujarati",
	"pa": "Punjabi",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "English"
}

const tutorSystemPrompt = `You are an expert educational AI tutor designed to help students learn effectively.
Follow these guidelines:

1. For math and science questions, break down solutions into clear, numbered steps, explain the reasoning behind each step, and show all calculations and formulas used.
2. For conceptual questions, start with a simple definition, then give detailed explanations with examples and analogies that make concepts relatable.
3. Use clear headings and bullet points, highlight important formulas, and keep explanations organized and easy to follow.
4. Be encouraging and patient. Avoid jargon unless necessary, and explain it when you use it.

Always prioritize clarity and understanding over brevity. If a student asks a math question, show every step of the solution with clear explanations.`

// systemPrompt returns the tutoring prompt for the requested language. The
// non-default variant repeats the language directive at the start, middle
// and end of the prompt: a single instruction is empirically not enough to
// stop the model from code-switching back to English. Treat the wording as
// a tunable prompt-engineering policy, not a contract.
func systemPrompt(language string) string {
	if language == DefaultLanguage || language == "" {
		return tutorSystemPrompt
	}

	name := strings.ToUpper(languageName(language))
	return fmt.Sprintf(`### MANDATORY LANGUAGE RULE ###
YOU ARE A %[1]s TUTOR.

1. EVERYTHING YOU WRITE MUST BE IN %[1]s.
2. IF THE USER ASKS A QUESTION IN ENGLISH, YOU MUST ANSWER IN %[1]s.
3. IF YOU FIND INFORMATION IN AN ENGLISH DOCUMENT, TRANSLATE IT TO %[1]s BEFORE SHARING.
4. DO NOT USE ENGLISH SENTENCES. TRANSLATE ALL CONCEPTS TO %[1]s.
5. START YOUR RESPONSE DIRECTLY IN %[1]s.

You are an expert educational AI tutor helping students learn in %[2]s.
Translate all technical definitions into %[2]s, break down math steps in %[2]s, use analogies relevant to %[2]s speakers, and be encouraging and patient.

### FINAL REMINDER: YOUR ENTIRE RESPONSE MUST BE IN %[1]s ###`, name, languageName(language))
}

// buildMessages assembles the LLM message list: system prompt, then the
// last historyLimit turns. For non-default languages the final user turn
// gets an inline directive prepended, since the model weighs the most
// recent message heaviest.
func buildMessages(in PromptInput) []Turn {
	history := in.History
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	messages := make([]Turn, 0, len(history)+1)
	messages = append(messages, Turn{Role: "system", Content: systemPrompt(in.Language)})
	messages = append(messages, history...)

	if in.Language != DefaultLanguage && in.Language != "" && len(messages) > 1 {
		last := &messages[len(messages)-1]
		if last.Role == "user" {
			last.Content = fmt.Sprintf("[INSTRUCTION: Answer ONLY in %s] %s", languageName(in.Language), last.Content)
		}
	}
	return messages
}
