package model

import "fmt"

// DefaultTone is applied when a summarise request omits the tone field.
const DefaultTone = "Professional"

// TonePreset describes the writing style injected into the summarisation
// prompt for a named tone. New tones are added here, not in code.
type TonePreset struct {
	Name        string
	Description string
	// Instructions is the stylistic block appended to the system prompt.
	Instructions string
}

// TonePresets is keyed by the tone value sent by clients.
var TonePresets = map[string]TonePreset{
	"Professional": {
		Name:         "Professional",
		Description:  "Clean and corporate",
		Instructions: "The tone should be: Professional. Use clear, polished business language. No slang.",
	},
	"Casual": {
		Name:         "Casual",
		Description:  "Relaxed and approachable",
		Instructions: "The tone should be: Casual. Write like you're chatting with a colleague over coffee. Contractions are fine.",
	},
	"Friendly": {
		Name:         "Friendly",
		Description:  "Warm and welcoming",
		Instructions: "The tone should be: Friendly. Warm, encouraging and inclusive. Address the viewer directly.",
	},
	"Energetic": {
		Name:         "Energetic",
		Description:  "Upbeat and exciting",
		Instructions: "The tone should be: Energetic. Punchy, upbeat and fast-paced. Short sentences. Build excitement.",
	},
	"Savage": {
		Name:        "Savage",
		Description: "Cheeky with swear words",
		Instructions: `The tone should be: Savage. Be cheeky, irreverent and brutally honest. Roast the subject matter
where it deserves it. Mild swear words (damn, hell, crap, bullshit) are allowed and encouraged
where they land a punchline, but never slurs and never anything hateful. Sarcasm over sincerity.
The voiceover should sound like a friend who has zero filter but is still fun to listen to.`,
	},
}

// ToneInstructions resolves a tone value to its prompt block. Unknown tones
// fall back to a generic instruction so free-form tone text still works.
func ToneInstructions(tone string) string {
	if preset, ok := TonePresets[tone]; ok {
		return preset.Instructions
	}
	return fmt.Sprintf("The tone should be: %s", tone)
}
