package speech

import "strings"

// Voice is a prebuilt persona of the synthesis service.
type Voice struct {
	ID          string
	Name        string
	Gender      string
	Description string
}

// DefaultVoice is the persona used when none is configured.
const DefaultVoice = "Kore"

// voices is the prebuilt persona catalog of the Gemini speech service.
// IDs double as the wire-level voice names.
var voices = []Voice{
	{ID: "Zephyr", Name: "Zephyr", Gender: "female", Description: "bright and energetic"},
	{ID: "Puck", Name: "Puck", Gender: "male", Description: "upbeat and playful"},
	{ID: "Charon", Name: "Charon", Gender: "male", Description: "deep and informative"},
	{ID: "Kore", Name: "Kore", Gender: "female", Description: "firm and confident"},
	{ID: "Fenrir", Name: "Fenrir", Gender: "male", Description: "excitable and intense"},
	{ID: "Leda", Name: "Leda", Gender: "female", Description: "youthful and light"},
	{ID: "Orus", Name: "Orus", Gender: "male", Description: "firm and direct"},
	{ID: "Aoede", Name: "Aoede", Gender: "female", Description: "breezy and relaxed"},
	{ID: "Callirrhoe", Name: "Callirrhoe", Gender: "female", Description: "easy-going and warm"},
	{ID: "Autonoe", Name: "Autonoe", Gender: "female", Description: "bright and clear"},
	{ID: "Enceladus", Name: "Enceladus", Gender: "male", Description: "breathy and soft"},
	{ID: "Iapetus", Name: "Iapetus", Gender: "male", Description: "clear and measured"},
}

// Voices returns the persona catalog in display order.
func Voices() []Voice {
	out := make([]Voice, len(voices))
	copy(out, voices)
	return out
}

// LookupVoice finds a persona by ID, ignoring case.
func LookupVoice(id string) (Voice, bool) {
	for _, v := range voices {
		if strings.EqualFold(v.ID, id) {
			return v, true
		}
	}
	return Voice{}, false
}
