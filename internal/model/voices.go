package model

// Voice is a text-to-speech voice identity offered to clients.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Gender      string `json:"gender"`
	Accent      string `json:"accent"`
}

// DefaultVoiceID is used when a render request does not name a voice.
// Rachel, natural sounding.
const DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// Voices is the ElevenLabs voice catalogue exposed by the API.
var Voices = []Voice{
	{ID: "21m00Tcm4TlvDq8ikWAM", Name: "Rachel", Description: "Warm & natural", Gender: "female", Accent: "American"},
	{ID: "pNInz6obpgDQGcFmaJgB", Name: "Adam", Description: "Deep & authoritative", Gender: "male", Accent: "American"},
	{ID: "ErXwobaYiN019PkySvjV", Name: "Antoni", Description: "Well-rounded & expressive", Gender: "male", Accent: "American"},
	{ID: "EXAVITQu4vr4xnSDxMaL", Name: "Bella", Description: "Soft & gentle", Gender: "female", Accent: "American"},
	{ID: "MF3mGyEYCl7XYWbV9V6O", Name: "Elli", Description: "Young & bright", Gender: "female", Accent: "American"},
	{ID: "TxGEqnHWrfWFTfGW9XjX", Name: "Josh", Description: "Young & energetic", Gender: "male", Accent: "American"},
	{ID: "VR6AewLTigWG4xSOukaG", Name: "Arnold", Description: "Confident & bold", Gender: "male", Accent: "American"},
	{ID: "yoZ06aMxZJJ28mfd3POQ", Name: "Sam", Description: "Raspy & dynamic", Gender: "male", Accent: "American"},
	{ID: "ThT5KcBeYPX3keUQqHPh", Name: "Dorothy", Description: "Pleasant & friendly", Gender: "female", Accent: "British"},
	{ID: "oWAxZDx7w5VEj9dCyTzz", Name: "Grace", Description: "Southern & soothing", Gender: "female", Accent: "American Southern"},
}
