package models

// Transcription is the recognized text for one uploaded audio clip.
type Transcription struct {
	Text string `json:"text"`
}
