package ports

import "context"

// STTService recognizes speech from an audio file on disk.
type STTService interface {
	Transcribe(ctx context.Context, filePath string) (text string, err error)
}
