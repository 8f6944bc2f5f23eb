package domain

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/doelab/doe-gateway/internal/ports"
)

// TranscribeService materializes an uploaded audio clip to a scratch file,
// runs recognition on it and removes the file before returning, on every
// exit path.
type TranscribeService struct {
	stt     ports.STTService
	scratch ports.ScratchStore
	log     *zap.SugaredLogger
}

func NewTranscribeService(stt ports.STTService, scratch ports.ScratchStore, log *zap.SugaredLogger) *TranscribeService {
	return &TranscribeService{
		stt:     stt,
		scratch: scratch,
		log:     log,
	}
}

func (s *TranscribeService) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	path, err := s.scratch.Acquire("audio-*" + scratchSuffix(filename))
	if err != nil {
		return "", err
	}
	defer func() {
		if err := s.scratch.Release(path); err != nil {
			s.log.Warnw("scratch release failed", "path", path, "error", err)
		}
	}()

	if err := writeAll(path, audio); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return s.stt.Transcribe(ctx, path)
}

// scratchSuffix keeps the upload's extension so the recognizer can sniff the
// container format. Browser recordings typically arrive as .webm.
func scratchSuffix(filename string) string {
	if ext := filepath.Ext(filepath.Base(filename)); ext != "" && ext != "." {
		return ext
	}
	return ".webm"
}

func writeAll(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
