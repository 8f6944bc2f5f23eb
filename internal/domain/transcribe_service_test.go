package domain

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doelab/doe-gateway/internal/infra"
	"github.com/doelab/doe-gateway/internal/ports"
)

type fakeSTT struct {
	mu    sync.Mutex
	paths []string
	text  string
	err   error
}

func (f *fakeSTT) Transcribe(ctx context.Context, filePath string) (string, error) {
	f.mu.Lock()
	f.paths = append(f.paths, filePath)
	f.mu.Unlock()

	// the scratch file must hold the upload while recognition runs
	if _, statErr := os.Stat(filePath); statErr != nil {
		return "", statErr
	}
	return f.text, f.err
}

func newTranscribeFixture(t *testing.T, stt ports.STTService) (*TranscribeService, string) {
	t.Helper()

	dir := t.TempDir()
	scratch, err := infra.NewFileScratchStore(dir)
	require.NoError(t, err)

	return NewTranscribeService(stt, scratch, zap.NewNop().Sugar()), dir
}

func scratchFileCount(t *testing.T, dir string) int {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestTranscribeWritesUploadAndCleansUp(t *testing.T) {
	stt := &fakeSTT{text: "recognized speech"}
	svc, dir := newTranscribeFixture(t, stt)

	text, err := svc.Transcribe(context.Background(), strings.NewReader("audio bytes"), "clip.webm")
	require.NoError(t, err)
	assert.Equal(t, "recognized speech", text)

	require.Len(t, stt.paths, 1)
	assert.True(t, strings.HasSuffix(stt.paths[0], ".webm"), "scratch file keeps the upload extension")
	assert.Zero(t, scratchFileCount(t, dir), "scratch file must not outlive the call")
}

func TestTranscribeCleansUpOnAdapterFault(t *testing.T) {
	svc, dir := newTranscribeFixture(t, &fakeSTT{err: errors.New("model crashed")})

	_, err := svc.Transcribe(context.Background(), strings.NewReader("audio bytes"), "clip.webm")
	require.Error(t, err)

	assert.Zero(t, scratchFileCount(t, dir), "scratch file must be removed on failure too")
}

func TestTranscribeDefaultsSuffixForBareFilename(t *testing.T) {
	stt := &fakeSTT{text: "ok"}
	svc, _ := newTranscribeFixture(t, stt)

	_, err := svc.Transcribe(context.Background(), strings.NewReader("audio"), "blob")
	require.NoError(t, err)

	require.Len(t, stt.paths, 1)
	assert.True(t, strings.HasSuffix(stt.paths[0], ".webm"))
}

func TestTranscribeConcurrentCallsNeverShareScratchFiles(t *testing.T) {
	const n = 50

	stt := &fakeSTT{text: "ok"}
	svc, dir := newTranscribeFixture(t, stt)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.Transcribe(context.Background(), strings.NewReader("audio bytes"), "clip.webm")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for _, p := range stt.paths {
		seen[p] = struct{}{}
	}
	assert.Len(t, seen, n, "every call gets its own scratch file")
	assert.Zero(t, scratchFileCount(t, dir), "all scratch files removed after completion")
}
