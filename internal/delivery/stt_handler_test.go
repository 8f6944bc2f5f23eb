package delivery

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doelab/doe-gateway/internal/domain"
	"github.com/doelab/doe-gateway/internal/infra"
)

type fakeSTT struct {
	text string
	err  error

	gotContent string
}

func (f *fakeSTT) Transcribe(ctx context.Context, filePath string) (string, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	f.gotContent = string(raw)
	return f.text, f.err
}

func newSTTFixture(t *testing.T, stt *fakeSTT) (*STTHandler, string) {
	t.Helper()

	dir := t.TempDir()
	scratch, err := infra.NewFileScratchStore(dir)
	require.NoError(t, err)

	svc := domain.NewTranscribeService(stt, scratch, zap.NewNop().Sugar())
	return NewSTTHandler(svc, zap.NewNop().Sugar()), dir
}

func audioUploadRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.Copy(fw, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/stt", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestTranscribeReturnsText(t *testing.T) {
	stt := &fakeSTT{text: "hello from the microphone"}
	h, dir := newSTTFixture(t, stt)

	rec := httptest.NewRecorder()
	h.Transcribe(rec, audioUploadRequest(t, "audio", "recording.webm", "opus bytes"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"hello from the microphone"}`, rec.Body.String())
	assert.Equal(t, "opus bytes", stt.gotContent, "upload bytes reach the recognizer intact")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no scratch file outlives the request")
}

func TestTranscribeRejectsMissingAudioField(t *testing.T) {
	h, _ := newSTTFixture(t, &fakeSTT{text: "unused"})

	rec := httptest.NewRecorder()
	h.Transcribe(rec, audioUploadRequest(t, "video", "recording.webm", "opus bytes"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No audio uploaded"}`, rec.Body.String())
}

func TestTranscribeRejectsNonMultipartBody(t *testing.T) {
	h, _ := newSTTFixture(t, &fakeSTT{text: "unused"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/stt", strings.NewReader("not multipart"))
	h.Transcribe(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No audio uploaded"}`, rec.Body.String())
}

func TestTranscribeMapsAdapterFaultToInternalError(t *testing.T) {
	h, dir := newSTTFixture(t, &fakeSTT{err: errors.New("whisper segfault")})

	rec := httptest.NewRecorder()
	h.Transcribe(rec, audioUploadRequest(t, "audio", "recording.webm", "opus bytes"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch file removed even when the adapter fails")
}
