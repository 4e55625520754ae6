package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type failingStore struct {
	calls int
}

func (s *failingStore) Store(_ context.Context, _ []byte, _ string) (string, error) {
	s.calls++
	return "", errors.New("backend rejected write")
}

func newSubmitApp(h *IssueHandler) *fiber.App {
	app := fiber.New()
	app.Post("/api/issues", h.Submit)
	return app
}

func multipartBody(t *testing.T, withPhoto bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := map[string]string{
		"location":    "Main St",
		"emailid":     "a@x.com",
		"category":    "Pothole",
		"issue":       "road damage",
		"description": "deep pothole near the crossing",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if withPhoto {
		part, err := writer.CreateFormFile("photo", "pothole.jpg")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write photo: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestSubmitWithoutPhotoReturns400(t *testing.T) {
	store := &failingStore{}
	// A nil issue service is safe here: the handler must short-circuit
	// before any persistence is attempted.
	h := NewIssueHandler(nil, store, zap.NewNop())
	app := newSubmitApp(h)

	body, contentType := multipartBody(t, false)
	req := httptest.NewRequest(http.MethodPost, "/api/issues", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if store.calls != 0 {
		t.Errorf("evidence store was called %d times for a photo-less request", store.calls)
	}
}

func TestSubmitUploadFailureReturns500BeforePersistence(t *testing.T) {
	store := &failingStore{}
	h := NewIssueHandler(nil, store, zap.NewNop())
	app := newSubmitApp(h)

	body, contentType := multipartBody(t, true)
	req := httptest.NewRequest(http.MethodPost, "/api/issues", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
	if store.calls != 1 {
		t.Errorf("evidence store calls = %d, want 1", store.calls)
	}
}
