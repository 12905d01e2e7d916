package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/css-prep/backend/internal/models"
)

func TestRemoteClient_Generate(t *testing.T) {
	var got models.GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/mcq/generate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validSetJSON(15)))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL+"/", time.Second)
	set, err := client.Generate(context.Background(), models.NewGenerateRequest("Pakistan Affairs"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(set.Questions) != 15 {
		t.Errorf("expected 15 questions, got %d", len(set.Questions))
	}
	if got.Subject != "Pakistan Affairs" || got.Count != 15 || got.Difficulty != models.DifficultyMedium {
		t.Errorf("unexpected request body: %+v", got)
	}
	if !got.PakistanOnly || !got.PakistanOnlyStrict {
		t.Errorf("regional flags not sent: %+v", got)
	}
}

func TestRemoteClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewRemoteClient(srv.URL, time.Second).Generate(context.Background(), models.NewGenerateRequest("Economics"))
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestRemoteClient_InvalidSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validSetJSON(3)))
	}))
	defer srv.Close()

	_, err := NewRemoteClient(srv.URL, time.Second).Generate(context.Background(), models.NewGenerateRequest("Economics"))
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got: %T %v", err, err)
	}
}
