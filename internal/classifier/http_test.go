package classifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestHTTPClassifierClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emotion" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		w.Write([]byte(`{"primary_emotion":"sadness","confidence":0.88,"secondary_emotions":{"anxiety":0.3}}`))
	}))
	defer server.Close()

	c := NewHTTPClassifier(server.URL, "test-key", zap.NewNop())
	analysis, err := c.Classify(context.Background(), "I feel down")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if analysis.PrimaryEmotion != "sadness" || analysis.Confidence != 0.88 {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
	if analysis.SecondaryEmotions["anxiety"] != 0.3 {
		t.Fatalf("unexpected secondary emotions: %v", analysis.SecondaryEmotions)
	}
}

func TestHTTPClassifierScoreRejectsOutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"score":1.7}`))
	}))
	defer server.Close()

	c := NewHTTPClassifier(server.URL, "", zap.NewNop())
	if _, err := c.Score(context.Background(), "text"); err == nil {
		t.Fatal("expected error for out-of-range score")
	}
}

func TestHTTPClassifierErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewHTTPClassifier(server.URL, "", zap.NewNop())
	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Fatal("expected error for 500 status")
	}
}
