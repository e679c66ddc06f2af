package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kyra_advising_backend/internal/config"
)

func newTestAdvisoryService(url string, timeout time.Duration) *AdvisoryService {
	return NewAdvisoryService(config.AdvisoryConfig{
		URL:      url,
		Timeout:  timeout,
		MaxCalls: 10,
		Period:   time.Minute,
	})
}

func TestAdvisoryAsk(t *testing.T) {
	var got advisoryRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "Try a literature review first."})
	}))
	defer srv.Close()

	svc := newTestAdvisoryService(srv.URL, 5*time.Second)
	answer, err := svc.Ask(context.Background(), " lee@college.edu ", " How do I begin? ", "Thesis Prep")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "Try a literature review first." {
		t.Errorf("unexpected answer %q", answer)
	}
	// Whitespace is trimmed before sending.
	if got.Email != "lee@college.edu" || got.Question != "How do I begin?" {
		t.Errorf("payload not trimmed: %+v", got)
	}
	if got.ProjectTitle != "Thesis Prep" {
		t.Errorf("project title not forwarded: %q", got.ProjectTitle)
	}
}

func TestAdvisoryAskDefaultsProjectTitle(t *testing.T) {
	var got advisoryRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer srv.Close()

	svc := newTestAdvisoryService(srv.URL, 5*time.Second)
	if _, err := svc.Ask(context.Background(), "lee@college.edu", "Q", ""); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got.ProjectTitle != NoProjectAssigned {
		t.Errorf("expected sentinel project title, got %q", got.ProjectTitle)
	}
}

func TestAdvisoryAskEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": ""})
	}))
	defer srv.Close()

	svc := newTestAdvisoryService(srv.URL, 5*time.Second)
	answer, err := svc.Ask(context.Background(), "lee@college.edu", "Q", "P")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != EmptyResponsePlaceholder {
		t.Errorf("expected placeholder, got %q", answer)
	}
}

func TestAdvisoryAskErrorCategories(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		svc := newTestAdvisoryService(srv.URL, 5*time.Second)
		_, err := svc.Ask(context.Background(), "x@college.edu", "Q", "P")
		if !errors.Is(err, ErrAdvisoryStatus) {
			t.Fatalf("expected ErrAdvisoryStatus, got %v", err)
		}
		if ErrorMessage(err) != "Error: API request failed. Please try again later." {
			t.Errorf("unexpected message %q", ErrorMessage(err))
		}
	})

	t.Run("missing response field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"answer": "wrong key"})
		}))
		defer srv.Close()

		svc := newTestAdvisoryService(srv.URL, 5*time.Second)
		_, err := svc.Ask(context.Background(), "x@college.edu", "Q", "P")
		if !errors.Is(err, ErrAdvisoryMalformed) {
			t.Fatalf("expected ErrAdvisoryMalformed, got %v", err)
		}
		if ErrorMessage(err) != "Error: Invalid response format from API." {
			t.Errorf("unexpected message %q", ErrorMessage(err))
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		svc := newTestAdvisoryService(srv.URL, 5*time.Second)
		_, err := svc.Ask(context.Background(), "x@college.edu", "Q", "P")
		if !errors.Is(err, ErrAdvisoryMalformed) {
			t.Fatalf("expected ErrAdvisoryMalformed, got %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		defer srv.Close()

		svc := newTestAdvisoryService(srv.URL, 50*time.Millisecond)
		_, err := svc.Ask(context.Background(), "x@college.edu", "Q", "P")
		if !errors.Is(err, ErrAdvisoryTimeout) {
			t.Fatalf("expected ErrAdvisoryTimeout, got %v", err)
		}
		if ErrorMessage(err) != "Error: API request timed out. Please try again later." {
			t.Errorf("unexpected message %q", ErrorMessage(err))
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		svc := newTestAdvisoryService("http://127.0.0.1:1", time.Second)
		_, err := svc.Ask(context.Background(), "x@college.edu", "Q", "P")
		if !errors.Is(err, ErrAdvisoryConnection) {
			t.Fatalf("expected ErrAdvisoryConnection, got %v", err)
		}
		if ErrorMessage(err) != "Error: Unable to connect to the API. Please check your network connection." {
			t.Errorf("unexpected message %q", ErrorMessage(err))
		}
	})
}
