package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetcher_Fetch(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "rss-digest/test", time.Second)
	data, err := fetcher.Fetch(context.Background(), server.URL)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(data) != "<rss/>" {
		t.Errorf("Expected body '<rss/>', got: %s", data)
	}
	if gotAgent != "rss-digest/test" {
		t.Errorf("Expected user agent 'rss-digest/test', got: %s", gotAgent)
	}
}

func TestFetcher_FetchTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<rss>0123456789</rss>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "rss-digest/test", time.Second)

	fetcher.maxSize = int64(len("<rss>0123456789</rss>"))
	if _, err := fetcher.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Expected a body at the limit to be accepted, got: %v", err)
	}

	fetcher.maxSize = 10
	_, err := fetcher.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrFeedTooLarge) {
		t.Fatalf("Expected ErrFeedTooLarge, got: %v", err)
	}
}

func TestFetcher_FetchStatusError(t *testing.T) {
	tests := []struct {
		status    int
		temporary bool
	}{
		{http.StatusNotFound, false},
		{http.StatusGone, false},
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		fetcher := NewFetcher(server.Client(), "test", time.Second)
		_, err := fetcher.Fetch(context.Background(), server.URL)
		server.Close()

		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("Expected StatusError for %d, got: %v", tt.status, err)
		}
		if statusErr.StatusCode != tt.status {
			t.Errorf("Expected status %d, got %d", tt.status, statusErr.StatusCode)
		}
		if statusErr.Temporary() != tt.temporary {
			t.Errorf("Expected temporary=%v for %d", tt.temporary, tt.status)
		}
	}
}

func TestFetcher_FetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test", 50*time.Millisecond)
	_, err := fetcher.Fetch(context.Background(), server.URL)

	if err == nil {
		t.Fatal("Expected timeout error")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("Expected transport error, got status error: %v", err)
	}
}
