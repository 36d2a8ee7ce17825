package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "batchdl" {
			t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), "batchdl")
		}
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "streamed body")
	}))
	defer server.Close()

	resp, err := NewClient().Get(context.Background(), server.URL+"/file.txt")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "text/plain" {
		t.Errorf("Content-Type = %q, want %q", got, "text/plain")
	}
	if resp.ContentLength != int64(len("streamed body")) {
		t.Errorf("ContentLength = %d, want %d", resp.ContentLength, len("streamed body"))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(body) != "streamed body" {
		t.Errorf("body = %q, want %q", body, "streamed body")
	}
}

func TestClient_Get_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient().Get(context.Background(), server.URL+"/missing")
	if err == nil {
		t.Fatal("Get() should fail on a 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, want the status code mentioned", err)
	}
}

func TestClient_Get_TransportError(t *testing.T) {
	if _, err := NewClient().Get(context.Background(), "http://127.0.0.1:1/"); err == nil {
		t.Fatal("Get() should surface a transport error")
	}
}

func TestClient_Get_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewClient().Get(ctx, server.URL); err == nil {
		t.Fatal("Get() should respect context cancellation")
	}
}
