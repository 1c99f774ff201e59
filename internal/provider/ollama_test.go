package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaChat(t *testing.T) {
	var gotReq ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaResponse{
			Message: ollamaMessage{Role: "assistant", Content: "hello back"},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewOllama(srv.URL, "mistral")
	got, err := p.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "hello"},
	}, Options{Temperature: 0.7, MaxTokens: 128})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "hello back" {
		t.Errorf("got %q, want %q", got, "hello back")
	}

	if gotReq.Model != "mistral" {
		t.Errorf("model = %q, want mistral", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("expected stream=false")
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("messages not forwarded: %+v", gotReq.Messages)
	}
	if gotReq.Options["num_predict"] != float64(128) {
		t.Errorf("num_predict = %v, want 128", gotReq.Options["num_predict"])
	}
}

func TestOllamaChat_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, 404)
	}))
	defer srv.Close()

	p := NewOllama(srv.URL, "missing")
	_, err := p.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestOllamaInit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	p := NewOllama(srv.URL, "mistral")
	if err := p.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
}

func TestOllamaInit_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	p := NewOllama(srv.URL, "mistral")
	err := p.Init(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
