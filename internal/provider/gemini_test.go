package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiChat(t *testing.T) {
	var gotReq geminiRequest
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"certainly"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGemini(srv.URL, "key-123", "gemini-2.0-flash")
	got, err := p.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
		{Role: RoleUser, Content: "again"},
	}, Options{})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "certainly" {
		t.Errorf("got %q, want %q", got, "certainly")
	}

	if !strings.HasSuffix(gotPath, "/models/gemini-2.0-flash:generateContent") {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotKey != "key-123" {
		t.Errorf("key = %q", gotKey)
	}
	if gotReq.SystemInstruction == nil || gotReq.SystemInstruction.Parts[0].Text != "be brief" {
		t.Errorf("system instruction not forwarded: %+v", gotReq.SystemInstruction)
	}
	// System message is hoisted out of the contents list.
	if len(gotReq.Contents) != 3 {
		t.Fatalf("contents length = %d, want 3", len(gotReq.Contents))
	}
	if gotReq.Contents[1].Role != "model" {
		t.Errorf("assistant role mapped to %q, want model", gotReq.Contents[1].Role)
	}
}

func TestGeminiChat_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p := NewGemini(srv.URL, "key-123", "gemini-2.0-flash")
	_, err := p.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestGeminiInit_MissingKey(t *testing.T) {
	p := NewGemini("", "", "gemini-2.0-flash")
	if err := p.Init(context.Background()); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
