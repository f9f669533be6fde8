package mailer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMailgunClient_Send(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotForm map[string]string

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"<msg@mg>","message":"Queued. Thank you."}`))
	}))
	defer server.Close()

	client, err := NewMailgunClient(server.Client(), MailgunConfig{
		Host:   strings.TrimPrefix(server.URL, "https://"),
		Domain: "mg.example.com",
		APIKey: "key-test",
	}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	result, err := client.Send(context.Background(), "alice@example.com", "Order x processed", "receipt text")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success on 200")
	}

	if gotPath != "/v3/mg.example.com/messages" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotUser != "api" || gotPass != "key-test" {
		t.Fatalf("unexpected basic auth %q/%q", gotUser, gotPass)
	}
	want := map[string]string{
		"from":    "postmaster@mg.example.com",
		"to":      "alice@example.com",
		"subject": "Order x processed",
		"text":    "receipt text",
	}
	for k, v := range want {
		if gotForm[k] != v {
			t.Errorf("form[%s] = %q, want %q", k, gotForm[k], v)
		}
	}
}

func TestMailgunClient_Rejected(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Forbidden"}`))
	}))
	defer server.Close()

	client, err := NewMailgunClient(server.Client(), MailgunConfig{
		Host:   strings.TrimPrefix(server.URL, "https://"),
		Domain: "mg.example.com",
		APIKey: "key-test",
	}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	result, err := client.Send(context.Background(), "alice@example.com", "s", "t")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if result.Success {
		t.Fatal("4xx status must not be a success")
	}
	if result.Body["message"] != "Forbidden" {
		t.Fatalf("provider body not surfaced: %v", result.Body)
	}
}

func TestMailgunClient_FromOverride(t *testing.T) {
	client, err := NewMailgunClient(nil, MailgunConfig{
		Host:   "api.mailgun.net",
		Domain: "mg.example.com",
		APIKey: "key-test",
		From:   "orders@mg.example.com",
	}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.cfg.From != "orders@mg.example.com" {
		t.Fatalf("explicit from overridden: %q", client.cfg.From)
	}
}
