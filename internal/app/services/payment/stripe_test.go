package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStripeClient_Charge(t *testing.T) {
	var gotForm map[string]string
	var gotAuth string

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/charges" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"ch_1","status":"succeeded"}`))
	}))
	defer server.Close()

	client, err := NewStripeClient(server.Client(), StripeConfig{
		Host:   strings.TrimPrefix(server.URL, "https://"),
		APIKey: "sk_test_key",
	}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	result, err := client.Charge(context.Background(), 999, "usd", "tok_mastercard", "capture payment for order x")
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success on 200")
	}
	if result.Body["id"] != "ch_1" {
		t.Fatalf("provider body not surfaced: %v", result.Body)
	}

	if gotAuth != "Bearer sk_test_key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	want := map[string]string{
		"amount":      "999",
		"currency":    "usd",
		"source":      "tok_mastercard",
		"description": "capture payment for order x",
		"capture":     "true",
	}
	for k, v := range want {
		if gotForm[k] != v {
			t.Errorf("form[%s] = %q, want %q", k, gotForm[k], v)
		}
	}
}

func TestStripeClient_Declined(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"code":"card_declined"}}`))
	}))
	defer server.Close()

	client, err := NewStripeClient(server.Client(), StripeConfig{
		Host:   strings.TrimPrefix(server.URL, "https://"),
		APIKey: "sk_test_key",
	}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	result, err := client.Charge(context.Background(), 999, "usd", "tok_mastercard", "d")
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if result.Success {
		t.Fatal("4xx status must not be a success")
	}
	if _, ok := result.Body["error"]; !ok {
		t.Fatalf("provider error body not surfaced: %v", result.Body)
	}
}

func TestStripeClient_ConfigValidation(t *testing.T) {
	if _, err := NewStripeClient(nil, StripeConfig{APIKey: "k"}, nil); err == nil {
		t.Fatal("missing host must be rejected")
	}
	if _, err := NewStripeClient(nil, StripeConfig{Host: "api.stripe.com"}, nil); err == nil {
		t.Fatal("missing api key must be rejected")
	}
}
