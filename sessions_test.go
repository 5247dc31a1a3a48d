package vektopay

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestCreateCheckoutSession(t *testing.T) {
	var body map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout-sessions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		body = decodeRequestBody(t, r)
		jsonResponse(w, http.StatusOK, map[string]any{
			"id":         "cs_1",
			"token":      "tok_cs",
			"expires_at": 1756700000,
		})
	})

	session, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionInput{
		CustomerID:       "cus_1",
		Amount:           100,
		Currency:         "BRL",
		PriceID:          "price_1",
		Quantity:         2,
		ExpiresInSeconds: 900,
		SuccessURL:       "https://merchant.example/ok",
		CancelURL:        "https://merchant.example/cancel",
	})
	if err != nil {
		t.Fatalf("CreateCheckoutSession failed: %v", err)
	}

	if session.ID != "cs_1" || session.Token != "tok_cs" || session.ExpiresAt != 1756700000 {
		t.Errorf("Unexpected session: %+v", session)
	}
	if body["price_id"] != "price_1" || body["expires_in_seconds"] != float64(900) {
		t.Errorf("Unexpected wire body: %v", body)
	}
	if body["success_url"] != "https://merchant.example/ok" {
		t.Errorf("Unexpected success_url: %v", body["success_url"])
	}
}

func TestCheckoutSessionExpiresAtNumericString(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{
			"id":         "cs_1",
			"token":      "tok_cs",
			"expires_at": "1756700000",
		})
	})

	session, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionInput{})
	if err != nil {
		t.Fatalf("CreateCheckoutSession failed: %v", err)
	}
	if session.ExpiresAt != 1756700000 {
		t.Errorf("Expected coerced expires_at, got %v", session.ExpiresAt)
	}
}

func TestCheckoutSessionNonNumericExpiresAt(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{
			"id":         "cs_1",
			"token":      "tok_cs",
			"expires_at": "not-a-number",
		})
	})

	_, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionInput{})

	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ProtocolError, got %v", err)
	}
	if pe.Code != "checkout_session_invalid_expires_at" {
		t.Errorf("Expected checkout_session_invalid_expires_at, got %q", pe.Code)
	}
}

func TestCheckoutSessionMissingToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{
			"id":         "cs_1",
			"expires_at": 1756700000,
		})
	})

	_, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionInput{})

	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ProtocolError, got %v", err)
	}
	if pe.Code != "checkout_session_invalid_response" {
		t.Errorf("Expected checkout_session_invalid_response, got %q", pe.Code)
	}
}

func TestCreateCardCaptureSession(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/card-capture-sessions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		jsonResponse(w, http.StatusOK, map[string]any{
			"id":         "ccs_1",
			"url":        "https://capture.example/ccs_1",
			"expires_at": "2026-09-01T12:00:00Z",
		})
	})

	session, err := client.CreateCardCaptureSession(context.Background(), CardCaptureSessionInput{
		CustomerID: "cus_1",
	})
	if err != nil {
		t.Fatalf("CreateCardCaptureSession failed: %v", err)
	}
	if session.ID != "ccs_1" || session.URL != "https://capture.example/ccs_1" {
		t.Errorf("Unexpected session: %+v", session)
	}
	if session.ExpiresAt != "2026-09-01T12:00:00Z" {
		t.Errorf("Unexpected expires_at: %q", session.ExpiresAt)
	}
}

func TestCompleteCardCaptureOmitsAPIKey(t *testing.T) {
	var apiKey string
	var body map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/card-capture/complete" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		apiKey = r.Header.Get("x-api-key")
		body = decodeRequestBody(t, r)
		jsonResponse(w, http.StatusOK, map[string]any{"id": "card_1"})
	})

	card, err := client.CompleteCardCapture(context.Background(), CompleteCardCaptureInput{
		Token:        "capture-token",
		EncryptedPan: "enc-pan",
		SetDefault:   true,
		Last4:        "4242",
	})
	if err != nil {
		t.Fatalf("CompleteCardCapture failed: %v", err)
	}

	if apiKey != "" {
		t.Errorf("Capture completion must not send the API key, got %q", apiKey)
	}
	if card.ID != "card_1" {
		t.Errorf("Expected card_1, got %q", card.ID)
	}
	if body["token"] != "capture-token" || body["encrypted_pan"] != "enc-pan" {
		t.Errorf("Unexpected wire body: %v", body)
	}
	if body["set_default"] != true || body["last4"] != "4242" {
		t.Errorf("Unexpected wire body: %v", body)
	}
}

func TestCreateCardProviderTokensWireShape(t *testing.T) {
	var body map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body = decodeRequestBody(t, r)
		jsonResponse(w, http.StatusOK, map[string]any{"id": "card_1"})
	})

	card, err := client.CreateCard(context.Background(), CreateCardInput{
		CustomerID:   "cus_1",
		EncryptedPan: "enc-pan",
		CardBrand:    "visa",
		ExpMonth:     12,
		ExpYear:      2030,
		ProviderTokens: map[string]ProviderTokenResult{
			"acme": {
				Status:  "success",
				TokenID: "tok_acme",
			},
		},
	})
	if err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}
	if card.ID != "card_1" {
		t.Errorf("Expected card_1, got %q", card.ID)
	}

	if body["customer_id"] != "cus_1" || body["card_brand"] != "visa" || body["exp_month"] != float64(12) {
		t.Errorf("Unexpected wire body: %v", body)
	}
	tokens := body["provider_tokens"].(map[string]any)
	acme := tokens["acme"].(map[string]any)
	if acme["status"] != "success" || acme["token_id"] != "tok_acme" {
		t.Errorf("Unexpected provider token wire shape: %v", acme)
	}
	if _, present := acme["error_code"]; present {
		t.Errorf("Empty provider token fields must be omitted: %v", acme)
	}
}

func TestCreateCardMissingID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{})
	})

	_, err := client.CreateCard(context.Background(), CreateCardInput{})

	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ProtocolError, got %v", err)
	}
	if pe.Code != "card_create_invalid_response" {
		t.Errorf("Expected card_create_invalid_response, got %q", pe.Code)
	}
}
