package vektopay

import (
	"context"
	"net/http"
)

type cardDetailsWire struct {
	CardBrand      string                       `json:"card_brand,omitempty"`
	Last4          string                       `json:"last4,omitempty"`
	First6         string                       `json:"first6,omitempty"`
	ExpMonth       int                          `json:"exp_month,omitempty"`
	ExpYear        int                          `json:"exp_year,omitempty"`
	HolderName     string                       `json:"holder_name,omitempty"`
	Fingerprint    string                       `json:"fingerprint,omitempty"`
	ProviderTokens map[string]providerTokenWire `json:"provider_tokens,omitempty"`
	ProviderMeta   map[string]any               `json:"provider_meta,omitempty"`
}

type providerTokenWire struct {
	Status        string `json:"status"`
	TokenID       string `json:"token_id,omitempty"`
	TokenType     string `json:"token_type,omitempty"`
	FingerprintID string `json:"fingerprint_id,omitempty"`
	ErrorCode     string `json:"error_code,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

func providerTokensToWire(tokens map[string]ProviderTokenResult) map[string]providerTokenWire {
	if tokens == nil {
		return nil
	}
	wire := make(map[string]providerTokenWire, len(tokens))
	for key, token := range tokens {
		wire[key] = providerTokenWire{
			Status:        token.Status,
			TokenID:       token.TokenID,
			TokenType:     token.TokenType,
			FingerprintID: token.FingerprintID,
			ErrorCode:     token.ErrorCode,
			ErrorMessage:  token.ErrorMessage,
		}
	}
	return wire
}

type createCardWire struct {
	CustomerID   string `json:"customer_id"`
	EncryptedPan string `json:"encrypted_pan"`
	cardDetailsWire
}

type completeCardCaptureWire struct {
	Token        string `json:"token"`
	EncryptedPan string `json:"encrypted_pan"`
	SetDefault   bool   `json:"set_default,omitempty"`
	cardDetailsWire
}

// CreateCard stores an already-encrypted card for a customer.
func (c *Client) CreateCard(ctx context.Context, input CreateCardInput) (*CreateCardResponse, error) {
	const op = "card_create"

	body := createCardWire{
		CustomerID:   input.CustomerID,
		EncryptedPan: input.EncryptedPan,
		cardDetailsWire: cardDetailsWire{
			CardBrand:      input.CardBrand,
			Last4:          input.Last4,
			First6:         input.First6,
			ExpMonth:       input.ExpMonth,
			ExpYear:        input.ExpYear,
			HolderName:     input.HolderName,
			Fingerprint:    input.Fingerprint,
			ProviderTokens: providerTokensToWire(input.ProviderTokens),
			ProviderMeta:   input.ProviderMeta,
		},
	}
	return c.cardResult(ctx, op, "/v1/cards", body, authAPIKey)
}

// CompleteCardCapture finishes a card-capture session. The session token
// is the credential, so no API key is attached to this request.
func (c *Client) CompleteCardCapture(ctx context.Context, input CompleteCardCaptureInput) (*CreateCardResponse, error) {
	const op = "card_capture_complete"

	body := completeCardCaptureWire{
		Token:        input.Token,
		EncryptedPan: input.EncryptedPan,
		SetDefault:   input.SetDefault,
		cardDetailsWire: cardDetailsWire{
			CardBrand:      input.CardBrand,
			Last4:          input.Last4,
			First6:         input.First6,
			ExpMonth:       input.ExpMonth,
			ExpYear:        input.ExpYear,
			HolderName:     input.HolderName,
			Fingerprint:    input.Fingerprint,
			ProviderTokens: providerTokensToWire(input.ProviderTokens),
			ProviderMeta:   input.ProviderMeta,
		},
	}
	return c.cardResult(ctx, op, "/v1/card-capture/complete", body, authNone)
}

func (c *Client) cardResult(ctx context.Context, op, path string, body any, auth authMode) (*CreateCardResponse, error) {
	statusCode, payload, err := c.do(ctx, op, http.MethodPost, path, body, auth, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(statusCode) {
		return nil, c.gatewayError(op, statusCode, payload)
	}

	var wire struct {
		ID string `json:"id"`
	}
	if err := c.decodeBody(op, payload, &wire); err != nil {
		return nil, err
	}
	if wire.ID == "" {
		return nil, c.protocolError(op)
	}
	return &CreateCardResponse{ID: wire.ID}, nil
}
