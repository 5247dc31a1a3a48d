package vektopay

import "context"

// Legacy adapters for the deprecated /v1/charges and /v1/transactions
// surfaces. Both are thin translations over the unified payment
// lifecycle: one submission path, one status enumeration, one poll loop.

// CreateCharge submits a legacy charge.
//
// The charge is translated into a unified payment submission (stored
// card, credit_card method) carrying an Idempotency-Key header — the
// caller's key when supplied, a generated one otherwise. The unified
// result folds back into the narrow legacy outcome:
//
//   - FAILED becomes a ChargeResponse with an embedded payment_failed
//     error
//   - ACTION_REQUIRED with a challenge URL becomes a redirect challenge
//   - anything else is reported as PAID, which is all the legacy shape
//     can express
//
// ACTION_REQUIRED without a challenge URL leaves the payer with no way
// to proceed, so it is rejected as a protocol error rather than
// surfaced as an unactionable success.
//
// Deprecated: prefer CreatePayment.
func (c *Client) CreateCharge(ctx context.Context, input ChargeInput) (*ChargeResponse, error) {
	key := input.IdempotencyKey
	if key == "" {
		key = c.keyFunc()
	}

	result, err := c.createPayment(ctx, PaymentInput{
		CustomerID: input.CustomerID,
		Amount:     input.Amount,
		Currency:   input.Currency,
		PaymentMethod: PaymentMethodInput{
			Type:         MethodCreditCard,
			CardID:       input.CardID,
			Installments: input.Installments,
		},
	}, map[string]string{"Idempotency-Key": key})
	if err != nil {
		return nil, err
	}

	switch {
	case result.Status == StatusFailed:
		return &ChargeResponse{
			ID:     result.PaymentID,
			Status: StatusFailed,
			Error:  &ChargeError{Code: "payment_failed", Message: "payment_failed"},
		}, nil
	case result.Status == StatusActionRequired && result.Challenge != nil:
		return &ChargeResponse{
			ID:     result.PaymentID,
			Status: StatusActionRequired,
			Challenge: &Challenge{
				URL:    result.Challenge.URL,
				Method: ChallengeRedirect,
			},
		}, nil
	case result.Status == StatusActionRequired:
		// Action required but nothing to act on.
		return nil, c.protocolError("charge")
	default:
		return &ChargeResponse{ID: result.PaymentID, Status: StatusPaid}, nil
	}
}

// CreateTransaction submits a legacy items-based transaction through the
// unified payment surface and passes the broader result through the
// narrower legacy shape.
//
// Deprecated: prefer CreatePayment with Items.
func (c *Client) CreateTransaction(ctx context.Context, input TransactionInput) (*TransactionResponse, error) {
	items := make([]PaymentItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, PaymentItemInput{
			PriceID:  item.PriceID,
			Quantity: item.Quantity,
		})
	}

	result, err := c.CreatePayment(ctx, PaymentInput{
		CustomerID: input.CustomerID,
		Items:      items,
		CouponCode: input.CouponCode,
		PaymentMethod: PaymentMethodInput{
			Type:         input.PaymentMethod.Type,
			Token:        input.PaymentMethod.Token,
			Installments: input.PaymentMethod.Installments,
		},
	})
	if err != nil {
		return nil, err
	}

	return &TransactionResponse{
		ID:            result.PaymentID,
		Status:        result.Status,
		PaymentStatus: result.PaymentStatus,
		Amount:        result.Amount,
		Currency:      result.Currency,
	}, nil
}

// PollChargeStatus polls the unified status endpoint on behalf of a
// legacy charge. It is a rename wrapper over PollPaymentStatus with no
// polling behavior of its own.
//
// Deprecated: prefer PollPaymentStatus.
func (c *Client) PollChargeStatus(ctx context.Context, chargeID string, opts ...PollOption) (*ChargeStatusResponse, error) {
	status, err := c.PollPaymentStatus(ctx, chargeID, opts...)
	if err != nil {
		return nil, err
	}
	return &ChargeStatusResponse{ID: status.ID, Status: status.Status}, nil
}
