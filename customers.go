package vektopay

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Customer management is dashboard-scoped: every operation here
// authenticates with the bearer token and fails fast with
// ErrBearerTokenRequired, before any network I/O, when none was
// configured.

type customerWire struct {
	MerchantID string `json:"merchant_id,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	DocType    string `json:"doc_type,omitempty"`
	DocNumber  string `json:"doc_number,omitempty"`
}

// CreateCustomer creates a customer record.
func (c *Client) CreateCustomer(ctx context.Context, input CustomerCreateInput) (*CustomerCreateResponse, error) {
	const op = "customer_create"
	if c.bearerToken == "" {
		return nil, ErrBearerTokenRequired
	}

	body := customerWire{
		MerchantID: input.MerchantID,
		ExternalID: input.ExternalID,
		Name:       input.Name,
		Email:      input.Email,
		DocType:    input.DocType,
		DocNumber:  input.DocNumber,
	}
	statusCode, payload, err := c.do(ctx, op, http.MethodPost, "/v1/customers", body, authBearer, nil)
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
	return &CustomerCreateResponse{ID: wire.ID}, nil
}

// UpdateCustomer updates a customer record. Zero-valued input fields are
// omitted from the request body.
func (c *Client) UpdateCustomer(ctx context.Context, id string, input CustomerUpdateInput) (*Customer, error) {
	const op = "customer_update"
	if c.bearerToken == "" {
		return nil, ErrBearerTokenRequired
	}

	body := customerWire{
		MerchantID: input.MerchantID,
		ExternalID: input.ExternalID,
		Name:       input.Name,
		Email:      input.Email,
		DocType:    input.DocType,
		DocNumber:  input.DocNumber,
	}
	statusCode, payload, err := c.do(ctx, op, http.MethodPut, "/v1/customers/"+url.PathEscape(id), body, authBearer, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(statusCode) {
		return nil, c.gatewayError(op, statusCode, payload)
	}

	var customer Customer
	if err := c.decodeBody(op, payload, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListCustomers returns customer records matching params.
func (c *Client) ListCustomers(ctx context.Context, params CustomerListParams) ([]Customer, error) {
	const op = "customer_list"
	if c.bearerToken == "" {
		return nil, ErrBearerTokenRequired
	}

	query := url.Values{}
	if params.MerchantID != "" {
		query.Set("merchant_id", params.MerchantID)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}
	path := "/v1/customers"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	statusCode, payload, err := c.do(ctx, op, http.MethodGet, path, nil, authBearer, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(statusCode) {
		return nil, c.gatewayError(op, statusCode, payload)
	}

	var customers []Customer
	if err := c.decodeBody(op, payload, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomer fetches one customer record by id.
func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	const op = "customer_get"
	if c.bearerToken == "" {
		return nil, ErrBearerTokenRequired
	}

	statusCode, payload, err := c.do(ctx, op, http.MethodGet, "/v1/customers/"+url.PathEscape(id), nil, authBearer, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(statusCode) {
		return nil, c.gatewayError(op, statusCode, payload)
	}

	var customer Customer
	if err := c.decodeBody(op, payload, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer removes a customer record.
func (c *Client) DeleteCustomer(ctx context.Context, id string) (*CustomerDeleteResponse, error) {
	const op = "customer_delete"
	if c.bearerToken == "" {
		return nil, ErrBearerTokenRequired
	}

	statusCode, payload, err := c.do(ctx, op, http.MethodDelete, "/v1/customers/"+url.PathEscape(id), nil, authBearer, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(statusCode) {
		return nil, c.gatewayError(op, statusCode, payload)
	}

	var wire struct {
		OK bool `json:"ok"`
	}
	if err := c.decodeBody(op, payload, &wire); err != nil {
		return nil, err
	}
	return &CustomerDeleteResponse{OK: wire.OK}, nil
}
