package payment

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/domain"
)

// Client talks to a card payment gateway over its payments REST API.
// Charges and refunds go through PostOnce: a transport failure has an unknown
// outcome on the gateway side, so nothing here retries.
type Client struct {
	apiURL    string
	secretKey string
	http      adapter.HTTPClient
	json      adapter.JSON
}

// NewClient builds a payment gateway client
func NewClient(apiURL, secretKey string, httpClient adapter.HTTPClient, json adapter.JSON) *Client {
	return &Client{
		apiURL:    apiURL,
		secretKey: secretKey,
		http:      httpClient,
		json:      json,
	}
}

type chargePayload struct {
	Amount    int64         `json:"amount"`
	Currency  string        `json:"currency"`
	Reference string        `json:"reference"`
	Source    chargeSource  `json:"source"`
	Customer  *chargeTarget `json:"customer,omitempty"`
}

type chargeSource struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

type chargeTarget struct {
	Email string `json:"email"`
}

type chargeResponse struct {
	ID           string `json:"id"`
	Approved     bool   `json:"approved"`
	ResponseCode string `json:"response_code"`
}

type refundPayload struct {
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

// Charge submits a payment capture. A non-2xx status or transport error is a
// PaymentError; a processed-but-declined charge is reported through
// ChargeResult and classified by the caller.
func (c *Client) Charge(ctx context.Context, req adapter.ChargeRequest) (*adapter.ChargeResult, error) {
	payload, err := c.json.Marshal(chargePayload{
		Amount:    req.Amount,
		Currency:  req.Currency,
		Reference: req.Reference,
		Source:    chargeSource{Type: "token", Token: req.CardToken},
		Customer:  customerOrNil(req.Customer),
	})
	if err != nil {
		return nil, &domain.PaymentError{Err: fmt.Errorf("failed to marshal charge request: %w", err)}
	}

	status, body, err := c.http.PostOnce(ctx, c.apiURL+"/payments", c.headers(), bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.PaymentError{Err: err}
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, &domain.PaymentError{
			GatewayBody: string(body),
			Err:         fmt.Errorf("gateway returned status %d", status),
		}
	}

	var resp chargeResponse
	if err := c.json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.PaymentError{
			GatewayBody: string(body),
			Err:         fmt.Errorf("failed to decode charge response: %w", err),
		}
	}

	return &adapter.ChargeResult{
		Approved:     resp.Approved,
		PaymentID:    resp.ID,
		ResponseCode: resp.ResponseCode,
		RawBody:      string(body),
	}, nil
}

// Refund reverses a captured payment
func (c *Client) Refund(ctx context.Context, req adapter.RefundRequest) error {
	payload, err := c.json.Marshal(refundPayload{
		Amount:    req.Amount,
		Reference: req.Reference,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal refund request: %w", err)
	}

	url := fmt.Sprintf("%s/payments/%s/refunds", c.apiURL, req.PaymentID)
	status, body, err := c.http.PostOnce(ctx, url, c.headers(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to submit refund: %w", err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return fmt.Errorf("refund rejected with status %d: %s", status, string(body))
	}

	return nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.secretKey,
		"Content-Type":  "application/json",
	}
}

func customerOrNil(email string) *chargeTarget {
	if email == "" {
		return nil
	}
	return &chargeTarget{Email: email}
}
