// Package flutterwave wraps the hosted-checkout API of the payment
// provider: minting a payment link for an order and verifying the
// authoritative outcome of a transaction.
package flutterwave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/AdaoraUmeh/quickcart/internal/application"
	"github.com/AdaoraUmeh/quickcart/internal/config"
)

type Client struct {
	baseURL    string
	secretKey  string
	title      string
	httpClient *http.Client
}

func NewClient(cfg config.FlutterwaveConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		title:     cfg.PaymentTitle,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

var _ application.PaymentClient = (*Client)(nil)

// CreatePaymentLink mints a hosted-checkout link. There is deliberately no
// retry here: replaying an ambiguous create risks double-charging, so any
// failure is surfaced to checkout for rollback instead.
func (c *Client) CreatePaymentLink(ctx context.Context, req application.PaymentLinkRequest) (string, error) {
	payload := paymentRequest{
		TxRef:       req.Reference,
		Amount:      req.Amount.Amount(),
		Currency:    req.Currency,
		RedirectURL: req.RedirectURL,
		Customer: customer{
			Email:       req.CustomerEmail,
			PhoneNumber: req.CustomerPhone,
			Name:        req.CustomerName,
		},
		Customizations: customizations{
			Title:       c.title,
			Description: fmt.Sprintf("Payment for Order #%d", req.OrderID),
		},
		Meta: meta{OrderID: req.OrderID},
	}

	var resp paymentResponse
	if err := c.send(ctx, http.MethodPost, c.baseURL+"/v3/payments", &payload, &resp); err != nil {
		return "", err
	}

	if resp.Status != "success" || resp.Data.Link == "" {
		return "", &GatewayError{
			Operation:  "create payment link",
			Message:    resp.Message,
			StatusCode: http.StatusOK,
		}
	}

	return resp.Data.Link, nil
}

// VerifyTransaction asks the gateway for the real outcome of a transaction.
// The check is fail-closed: only an explicit "successful" verdict returns
// true, and every transport or decode failure is an error the caller must
// treat as "not paid".
func (c *Client) VerifyTransaction(ctx context.Context, transactionID string) (bool, error) {
	url := fmt.Sprintf("%s/v3/transactions/%s/verify", c.baseURL, transactionID)

	var resp verifyResponse
	if err := c.send(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return false, err
	}

	return resp.Status == "success" && resp.Data.Status == "successful", nil
}

func (c *Client) send(ctx context.Context, method, url string, reqBody, respBody any) error {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &GatewayError{
			Operation:  fmt.Sprintf("%s %s", method, url),
			Message:    string(body),
			StatusCode: resp.StatusCode,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("error decoding json response: %w", err)
	}

	return nil
}
