// Package paypal is a minimal client for the PayPal Orders v2 REST API:
// client-credentials token exchange, order creation and order capture.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
)

const maxBody = 1 << 20

type Config struct {
	BaseURL  string
	ClientID string
	Secret   string
	Currency string
	Timeout  time.Duration
}

type Client struct {
	http     *http.Client
	baseURL  string
	clientID string
	secret   string
	currency string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	currency := cfg.Currency
	if currency == "" {
		currency = "USD"
	}

	return &Client{
		http:     &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		clientID: cfg.ClientID,
		secret:   cfg.Secret,
		currency: currency,
	}
}

// Capture is a capture response: the raw gateway payload plus the captured
// amount when the gateway reported one.
type Capture struct {
	Raw    json.RawMessage
	Amount decimal.NullDecimal
}

// CreateOrder creates a CAPTURE-intent order and returns the gateway's order
// object verbatim.
func (c *Client) CreateOrder(ctx context.Context, amount decimal.Decimal) (json.RawMessage, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	body := orderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			Amount: money{CurrencyCode: c.currency, Value: amount.StringFixed(2)},
		}},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding order request: %w", err)
	}

	return c.do(ctx, "creating order", token, "/v2/checkout/orders", ulid.Make().String(), bytes.NewReader(raw))
}

// CaptureOrder captures an approved order. The request id is derived from
// the order id, so a retried capture is de-duplicated by the gateway.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*Capture, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	path := "/v2/checkout/orders/" + url.PathEscape(orderID) + "/capture"

	raw, err := c.do(ctx, "capturing order", token, path, "capture-"+orderID, nil)
	if err != nil {
		return nil, err
	}

	return &Capture{Raw: raw, Amount: capturedAmount(raw)}, nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.clientID == "" || c.secret == "" {
		return "", fmt.Errorf("%w: missing PayPal credentials", apperr.ErrGatewayUnavailable)
	}

	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}

	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperr.Gateway("requesting access token", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.Gateway("requesting access token", statusError(resp))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&tok); err != nil {
		return "", apperr.Gateway("decoding access token", err)
	}

	if tok.AccessToken == "" {
		return "", apperr.Gateway("requesting access token", fmt.Errorf("empty access token"))
	}

	return tok.AccessToken, nil
}

func (c *Client) do(ctx context.Context, op, token, path, requestID string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("PayPal-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Gateway(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.Gateway(op, statusError(resp))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, apperr.Gateway(op, err)
	}

	if !json.Valid(raw) {
		return nil, apperr.Gateway(op, fmt.Errorf("response is not JSON"))
	}

	return raw, nil
}

func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
}

// capturedAmount reads purchase_units[0].payments.captures[0].amount.value.
func capturedAmount(raw json.RawMessage) decimal.NullDecimal {
	var resp captureResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return decimal.NullDecimal{}
	}

	if len(resp.PurchaseUnits) == 0 || len(resp.PurchaseUnits[0].Payments.Captures) == 0 {
		return decimal.NullDecimal{}
	}

	v, err := decimal.NewFromString(resp.PurchaseUnits[0].Payments.Captures[0].Amount.Value)
	if err != nil || !v.IsPositive() {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(v)
}

type money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseUnit struct {
	Amount money `json:"amount"`
}

type orderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type captureResponse struct {
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				Amount money `json:"amount"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}
