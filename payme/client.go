package payme

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"edume/config"

	"github.com/go-resty/resty/v2"
)

// Client talks to the Payme checkout. When a Subscribe API key is configured
// the pay link comes from a hosted receipt; otherwise the offline link format
// is used (base64 of the merchant/account/amount parameters).
type Client struct {
	MerchantID   string
	CheckoutURL  string
	SubscribeKey string
	http         *resty.Client
}

// NewClient builds a gateway client from the application config.
func NewClient() *Client {
	cfg := config.AppConfig
	return &Client{
		MerchantID:   cfg.PaymeMerchantID,
		CheckoutURL:  cfg.PaymeCheckoutURL,
		SubscribeKey: cfg.PaymeSubscribeKey,
		http:         resty.New().SetTimeout(10 * time.Second),
	}
}

// GeneratePayLink returns the hosted checkout URL for the order. Amount is in
// minor currency units. Gateway errors and timeouts surface to the caller.
func (c *Client) GeneratePayLink(orderID uint, amount int64) (string, error) {
	if c.SubscribeKey != "" {
		return c.createReceiptLink(orderID, amount)
	}

	params := fmt.Sprintf("m=%s;ac.order_id=%d;a=%d", c.MerchantID, orderID, amount)
	encoded := base64.StdEncoding.EncodeToString([]byte(params))
	return c.CheckoutURL + "/" + encoded, nil
}

type receiptsCreateResponse struct {
	Result *struct {
		Receipt struct {
			ID string `json:"_id"`
		} `json:"receipt"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// createReceiptLink creates a hosted receipt via the Subscribe API and
// returns its checkout URL.
func (c *Client) createReceiptLink(orderID uint, amount int64) (string, error) {
	body := map[string]interface{}{
		"id":     orderID,
		"method": "receipts.create",
		"params": map[string]interface{}{
			"amount": amount,
			"account": map[string]interface{}{
				"order_id": orderID,
			},
		},
	}

	resp, err := c.http.R().
		SetHeader("X-Auth", c.MerchantID+":"+c.SubscribeKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.CheckoutURL + "/api")
	if err != nil {
		return "", fmt.Errorf("payme receipts.create failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("payme receipts.create status %d: %s", resp.StatusCode(), resp.String())
	}

	var parsed receiptsCreateResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("payme receipts.create bad response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("payme receipts.create error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if parsed.Result == nil || parsed.Result.Receipt.ID == "" {
		return "", fmt.Errorf("payme receipts.create returned no receipt")
	}

	return c.CheckoutURL + "/" + parsed.Result.Receipt.ID, nil
}
