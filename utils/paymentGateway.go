package utils

import (
	"encoding/json"
	"fmt"
	"log"

	"learnhub/config"

	"github.com/go-resty/resty/v2"
)

// GatewayOrder is the order object returned by the payment gateway.
type GatewayOrder struct {
	OrderID  string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateGatewayOrder registers a payment order with the external gateway.
// Only order creation lives here; signature verification on the callback
// is handled by the gateway's webhook infrastructure, not this service.
func CreateGatewayOrder(amount int64, currency, receipt string) (*GatewayOrder, error) {
	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.GatewayKeyID, config.AppConfig.GatewaySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   amount,
			"currency": currency,
			"receipt":  receipt,
		}).
		Post(config.AppConfig.GatewayBaseURL + "/orders")
	if err != nil {
		log.Printf("Failed to create gateway order: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Gateway order creation failed: %s", resp.String())
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode())
	}

	var order GatewayOrder
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		log.Printf("Failed to parse gateway response: %v", err)
		return nil, err
	}
	return &order, nil
}
