package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client is the external payment collaborator. It issues checkout sessions
// and confirms whether a payment reference has been captured.
type Client interface {
	CreateCheckoutSession(amount float64, currency, customerEmail, description string) (ref, url string, err error)
	Verify(ref string) (paid bool, err error)
}

// HTTPClient talks to the gateway's JSON API.
type HTTPClient struct {
	APIURL string
	APIKey string
	HTTP   *http.Client
}

// NewHTTPClientFromEnv builds a client from PAYMENT_API_URL and
// PAYMENT_API_KEY.
func NewHTTPClientFromEnv() (*HTTPClient, error) {
	apiURL := os.Getenv("PAYMENT_API_URL")
	apiKey := os.Getenv("PAYMENT_API_KEY")
	if apiURL == "" || apiKey == "" {
		return nil, fmt.Errorf("payment configuration missing")
	}
	return &HTTPClient{
		APIURL: apiURL,
		APIKey: apiKey,
		HTTP:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type sessionResponse struct {
	Session struct {
		Ref string `json:"ref"`
		URL string `json:"url"`
	} `json:"session"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type verifyResponse struct {
	Status string `json:"status"` // "paid", "pending", "failed"
}

func (p *HTTPClient) post(path string, payload interface{}, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, p.APIURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("payment API error (%d): %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}

func (p *HTTPClient) CreateCheckoutSession(amount float64, currency, customerEmail, description string) (string, string, error) {
	payload := map[string]interface{}{
		"method":      "create",
		"amount":      fmt.Sprintf("%.2f", amount),
		"currency":    currency,
		"customer":    map[string]string{"email": customerEmail},
		"description": description,
		"return": map[string]string{
			"authorised": os.Getenv("PAYMENT_SUCCESS_URL"),
			"declined":   os.Getenv("PAYMENT_FAILURE_URL"),
			"cancelled":  os.Getenv("PAYMENT_CANCEL_URL"),
		},
	}

	var out sessionResponse
	if err := p.post("/sessions", payload, &out); err != nil {
		return "", "", err
	}
	if out.Error != nil {
		return "", "", fmt.Errorf("payment error: %s", out.Error.Message)
	}
	if out.Session.URL == "" {
		return "", "", fmt.Errorf("payment gateway returned empty checkout URL")
	}
	return out.Session.Ref, out.Session.URL, nil
}

func (p *HTTPClient) Verify(ref string) (bool, error) {
	var out verifyResponse
	if err := p.post("/sessions/verify", map[string]string{"ref": ref}, &out); err != nil {
		return false, err
	}
	return out.Status == "paid", nil
}
