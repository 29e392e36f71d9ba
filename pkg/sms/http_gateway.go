package sms

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPGateway sends SMS through a bulk-SMS provider's URL API.
// Indian providers require a registered DLT template id and sender header.
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	senderID   string
	templateID string
	client     *http.Client
}

// HTTPConfig holds configuration for the HTTP gateway
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	SenderID   string
	TemplateID string
	Timeout    time.Duration
}

// providerResponse is the JSON body returned by the provider
type providerResponse struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

// NewHTTPGateway creates a new HTTP SMS gateway
func NewHTTPGateway(cfg HTTPConfig) *HTTPGateway {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPGateway{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		senderID:   cfg.SenderID,
		templateID: cfg.TemplateID,
		client:     &http.Client{Timeout: timeout},
	}
}

// Name returns the gateway name
func (g *HTTPGateway) Name() string {
	return "http"
}

// SendOTP sends the OTP message to a 10-digit mobile number
func (g *HTTPGateway) SendOTP(phone, otpCode string) (string, error) {
	params := url.Values{}
	params.Set("apikey", g.apiKey)
	params.Set("sender", g.senderID)
	params.Set("template_id", g.templateID)
	params.Set("numbers", "91"+phone)
	params.Set("message", OTPMessage(otpCode))

	fullURL := fmt.Sprintf("%s/send?%s", g.baseURL, params.Encode())

	resp, err := g.client.Get(fullURL)
	if err != nil {
		return "", fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read SMS response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("SMS provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var out providerResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse SMS response: %w", err)
	}

	if out.Status != "success" {
		return "", fmt.Errorf("SMS provider rejected message: %s", out.Error)
	}

	logrus.WithFields(logrus.Fields{
		"gateway":    g.Name(),
		"message_id": out.MessageID,
	}).Info("OTP SMS accepted by provider")

	return out.MessageID, nil
}

// OTPMessage renders the OTP text registered with the DLT template
func OTPMessage(otpCode string) string {
	return fmt.Sprintf("%s is your Circle Sales login OTP. It is valid for 5 minutes. Do not share it with anyone.", otpCode)
}
