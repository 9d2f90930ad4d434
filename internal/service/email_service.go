package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ruhienterprises/careers-api/internal/config"
	"github.com/tidwall/sjson"
)

type EmailServiceInterface interface {
	SendTemplate(ctx context.Context, templateID string, params map[string]string) error
}

// EmailService sends template mail through the EmailJS REST API.
type EmailService struct {
	Client     *resty.Client
	ServiceID  string
	PublicKey  string
	PrivateKey string
}

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		Client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(15 * time.Second),
		ServiceID:  cfg.ServiceID,
		PublicKey:  cfg.PublicKey,
		PrivateKey: cfg.PrivateKey,
	}
}

func (s *EmailService) SendTemplate(ctx context.Context, templateID string, params map[string]string) error {
	if templateID == "" {
		return fmt.Errorf("email template id is not configured")
	}
	payload, err := s.payload(templateID, params)
	if err != nil {
		return fmt.Errorf("build email payload: %w", err)
	}

	resp, err := s.Client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/api/v1.0/email/send")
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("send email: status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}

// payload builds the send request. Param keys are escaped so a dot in a key
// stays part of the name.
func (s *EmailService) payload(templateID string, params map[string]string) ([]byte, error) {
	fields := [][2]string{
		{"service_id", s.ServiceID},
		{"template_id", templateID},
		{"user_id", s.PublicKey},
	}
	if s.PrivateKey != "" {
		fields = append(fields, [2]string{"accessToken", s.PrivateKey})
	}
	for k, v := range params {
		fields = append(fields, [2]string{"template_params." + pathEscaper.Replace(k), v})
	}

	body := []byte(`{"template_params":{}}`)
	var err error
	for _, f := range fields {
		if body, err = sjson.SetBytes(body, f[0], f[1]); err != nil {
			return nil, err
		}
	}
	return body, nil
}

var pathEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
