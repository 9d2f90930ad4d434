package config

import (
	"os"
	"sync"
)

type EmailConfig struct {
	BaseURL          string
	ServiceID        string
	ContactTemplate  string
	PublicKey        string
	PrivateKey       string
	ContactRecipient string
}

var (
	emailConfig *EmailConfig
	emailOnce   sync.Once
)

func LoadEmailConfig() *EmailConfig {
	emailOnce.Do(func() {
		emailConfig = &EmailConfig{
			BaseURL:          getEnv("EMAILJS_URL", "https://api.emailjs.com"),
			ServiceID:        os.Getenv("EMAILJS_SERVICE_ID"),
			ContactTemplate:  os.Getenv("EMAILJS_TEMPLATE_ID"),
			PublicKey:        os.Getenv("EMAILJS_PUBLIC_KEY"),
			PrivateKey:       os.Getenv("EMAILJS_PRIVATE_KEY"),
			ContactRecipient: os.Getenv("CONTACT_RECIPIENT"),
		}
	})
	return emailConfig
}
