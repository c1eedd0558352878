package utils

import (
	"log"

	"courier/config"

	"github.com/sendgrid/sendgrid-go"
)

// SendGridClient is the shared SendGrid API client.
var SendGridClient *sendgrid.Client

// SendGridInit initializes the SendGrid client from configuration.
func SendGridInit() {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Println("SENDGRID_API_KEY not set; email channel will be unavailable")
		return
	}
	SendGridClient = sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
}

// GetSendGridClient returns the shared SendGrid client, or nil when email
// delivery is not configured.
func GetSendGridClient() *sendgrid.Client {
	return SendGridClient
}
