package utils

import (
	"log"

	"courier/config"

	"github.com/twilio/twilio-go"
)

// TwilioClient is the shared Twilio REST client used by the SMS and voice
// channel senders.
var TwilioClient *twilio.RestClient

// TwilioInit initializes the Twilio client from configuration.
func TwilioInit() {
	if config.AppConfig.TwilioAccountSID == "" || config.AppConfig.TwilioAuthToken == "" {
		log.Println("Twilio credentials not set; sms and phone channels will be unavailable")
		return
	}
	TwilioClient = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: config.AppConfig.TwilioAccountSID,
		Password: config.AppConfig.TwilioAuthToken,
	})
}

// GetTwilioClient returns the shared Twilio client, or nil when sms/phone
// delivery is not configured.
func GetTwilioClient() *twilio.RestClient {
	return TwilioClient
}
