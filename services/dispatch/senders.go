package dispatch

import (
	"context"
	"errors"
	"fmt"
	"html"

	"courier/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// SendGridEmailSender delivers email through the SendGrid API. API
// rejections arrive as a response status, never as a client error, so every
// client error is transport-level and marks the channel unreachable.
type SendGridEmailSender struct {
	Client   *sendgrid.Client
	From     string
	FromName string
}

func (s *SendGridEmailSender) Send(ctx context.Context, address, subject, body string) error {
	if s.Client == nil {
		return fmt.Errorf("sendgrid client not configured: %w", ErrSenderUnavailable)
	}
	msg := mail.NewSingleEmail(
		mail.NewEmail(s.FromName, s.From),
		subject,
		mail.NewEmail("", address),
		body,
		body,
	)
	resp, err := s.Client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w: %v", address, ErrSenderUnavailable, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message to %s: status %d", address, resp.StatusCode)
	}
	return nil
}

// classifyTwilioError separates API rejections from transport failures. A
// TwilioRestError means the API answered and refused this message, a
// routine per-channel failure; anything else never reached Twilio and marks
// the channel unreachable.
func classifyTwilioError(op, address string, err error) error {
	var restErr *twilioclient.TwilioRestError
	if errors.As(err, &restErr) {
		return fmt.Errorf("%s to %s rejected: %v", op, address, restErr)
	}
	return fmt.Errorf("%s to %s: %w: %v", op, address, ErrSenderUnavailable, err)
}

// callTwilio runs a Twilio API call under the attempt context. The
// generated client does not accept a context, so the call runs in a
// goroutine and an expired context abandons the wait; an abandoned call
// reports as unreachable.
func callTwilio(ctx context.Context, op, address string, call func() error) error {
	done := make(chan error, 1)
	go func() { done <- call() }()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s to %s: %w: %v", op, address, ErrSenderUnavailable, ctx.Err())
	case err := <-done:
		if err != nil {
			return classifyTwilioError(op, address, err)
		}
		return nil
	}
}

// TwilioSMSSender delivers SMS through the Twilio Messages API.
type TwilioSMSSender struct {
	Client *twilio.RestClient
	From   string
}

func (s *TwilioSMSSender) Send(ctx context.Context, address, subject, body string) error {
	if s.Client == nil {
		return fmt.Errorf("twilio client not configured: %w", ErrSenderUnavailable)
	}
	params := &api.CreateMessageParams{}
	params.SetTo(address)
	params.SetFrom(s.From)
	params.SetBody(body)

	return callTwilio(ctx, "twilio sms", address, func() error {
		_, err := s.Client.Api.CreateMessage(params)
		return err
	})
}

// TwilioVoiceSender delivers phone notifications as a Twilio voice call
// that reads the message body aloud.
type TwilioVoiceSender struct {
	Client *twilio.RestClient
	From   string
}

func (s *TwilioVoiceSender) Send(ctx context.Context, address, subject, body string) error {
	if s.Client == nil {
		return fmt.Errorf("twilio client not configured: %w", ErrSenderUnavailable)
	}
	params := &api.CreateCallParams{}
	params.SetTo(address)
	params.SetFrom(s.From)
	params.SetTwiml(fmt.Sprintf("<Response><Say>%s</Say></Response>", html.EscapeString(body)))

	return callTwilio(ctx, "twilio call", address, func() error {
		_, err := s.Client.Api.CreateCall(params)
		return err
	})
}

// DefaultSenders builds the production sender registry from the shared
// clients. Types without a configured client are simply absent and tally
// as failures when targeted.
func DefaultSenders(sg *sendgrid.Client, tw *twilio.RestClient, emailFrom, emailFromName, smsFrom string) map[models.ContactType]Sender {
	senders := make(map[models.ContactType]Sender, 3)
	if sg != nil {
		senders[models.ContactTypeEmail] = &SendGridEmailSender{Client: sg, From: emailFrom, FromName: emailFromName}
	}
	if tw != nil {
		senders[models.ContactTypeSMS] = &TwilioSMSSender{Client: tw, From: smsFrom}
		senders[models.ContactTypePhone] = &TwilioVoiceSender{Client: tw, From: smsFrom}
	}
	return senders
}
