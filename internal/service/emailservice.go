package service

import (
	"context"
	"fmt"

	"primehavenwebserver/internal/email"
)

// EmailService delivers the out-of-band messages the auth flows produce:
// password-reset links and invite passwords. Send is injectable for tests
// and defaults to real SMTP delivery.
type EmailService struct {
	Settings  email.SMTPSettings
	FromEmail string
	FromName  string

	Send func(email.SMTPSettings, email.Message) error
}

func (s *EmailService) Enabled() bool {
	return s != nil && s.Settings.Host != "" && s.FromEmail != ""
}

func (s *EmailService) SendPasswordReset(_ context.Context, toEmail, resetURL string) error {
	body := fmt.Sprintf(
		"We received a request to reset your admin password.\r\n\r\n"+
			"Reset it here (the link expires in one hour):\r\n%s\r\n\r\n"+
			"If you didn't request this, you can ignore this email.\r\n",
		resetURL,
	)
	return s.send(email.Message{
		FromName:  s.FromName,
		FromEmail: s.FromEmail,
		ToEmail:   toEmail,
		Subject:   "Reset your admin password",
		TextBody:  body,
	})
}

func (s *EmailService) SendInvite(_ context.Context, toEmail, name, tempPassword string) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"An admin account has been created for you.\r\n\r\n"+
			"Temporary password: %s\r\n\r\n"+
			"Log in and reset your password as soon as possible.\r\n",
		name, tempPassword,
	)
	return s.send(email.Message{
		FromName:  s.FromName,
		FromEmail: s.FromEmail,
		ToEmail:   toEmail,
		Subject:   "You've been invited as an admin",
		TextBody:  body,
	})
}

func (s *EmailService) send(msg email.Message) error {
	sendFn := s.Send
	if sendFn == nil {
		sendFn = email.SendSMTP
	}
	return sendFn(s.Settings, msg)
}
