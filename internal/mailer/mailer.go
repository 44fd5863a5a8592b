// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
	"github.com/sirupsen/logrus"
)

// Mailer is satisfied by anything able to deliver a password reset
// link to an address.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

// SMTPMailer delivers through a plain SMTP relay with mandatory
// STARTTLS. Configuration comes from SMTP_* environment variables.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string

	skipTLSVerify bool
}

// NewSMTPMailerFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USER,
// SMTP_PASS and SMTP_FROM. Port defaults to 587.
func NewSMTPMailerFromEnv() (*SMTPMailer, error) {
	host := os.Getenv("SMTP_HOST")
	from := os.Getenv("SMTP_FROM")
	if host == "" || from == "" {
		return nil, fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	return &SMTPMailer{
		host:          host,
		port:          port,
		user:          os.Getenv("SMTP_USER"),
		pass:          os.Getenv("SMTP_PASS"),
		from:          from,
		skipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
	}, nil
}

func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your EthioWork password")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Someone requested a password reset for this address.</p>"+
			"<p><a href=%q>Reset password</a> (link expires in 30 minutes)</p>"+
			"<p>If this was not you, ignore this mail.</p>", resetURL))

	d := mail.NewDialer(m.host, m.port, m.user, m.pass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         m.host,
		InsecureSkipVerify: m.skipTLSVerify,
	}

	return d.DialAndSend(msg)
}

// LogMailer writes the reset link to the log instead of sending mail.
// Used in development and in tests.
type LogMailer struct {
	Log *logrus.Logger
}

func (m *LogMailer) SendPasswordReset(to, resetURL string) error {
	m.Log.WithFields(logrus.Fields{
		"to":  to,
		"url": resetURL,
	}).Info("password reset mail (log delivery)")
	return nil
}

var (
	_ Mailer = (*SMTPMailer)(nil)
	_ Mailer = (*LogMailer)(nil)
)
