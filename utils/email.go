package utils

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/jordan-wright/email"
)

func smtpSend(to, subject, html string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	if host == "" || port == "" || user == "" || pass == "" || from == "" {
		return errors.New("smtp config missing")
	}

	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(html)

	addr := host + ":" + port
	auth := smtp.PlainAuth("", user, pass, host)
	tlsConfig := &tls.Config{ServerName: host}
	useTLS := strings.EqualFold(os.Getenv("SMTP_TLS"), "true") ||
		os.Getenv("SMTP_TLS") == "1" ||
		port == "465"
	useStartTLS := strings.EqualFold(os.Getenv("SMTP_STARTTLS"), "true") ||
		os.Getenv("SMTP_STARTTLS") == "1"

	if useTLS {
		return e.SendWithTLS(addr, auth, tlsConfig)
	}
	if useStartTLS {
		return e.SendWithStartTLS(addr, auth, tlsConfig)
	}
	return e.Send(addr, auth)
}

// SendActivateMail sends activation email.
func SendActivateMail(to, link string) error {
	return smtpSend(to, "Account Activation", `
		<h2>Welcome</h2>
		<p>Please click the link below to activate your account:</p>
		<a href="`+link+`">Activate account</a>
		<p>The link is valid for 10 minutes.</p>
	`)
}

// SendModelApprovedMail notifies an author that a model went live.
func SendModelApprovedMail(to, modelName string) error {
	return smtpSend(to, "Your model was approved", fmt.Sprintf(`
		<h2>Model approved</h2>
		<p>Your model <b>%s</b> has been approved and is now listed on the marketplace.</p>
	`, modelName))
}

// SendModelRejectedMail notifies an author about a rejection with the reason.
func SendModelRejectedMail(to, modelName, reason string) error {
	if reason == "" {
		reason = "no reason given"
	}
	return smtpSend(to, "Your model was rejected", fmt.Sprintf(`
		<h2>Model rejected</h2>
		<p>Your model <b>%s</b> was not approved.</p>
		<p>Reason: %s</p>
	`, modelName, reason))
}

// SendPurchaseMail notifies an author about a sale.
func SendPurchaseMail(to, modelName, buyer string) error {
	return smtpSend(to, "Your model was purchased", fmt.Sprintf(`
		<h2>New purchase</h2>
		<p><b>%s</b> purchased your model <b>%s</b>.</p>
	`, buyer, modelName))
}

// SendDeletionWarningMail warns an author that an archived model will be purged.
func SendDeletionWarningMail(to, modelName, deleteDate string) error {
	return smtpSend(to, "Archived model scheduled for deletion", fmt.Sprintf(`
		<h2>Scheduled deletion</h2>
		<p>Your archived model <b>%s</b> will be permanently deleted on %s.</p>
		<p>Download a copy before then if you want to keep it.</p>
	`, modelName, deleteDate))
}
