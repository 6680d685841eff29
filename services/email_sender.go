package services

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"intern-portal/config"
	apperrors "intern-portal/errors"
	"intern-portal/logger"

	"gopkg.in/gomail.v2"
)

// OutgoingMail is a single email to an applicant, optionally carrying one
// PDF attachment held in memory.
type OutgoingMail struct {
	To             string
	Subject        string
	HTMLBody       string
	AttachmentName string
	Attachment     []byte
}

// SendEmailDirect sends the email via SMTP. Called by the Kafka consumer
// after receiving an email.send event, and used directly when the event
// layer is disabled. The context bounds the whole dial-and-send.
func SendEmailDirect(ctx context.Context, mail OutgoingMail) error {
	from := config.AppConfig.EmailFrom
	if from == "" {
		from = config.AppConfig.SMTPUser
	}
	if from == "" {
		return apperrors.E(apperrors.Dependency, "email sender not configured (set EMAIL_FROM or SMTP_USER)")
	}

	smtpUser := config.AppConfig.SMTPUser
	smtpPass := config.AppConfig.SMTPPass
	if smtpUser == "" || smtpPass == "" {
		return apperrors.E(apperrors.Dependency, "smtp credentials not configured (set SMTP_USER and SMTP_PASS)")
	}

	port := 587
	if p := config.AppConfig.SMTPPort; p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", mail.To)
	m.SetHeader("Subject", mail.Subject)
	m.SetBody("text/html", mail.HTMLBody)

	if len(mail.Attachment) > 0 {
		attachment := mail.Attachment
		m.Attach(mail.AttachmentName,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(attachment)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
		)
	}

	d := gomail.NewDialer(config.AppConfig.SMTPHost, port, smtpUser, smtpPass)

	// gomail has no context support, so run the send in a goroutine and
	// give up when the caller's deadline passes. The relay connection is
	// abandoned rather than cancelled in that case.
	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("Failed to send email to %s: %v", mail.To, err)
			return apperrors.NewDependencyError(fmt.Sprintf("failed to send email to %s", mail.To), err)
		}
		logger.Info("Email sent to: %s", mail.To)
		return nil
	case <-ctx.Done():
		logger.Error("Email send to %s timed out: %v", mail.To, ctx.Err())
		return apperrors.NewDependencyError("email send timed out", ctx.Err())
	}
}
