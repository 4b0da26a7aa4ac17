package utils

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// SendEmail sends a transactional email (signup OTP) through SendGrid
func SendEmail(toName, toEmail, subject, textContent, htmlContent string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set")
	}

	from := mail.NewEmail("Peboli Admin", "no-reply@peboli.co.za")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	client := sendgrid.NewSendClient(apiKey)

	response, err := client.Send(message)
	if err != nil {
		logrus.WithError(err).WithField("to", toEmail).Error("Error sending email")
		return err
	}

	if response.StatusCode >= 400 {
		logrus.WithFields(logrus.Fields{
			"status": response.StatusCode,
			"body":   response.Body,
		}).Error("SendGrid API error")
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	logrus.WithField("to", toEmail).Info("Email sent")
	return nil
}
