package utils

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"os"

	"github.com/Kariqs/nebula-api/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var orderConfirmationTemplate = template.Must(template.ParseFS(templateFS, "templates/order_confirmation.html"))

type OrderEmailData struct {
	Name     string
	OrderID  uint
	Items    []models.OrderItem
	Total    string
	Currency string
	Address  string
}

// MailConfigured reports whether the SMTP settings needed by SendEmail are set.
func MailConfigured() bool {
	return os.Getenv("FROM_EMAIL") != "" && os.Getenv("SMTP_ADDRESS") != ""
}

func RenderOrderConfirmation(order models.Order) (string, error) {
	data := OrderEmailData{
		Name:     order.CustomerName,
		OrderID:  order.ID,
		Items:    order.OrderItems,
		Total:    order.Total.StringFixed(2),
		Currency: order.Currency,
		Address:  order.Address,
	}

	var body bytes.Buffer
	if err := orderConfirmationTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

func SendOrderConfirmation(order models.Order) error {
	body, err := RenderOrderConfirmation(order)
	if err != nil {
		return err
	}
	return SendEmail(order.CustomerEmail, fmt.Sprintf("Nebula Kicks order #%d confirmed", order.ID), body)
}

func SendEmail(emailTo string, emailSubject string, htmlBody string) error {
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		emailTo,
		emailSubject,
		htmlBody,
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
