// utils/email.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"go-storefront/models"

	"github.com/keighl/postmark"
)

var orderHTML = htmltemplate.Must(htmltemplate.New("order.html").Parse(
	`<strong>Dear {{.ShippingAddress.FullName}},</strong><br><br>` +
		`Thank you for your purchase! Your order <strong>#{{.OrderNumber}}</strong> has been placed.` +
		`<ul>{{range .Items}}<li>{{.Title}} ({{.Size}}, {{.Color}}) x {{.Quantity}}</li>{{end}}</ul>` +
		`Total Amount: <strong>{{.TotalAmount}}</strong><br>Status: {{.OrderStatus}}`))

var orderText = texttemplate.Must(texttemplate.New("order.txt").Parse(
	`Dear {{.ShippingAddress.FullName}},

Thank you for your purchase! Your order #{{.OrderNumber}} has been placed.
{{range .Items}}
- {{.Title}} ({{.Size}}, {{.Color}}) x {{.Quantity}}{{end}}

Total Amount: {{.TotalAmount}}
Status: {{.OrderStatus}}
`))

// EmailService handles sending emails using Postmark
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService(apiToken, sender string) *EmailService {
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends an email with both an HTML and a plain text body
func (es *EmailService) SendEmail(toEmail, subject, htmlBody, textBody string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation email to the shopper.
// Shopper supplied fields are escaped in the HTML body.
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	var htmlBody, textBody bytes.Buffer
	if err := orderHTML.Execute(&htmlBody, order); err != nil {
		return fmt.Errorf("render order email: %w", err)
	}
	if err := orderText.Execute(&textBody, order); err != nil {
		return fmt.Errorf("render order email: %w", err)
	}

	subject := fmt.Sprintf("Order #%s confirmed", order.OrderNumber)
	return es.SendEmail(toEmail, subject, htmlBody.String(), textBody.String())
}

// OrderPlaced satisfies the checkout notifier contract
func (es *EmailService) OrderPlaced(_ context.Context, email string, order models.Order) error {
	return es.SendOrderConfirmationEmail(email, order)
}
