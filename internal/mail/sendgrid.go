// Package mail is the notification collaborator: fire-and-forget email on
// order events. Failures here are the caller's to log, never to propagate.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"bakeshop/internal/domain"
)

// SendGrid sends order mail through the SendGrid API.
type SendGrid struct {
	apiKey   string
	from     string
	fromName string
}

// NewSendGrid builds a SendGrid notifier.
func NewSendGrid(apiKey, from, fromName string) *SendGrid {
	return &SendGrid{apiKey: apiKey, from: from, fromName: fromName}
}

// OrderConfirmation mails the order summary to the customer.
func (s *SendGrid) OrderConfirmation(ctx context.Context, to string, o *domain.Order) error {
	if s.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	body := confirmationBody(o)
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.fromName, s.from),
		fmt.Sprintf("Order %s received", o.ID),
		sgmail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	resp, err := sendgrid.NewSendClient(s.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}

func confirmationBody(o *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for your order %s!\n\n", o.ID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %d x %s  %s\n", it.Quantity, it.Name, cents(it.PriceCents*int64(it.Quantity)))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", cents(o.Totals.SubtotalCents))
	fmt.Fprintf(&b, "Tax: %s\n", cents(o.Totals.TaxCents))
	fmt.Fprintf(&b, "Delivery: %s\n", cents(o.Totals.DeliveryFeeCents))
	fmt.Fprintf(&b, "Total: %s\n\n", cents(o.Totals.TotalCents))
	b.WriteString("We will call you shortly to confirm delivery details.\n")
	return b.String()
}

func cents(v int64) string {
	return fmt.Sprintf("$%d.%02d", v/100, v%100)
}
