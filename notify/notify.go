package notify

import (
	"fmt"
	"log"

	"smartfood-api/config"
	"smartfood-api/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Notifier sends customer-facing order notifications. Delivery is best
// effort; order processing never fails because an email did not go out.
type Notifier interface {
	OrderConfirmation(to string, order *models.Order)
	StatusUpdate(to string, order *models.Order)
}

// New returns a SendGrid-backed notifier when an API key is configured,
// otherwise a logger that just records what would have been sent.
func New(cfg *config.Config) Notifier {
	if cfg.SendGridAPIKey != "" {
		return &sendGridNotifier{
			client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
			from:   cfg.FromEmail,
		}
	}
	return &logNotifier{}
}

type sendGridNotifier struct {
	client *sendgrid.Client
	from   string
}

func (n *sendGridNotifier) OrderConfirmation(to string, order *models.Order) {
	subject := fmt.Sprintf("Order %s confirmed", order.OrderNumber)
	body := fmt.Sprintf(
		"Thanks for your order!\n\nOrder: %s\nTotal: %.2f\nDelivery address: %s\n",
		order.OrderNumber, order.Total, order.DeliveryAddress,
	)
	n.send(to, subject, body)
}

func (n *sendGridNotifier) StatusUpdate(to string, order *models.Order) {
	subject := fmt.Sprintf("Order %s is now %s", order.OrderNumber, order.Status)
	body := fmt.Sprintf("Your order %s status changed to: %s\n", order.OrderNumber, order.Status)
	n.send(to, subject, body)
}

func (n *sendGridNotifier) send(to, subject, body string) {
	from := mail.NewEmail("SmartFood", n.from)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, body)
	if _, err := n.client.Send(message); err != nil {
		log.Printf("notify: failed to send %q to %s: %v", subject, to, err)
	}
}

type logNotifier struct{}

func (n *logNotifier) OrderConfirmation(to string, order *models.Order) {
	log.Printf("notify: order %s confirmed for %s (total %.2f)", order.OrderNumber, to, order.Total)
}

func (n *logNotifier) StatusUpdate(to string, order *models.Order) {
	log.Printf("notify: order %s for %s is now %s", order.OrderNumber, to, order.Status)
}
