package mail

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/kraftory/go-backend/internal/cfg"
	"github.com/kraftory/go-backend/internal/domain"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/logger"
	"gopkg.in/gomail.v2"
)

// Notifier отправляет оператору письмо о новом заказе по SMTP.
// Если SMTP не сконфигурирован, уведомления отключаются и только логируются.
type Notifier struct {
	dialer *gomail.Dialer
	cfg    *cfg.SMTPCfg
	logger logger.Logger
}

func NewNotifier(cfg *cfg.SMTPCfg, logger logger.Logger) *Notifier {
	var dialer *gomail.Dialer
	if cfg.Enabled {
		dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}

	return &Notifier{
		dialer: dialer,
		cfg:    cfg,
		logger: logger,
	}
}

// SendOrderConfirmation отправляет письмо со сводкой заказа.
func (n *Notifier) SendOrderConfirmation(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	const op = "Notifier.SendOrderConfirmation"

	if !n.cfg.Enabled {
		n.logger.Infof("SMTP disabled, skipping notification for order %s", order.OrderNumber)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.cfg.User)
	msg.SetHeader("To", n.cfg.OperatorEmail)
	msg.SetHeader("Subject", fmt.Sprintf("📦 Nouvelle Commande - %s", order.OrderNumber))
	msg.SetBody("text/html", buildOrderHTML(order, items))

	done := make(chan error, 1)
	go func() {
		done <- n.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(op, err)
		}
		return nil
	case <-ctx.Done():
		return e.Wrap(op, ctx.Err())
	}
}

// buildOrderHTML собирает HTML-сводку заказа на французском (язык оператора).
func buildOrderHTML(order *domain.Order, items []*domain.OrderItem) string {
	var itemsHTML strings.Builder
	for _, item := range items {
		itemsHTML.WriteString(fmt.Sprintf(`
      <div style="border-bottom: 1px solid #e5e7eb; padding: 10px 0;">
        <p style="margin: 0; font-weight: bold; color: #111827;">%s</p>
        <p style="margin: 4px 0; color: #6b7280; font-size: 14px;">Quantité : %d × %s TND</p>
      </div>`,
			html.EscapeString(item.ProductNameSnapshot),
			item.Quantity,
			formatTND(item.PriceAtTime),
		))
	}

	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 20px;">
          <h2 style="color: #2563eb; border-bottom: 2px solid #2563eb; padding-bottom: 10px; margin-bottom: 20px;">Nouvelle Commande Reçue !</h2>

          <div style="background-color: #f8fafc; padding: 20px; border-radius: 12px; margin-bottom: 24px;">
            <p style="margin: 0 0 10px 0;"><strong>Numéro :</strong> <span style="color: #2563eb;">%s</span></p>
            <p style="margin: 0 0 10px 0;"><strong>Date :</strong> %s</p>
          </div>

          <h3 style="color: #1e293b; margin-bottom: 12px; font-size: 16px; text-transform: uppercase; letter-spacing: 0.05em;">Produits commandés :</h3>
          <div style="margin-bottom: 24px;">
            %s
            <div style="margin-top: 15px; text-align: right;">
              <p style="font-size: 20px; color: #2563eb; font-weight: bold; margin: 0;">Total : %s TND</p>
            </div>
          </div>

          <h3 style="color: #1e293b; margin-bottom: 12px; font-size: 16px; text-transform: uppercase; letter-spacing: 0.05em;">Détails du Client :</h3>
          <div style="background-color: #f8fafc; padding: 20px; border-radius: 12px;">
            <p style="margin: 0 0 8px 0;"><strong>Nom :</strong> %s</p>
            <p style="margin: 0 0 8px 0;"><strong>Téléphone :</strong> <a href="tel:%s" style="color: #2563eb; text-decoration: none; font-weight: bold;">%s</a></p>
            <p style="margin: 0;"><strong>Adresse :</strong> %s</p>
          </div>

          <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e7eb; color: #9ca3af; font-size: 11px; text-align: center;">
            <p>Cet email a été généré automatiquement par le système de commande Kraftory.</p>
          </div>
        </div>`,
		html.EscapeString(order.OrderNumber),
		time.Now().Format("02/01/2006 15:04:05"),
		itemsHTML.String(),
		formatTND(order.TotalPrice),
		html.EscapeString(order.CustomerName),
		html.EscapeString(order.CustomerPhone),
		html.EscapeString(order.CustomerPhone),
		html.EscapeString(order.CustomerAddress),
	)
}

// formatTND переводит миллимы в динары для отображения (1 TND = 1000 миллимов).
func formatTND(millimes int64) string {
	dinars := millimes / 1000
	rest := millimes % 1000
	if rest == 0 {
		return fmt.Sprintf("%d", dinars)
	}
	return strings.TrimRight(fmt.Sprintf("%d.%03d", dinars, rest), "0")
}
