package notify

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"text/template"

	"github.com/DRSN-tech/autovarka/internal/cfg"
	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/locale"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/wneessen/go-mail"
)

const senderName = "🚗 Автоварка"

var paymentLabels = map[domain.PaymentMethod]map[string]string{
	domain.PaymentCashOnDelivery: {
		"uk": "Оплата при отриманні",
		"ru": "Оплата при получении",
		"en": "Cash on Delivery",
		"pl": "Płatność przy odbiorze",
		"de": "Nachnahme",
	},
	domain.PaymentCard: {
		"uk": "Оплата карткою",
		"ru": "Оплата картой",
		"en": "Card Payment",
		"pl": "Płatność kartą",
		"de": "Kartenzahlung",
	},
	domain.PaymentPrepayment: {
		"uk": "Передоплата",
		"ru": "Предоплата",
		"en": "Prepayment",
		"pl": "Przedpłata",
		"de": "Vorauszahlung",
	},
}

// PaymentLabel возвращает название способа оплаты на языке заказа.
func PaymentLabel(method domain.PaymentMethod, code string) string {
	labels, ok := paymentLabels[method]
	if !ok {
		return string(method)
	}
	if label, ok := labels[code]; ok {
		return label
	}

	return labels[locale.Default]
}

var orderHTML = htmltemplate.Must(htmltemplate.New("order").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Нове замовлення #{{.Order.ID}}</h2>
  <h3>Клієнт</h3>
  <p>
    <b>Ім'я:</b> {{.Order.Customer.FullName}}<br>
    <b>Телефон:</b> {{.Order.Customer.Phone}}<br>
    {{if .Order.Customer.Email}}<b>Email:</b> {{.Order.Customer.Email}}<br>{{end}}
    <b>Адреса:</b> {{.Order.Delivery.City}}, {{.Order.Delivery.Address}}
  </p>
  <p><b>Оплата:</b> {{.Payment}}</p>
  <table cellpadding="8" cellspacing="0" border="1" style="border-collapse: collapse;">
    <tr><th>Товар</th><th>Кол-во</th><th>Цена</th><th>Сумма</th></tr>
    {{range .Order.Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Price}} ₴</td><td>{{.Subtotal}} ₴</td></tr>
    {{end}}
  </table>
  <h3>Разом: {{.Order.Total}} ₴</h3>
  {{if .Order.Notes}}<p><b>Коментар:</b> {{.Order.Notes}}</p>{{end}}
  <p style="color: #888;">{{.Date}}</p>
</body>
</html>
`))

var orderText = template.Must(template.New("order").Parse(`Нове замовлення #{{.Order.ID}}

Клієнт: {{.Order.Customer.FullName}}
Телефон: {{.Order.Customer.Phone}}
{{if .Order.Customer.Email}}Email: {{.Order.Customer.Email}}
{{end}}Адреса: {{.Order.Delivery.City}}, {{.Order.Delivery.Address}}
Оплата: {{.Payment}}

{{range $i, $it := .Order.Items}}{{$it.Name}} x {{$it.Quantity}} = {{$it.Subtotal}} ₴
{{end}}
Разом: {{.Order.Total}} ₴
{{if .Order.Notes}}Коментар: {{.Order.Notes}}
{{end}}`))

var contactHTML = htmltemplate.Must(htmltemplate.New("contact").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Нове повідомлення з контактної форми</h2>
  <p>
    <b>Ім'я:</b> {{.Msg.Name}}<br>
    <b>Email:</b> {{.Msg.Email}}<br>
    {{if .Msg.Phone}}<b>Телефон:</b> {{.Msg.Phone}}<br>{{end}}
    <b>Тема:</b> {{.Subject}}
  </p>
  <p style="white-space: pre-wrap;">{{.Msg.Message}}</p>
</body>
</html>
`))

type orderView struct {
	Order   *domain.Order
	Payment string
	Date    string
}

type contactView struct {
	Msg     *domain.ContactMessage
	Subject string
}

// mailSender — часть mail.Client, которой пользуется EmailNotifier.
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// EmailNotifier отправляет письма о заказах и обращениях через SMTP.
type EmailNotifier struct {
	client mailSender
	from   string
	to     string
}

func NewEmailNotifier(cfg *cfg.SMTPCfg) (*EmailNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &EmailNotifier{
		client: client,
		from:   cfg.From,
		to:     cfg.To,
	}, nil
}

func (n *EmailNotifier) Name() string {
	return "email"
}

func (n *EmailNotifier) NotifyOrder(ctx context.Context, order *domain.Order) error {
	const op = "EmailNotifier.NotifyOrder"

	view := orderView{
		Order:   order,
		Payment: PaymentLabel(order.PaymentMethod, order.Locale),
		Date:    order.CreatedAt.Format("02.01.2006 15:04 MST"),
	}

	html, text, err := render(orderHTML, orderText, view)
	if err != nil {
		return e.Wrap(op, err)
	}

	subject := fmt.Sprintf("🛒 Новый заказ #%s - %s %s", order.ID, order.Customer.Name, order.Customer.Surname)
	msg, err := n.newMsg(subject, order.Customer.Email)
	if err != nil {
		return e.Wrap(op, err)
	}
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (n *EmailNotifier) NotifyContact(ctx context.Context, contact *domain.ContactMessage) error {
	const op = "EmailNotifier.NotifyContact"

	var html bytes.Buffer
	view := contactView{Msg: contact, Subject: contact.SubjectLabel()}
	if err := contactHTML.Execute(&html, view); err != nil {
		return e.Wrap(op, err)
	}

	msg, err := n.newMsg("Контактна форма: "+view.Subject, contact.Email)
	if err != nil {
		return e.Wrap(op, err)
	}
	msg.SetBodyString(mail.TypeTextPlain, contact.Message)
	msg.AddAlternativeString(mail.TypeTextHTML, html.String())

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// newMsg собирает письмо администратору; replyTo, если задан, позволяет ответить клиенту напрямую.
func (n *EmailNotifier) newMsg(subject, replyTo string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(senderName, n.from); err != nil {
		return nil, err
	}
	if err := msg.To(n.to); err != nil {
		return nil, err
	}
	if replyTo != "" {
		// Невалидный адрес клиента не должен мешать отправке
		_ = msg.ReplyTo(replyTo)
	}
	msg.Subject(subject)

	return msg, nil
}

func render(h *htmltemplate.Template, t *template.Template, data any) (string, string, error) {
	var html, text bytes.Buffer
	if err := h.Execute(&html, data); err != nil {
		return "", "", err
	}
	if err := t.Execute(&text, data); err != nil {
		return "", "", err
	}

	return html.String(), text.String(), nil
}
