package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/DRSN-tech/autovarka/internal/cfg"
	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/e"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// botSender — часть tgbotapi.BotAPI, которой пользуется TelegramNotifier.
type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier отправляет сообщения в чат администраторов.
// Бот создаётся при первой отправке: NewBotAPI ходит в сеть.
type TelegramNotifier struct {
	token  string
	chatID int64

	mu     sync.Mutex
	bot    botSender
	newBot func(token string) (botSender, error)
}

func NewTelegramNotifier(cfg *cfg.TelegramCfg) *TelegramNotifier {
	return &TelegramNotifier{
		token:  cfg.Token,
		chatID: cfg.ChatID,
		newBot: func(token string) (botSender, error) {
			bot, err := tgbotapi.NewBotAPI(token)
			if err != nil {
				return nil, err
			}
			return bot, nil
		},
	}
}

func (n *TelegramNotifier) Name() string {
	return "telegram"
}

func (n *TelegramNotifier) NotifyOrder(ctx context.Context, order *domain.Order) error {
	return n.send(ctx, FormatOrderMessage(order))
}

func (n *TelegramNotifier) NotifyContact(ctx context.Context, msg *domain.ContactMessage) error {
	return n.send(ctx, FormatContactMessage(msg))
}

func (n *TelegramNotifier) send(ctx context.Context, text string) error {
	const op = "TelegramNotifier.send"

	bot, err := n.getBot()
	if err != nil {
		return e.Wrap(op, err)
	}

	// tgbotapi не принимает контекст, поэтому проверяем его до отправки
	if err := ctx.Err(); err != nil {
		return e.Wrap(op, err)
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := bot.Send(msg); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// getBot инициализирует бота; после ошибки следующая отправка попробует снова.
func (n *TelegramNotifier) getBot() (botSender, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.bot != nil {
		return n.bot, nil
	}

	bot, err := n.newBot(n.token)
	if err != nil {
		return nil, err
	}
	n.bot = bot

	return bot, nil
}

func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// FormatOrderMessage строит Markdown-сообщение о новом заказе.
func FormatOrderMessage(order *domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛒 *НОВЫЙ ЗАКАЗ №%s*\n\n", md(order.ID))
	b.WriteString("👤 *Клиент:*\n")
	fmt.Fprintf(&b, "Имя: %s\n", md(order.Customer.FullName()))
	fmt.Fprintf(&b, "Телефон: %s\n", md(order.Customer.Phone))
	if order.Customer.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", md(order.Customer.Email))
	}
	fmt.Fprintf(&b, "Адрес: %s, %s\n\n", md(order.Delivery.City), md(order.Delivery.Address))

	b.WriteString("📦 *Товары:*\n")
	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, md(item.Name))
		fmt.Fprintf(&b, "   ├ Количество: %d шт\n", item.Quantity)
		fmt.Fprintf(&b, "   └ Цена: %s грн\n", item.Price.String())
	}

	fmt.Fprintf(&b, "\n💰 *Общая сумма:* %s грн\n", order.Total.String())
	fmt.Fprintf(&b, "💳 *Оплата:* %s\n", md(PaymentLabel(order.PaymentMethod, "ru")))
	if order.Notes != "" {
		fmt.Fprintf(&b, "📝 *Комментарий:* %s\n", md(order.Notes))
	}
	fmt.Fprintf(&b, "📅 *Дата:* %s", order.CreatedAt.Format("02.01.2006 15:04"))

	return b.String()
}

// FormatContactMessage строит Markdown-сообщение из формы обратной связи.
func FormatContactMessage(msg *domain.ContactMessage) string {
	var b strings.Builder

	b.WriteString("📧 *НОВОЕ СООБЩЕНИЕ С ФОРМЫ*\n\n")
	fmt.Fprintf(&b, "*От:* %s\n", md(msg.Name))
	if msg.Phone != "" {
		fmt.Fprintf(&b, "*Телефон:* %s\n", md(msg.Phone))
	}
	fmt.Fprintf(&b, "*Email:* %s\n", md(msg.Email))
	fmt.Fprintf(&b, "*Тема:* %s\n\n", md(msg.SubjectLabel()))
	fmt.Fprintf(&b, "*Сообщение:*\n%s", md(msg.Message))

	return b.String()
}
