package domain

import "time"

// ContactMessage — сообщение из формы обратной связи.
type ContactMessage struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

var contactSubjects = map[string]string{
	"product":  "Запитання про товар",
	"delivery": "Доставка",
	"warranty": "Гарантія",
	"other":    "Інше",
}

// SubjectLabel возвращает человекочитаемую тему обращения.
func (c *ContactMessage) SubjectLabel() string {
	if label, ok := contactSubjects[c.Subject]; ok {
		return label
	}

	return c.Subject
}
