// Package locale описывает языки витрины и маршрутизацию с языковым префиксом:
// язык по умолчанию (uk) живёт без префикса, остальные — под /{locale}/.
package locale

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

const Default = "uk"

// Supported перечисляет языки витрины; первый — язык по умолчанию.
var Supported = []string{"uk", "ru", "en", "pl", "de"}

var matcher = language.NewMatcher([]language.Tag{
	language.Ukrainian,
	language.Russian,
	language.English,
	language.Polish,
	language.German,
})

// IsSupported сообщает, поддерживается ли код языка.
func IsSupported(code string) bool {
	for _, l := range Supported {
		if l == code {
			return true
		}
	}

	return false
}

// Parse нормализует тег языка (например, "en-US" -> "en").
// Неизвестные и пустые теги дают ok == false.
func Parse(tag string) (string, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", false
	}

	t, err := language.Parse(tag)
	if err != nil {
		return "", false
	}

	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return "", false
	}

	return Supported[idx], true
}

// Path строит локализованный путь: для языка по умолчанию путь без префикса.
func Path(code, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if code == Default || !IsSupported(code) {
		return path
	}

	if path == "/" {
		return "/" + code
	}

	return "/" + code + path
}

type ctxKey struct{}

// WithLocale кладёт язык в контекст.
func WithLocale(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, ctxKey{}, code)
}

// FromContext возвращает язык запроса или язык по умолчанию.
func FromContext(ctx context.Context) string {
	if code, ok := ctx.Value(ctxKey{}).(string); ok && code != "" {
		return code
	}

	return Default
}
