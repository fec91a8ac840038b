package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxSlugLen   = 50
	fallbackSlug = "product"
)

var cyrillicTranslit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "h", 'ґ': "g", 'д': "d", 'е': "e", 'є': "ye",
	'ж': "zh", 'з': "z", 'и': "y", 'і': "i", 'ї': "yi", 'й': "y", 'к': "k", 'л': "l",
	'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch", 'ь': "", 'ю': "yu",
	'я': "ya",
	// русские буквы, которых нет в украинском алфавите
	'ё': "yo", 'ы': "y", 'э': "e", 'ъ': "",
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify строит идентификатор товара из названия: транслитерация кириллицы,
// удаление диакритики, дефисы вместо остальных символов, не длиннее 50 символов.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if t, ok := cyrillicTranslit[r]; ok {
			b.WriteString(t)
			continue
		}
		b.WriteRune(r)
	}

	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), b.String())
	if err != nil {
		folded = b.String()
	}

	slug := strings.Trim(nonSlugChars.ReplaceAllString(folded, "-"), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}

	return slug
}

// uniqueSlug добавляет суффикс -1, -2, ... пока slug занят.
func uniqueSlug(base string, taken func(string) bool) string {
	if base == "" {
		base = fallbackSlug
	}

	slug := base
	for n := 1; taken(slug); n++ {
		slug = base + "-" + strconv.Itoa(n)
	}

	return slug
}
