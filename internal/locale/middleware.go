package locale

import (
	"net/http"
	"strings"
)

// Middleware снимает языковой префикс с пути и кладёт язык в контекст.
// Префикс языка по умолчанию не используется: /uk/... перенаправляется на путь без него.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, rest, ok := splitPrefix(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), Default)))
			return
		}

		if code == Default {
			target := rest
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
			return
		}

		r2 := r.Clone(WithLocale(r.Context(), code))
		r2.URL.Path = rest
		r2.URL.RawPath = ""
		next.ServeHTTP(w, r2)
	})
}

// splitPrefix отделяет поддерживаемый языковой префикс от пути.
func splitPrefix(path string) (code string, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	first, tail, _ := strings.Cut(trimmed, "/")
	if !IsSupported(first) {
		return "", path, false
	}

	return first, "/" + tail, true
}
