package http

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/DRSN-tech/autovarka/internal/locale"
	"github.com/DRSN-tech/autovarka/internal/usecase"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Статические страницы витрины; "" — главная
var sitemapRoutes = []string{"", "/products", "/about", "/contacts", "/cart", "/profile"}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type SitemapHandler struct {
	handler
	products usecase.ProductUC
	baseURL  string
	now      func() time.Time
}

func NewSitemapHandler(products usecase.ProductUC, baseURL string, logger logger.Logger) *SitemapHandler {
	return &SitemapHandler{
		handler:  handler{logger: logger},
		products: products,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
	}
}

func (h *SitemapHandler) sitemap(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	lastMod := h.now().UTC().Format("2006-01-02")
	set := urlSet{XMLNS: sitemapNS}

	for _, code := range locale.Supported {
		for _, route := range sitemapRoutes {
			u := sitemapURL{Loc: h.loc(code, route), LastMod: lastMod, ChangeFreq: "weekly", Priority: 0.8}
			if route == "" {
				u.ChangeFreq, u.Priority = "daily", 1
			}
			set.URLs = append(set.URLs, u)
		}
	}

	for _, code := range locale.Supported {
		for _, p := range products {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:        h.loc(code, "/products/"+p.ID),
				LastMod:    lastMod,
				ChangeFreq: "weekly",
				Priority:   0.7,
			})
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		h.logger.Errorf(err, "sitemap encode failed")
	}
}

// loc строит абсолютный URL; главная языка по умолчанию — это сам baseURL.
func (h *SitemapHandler) loc(code, route string) string {
	if route == "" {
		if code == locale.Default {
			return h.baseURL
		}
		return h.baseURL + "/" + code
	}

	return h.baseURL + locale.Path(code, route)
}
