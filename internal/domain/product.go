package domain

import "github.com/shopspring/decimal"

// Specifications — технические характеристики товара, все поля необязательны.
type Specifications struct {
	Voltage  string `json:"voltage,omitempty"`
	Capacity string `json:"capacity,omitempty"`
	Power    string `json:"power,omitempty"`
	Weight   string `json:"weight,omitempty"`
	Warranty string `json:"warranty,omitempty"`
}

// Product описывает товар каталога. ID — slug, сгенерированный при создании
// из названия, и больше никогда не меняется. Базовые поля (Name, Description,
// VideoTitle) на украинском.
type Product struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"nameEn,omitempty"`
	NameRu string `json:"nameRu,omitempty"`
	NamePl string `json:"namePl,omitempty"`
	NameDe string `json:"nameDe,omitempty"`

	Price    decimal.Decimal  `json:"price"`
	OldPrice *decimal.Decimal `json:"oldPrice,omitempty"`

	Description   string `json:"description"`
	DescriptionEn string `json:"descriptionEn,omitempty"`
	DescriptionRu string `json:"descriptionRu,omitempty"`
	DescriptionPl string `json:"descriptionPl,omitempty"`
	DescriptionDe string `json:"descriptionDe,omitempty"`

	Images         []string       `json:"images"`
	Specifications Specifications `json:"specifications"`
	InStock        bool           `json:"inStock"`
	Featured       bool           `json:"featured"`

	VideoURL     string `json:"videoUrl,omitempty"`
	VideoTitle   string `json:"videoTitle,omitempty"`
	VideoTitleEn string `json:"videoTitleEn,omitempty"`
	VideoTitleRu string `json:"videoTitleRu,omitempty"`
	VideoTitlePl string `json:"videoTitlePl,omitempty"`
	VideoTitleDe string `json:"videoTitleDe,omitempty"`
}

// ProductView — проекция товара для публичного каталога на одном языке.
type ProductView struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	OldPrice       *decimal.Decimal `json:"oldPrice,omitempty"`
	Images         []string         `json:"images"`
	Specifications Specifications   `json:"specifications"`
	InStock        bool             `json:"inStock"`
	Featured       bool             `json:"featured"`
	VideoURL       string           `json:"videoUrl,omitempty"`
	VideoTitle     string           `json:"videoTitle,omitempty"`
	Locale         string           `json:"locale"`
}

// Localize возвращает проекцию товара для языка locale.
// Если перевода нет, используется базовое значение.
func (p *Product) Localize(locale string) ProductView {
	pick := func(base string, variants map[string]string) string {
		if v := variants[locale]; v != "" {
			return v
		}
		return base
	}

	images := make([]string, len(p.Images))
	copy(images, p.Images)

	return ProductView{
		ID:   p.ID,
		Name: pick(p.Name, map[string]string{"en": p.NameEn, "ru": p.NameRu, "pl": p.NamePl, "de": p.NameDe}),
		Description: pick(p.Description, map[string]string{
			"en": p.DescriptionEn, "ru": p.DescriptionRu, "pl": p.DescriptionPl, "de": p.DescriptionDe,
		}),
		Price:          p.Price,
		OldPrice:       p.OldPrice,
		Images:         images,
		Specifications: p.Specifications,
		InStock:        p.InStock,
		Featured:       p.Featured,
		VideoURL:       p.VideoURL,
		VideoTitle: pick(p.VideoTitle, map[string]string{
			"en": p.VideoTitleEn, "ru": p.VideoTitleRu, "pl": p.VideoTitlePl, "de": p.VideoTitleDe,
		}),
		Locale: locale,
	}
}
