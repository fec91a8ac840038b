package usecase

import (
	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/shopspring/decimal"
)

// ORDER USECASE

// CustomerInput — контактные данные покупателя из формы оформления.
type CustomerInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Surname string `json:"surname" validate:"required,max=100"`
	Email   string `json:"email" validate:"omitempty,email,max=254"`
	Phone   string `json:"phone" validate:"required,max=32"`
}

type DeliveryInput struct {
	City    string `json:"city" validate:"required,max=100"`
	Address string `json:"address" validate:"required,max=300"`
}

// OrderItemInput — позиция корзины на момент оформления.
type OrderItemInput struct {
	ID       string          `json:"id" validate:"required"`
	Name     string          `json:"name" validate:"max=300"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity int             `json:"quantity" validate:"gte=1"`
	Image    string          `json:"image"`
}

// CreateOrderReq — запрос на оформление заказа.
// Total, присланный клиентом, не используется: сумма считается заново по позициям.
type CreateOrderReq struct {
	Customer      CustomerInput    `json:"customer"`
	Delivery      DeliveryInput    `json:"delivery"`
	PaymentMethod string           `json:"paymentMethod" validate:"required,oneof=cashOnDelivery card prepayment"`
	Notes         string           `json:"notes" validate:"max=2000"`
	Items         []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	Locale        string           `json:"locale" validate:"omitempty,locale"`
}

// OrderUpdate — полная замена изменяемой части заказа.
type OrderUpdate struct {
	Customer      CustomerInput    `json:"customer"`
	Delivery      DeliveryInput    `json:"delivery"`
	PaymentMethod string           `json:"paymentMethod" validate:"required,oneof=cashOnDelivery card prepayment"`
	Notes         string           `json:"notes" validate:"max=2000"`
	Items         []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Status        string           `json:"status" validate:"required,oneof=new processing shipped completed cancelled"`
}

// OrderPatch — частичное изменение заказа. nil означает «не менять».
type OrderPatch struct {
	Status        *domain.OrderStatus
	Customer      *domain.Customer
	Delivery      *domain.Delivery
	PaymentMethod *domain.PaymentMethod
	Notes         *string
	Items         []domain.CartItem
}

// PRODUCT USECASE

// ProductInput — данные формы создания товара.
type ProductInput struct {
	Name   string `json:"name" validate:"required,max=200"`
	NameEn string `json:"nameEn" validate:"max=200"`
	NameRu string `json:"nameRu" validate:"max=200"`
	NamePl string `json:"namePl" validate:"max=200"`
	NameDe string `json:"nameDe" validate:"max=200"`

	Price    decimal.Decimal  `json:"price" validate:"gte=0"`
	OldPrice *decimal.Decimal `json:"oldPrice,omitempty" validate:"omitempty,gte=0"`

	Description   string `json:"description"`
	DescriptionEn string `json:"descriptionEn"`
	DescriptionRu string `json:"descriptionRu"`
	DescriptionPl string `json:"descriptionPl"`
	DescriptionDe string `json:"descriptionDe"`

	Images         []string              `json:"images" validate:"dive,required"`
	Specifications domain.Specifications `json:"specifications"`
	InStock        bool                  `json:"inStock"`
	Featured       bool                  `json:"featured"`

	VideoURL     string `json:"videoUrl" validate:"omitempty,url"`
	VideoTitle   string `json:"videoTitle"`
	VideoTitleEn string `json:"videoTitleEn"`
	VideoTitleRu string `json:"videoTitleRu"`
	VideoTitlePl string `json:"videoTitlePl"`
	VideoTitleDe string `json:"videoTitleDe"`
}

// ProductPatch — частичное изменение товара. ID изменить нельзя.
type ProductPatch struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	NameEn *string `json:"nameEn,omitempty"`
	NameRu *string `json:"nameRu,omitempty"`
	NamePl *string `json:"namePl,omitempty"`
	NameDe *string `json:"nameDe,omitempty"`

	Price    *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	OldPrice *decimal.Decimal `json:"oldPrice,omitempty" validate:"omitempty,gte=0"`
	// ClearOldPrice убирает старую цену (снимает скидку).
	ClearOldPrice bool `json:"clearOldPrice,omitempty"`

	Description   *string `json:"description,omitempty"`
	DescriptionEn *string `json:"descriptionEn,omitempty"`
	DescriptionRu *string `json:"descriptionRu,omitempty"`
	DescriptionPl *string `json:"descriptionPl,omitempty"`
	DescriptionDe *string `json:"descriptionDe,omitempty"`

	Images         []string               `json:"images,omitempty" validate:"omitempty,dive,required"`
	Specifications *domain.Specifications `json:"specifications,omitempty"`
	InStock        *bool                  `json:"inStock,omitempty"`
	Featured       *bool                  `json:"featured,omitempty"`

	VideoURL     *string `json:"videoUrl,omitempty"`
	VideoTitle   *string `json:"videoTitle,omitempty"`
	VideoTitleEn *string `json:"videoTitleEn,omitempty"`
	VideoTitleRu *string `json:"videoTitleRu,omitempty"`
	VideoTitlePl *string `json:"videoTitlePl,omitempty"`
	VideoTitleDe *string `json:"videoTitleDe,omitempty"`
}

// CONTACT / AUTH

type ContactReq struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"max=32"`
	Subject string `json:"subject" validate:"required,max=100"`
	Message string `json:"message" validate:"required,max=5000"`
}

type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// INFRASTRUCTURE

// UploadImageReq — изображение, загруженное через multipart/form-data.
type UploadImageReq struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// UploadImageRes — результат загрузки: публичный URL и ключ объекта.
type UploadImageRes struct {
	URL string
	Key string
}

// MAPPERS

func NewUploadImageReq(data []byte, mimeType string, size int64, name string) *UploadImageReq {
	return &UploadImageReq{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImageRes(url, key string) *UploadImageRes {
	return &UploadImageRes{URL: url, Key: key}
}

// toCartItems превращает позиции запроса в замороженный снимок корзины.
func toCartItems(items []OrderItemInput) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	for i, it := range items {
		out[i] = domain.CartItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		}
	}

	return out
}

func toCustomer(c CustomerInput) domain.Customer {
	return domain.Customer{Name: c.Name, Surname: c.Surname, Email: c.Email, Phone: c.Phone}
}

func toDelivery(d DeliveryInput) domain.Delivery {
	return domain.Delivery{City: d.City, Address: d.Address}
}
