package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/locale"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

// ProductUseCase реализует управление каталогом товаров.
type ProductUseCase struct {
	products    ProductRepository
	imagesInfra ImagesInfra
	validator   *Validator
	logger      logger.Logger
}

// NewProductUC создаёт usecase товаров. imagesInfra может быть nil, если объектное хранилище не настроено.
func NewProductUC(
	products ProductRepository,
	imagesInfra ImagesInfra,
	validator *Validator,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		products:    products,
		imagesInfra: imagesInfra,
		validator:   validator,
		logger:      logger,
	}
}

// Create добавляет товар. ID — slug названия, при совпадении добавляется суффикс -1, -2, ...
func (p *ProductUseCase) Create(ctx context.Context, req *ProductInput) (*domain.Product, error) {
	const op = "ProductUseCase.Create"

	if err := p.validator.Struct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	base := Slugify(req.Name)
	product := newProduct(req)

	_, err := p.products.Mutate(ctx, func(list *[]domain.Product) error {
		product.ID = uniqueSlug(base, func(id string) bool {
			return slices.ContainsFunc(*list, func(pr domain.Product) bool { return pr.ID == id })
		})

		*list = append(*list, product)
		return nil
	})
	if err != nil {
		p.logger.Errorf(err, "%s: failed to save product %q", op, req.Name)
		return nil, e.Wrap(op, err)
	}

	p.logger.Infof("product %s created", product.ID)
	return &product, nil
}

// Update сливает изменения с существующим товаром. ID не меняется.
func (p *ProductUseCase) Update(ctx context.Context, id string, patch *ProductPatch) (*domain.Product, error) {
	const op = "ProductUseCase.Update"

	if err := p.validator.Struct(patch); err != nil {
		return nil, e.Wrap(op, err)
	}

	var updated domain.Product
	_, err := p.products.Mutate(ctx, func(list *[]domain.Product) error {
		idx := slices.IndexFunc(*list, func(pr domain.Product) bool { return pr.ID == id })
		if idx < 0 {
			return fmt.Errorf("product %q: %w", id, e.ErrNotFound)
		}

		mergeProduct(&(*list)[idx], patch)
		updated = (*list)[idx]
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.logger.Infof("product %s updated", id)
	return &updated, nil
}

// Delete удаляет товар и в фоне убирает его изображения из объектного хранилища.
func (p *ProductUseCase) Delete(ctx context.Context, id string) error {
	const op = "ProductUseCase.Delete"

	var removed domain.Product
	_, err := p.products.Mutate(ctx, func(list *[]domain.Product) error {
		idx := slices.IndexFunc(*list, func(pr domain.Product) bool { return pr.ID == id })
		if idx < 0 {
			return fmt.Errorf("product %q: %w", id, e.ErrNotFound)
		}

		removed = (*list)[idx]
		*list = slices.Delete(*list, idx, idx+1)
		return nil
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	if p.imagesInfra != nil && len(removed.Images) > 0 {
		p.imagesInfra.CleanupImages(removed.Images)
	}

	p.logger.Infof("product %s deleted", id)
	return nil
}

func (p *ProductUseCase) List(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.List"

	products, err := p.products.Get(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

func (p *ProductUseCase) Get(ctx context.Context, id string) (*domain.Product, error) {
	const op = "ProductUseCase.Get"

	products, err := p.products.Get(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	idx := slices.IndexFunc(products, func(pr domain.Product) bool { return pr.ID == id })
	if idx < 0 {
		return nil, e.Wrap(op, fmt.Errorf("product %q: %w", id, e.ErrNotFound))
	}

	return &products[idx], nil
}

// Catalog возвращает публичную проекцию каталога на языке code.
func (p *ProductUseCase) Catalog(ctx context.Context, code string, featuredOnly bool) ([]domain.ProductView, error) {
	const op = "ProductUseCase.Catalog"

	if !locale.IsSupported(code) {
		code = locale.Default
	}

	products, err := p.products.Get(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	views := make([]domain.ProductView, 0, len(products))
	for i := range products {
		if featuredOnly && !products[i].Featured {
			continue
		}
		views = append(views, products[i].Localize(code))
	}

	return views, nil
}

// newProduct строит товар из формы. Польские и немецкие поля без перевода берут базовое значение.
func newProduct(req *ProductInput) domain.Product {
	orBase := func(v, base string) string {
		if v == "" {
			return base
		}
		return v
	}

	images := slices.Clone(req.Images)
	if images == nil {
		images = []string{}
	}

	return domain.Product{
		Name:           req.Name,
		NameEn:         req.NameEn,
		NameRu:         req.NameRu,
		NamePl:         orBase(req.NamePl, req.Name),
		NameDe:         orBase(req.NameDe, req.Name),
		Price:          req.Price,
		OldPrice:       req.OldPrice,
		Description:    req.Description,
		DescriptionEn:  req.DescriptionEn,
		DescriptionRu:  req.DescriptionRu,
		DescriptionPl:  orBase(req.DescriptionPl, req.Description),
		DescriptionDe:  orBase(req.DescriptionDe, req.Description),
		Images:         images,
		Specifications: req.Specifications,
		InStock:        req.InStock,
		Featured:       req.Featured,
		VideoURL:       req.VideoURL,
		VideoTitle:     req.VideoTitle,
		VideoTitleEn:   req.VideoTitleEn,
		VideoTitleRu:   req.VideoTitleRu,
		VideoTitlePl:   req.VideoTitlePl,
		VideoTitleDe:   req.VideoTitleDe,
	}
}

func mergeProduct(pr *domain.Product, patch *ProductPatch) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&pr.Name, patch.Name)
	setString(&pr.NameEn, patch.NameEn)
	setString(&pr.NameRu, patch.NameRu)
	setString(&pr.NamePl, patch.NamePl)
	setString(&pr.NameDe, patch.NameDe)

	if patch.Price != nil {
		pr.Price = *patch.Price
	}
	if patch.OldPrice != nil {
		oldPrice := *patch.OldPrice
		pr.OldPrice = &oldPrice
	}
	if patch.ClearOldPrice {
		pr.OldPrice = nil
	}

	setString(&pr.Description, patch.Description)
	setString(&pr.DescriptionEn, patch.DescriptionEn)
	setString(&pr.DescriptionRu, patch.DescriptionRu)
	setString(&pr.DescriptionPl, patch.DescriptionPl)
	setString(&pr.DescriptionDe, patch.DescriptionDe)

	if patch.Images != nil {
		pr.Images = slices.Clone(patch.Images)
	}
	if patch.Specifications != nil {
		pr.Specifications = *patch.Specifications
	}
	if patch.InStock != nil {
		pr.InStock = *patch.InStock
	}
	if patch.Featured != nil {
		pr.Featured = *patch.Featured
	}

	setString(&pr.VideoURL, patch.VideoURL)
	setString(&pr.VideoTitle, patch.VideoTitle)
	setString(&pr.VideoTitleEn, patch.VideoTitleEn)
	setString(&pr.VideoTitleRu, patch.VideoTitleRu)
	setString(&pr.VideoTitlePl, patch.VideoTitlePl)
	setString(&pr.VideoTitleDe, patch.VideoTitleDe)
}
