package service

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

const featuredLimit = 3

var imageExt = regexp.MustCompile(`(?i)^\.(jpe?g|png|gif)$`)

type productService struct {
	repo   ports.ProductRepository
	images ports.ImageStore
	log    zerolog.Logger
	now    func() time.Time
}

// NewProductService returns a ProductService implementation.
func NewProductService(repo ports.ProductRepository, images ports.ImageStore, log zerolog.Logger) ports.ProductService {
	return &productService{repo: repo, images: images, log: log, now: time.Now}
}

func (s *productService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	images := []string{}
	if in.Image != nil {
		url, err := s.saveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		images = append(images, url)
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Product{
		ProductID:   uuid.NewString(),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Stock:       in.Stock,
		Category:    domain.Category(in.Category),
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.log.Info().Str("product_id", created.ProductID).Str("category", string(created.Category)).Msg("product created")
	return created, nil
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *productService) List(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *productService) Featured(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.Featured(ctx, featuredLimit)
}

func (s *productService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	changes := domain.ProductChanges{UpdatedAt: s.now().UTC()}
	if in.Name != "" {
		changes.Name = &in.Name
	}
	if in.Price != nil {
		changes.Price = in.Price
	}
	if in.Description != "" {
		changes.Description = &in.Description
	}
	if in.Stock != nil {
		changes.Stock = in.Stock
	}
	if in.Category != "" {
		category := domain.Category(in.Category)
		changes.Category = &category
	}
	if in.Image != nil {
		url, err := s.saveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		changes.Images = []string{url}
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("product_id", updated.ProductID).Msg("product updated")
	return updated, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("product deleted")
	return nil
}

func (s *productService) saveImage(ctx context.Context, img *ports.ImageUpload) (string, error) {
	if !imageExt.MatchString(filepath.Ext(img.Filename)) {
		return "", domain.NewValidationError("image", "Only image files are allowed!")
	}
	url, err := s.images.Save(ctx, img.Filename, img.Content)
	if err != nil {
		return "", fmt.Errorf("save product image: %w", err)
	}
	return url, nil
}
