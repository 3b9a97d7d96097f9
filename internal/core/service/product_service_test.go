package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

func TestProductService_Create(t *testing.T) {
	repo := newStubProductRepo()
	images := &memoryImages{}
	svc := NewProductService(repo, images, zerolog.Nop())

	p, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name:        "Rose Serum",
		Price:       24.5,
		Description: "Hydrating serum",
		Stock:       10,
		Category:    "skincare",
		Image:       &ports.ImageUpload{Filename: "serum.PNG", Content: strings.NewReader("png-bytes")},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.ProductID == "" || p.ID == "" {
		t.Fatalf("expected ids, got %+v", p)
	}
	if len(p.Images) != 1 || !strings.HasSuffix(p.Images[0], "/uploads/serum.PNG") {
		t.Fatalf("unexpected images %v", p.Images)
	}
	if string(images.saved["serum.PNG"]) != "png-bytes" {
		t.Fatalf("image content not stored")
	}
}

func TestProductService_Create_WithoutImage(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), &memoryImages{}, zerolog.Nop())

	p, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name: "Lip Tint", Price: 9, Description: "Tint", Stock: 0, Category: "makeup",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Images == nil || len(p.Images) != 0 {
		t.Fatalf("expected empty image list, got %v", p.Images)
	}
}

func TestProductService_Create_RejectsNonImage(t *testing.T) {
	repo := newStubProductRepo()
	images := &memoryImages{}
	svc := NewProductService(repo, images, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateProductInput{
		Name: "Oil", Price: 5, Description: "d", Stock: 1, Category: "haircare",
		Image: &ports.ImageUpload{Filename: "payload.exe", Content: strings.NewReader("x")},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(images.saved) != 0 || len(repo.products) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestProductService_Create_Validation(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), &memoryImages{}, zerolog.Nop())

	cases := map[string]ports.CreateProductInput{
		"missing name":     {Price: 1, Description: "d", Category: "makeup"},
		"zero price":       {Name: "n", Description: "d", Category: "makeup"},
		"negative stock":   {Name: "n", Price: 1, Description: "d", Stock: -1, Category: "makeup"},
		"unknown category": {Name: "n", Price: 1, Description: "d", Category: "food"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestProductService_Update_TruthyMerge(t *testing.T) {
	repo := newStubProductRepo(&domain.Product{
		ID: "p1", Name: "Old", Price: 10, Description: "desc", Stock: 3,
		Category: domain.CategoryMakeup, Images: []string{"old.png"},
	})
	svc := NewProductService(repo, &memoryImages{}, zerolog.Nop())

	stock := 0
	got, err := svc.Update(context.Background(), "p1", ports.UpdateProductInput{Name: "New", Stock: &stock})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Name != "New" || got.Price != 10 || got.Description != "desc" || got.Stock != 0 {
		t.Fatalf("unexpected merge result %+v", got)
	}
	if len(got.Images) != 1 || got.Images[0] != "old.png" {
		t.Fatalf("images should be untouched, got %v", got.Images)
	}
	if ch := repo.changes[0]; ch.Images != nil || ch.Price != nil || ch.Category != nil {
		t.Fatalf("unexpected changes written %+v", ch)
	}
}

func TestProductService_Update_ReplacesImage(t *testing.T) {
	repo := newStubProductRepo(&domain.Product{ID: "p1", Name: "Old", Images: []string{"a.png", "b.png"}})
	svc := NewProductService(repo, &memoryImages{}, zerolog.Nop())

	got, err := svc.Update(context.Background(), "p1", ports.UpdateProductInput{
		Image: &ports.ImageUpload{Filename: "new.jpg", Content: strings.NewReader("jpg")},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(got.Images) != 1 || !strings.HasSuffix(got.Images[0], "new.jpg") {
		t.Fatalf("expected image list replaced, got %v", got.Images)
	}
}

func TestProductService_NotFound(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), &memoryImages{}, zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "missing", ports.UpdateProductInput{Name: "x"}); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_FeaturedLimit(t *testing.T) {
	repo := newStubProductRepo(
		&domain.Product{ID: "p1"}, &domain.Product{ID: "p2"},
		&domain.Product{ID: "p3"}, &domain.Product{ID: "p4"},
	)
	svc := NewProductService(repo, &memoryImages{}, zerolog.Nop())

	got, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("Featured returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 featured products, got %d", len(got))
	}
}
