package repository

import (
	"Folioforge/internal/model"
	"context"
	"testing"

	"gorm.io/gorm"
)

func TestDuplicateTemplateSuffixesTitle(t *testing.T) {
	db := newTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()

	original := seedTemplate(t, db, "Minimal")

	first, err := repo.DuplicateTemplate(ctx, original.ID)
	if err != nil {
		t.Fatalf("DuplicateTemplate: %v", err)
	}
	if first.Title != "Minimal (Copy)" {
		t.Errorf("first copy title = %q", first.Title)
	}
	if first.Status != model.TemplateStatusInactive {
		t.Errorf("first copy status = %q, want inactive", first.Status)
	}

	second, err := repo.DuplicateTemplate(ctx, original.ID)
	if err != nil {
		t.Fatalf("second DuplicateTemplate: %v", err)
	}
	if second.Title != "Minimal (Copy 2)" {
		t.Errorf("second copy title = %q", second.Title)
	}

	third, err := repo.DuplicateTemplate(ctx, original.ID)
	if err != nil {
		t.Fatalf("third DuplicateTemplate: %v", err)
	}
	if third.Title != "Minimal (Copy 3)" {
		t.Errorf("third copy title = %q", third.Title)
	}
}

func TestFindTemplatesFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()

	active := seedTemplate(t, db, "Minimal")
	inactive := seedTemplate(t, db, "Bold")
	if err := db.Model(&model.Template{}).Where("id = ?", inactive.ID).
		Updates(map[string]interface{}{"status": model.TemplateStatusInactive, "premium": true}).Error; err != nil {
		t.Fatalf("update template: %v", err)
	}

	page, err := repo.FindTemplates(ctx, TemplateFilters{Status: model.TemplateStatusActive})
	if err != nil {
		t.Fatalf("FindTemplates: %v", err)
	}
	if page.Total != 1 || page.Templates[0].ID != active.ID {
		t.Errorf("active filter total = %d", page.Total)
	}

	premium := true
	page, err = repo.FindTemplates(ctx, TemplateFilters{Premium: &premium})
	if err != nil {
		t.Fatalf("FindTemplates premium: %v", err)
	}
	if page.Total != 1 || page.Templates[0].ID != inactive.ID {
		t.Errorf("premium filter total = %d", page.Total)
	}

	page, err = repo.FindTemplates(ctx, TemplateFilters{Tag: "minimal"})
	if err != nil {
		t.Fatalf("FindTemplates tag: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("tag filter total = %d, want 2", page.Total)
	}

	page, err = repo.FindTemplates(ctx, TemplateFilters{Search: "bold"})
	if err != nil {
		t.Fatalf("FindTemplates search: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("search total = %d, want 1", page.Total)
	}
}

func TestDeleteTemplateAndRefCount(t *testing.T) {
	db := newTestDB(t)
	templateRepo := NewTemplateRepository(db)
	portfolioRepo := NewPortfolioRepository(db)
	ctx := context.Background()

	portfolio := seedPortfolio(t, db, portfolioRepo, "user_1", "Jane Doe")
	refs, err := templateRepo.CountPortfolioRefs(ctx, portfolio.TemplateID)
	if err != nil {
		t.Fatalf("CountPortfolioRefs: %v", err)
	}
	if refs != 1 {
		t.Errorf("refs = %d, want 1", refs)
	}

	if err = templateRepo.DeleteTemplate(ctx, 99999); err != gorm.ErrRecordNotFound {
		t.Errorf("delete missing template: err = %v, want record not found", err)
	}

	orphan := seedTemplate(t, db, "Unused")
	if err = templateRepo.DeleteTemplate(ctx, orphan.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err = templateRepo.GetTemplate(ctx, orphan.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("get deleted template: err = %v, want record not found", err)
	}
}
