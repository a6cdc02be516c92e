package repository

import (
	"Folioforge/internal/model"
	"Folioforge/internal/pkg/util"
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// 内存库随连接销毁，限制为单连接
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&model.User{},
		&model.Template{},
		&model.Portfolio{},
		&model.SocialLink{},
		&model.Skill{},
		&model.Certification{},
		&model.Experience{},
		&model.Project{},
		&model.Contact{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedTemplate(t *testing.T, db *gorm.DB, title string) *model.Template {
	t.Helper()
	template := &model.Template{
		Title:          title,
		Description:    "A clean single page layout",
		Tags:           []string{"minimal"},
		Thumbnail:      "https://cdn.example.com/thumb.png",
		Font:           "Inter",
		PrimaryColor:   "#1a1a2e",
		SecondaryColor: "#e94560",
		Status:         model.TemplateStatusActive,
	}
	if err := db.Create(template).Error; err != nil {
		t.Fatalf("seed template: %v", err)
	}
	return template
}

func seedPortfolio(t *testing.T, db *gorm.DB, repo PortfolioRepo, userID, name string) *model.Portfolio {
	t.Helper()
	template := seedTemplate(t, db, "tpl-"+name+"-"+time.Now().Format("150405.000000000"))
	portfolio := &model.Portfolio{
		UserID:     userID,
		Name:       name,
		TemplateID: template.ID,
		Profile: model.Profile{
			Name:  name,
			Title: "Software Engineer",
			Bio:   "Builds things for the web",
			Email: "owner@example.com",
		},
		Settings: model.PortfolioSettings{IsPublic: true, AllowComments: true, ShowContactInfo: true},
	}
	if err := repo.CreatePortfolio(context.Background(), portfolio); err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}
	return portfolio
}

func TestCreatePortfolioDerivesSlug(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	portfolio := seedPortfolio(t, db, repo, "user_1", "John Q. Public!!")
	if portfolio.Slug != "john-q-public" {
		t.Errorf("slug = %q, want john-q-public", portfolio.Slug)
	}
	if portfolio.Status != model.PortfolioStatusDraft {
		t.Errorf("status = %q, want draft", portfolio.Status)
	}

	found, err := repo.FindBySlug(ctx, "john-q-public")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found.ID != portfolio.ID {
		t.Errorf("FindBySlug returned id %d, want %d", found.ID, portfolio.ID)
	}
}

func TestGenerateUniqueSlugSuffixes(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	seedPortfolio(t, db, repo, "user_1", "Jane Doe")
	second := seedPortfolio(t, db, repo, "user_1", "Jane Doe")
	if second.Slug != "jane-doe-1" {
		t.Errorf("second slug = %q, want jane-doe-1", second.Slug)
	}
	third := seedPortfolio(t, db, repo, "user_2", "Jane Doe")
	if third.Slug != "jane-doe-2" {
		t.Errorf("third slug = %q, want jane-doe-2", third.Slug)
	}

	slug, err := repo.GenerateUniqueSlug(ctx, "jane doe", second.ID)
	if err != nil {
		t.Fatalf("GenerateUniqueSlug: %v", err)
	}
	if slug != "jane-doe-1" {
		t.Errorf("slug with exclusion = %q, want jane-doe-1", slug)
	}
}

func TestGenerateUniqueSlugShortNameFallsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	slug, err := repo.GenerateUniqueSlug(ctx, "Jo", 0)
	if err != nil {
		t.Fatalf("GenerateUniqueSlug: %v", err)
	}
	if slug != "portfolio" {
		t.Errorf("slug = %q, want portfolio", slug)
	}

	first := seedPortfolio(t, db, repo, "user_1", "Jo")
	if first.Slug != "portfolio" {
		t.Errorf("first slug = %q, want portfolio", first.Slug)
	}
	second := seedPortfolio(t, db, repo, "user_1", "A1")
	if second.Slug != "portfolio-1" {
		t.Errorf("second slug = %q, want portfolio-1", second.Slug)
	}
}

func TestDuplicatePortfolioNormalizesLegacyFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	original := seedPortfolio(t, db, repo, "user_1", "Jane Doe")
	children := []interface{}{
		&model.Skill{PortfolioID: original.ID, Name: "Go", Category: "backend", Level: 4},
		&model.Certification{PortfolioID: original.ID, Name: "AWS SAA", Provider: "Amazon"},
		&model.Project{PortfolioID: original.ID, Title: "CLI tool", Description: "A tool"},
		&model.SocialLink{PortfolioID: original.ID, Platform: "github", URL: "https://github.com/janedoe"},
	}
	for _, child := range children {
		if err := db.Create(child).Error; err != nil {
			t.Fatalf("seed child: %v", err)
		}
	}

	copy, err := repo.DuplicatePortfolio(ctx, "user_1", original.ID)
	if err != nil {
		t.Fatalf("DuplicatePortfolio: %v", err)
	}
	if copy.ID == original.ID {
		t.Fatal("copy reused original id")
	}
	if copy.Slug != "jane-doe-copy" {
		t.Errorf("copy slug = %q, want jane-doe-copy", copy.Slug)
	}
	if copy.Name != "Jane Doe COPY" {
		t.Errorf("copy name = %q", copy.Name)
	}
	if copy.Status != model.PortfolioStatusDraft {
		t.Errorf("copy status = %q, want draft", copy.Status)
	}
	if copy.ViewCount != 0 {
		t.Errorf("copy view count = %d, want 0", copy.ViewCount)
	}
	if len(copy.Skills) != 1 || copy.Skills[0].Proficiency == nil || *copy.Skills[0].Proficiency != model.ProficiencyBeginner {
		t.Errorf("skill proficiency not backfilled: %+v", copy.Skills)
	}
	if len(copy.Certifications) != 1 || copy.Certifications[0].IssueDate == nil {
		t.Errorf("certification issue date not backfilled: %+v", copy.Certifications)
	}
	if len(copy.Projects) != 1 || copy.Projects[0].Thumbnail != model.DefaultProjectThumbnail {
		t.Errorf("project thumbnail not backfilled: %+v", copy.Projects)
	}

	// 再复制一次，slug 继续探测
	again, err := repo.DuplicatePortfolio(ctx, "user_1", original.ID)
	if err != nil {
		t.Fatalf("second duplicate: %v", err)
	}
	if again.Slug != "jane-doe-copy-1" {
		t.Errorf("second copy slug = %q, want jane-doe-copy-1", again.Slug)
	}
}

func TestDuplicatePortfolioOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepository(db)

	original := seedPortfolio(t, db, repo, "user_1", "Jane Doe")
	_, err := repo.DuplicatePortfolio(context.Background(), "user_2", original.ID)
	if err != gorm.ErrRecordNotFound {
		t.Errorf("duplicate by non owner: err = %v, want record not found", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	portfolio := seedPortfolio(t, db, repo, "user_1", "Jane Doe")

	if err := repo.UpdateStatus(ctx, "user_1", portfolio.ID, model.PortfolioStatusPublished); err != nil {
		t.Fatalf("publish: %v", err)
	}
	got, err := repo.GetPortfolio(ctx, "user_1", portfolio.ID)
	if err != nil {
		t.Fatalf("GetPortfolio: %v", err)
	}
	if got.Status != model.PortfolioStatusPublished {
		t.Errorf("status = %q, want published", got.Status)
	}

	// 重复归档应当是幂等的
	if err = repo.UpdateStatus(ctx, "user_1", portfolio.ID, model.PortfolioStatusArchived); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if err = repo.UpdateStatus(ctx, "user_1", portfolio.ID, model.PortfolioStatusArchived); err != nil {
		t.Fatalf("archive again: %v", err)
	}

	if err = repo.UpdateStatus(ctx, "user_2", portfolio.ID, model.PortfolioStatusPublished); err != gorm.ErrRecordNotFound {
		t.Errorf("status update by non owner: err = %v, want record not found", err)
	}
	if err = repo.UpdateStatus(ctx, "user_1", 99999, model.PortfolioStatusPublished); err != gorm.ErrRecordNotFound {
		t.Errorf("status update on missing id: err = %v, want record not found", err)
	}
}

func TestDeletePortfolioRemovesChildren(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	portfolio := seedPortfolio(t, db, repo, "user_1", "Jane Doe")
	if err := db.Create(&model.Skill{PortfolioID: portfolio.ID, Name: "Go", Category: "backend", Level: 3}).Error; err != nil {
		t.Fatalf("seed skill: %v", err)
	}

	if err := repo.DeletePortfolio(ctx, "user_2", portfolio.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("delete by non owner: err = %v, want record not found", err)
	}
	if err := repo.DeletePortfolio(ctx, "user_1", portfolio.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var skills int64
	if err := db.Model(&model.Skill{}).Where("portfolio_id = ?", portfolio.ID).Count(&skills).Error; err != nil {
		t.Fatalf("count skills: %v", err)
	}
	if skills != 0 {
		t.Errorf("skills left after delete = %d", skills)
	}
}

func TestFindByUserIDFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	first := seedPortfolio(t, db, repo, "user_1", "Jane Doe")
	seedPortfolio(t, db, repo, "user_1", "Designer Site")
	seedPortfolio(t, db, repo, "user_2", "Other User")

	if err := repo.UpdateStatus(ctx, "user_1", first.ID, model.PortfolioStatusPublished); err != nil {
		t.Fatalf("publish: %v", err)
	}

	page, err := repo.FindByUserID(ctx, "user_1", PortfolioFilters{})
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("total = %d, want 2", page.Total)
	}

	page, err = repo.FindByUserID(ctx, "user_1", PortfolioFilters{Status: model.PortfolioStatusPublished})
	if err != nil {
		t.Fatalf("FindByUserID status filter: %v", err)
	}
	if page.Total != 1 || page.Portfolios[0].ID != first.ID {
		t.Errorf("status filter returned %d rows", page.Total)
	}

	page, err = repo.FindByUserID(ctx, "user_1", PortfolioFilters{Search: "JANE"})
	if err != nil {
		t.Fatalf("FindByUserID search: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("search total = %d, want 1", page.Total)
	}

	// 关键词只出现在简介里也要能搜到
	if err := db.Model(&model.Portfolio{}).Where("id = ?", first.ID).
		Update("profile_bio", "Seasoned Kubernetes operator").Error; err != nil {
		t.Fatalf("update bio: %v", err)
	}
	page, err = repo.FindByUserID(ctx, "user_1", PortfolioFilters{Search: "kubernetes"})
	if err != nil {
		t.Fatalf("FindByUserID bio search: %v", err)
	}
	if page.Total != 1 || page.Portfolios[0].ID != first.ID {
		t.Errorf("bio search total = %d, want 1", page.Total)
	}
}

func TestFindPublicOnlyPublishedAndPublic(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	visible := seedPortfolio(t, db, repo, "user_1", "Visible One")
	hidden := seedPortfolio(t, db, repo, "user_1", "Hidden One")
	draft := seedPortfolio(t, db, repo, "user_1", "Draft One")
	_ = draft

	if err := repo.UpdateStatus(ctx, "user_1", visible.ID, model.PortfolioStatusPublished); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := repo.UpdateStatus(ctx, "user_1", hidden.ID, model.PortfolioStatusPublished); err != nil {
		t.Fatalf("publish hidden: %v", err)
	}
	if err := db.Model(&model.Portfolio{}).Where("id = ?", hidden.ID).
		Update("settings_is_public", false).Error; err != nil {
		t.Fatalf("hide: %v", err)
	}

	page, err := repo.FindPublic(ctx, 1, 10)
	if err != nil {
		t.Fatalf("FindPublic: %v", err)
	}
	if page.Total != 1 || page.Portfolios[0].ID != visible.ID {
		t.Errorf("FindPublic total = %d", page.Total)
	}
}

func TestCountPublishedAndSetViewCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	portfolio := seedPortfolio(t, db, repo, "user_1", "Jane Doe")
	count, err := repo.CountPublished(ctx, "user_1")
	if err != nil || count != 0 {
		t.Fatalf("CountPublished = %d, %v", count, err)
	}
	if err = repo.UpdateStatus(ctx, "user_1", portfolio.ID, model.PortfolioStatusPublished); err != nil {
		t.Fatalf("publish: %v", err)
	}
	count, err = repo.CountPublished(ctx, "user_1")
	if err != nil || count != 1 {
		t.Fatalf("CountPublished after publish = %d, %v", count, err)
	}

	if err = repo.SetViewCount(ctx, portfolio.ID, 42); err != nil {
		t.Fatalf("SetViewCount: %v", err)
	}
	got, err := repo.GetPortfolio(ctx, "user_1", portfolio.ID)
	if err != nil {
		t.Fatalf("GetPortfolio: %v", err)
	}
	if got.ViewCount != 42 {
		t.Errorf("view count = %d, want 42", got.ViewCount)
	}
}

func TestUpdatePortfolioReplacesChildren(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepository(db)
	ctx := context.Background()

	portfolio := seedPortfolio(t, db, repo, "user_1", "Jane Doe")
	if err := db.Create(&model.Skill{PortfolioID: portfolio.ID, Name: "Go", Category: "backend", Level: 3}).Error; err != nil {
		t.Fatalf("seed skill: %v", err)
	}

	loaded, err := repo.GetPortfolio(ctx, "user_1", portfolio.ID)
	if err != nil {
		t.Fatalf("GetPortfolio: %v", err)
	}
	loaded.Profile.Title = "Staff Engineer"
	loaded.Skills = []model.Skill{
		{Name: "Rust", Category: "backend", Proficiency: util.PtrString(model.ProficiencyAdvanced), Level: 4},
		{Name: "SQL", Category: "data", Proficiency: util.PtrString(model.ProficiencyIntermediate), Level: 3},
	}
	if err = repo.UpdatePortfolio(ctx, loaded); err != nil {
		t.Fatalf("UpdatePortfolio: %v", err)
	}

	got, err := repo.GetPortfolio(ctx, "user_1", portfolio.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Profile.Title != "Staff Engineer" {
		t.Errorf("title = %q", got.Profile.Title)
	}
	if len(got.Skills) != 2 {
		t.Errorf("skills = %d, want 2", len(got.Skills))
	}
}
