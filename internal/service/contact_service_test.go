package service

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/model"
	"Folioforge/internal/pkg/ratelimit"
	"Folioforge/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
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
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func seedPublishedPortfolio(t *testing.T, db *gorm.DB, userID, slug string) *model.Portfolio {
	t.Helper()
	portfolio := &model.Portfolio{
		UserID:     userID,
		Name:       "Test Portfolio " + slug,
		TemplateID: 1,
		Slug:       slug,
		Status:     model.PortfolioStatusPublished,
		Profile: model.Profile{
			Name:  "Jane Doe",
			Title: "Engineer",
			Bio:   "bio",
			Email: "jane@example.com",
		},
		Settings: model.PortfolioSettings{IsPublic: true},
	}
	if err := db.Omit("Template").Create(portfolio).Error; err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}
	return portfolio
}

func newTestContactService(t *testing.T, limit int) (ContactService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t)
	svc := NewContactService(
		repository.NewContactRepository(db),
		repository.NewPortfolioRepository(db),
		ratelimit.NewFixedWindowLimiter(time.Minute, limit),
	)
	return svc, db
}

func submitDTO(email string) *dto.ContactSubmitDTO {
	return &dto.ContactSubmitDTO{
		Name:    "Visitor",
		Email:   email,
		Subject: "Project inquiry",
		Message: "I would like to talk about a freelance project.",
	}
}

func TestSubmitContactRateLimited(t *testing.T) {
	svc, db := newTestContactService(t, 1)
	ctx := context.Background()
	seedPublishedPortfolio(t, db, "user_a", "jane-doe")

	if err := svc.SubmitContact(ctx, "jane-doe", "1.2.3.4", submitDTO("a@example.com")); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	err := svc.SubmitContact(ctx, "jane-doe", "1.2.3.4", submitDTO("b@example.com"))
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("second submit err = %v, want ErrRateLimited", err)
	}

	// 其他来源 IP 不受影响
	if err = svc.SubmitContact(ctx, "jane-doe", "5.6.7.8", submitDTO("b@example.com")); err != nil {
		t.Errorf("other ip submit: %v", err)
	}
}

func TestSubmitContactDuplicateEmail(t *testing.T) {
	svc, db := newTestContactService(t, 100)
	ctx := context.Background()
	seedPublishedPortfolio(t, db, "user_a", "jane-doe")

	if err := svc.SubmitContact(ctx, "jane-doe", "1.2.3.4", submitDTO("Same@Example.com")); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// 邮箱大小写、前后空格归一后判重
	err := svc.SubmitContact(ctx, "jane-doe", "1.2.3.4", submitDTO("  same@example.com "))
	if !errors.Is(err, ErrContactDuplicate) {
		t.Errorf("duplicate submit err = %v, want ErrContactDuplicate", err)
	}
}

func TestSubmitContactHiddenPortfolio(t *testing.T) {
	svc, db := newTestContactService(t, 100)
	ctx := context.Background()

	portfolio := seedPublishedPortfolio(t, db, "user_a", "jane-doe")
	err := db.Model(&model.Portfolio{}).Where("id = ?", portfolio.ID).
		Update("settings_is_public", false).Error
	if err != nil {
		t.Fatalf("hide portfolio: %v", err)
	}

	err = svc.SubmitContact(ctx, "jane-doe", "1.2.3.4", submitDTO("a@example.com"))
	if !errors.Is(err, ErrPortfolioNotFound) {
		t.Errorf("hidden submit err = %v, want ErrPortfolioNotFound", err)
	}

	err = svc.SubmitContact(ctx, "no-such-slug", "1.2.3.4", submitDTO("a@example.com"))
	if !errors.Is(err, ErrPortfolioNotFound) {
		t.Errorf("missing slug err = %v, want ErrPortfolioNotFound", err)
	}
}

func TestUpdateContactStatusOwnership(t *testing.T) {
	svc, db := newTestContactService(t, 100)
	ctx := context.Background()
	seedPublishedPortfolio(t, db, "user_a", "jane-doe")

	if err := svc.SubmitContact(ctx, "jane-doe", "1.2.3.4", submitDTO("a@example.com")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var contact model.Contact
	if err := db.First(&contact).Error; err != nil {
		t.Fatalf("load contact: %v", err)
	}

	// 非作品集主人不可流转状态
	err := svc.UpdateContactStatus(ctx, "user_b", contact.ID, model.ContactStatusRead)
	if !errors.Is(err, ErrContactNotFound) {
		t.Errorf("stranger update err = %v, want ErrContactNotFound", err)
	}

	if err = svc.UpdateContactStatus(ctx, "user_a", contact.ID, model.ContactStatusRead); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if err = db.First(&contact, contact.ID).Error; err != nil {
		t.Fatalf("reload contact: %v", err)
	}
	if contact.Status != model.ContactStatusRead {
		t.Errorf("status = %s, want read", contact.Status)
	}
}

func TestGetContactsUnreadCount(t *testing.T) {
	svc, db := newTestContactService(t, 100)
	ctx := context.Background()
	seedPublishedPortfolio(t, db, "user_a", "jane-doe")

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if err := svc.SubmitContact(ctx, "jane-doe", "1.2.3.4", submitDTO(email)); err != nil {
			t.Fatalf("submit %s: %v", email, err)
		}
	}
	var first model.Contact
	if err := db.First(&first).Error; err != nil {
		t.Fatalf("load contact: %v", err)
	}
	if err := svc.UpdateContactStatus(ctx, "user_a", first.ID, model.ContactStatusRead); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	list, err := svc.GetContacts(ctx, "user_a", &dto.ContactQuery{})
	if err != nil {
		t.Fatalf("GetContacts: %v", err)
	}
	if len(list.Contacts) != 3 {
		t.Errorf("contacts = %d, want 3", len(list.Contacts))
	}
	if list.Unread != 2 {
		t.Errorf("unread = %d, want 2", list.Unread)
	}

	// 别人的收件箱是空的
	other, err := svc.GetContacts(ctx, "user_b", &dto.ContactQuery{})
	if err != nil {
		t.Fatalf("GetContacts other: %v", err)
	}
	if len(other.Contacts) != 0 || other.Unread != 0 {
		t.Errorf("other inbox = %d contacts / %d unread, want empty", len(other.Contacts), other.Unread)
	}
}
