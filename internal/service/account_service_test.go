package service

import (
	"Folioforge/internal/pkg/cache"
	"Folioforge/internal/pkg/identity"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

type fakeProvider struct {
	capabilities identity.Capabilities
	total        int64
	calls        int
	countCalls   int
}

func (f *fakeProvider) GetCapabilities(ctx context.Context, userID string) (*identity.Capabilities, error) {
	f.calls++
	capabilities := f.capabilities
	return &capabilities, nil
}

func (f *fakeProvider) CountUsers(ctx context.Context) (int64, error) {
	f.countCalls++
	return f.total, nil
}

func (f *fakeProvider) FindExternalIDByEmail(ctx context.Context, email string) (string, error) {
	return "", nil
}

func newTestAccountService(t *testing.T) (AccountService, *fakeProvider, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	provider := &fakeProvider{
		capabilities: identity.Capabilities{Role: "user", Plan: "premium"},
		total:        42,
	}
	svc := NewAccountService(provider, cache.New(rdb, 5*time.Minute), nil)
	return svc, provider, mr
}

func TestGetCapabilitiesCachesProvider(t *testing.T) {
	svc, provider, _ := newTestAccountService(t)
	ctx := context.Background()

	got, err := svc.GetCapabilities(ctx, "user_abc")
	if err != nil {
		t.Fatalf("GetCapabilities: %v", err)
	}
	if got.Role != "user" || got.Plan != "premium" {
		t.Errorf("capabilities = %+v", got)
	}

	// 第二次命中缓存，不再请求身份提供商
	if _, err = svc.GetCapabilities(ctx, "user_abc"); err != nil {
		t.Fatalf("second GetCapabilities: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
}

func TestInvalidateCapabilitiesForcesRefetch(t *testing.T) {
	svc, provider, _ := newTestAccountService(t)
	ctx := context.Background()

	if _, err := svc.GetCapabilities(ctx, "user_abc"); err != nil {
		t.Fatalf("GetCapabilities: %v", err)
	}

	provider.capabilities.Plan = "free"
	if err := svc.InvalidateCapabilities(ctx, "user_abc"); err != nil {
		t.Fatalf("InvalidateCapabilities: %v", err)
	}

	got, err := svc.GetCapabilities(ctx, "user_abc")
	if err != nil {
		t.Fatalf("GetCapabilities after invalidate: %v", err)
	}
	if got.Plan != "free" {
		t.Errorf("plan = %q, want free", got.Plan)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}
}

func TestGetCapabilitiesExpires(t *testing.T) {
	svc, provider, mr := newTestAccountService(t)
	ctx := context.Background()

	if _, err := svc.GetCapabilities(ctx, "user_abc"); err != nil {
		t.Fatalf("GetCapabilities: %v", err)
	}

	// TTL 过期后重新拉取
	mr.FastForward(6 * time.Minute)
	if _, err := svc.GetCapabilities(ctx, "user_abc"); err != nil {
		t.Fatalf("GetCapabilities after expiry: %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}
}

func TestGetStatsCachesCount(t *testing.T) {
	svc, provider, _ := newTestAccountService(t)
	ctx := context.Background()

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalUsers != 42 {
		t.Errorf("total users = %d, want 42", stats.TotalUsers)
	}

	if _, err = svc.GetStats(ctx); err != nil {
		t.Fatalf("second GetStats: %v", err)
	}
	if provider.countCalls != 1 {
		t.Errorf("count calls = %d, want 1", provider.countCalls)
	}
}
