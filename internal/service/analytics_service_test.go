package service

import (
	"Folioforge/internal/pkg/mongo"
	"testing"
	"time"
)

func view(at time.Time, referrer string) *mongo.PortfolioAnalytic {
	return &mongo.PortfolioAnalytic{PortfolioID: 1, ViewedAt: at, Referrer: referrer}
}

func TestBucketViewsMonthlySplitsAcrossMonths(t *testing.T) {
	views := []*mongo.PortfolioAnalytic{
		view(time.Date(2025, 1, 30, 10, 0, 0, 0, time.UTC), ""),
		view(time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC), ""),
		view(time.Date(2025, 2, 1, 0, 30, 0, 0, time.UTC), ""),
		view(time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC), ""),
		view(time.Date(2025, 2, 14, 13, 0, 0, 0, time.UTC), ""),
	}

	buckets := bucketViews(views, "monthly")
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	if buckets[0].Bucket != "2025-01" || buckets[0].Views != 2 {
		t.Errorf("first bucket = %+v", buckets[0])
	}
	if buckets[1].Bucket != "2025-02" || buckets[1].Views != 3 {
		t.Errorf("second bucket = %+v", buckets[1])
	}
}

func TestBucketViewsDaily(t *testing.T) {
	views := []*mongo.PortfolioAnalytic{
		view(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), ""),
		view(time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC), ""),
		view(time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC), ""),
	}

	buckets := bucketViews(views, "daily")
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	if buckets[0].Bucket != "2025-03-01" || buckets[0].Views != 2 {
		t.Errorf("first bucket = %+v", buckets[0])
	}
	if buckets[1].Bucket != "2025-03-02" || buckets[1].Views != 1 {
		t.Errorf("second bucket = %+v", buckets[1])
	}
}

func TestBucketViewsYearly(t *testing.T) {
	views := []*mongo.PortfolioAnalytic{
		view(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC), ""),
		view(time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC), ""),
		view(time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC), ""),
	}

	buckets := bucketViews(views, "yearly")
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	if buckets[0].Bucket != "2024" || buckets[0].Views != 1 {
		t.Errorf("first bucket = %+v", buckets[0])
	}
	if buckets[1].Bucket != "2025" || buckets[1].Views != 2 {
		t.Errorf("second bucket = %+v", buckets[1])
	}
}

func TestBucketViewsWeeklyStartsMonday(t *testing.T) {
	// 2025-06-01 是周日，应归入 05-26 那一周
	sunday := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	buckets := bucketViews([]*mongo.PortfolioAnalytic{view(sunday, ""), view(monday, "")}, "weekly")
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	if buckets[0].Bucket != "2025-05-26" {
		t.Errorf("sunday bucket = %q, want 2025-05-26", buckets[0].Bucket)
	}
	if buckets[1].Bucket != "2025-06-02" {
		t.Errorf("monday bucket = %q, want 2025-06-02", buckets[1].Bucket)
	}
}

func TestTopReferrers(t *testing.T) {
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	views := []*mongo.PortfolioAnalytic{
		view(at, "https://github.com"),
		view(at, "https://github.com"),
		view(at, "https://linkedin.com"),
		view(at, ""),
	}

	referrers := topReferrers(views, 5)
	if len(referrers) != 2 {
		t.Fatalf("referrers = %d, want 2", len(referrers))
	}
	if referrers[0].Referrer != "https://github.com" || referrers[0].Views != 2 {
		t.Errorf("first referrer = %+v", referrers[0])
	}

	limited := topReferrers(views, 1)
	if len(limited) != 1 {
		t.Errorf("limited referrers = %d, want 1", len(limited))
	}
}

func TestViewerHashStable(t *testing.T) {
	first := ViewerHash("1.2.3.4", "Mozilla/5.0")
	second := ViewerHash("1.2.3.4", "Mozilla/5.0")
	if first != second {
		t.Error("same ip+ua should hash identically")
	}
	if first == ViewerHash("1.2.3.5", "Mozilla/5.0") {
		t.Error("different ip should hash differently")
	}
	if len(first) != 32 {
		t.Errorf("hash length = %d, want 32", len(first))
	}
}

func TestRangeStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := rangeStart("7d", now); !got.Equal(now.AddDate(0, 0, -7)) {
		t.Errorf("7d = %v", got)
	}
	if got := rangeStart("all", now); !got.IsZero() {
		t.Errorf("all should be zero time, got %v", got)
	}
	if got := rangeStart("", now); !got.IsZero() {
		t.Errorf("empty range should be zero time, got %v", got)
	}
}
