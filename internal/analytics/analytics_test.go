package analytics

import (
	"strings"
	"testing"
	"time"

	"line-crm/internal/storage"
)

func sampleRecords(now time.Time) []storage.Record {
	return []storage.Record{
		{
			Timestamp: now.Add(-time.Hour), UserID: "U1", UserName: "田中", EventKind: "text",
			Content: "見積をお願いします？", ReplyStatus: storage.ReplyNeeded, Monetization: storage.MonetizationHigh,
		},
		{
			Timestamp: now.Add(-2 * time.Hour), UserID: "U1", UserName: "田中", EventKind: "text",
			Content: "ありがとう", ReplyStatus: storage.ReplyDone, Monetization: storage.MonetizationLow,
		},
		{
			Timestamp: now.Add(-40 * 24 * time.Hour), UserID: "U2", UserName: "鈴木", EventKind: "text",
			Content: "相談したい", ReplyStatus: storage.ReplyDone, Monetization: storage.MonetizationMedium,
		},
		{
			Timestamp: now.Add(-time.Minute), UserID: "U3", UserName: "佐藤", EventKind: "follow",
			Content: "[新規フォロー]", ReplyStatus: storage.ReplyNeeded, Monetization: storage.MonetizationHigh,
			Note: storage.NoteNewCustomer,
		},
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.Local)
	s := Summarize(sampleRecords(now), now)

	if s.TotalMessages != 4 {
		t.Fatalf("TotalMessages = %d, want 4", s.TotalMessages)
	}
	if len(s.NeedsReply) != 2 {
		t.Fatalf("NeedsReply = %d, want 2", len(s.NeedsReply))
	}
	if len(s.HighPriority) != 2 || len(s.MediumPriority) != 1 {
		t.Fatalf("priority buckets wrong: high=%d medium=%d", len(s.HighPriority), len(s.MediumPriority))
	}
	if s.UniqueUsers != 3 {
		t.Fatalf("UniqueUsers = %d, want 3", s.UniqueUsers)
	}
	if s.NewFollowers != 1 {
		t.Fatalf("NewFollowers = %d, want 1", s.NewFollowers)
	}
	if s.InactiveUsers != 1 {
		t.Fatalf("InactiveUsers = %d, want 1 (鈴木 silent for 40 days)", s.InactiveUsers)
	}
	if s.MonetizationCounts[storage.MonetizationHigh] != 2 {
		t.Fatalf("high count = %d, want 2", s.MonetizationCounts[storage.MonetizationHigh])
	}
	// most active user first
	if len(s.UserStats) == 0 || s.UserStats[0].Name != "田中" || s.UserStats[0].Count != 2 {
		t.Fatalf("unexpected user stats: %+v", s.UserStats)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, time.Now())
	if s.TotalMessages != 0 || s.UniqueUsers != 0 || len(s.NeedsReply) != 0 {
		t.Fatalf("empty summary not empty: %+v", s)
	}
	if len(Recommendations(s)) != 0 {
		t.Fatalf("no recommendations expected for empty summary")
	}
}

func TestRecommendations(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.Local)
	recs := Recommendations(Summarize(sampleRecords(now), now))
	if len(recs) != 4 {
		t.Fatalf("want 4 recommendations, got %d: %v", len(recs), recs)
	}
	if !strings.Contains(recs[0], "返信漏れ") {
		t.Fatalf("first recommendation must be the reply backlog, got %q", recs[0])
	}
}

func TestRenderReport(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.Local)
	out := RenderReport(Summarize(sampleRecords(now), now))

	for _, section := range []string{"=== 返信漏れ検知 ===", "=== マネタイズ機会分析 ===", "=== 顧客別サマリー ===", "=== おすすめアクション ==="} {
		if !strings.Contains(out, section) {
			t.Errorf("report missing section %q", section)
		}
	}
	if !strings.Contains(out, "高優先度: 2件") {
		t.Errorf("report missing high-priority count:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("あ", 60)
	if got := truncate(long, 50); len([]rune(got)) != 50 {
		t.Fatalf("truncate kept %d runes, want 50", len([]rune(got)))
	}
	if got := truncate("short", 50); got != "short" {
		t.Fatalf("truncate(%q) = %q", "short", got)
	}
}
