// Package analytics aggregates statistics over the interaction log. All
// functions are pure over the record slice so they can back the stats page,
// the CLI report and the scheduled admin notification alike.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"line-crm/internal/storage"
)

// inactivityWindow is how long a customer can stay silent before a
// follow-up is suggested.
const inactivityWindow = 30 * 24 * time.Hour

// UserStat aggregates activity for one display name.
type UserStat struct {
	Name        string
	Count       int
	LastContact time.Time
}

// Summary holds everything the reporting surfaces need.
type Summary struct {
	TotalMessages      int
	UniqueUsers        int
	NewFollowers       int
	InactiveUsers      int
	NeedsReply         []storage.Record
	HighPriority       []storage.Record
	MediumPriority     []storage.Record
	MonetizationCounts map[storage.Monetization]int
	ReplyCounts        map[storage.ReplyStatus]int
	UserStats          []UserStat
}

// Summarize walks the records once and fills every aggregate. now anchors
// the inactivity window (injectable for tests).
func Summarize(records []storage.Record, now time.Time) *Summary {
	s := &Summary{
		TotalMessages:      len(records),
		MonetizationCounts: make(map[storage.Monetization]int),
		ReplyCounts:        make(map[storage.ReplyStatus]int),
	}

	byUser := make(map[string]*UserStat)
	for _, r := range records {
		s.MonetizationCounts[r.Monetization]++
		s.ReplyCounts[r.ReplyStatus]++

		if r.ReplyStatus == storage.ReplyNeeded {
			s.NeedsReply = append(s.NeedsReply, r)
		}
		switch r.Monetization {
		case storage.MonetizationHigh:
			s.HighPriority = append(s.HighPriority, r)
		case storage.MonetizationMedium:
			s.MediumPriority = append(s.MediumPriority, r)
		}
		if r.EventKind == "follow" {
			s.NewFollowers++
		}

		st, ok := byUser[r.UserName]
		if !ok {
			st = &UserStat{Name: r.UserName}
			byUser[r.UserName] = st
		}
		st.Count++
		if r.Timestamp.After(st.LastContact) {
			st.LastContact = r.Timestamp
		}
	}

	s.UniqueUsers = len(byUser)
	for _, st := range byUser {
		if now.Sub(st.LastContact) > inactivityWindow {
			s.InactiveUsers++
		}
		s.UserStats = append(s.UserStats, *st)
	}
	// most active first; name breaks ties to keep output stable
	sort.Slice(s.UserStats, func(i, j int) bool {
		if s.UserStats[i].Count != s.UserStats[j].Count {
			return s.UserStats[i].Count > s.UserStats[j].Count
		}
		return s.UserStats[i].Name < s.UserStats[j].Name
	})
	return s
}

// Recommendations turns a summary into the ordered action list shown at the
// end of the report.
func Recommendations(s *Summary) []string {
	var out []string
	if n := len(s.NeedsReply); n > 0 {
		out = append(out, fmt.Sprintf("【緊急】%d件の返信漏れがあります → 優先的に返信してください", n))
	}
	if n := len(s.HighPriority); n > 0 {
		out = append(out, fmt.Sprintf("【重要】%d件の高優先度マネタイズ機会があります → 見積もりや提案を送ることをおすすめします", n))
	}
	if s.InactiveUsers > 0 {
		out = append(out, fmt.Sprintf("【フォローアップ】%d名の顧客が30日以上連絡なし → フォローアップメッセージを送ることをおすすめします", s.InactiveUsers))
	}
	if s.NewFollowers > 0 {
		out = append(out, fmt.Sprintf("【ウェルカム】%d名の新規フォロワー → ウェルカムメッセージを送ることをおすすめします", s.NewFollowers))
	}
	return out
}

// RenderReport formats the plain-text report used by cmd/report and the
// scheduled admin notification.
func RenderReport(s *Summary) string {
	var b strings.Builder

	b.WriteString("=== 返信漏れ検知 ===\n")
	if len(s.NeedsReply) == 0 {
		b.WriteString("返信漏れはありません！\n")
	} else {
		fmt.Fprintf(&b, "返信が必要なメッセージ数: %d\n", len(s.NeedsReply))
		for _, r := range s.NeedsReply {
			fmt.Fprintf(&b, "- %s | %s | %s\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.UserName, truncate(r.Content, 50))
		}
	}

	b.WriteString("\n=== マネタイズ機会分析 ===\n")
	fmt.Fprintf(&b, "高優先度: %d件\n", len(s.HighPriority))
	fmt.Fprintf(&b, "中優先度: %d件\n", len(s.MediumPriority))
	for _, r := range s.HighPriority {
		fmt.Fprintf(&b, "- %s | %s | %s\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.UserName, truncate(r.Content, 50))
	}

	b.WriteString("\n=== 顧客別サマリー ===\n")
	for _, st := range s.UserStats {
		fmt.Fprintf(&b, "%s: %d件 (最終: %s)\n", st.Name, st.Count, st.LastContact.Format("2006-01-02 15:04:05"))
	}

	recs := Recommendations(s)
	if len(recs) > 0 {
		b.WriteString("\n=== おすすめアクション ===\n")
		for i, r := range recs {
			fmt.Fprintf(&b, "%d. %s\n", i+1, r)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
