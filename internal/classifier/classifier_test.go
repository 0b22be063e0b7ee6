package classifier

import (
	"testing"

	"line-crm/internal/storage"
)

func TestMonetization(t *testing.T) {
	cases := []struct {
		text string
		want storage.Monetization
	}{
		{"見積をお願いします", storage.MonetizationHigh},
		{"料金はいくらですか", storage.MonetizationHigh},
		{"もっと詳しく教えてください", storage.MonetizationMedium},
		{"ありがとうございました", storage.MonetizationLow},
		{"OKです", storage.MonetizationLow},
		{"こんにちは", storage.MonetizationReview},
		{"", storage.MonetizationReview},
	}
	for _, c := range cases {
		if got := Monetization(c.text); got != c.want {
			t.Errorf("Monetization(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestMonetization_TierPrecedence(t *testing.T) {
	// contains a high keyword (見積) and a low keyword (ありがとう);
	// the high tier must win regardless of keyword position
	text := "ありがとうございます。見積もお願いできますか"
	if got := Monetization(text); got != storage.MonetizationHigh {
		t.Fatalf("Monetization(%q) = %q, want %q", text, got, storage.MonetizationHigh)
	}
}

func TestMonetization_Deterministic(t *testing.T) {
	text := "検討しています。費用と相談したいです"
	first := Monetization(text)
	for i := 0; i < 100; i++ {
		if got := Monetization(text); got != first {
			t.Fatalf("run %d: got %q, want %q", i, got, first)
		}
	}
	if first != storage.MonetizationHigh {
		t.Fatalf("got %q, want %q (費用 is a high keyword)", first, storage.MonetizationHigh)
	}
}

func TestReplyUrgency(t *testing.T) {
	cases := []struct {
		text string
		want storage.ReplyStatus
	}{
		{"料金はいくらですか？", storage.ReplyNeeded},
		{"how much?", storage.ReplyNeeded},
		{"いつ届きますか", storage.ReplyNeeded},
		{"納期を教えてください", storage.ReplyNeeded},
		{"よろしくお願いします", storage.ReplyNeeded}, // お願い is a request marker
		{"ありがとうございました", storage.ReplyDone},
		{"わかりました", storage.ReplyDone},
		{"", storage.ReplyDone},
	}
	for _, c := range cases {
		if got := ReplyUrgency(c.text); got != c.want {
			t.Errorf("ReplyUrgency(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}
