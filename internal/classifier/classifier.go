// Package classifier assigns reply-urgency and monetization labels to
// inbound message text using ordered keyword tables. Matching is plain
// case-sensitive substring search; there is no language model involved.
package classifier

import (
	"strings"

	"line-crm/internal/storage"
)

type tier struct {
	level    storage.Monetization
	keywords []string
}

// monetizationTiers is scanned top to bottom and each keyword set left to
// right; the first hit wins. Tier order is part of the contract: a message
// containing both a high and a low keyword classifies as high.
var monetizationTiers = []tier{
	{storage.MonetizationHigh, []string{"見積", "予算", "料金", "価格", "費用", "依頼", "発注", "契約", "購入"}},
	{storage.MonetizationMedium, []string{"興味", "詳しく", "教えて", "知りたい", "相談", "検討"}},
	{storage.MonetizationLow, []string{"ありがとう", "よろしく", "わかりました", "OK"}},
}

// replyKeywords flags interrogative or request phrasing that still needs an
// operator response.
var replyKeywords = []string{"?", "？", "どう", "いつ", "どこ", "なに", "教えて", "知りたい", "できます", "お願い"}

// Monetization estimates the sales potential of a text message.
// Text that matches no tier at all comes back as 要確認 (needs review).
func Monetization(text string) storage.Monetization {
	for _, t := range monetizationTiers {
		for _, kw := range t.keywords {
			if strings.Contains(text, kw) {
				return t.level
			}
		}
	}
	return storage.MonetizationReview
}

// ReplyUrgency reports whether a text message still needs a reply.
func ReplyUrgency(text string) storage.ReplyStatus {
	for _, kw := range replyKeywords {
		if strings.Contains(text, kw) {
			return storage.ReplyNeeded
		}
	}
	return storage.ReplyDone
}
