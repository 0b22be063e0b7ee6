// Package autoreply maps inbound text to canned responses. Lookup only
// selects the response; sending it is the caller's responsibility.
package autoreply

import "strings"

type rule struct {
	keyword  string
	response string
}

// rules is scanned in declaration order; the first matching keyword wins.
var rules = []rule{
	{"料金", "料金についてのお問い合わせありがとうございます。担当者より折り返しご連絡いたします。"},
	{"見積", "お見積りのご依頼ありがとうございます。内容を確認のうえ、担当者よりご連絡いたします。"},
	{"営業時間", "営業時間は平日10:00〜18:00です。時間外のお問い合わせには翌営業日に対応いたします。"},
	{"アクセス", "アクセス方法はこちらをご覧ください: https://example.com/access"},
	{"キャンセル", "キャンセルをご希望の場合は、ご予約内容をお知らせください。担当者が確認いたします。"},
}

// Lookup returns the canned response for the first keyword found in text.
func Lookup(text string) (string, bool) {
	for _, r := range rules {
		if strings.Contains(text, r.keyword) {
			return r.response, true
		}
	}
	return "", false
}
