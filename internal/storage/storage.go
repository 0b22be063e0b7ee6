package storage

import "time"

// ReplyStatus marks whether an operator still owes the customer a response.
// Values are the literal strings stored in the CSV log.
type ReplyStatus string

const (
	ReplyNeeded ReplyStatus = "要返信"
	ReplyDone   ReplyStatus = "確認済み"
	ReplyNone   ReplyStatus = "-"
)

// Monetization is the heuristic sales-potential label of a message.
type Monetization string

const (
	MonetizationHigh   Monetization = "高"
	MonetizationMedium Monetization = "中"
	MonetizationLow    Monetization = "低"
	MonetizationReview Monetization = "要確認"
	MonetizationNone   Monetization = "-"
)

// Notes attached by the system on follow/unfollow events.
const (
	NoteNewCustomer  = "新規顧客"
	NoteLostCustomer = "離脱顧客"
)

// Record is a single customer-interaction row. One record is appended per
// inbound webhook event; rows are never updated or removed.
// Order in the store is append-arrival order, not platform send order.
type Record struct {
	Timestamp    time.Time
	UserID       string
	UserName     string
	EventKind    string
	Content      string
	ReplyStatus  ReplyStatus
	Monetization Monetization
	Note         string
}

// Recorder abstracts persistence of interaction records.
// Implementations can be file-based, database, etc.
// Append must atomically persist one record; LoadAll must return records
// in append order. Implementations must be safe for concurrent use.
type Recorder interface {
	Append(record Record) error
	LoadAll() ([]Record, error)
}
