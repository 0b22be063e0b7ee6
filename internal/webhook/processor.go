package webhook

import (
	"context"
	"log"

	"line-crm/internal/autoreply"
	"line-crm/internal/classifier"
	"line-crm/internal/storage"
)

// MessagingAPI is the slice of the LINE client the processor needs.
type MessagingAPI interface {
	Profile(ctx context.Context, userID string) string
	PushText(ctx context.Context, to, text string) error
}

// Processor runs the per-event pipeline: resolve profile, classify, send
// optional replies, append the record. One call per event; failures are
// logged and never propagate to sibling events or the HTTP response path.
type Processor struct {
	api       MessagingAPI
	recorder  storage.Recorder
	welcome   string
	autoReply bool
}

func NewProcessor(api MessagingAPI, recorder storage.Recorder, welcome string, autoReply bool) *Processor {
	return &Processor{
		api:       api,
		recorder:  recorder,
		welcome:   welcome,
		autoReply: autoReply,
	}
}

func (p *Processor) Process(ctx context.Context, ev Event) {
	switch ev.Kind {
	case KindMessage:
		p.processMessage(ctx, ev)
	case KindFollow:
		p.processFollow(ctx, ev)
	case KindUnfollow:
		p.processUnfollow(ev)
	default:
		log.Printf("skipping event of unknown kind %q", ev.Kind)
	}
}

func (p *Processor) processMessage(ctx context.Context, ev Event) {
	userName := p.api.Profile(ctx, ev.UserID)
	content := messageContent(ev.Message)

	replyStatus := storage.ReplyDone
	monetization := storage.MonetizationNone
	if ev.Message.Type == "text" {
		replyStatus = classifier.ReplyUrgency(content)
		monetization = classifier.Monetization(content)
		if p.autoReply {
			if reply, ok := autoreply.Lookup(content); ok {
				if err := p.api.PushText(ctx, ev.UserID, reply); err != nil {
					log.Printf("auto reply to %s failed: %v", ev.UserID, err)
				}
			}
		}
	}

	p.append(storage.Record{
		Timestamp:    ev.Timestamp,
		UserID:       ev.UserID,
		UserName:     userName,
		EventKind:    ev.Message.Type,
		Content:      content,
		ReplyStatus:  replyStatus,
		Monetization: monetization,
	})
	log.Printf("recorded message from %s (%s): %q", userName, ev.UserID, content)
}

func (p *Processor) processFollow(ctx context.Context, ev Event) {
	userName := p.api.Profile(ctx, ev.UserID)

	p.append(storage.Record{
		Timestamp:    ev.Timestamp,
		UserID:       ev.UserID,
		UserName:     userName,
		EventKind:    "follow",
		Content:      "[新規フォロー]",
		ReplyStatus:  storage.ReplyNeeded,
		Monetization: storage.MonetizationHigh,
		Note:         storage.NoteNewCustomer,
	})
	log.Printf("new follower: %s (%s)", userName, ev.UserID)

	if p.welcome != "" {
		if err := p.api.PushText(ctx, ev.UserID, p.welcome); err != nil {
			log.Printf("welcome message to %s failed: %v", ev.UserID, err)
		}
	}
}

// processUnfollow records the lost customer. No profile lookup (the user may
// already be unreachable) and no outbound message.
func (p *Processor) processUnfollow(ev Event) {
	p.append(storage.Record{
		Timestamp:    ev.Timestamp,
		UserID:       ev.UserID,
		UserName:     "Unknown",
		EventKind:    "unfollow",
		Content:      "[ブロック/削除]",
		ReplyStatus:  storage.ReplyNone,
		Monetization: storage.MonetizationNone,
		Note:         storage.NoteLostCustomer,
	})
	log.Printf("unfollowed: %s", ev.UserID)
}

func (p *Processor) append(rec storage.Record) {
	if err := p.recorder.Append(rec); err != nil {
		log.Printf("append record for %s failed: %v", rec.UserID, err)
	}
}

func messageContent(m *MessageContent) string {
	switch m.Type {
	case "text":
		return m.Text
	case "image":
		return "[画像]"
	case "video":
		return "[動画]"
	case "audio":
		return "[音声]"
	case "file":
		return "[ファイル]"
	case "location":
		return "[位置情報]"
	case "sticker":
		return "[スタンプ]"
	default:
		return "[" + m.Type + "]"
	}
}
