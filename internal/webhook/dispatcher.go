package webhook

import (
	"context"
	"errors"
	"log"
)

// ErrSignature is returned when the caller-supplied signature does not match
// the request body. It is the only dispatch failure surfaced to the HTTP
// layer; everything past the signature check is acknowledged regardless of
// outcome, because the platform retries non-2xx deliveries aggressively.
var ErrSignature = errors.New("signature mismatch")

// Dispatcher turns one raw webhook delivery into scheduled event tasks.
type Dispatcher struct {
	secret    string
	pool      *Pool
	processor *Processor
}

func NewDispatcher(secret string, pool *Pool, processor *Processor) *Dispatcher {
	return &Dispatcher{secret: secret, pool: pool, processor: processor}
}

// Dispatch verifies the signature, decodes the batch and schedules one task
// per event. It does not wait for any task to run. A decode failure is
// logged and swallowed; only ErrSignature reaches the caller.
func (d *Dispatcher) Dispatch(body []byte, signature string) error {
	if !VerifySignature(d.secret, body, signature) {
		return ErrSignature
	}

	events, err := DecodeBatch(body)
	if err != nil {
		log.Printf("webhook payload rejected: %v", err)
		return nil
	}

	for _, ev := range events {
		ev := ev
		ok := d.pool.Submit(func() {
			d.processor.Process(context.Background(), ev)
		})
		if !ok {
			log.Printf("event queue full, dropping %s event from %s", ev.Kind, ev.UserID)
		}
	}
	return nil
}
