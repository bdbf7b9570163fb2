package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/andreicionca/motivare-absente/internal/events"
	"github.com/andreicionca/motivare-absente/internal/media"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// RetryPolicy bounds the destroy attempts for one message. The delay doubles
// after every failure up to MaxDelay.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

var DefaultRetryPolicy = RetryPolicy{Attempts: 6, BaseDelay: time.Second, MaxDelay: 30 * time.Second}

// ErrDestroyExhausted stops the consumer with the failed message uncommitted.
// Offsets are committed cumulatively, so moving past it would lose the image
// for good; the group resumes from it on the next start.
var ErrDestroyExhausted = errors.New("evidence destroy retries exhausted")

type evidenceReleaser struct {
	reader MessageReader
	client media.Client
	log    *zap.Logger
	retry  RetryPolicy
	sleep  func(ctx context.Context, d time.Duration) error
}

// ConsumeEvidenceRelease destroys media host assets of withdrawn excuses. It
// returns nil when ctx is cancelled and ErrDestroyExhausted when an asset
// could not be destroyed within the retry policy.
func ConsumeEvidenceRelease(
	ctx context.Context,
	reader MessageReader,
	client media.Client,
	logger *zap.Logger,
	policy ...RetryPolicy,
) error {
	r := &evidenceReleaser{
		reader: reader,
		client: client,
		log:    logger.Named("kafka.consumer.evidence_release"),
		retry:  DefaultRetryPolicy,
		sleep:  sleepCtx,
	}
	if len(policy) > 0 {
		r.retry = policy[0]
	}
	return r.run(ctx)
}

func (r *evidenceReleaser) run(ctx context.Context) error {
	r.log.Info("evidence release consumer started")

	for {
		msg, err := r.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				r.log.Info("evidence release consumer stopped")
				return nil
			}
			r.log.Error("fetch evidence release message failed", zap.Error(err))
			continue
		}

		if err := r.handle(ctx, msg); err != nil {
			if ctx.Err() != nil {
				r.log.Info("evidence release consumer stopped")
				return nil
			}
			return err
		}
	}
}

func (r *evidenceReleaser) handle(ctx context.Context, msg kafkago.Message) error {
	var event events.EvidenceReleaseRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		r.log.Error("decode evidence release event failed", zap.Error(err))
		r.commit(ctx, msg)
		return nil
	}

	if event.PublicID == "" {
		r.log.Warn("evidence release event without public id, skipping", zap.String("record_id", event.RecordID))
		r.commit(ctx, msg)
		return nil
	}

	if err := r.destroy(ctx, event); err != nil {
		return err
	}
	r.commit(ctx, msg)

	r.log.Info("evidence released",
		zap.String("record_id", event.RecordID),
		zap.String("public_id", event.PublicID),
	)
	return nil
}

func (r *evidenceReleaser) destroy(ctx context.Context, event events.EvidenceReleaseRequestedEvent) error {
	attempts := r.retry.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := r.retry.BaseDelay

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = r.client.Destroy(ctx, event.PublicID); err == nil {
			return nil
		}
		r.log.Warn("destroy evidence failed",
			zap.String("record_id", event.RecordID),
			zap.String("public_id", event.PublicID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt == attempts {
			break
		}
		if serr := r.sleep(ctx, delay); serr != nil {
			return serr
		}
		delay *= 2
		if r.retry.MaxDelay > 0 && delay > r.retry.MaxDelay {
			delay = r.retry.MaxDelay
		}
	}

	r.log.Error("destroy evidence gave up",
		zap.String("record_id", event.RecordID),
		zap.String("public_id", event.PublicID),
		zap.Error(err),
	)
	return fmt.Errorf("%w: %s: %v", ErrDestroyExhausted, event.PublicID, err)
}

func (r *evidenceReleaser) commit(ctx context.Context, msg kafkago.Message) {
	if err := r.reader.CommitMessages(ctx, msg); err != nil {
		r.log.Error("commit evidence release message failed", zap.Error(err))
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
