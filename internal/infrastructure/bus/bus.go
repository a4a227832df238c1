// Package bus carries attribute changes from outside feeds into the record
// store over an in-memory watermill pub/sub.
package bus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	gochannel "github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"

	"github.com/alexisbeaulieu97/progressbar/internal/logger"
)

// TopicRecordChanges carries Change payloads.
const TopicRecordChanges = "record.changes"

// Change sets attributes on one record.
type Change struct {
	Record string         `json:"record"`
	Values map[string]any `json:"values"`
}

// Committer applies a change to a record host.
type Committer interface {
	Commit(id string, values map[string]any) error
}

// Bus is an in-process router with a single publisher/subscriber pair.
type Bus struct {
	Router     *message.Router
	Publisher  message.Publisher
	Subscriber message.Subscriber

	log     *logger.Logger
	runOnce sync.Once
}

// NewInMemory creates a bus backed by a go channel pub/sub.
func NewInMemory(log *logger.Logger) (*Bus, error) {
	wmLogger := watermill.NopLogger{}
	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 1024}, wmLogger)

	r, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, errors.Wrap(err, "new watermill router")
	}
	return &Bus{
		Router:     r,
		Publisher:  pubsub,
		Subscriber: pubsub,
		log:        log,
	}, nil
}

// RouteTo commits every change arriving on the bus into c. Malformed
// payloads and writes to unknown records are logged and acknowledged so
// they are not redelivered forever.
func (b *Bus) RouteTo(c Committer) {
	b.Router.AddNoPublisherHandler("record-commit", TopicRecordChanges, b.Subscriber, func(msg *message.Message) error {
		var change Change
		if err := json.Unmarshal(msg.Payload, &change); err != nil {
			b.log.Error(errors.Wrap(err, "unmarshal record change"), "dropping change")
			return nil
		}
		if err := c.Commit(change.Record, change.Values); err != nil {
			b.log.With("record", change.Record).Error(err, "dropping change")
			return nil
		}
		return nil
	})
}

// Publish sends one change.
func (b *Bus) Publish(change Change) error {
	if change.Record == "" {
		return errors.New("change without record id")
	}
	payload, err := json.Marshal(change)
	if err != nil {
		return errors.Wrap(err, "marshal record change")
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return errors.Wrap(b.Publisher.Publish(TopicRecordChanges, msg), "publish record change")
}

// FeedLines publishes one change per JSON line read from r, waiting for the
// router to start first. Blank lines are skipped; malformed lines are logged.
// It returns when r is exhausted or ctx is done, even if a read is still
// blocked.
func (b *Bus) FeedLines(ctx context.Context, r io.Reader) error {
	select {
	case <-b.Router.Running():
	case <-ctx.Done():
		return nil
	}

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := append([]byte(nil), bytes.TrimSpace(scanner.Bytes())...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return errors.Wrap(err, "read feed")
				default:
					return nil
				}
			}
			if len(line) == 0 {
				continue
			}
			var change Change
			if err := json.Unmarshal(line, &change); err != nil {
				b.log.Error(errors.Wrap(err, "decode feed line"), "skipping feed line")
				continue
			}
			if err := b.Publish(change); err != nil {
				return err
			}
		}
	}
}

// Run starts the router and blocks until ctx is cancelled.
func (b *Bus) Run(ctx context.Context) error {
	var runErr error
	b.runOnce.Do(func() {
		go func() {
			<-ctx.Done()
			_ = b.Router.Close()
		}()
		runErr = b.Router.Run(ctx)
	})
	return runErr
}
