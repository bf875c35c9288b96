// Package realtime fans match change events out to in-process subscribers.
package realtime

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
)

const (
	topicPrefix       = "match."
	metadataEventType = "event_type"
)

var ErrFeedClosed = crerr.New("match feed closed")

// SubscriberObserver is told when feed subscriptions open and close.
type SubscriberObserver interface {
	SubscriberJoined()
	SubscriberLeft()
}

type nopObserver struct{}

func (nopObserver) SubscriberJoined() {}
func (nopObserver) SubscriberLeft()   {}

// Feed implements match.Feed over watermill's in-process pub/sub. Events are
// not persisted: a subscriber sees only events published after it joined.
// Publish returns once every subscriber of the match has taken the event, so
// one subscriber sees events in publish order. A subscriber whose buffer is
// full is closed rather than allowed to stall publishers.
type Feed struct {
	pubsub   *gochannel.GoChannel
	buffer   int
	logger   *logging.Logger
	observer SubscriberObserver

	mu     sync.RWMutex
	closed bool
}

func NewFeed(buffer int, logger *logging.Logger) *Feed {
	if logger == nil {
		logger = logging.Default()
	}
	if buffer <= 0 {
		buffer = 64
	}

	return &Feed{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            int64(buffer),
			BlockPublishUntilSubscriberAck: true,
		}, newLoggerAdapter(logger)),
		buffer:   buffer,
		logger:   logger,
		observer: nopObserver{},
	}
}

func (f *Feed) SetObserver(observer SubscriberObserver) {
	if observer == nil {
		observer = nopObserver{}
	}
	f.observer = observer
}

func (f *Feed) Publish(ctx context.Context, event match.ChangeEvent) error {
	if event.MatchID == "" {
		return crerr.New("publish match event: match id is required")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return ErrFeedClosed
	}

	payload, err := sonic.Marshal(event)
	if err != nil {
		return crerr.Wrapf(err, "encode %s event", event.Type)
	}

	id := event.ID
	if id == "" {
		id = watermill.NewUUID()
	}
	msg := message.NewMessage(id, payload)
	msg.Metadata.Set(metadataEventType, string(event.Type))
	msg.SetContext(ctx)

	if err := f.pubsub.Publish(topicPrefix+event.MatchID, msg); err != nil {
		return crerr.Wrapf(err, "publish %s event for match %s", event.Type, event.MatchID)
	}
	return nil
}

func (f *Feed) Subscribe(ctx context.Context, matchID string) (match.Subscription, error) {
	if matchID == "" {
		return nil, crerr.New("subscribe: match id is required")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return nil, ErrFeedClosed
	}

	subCtx, cancel := context.WithCancel(ctx)
	messages, err := f.pubsub.Subscribe(subCtx, topicPrefix+matchID)
	if err != nil {
		cancel()
		return nil, crerr.Wrapf(err, "subscribe to match %s", matchID)
	}

	sub := &subscription{
		events: make(chan match.ChangeEvent, f.buffer),
		cancel: cancel,
	}
	f.observer.SubscriberJoined()
	go f.forward(subCtx, matchID, messages, sub)
	return sub, nil
}

// forward decodes messages until the subscription context ends or the
// pub/sub closes the message channel.
func (f *Feed) forward(ctx context.Context, matchID string, messages <-chan *message.Message, sub *subscription) {
	defer f.observer.SubscriberLeft()
	defer close(sub.events)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event match.ChangeEvent
			if err := sonic.Unmarshal(msg.Payload, &event); err != nil {
				f.logger.WarnContext(ctx, "drop undecodable match event",
					"match_id", matchID,
					"message_uuid", msg.UUID,
					"error", err,
				)
				msg.Ack()
				continue
			}
			msg.Ack()

			select {
			case sub.events <- event:
			default:
				f.logger.WarnContext(ctx, "drop slow match feed subscriber",
					"match_id", matchID,
					"buffer", cap(sub.events),
				)
				sub.Close()
				return
			}
		}
	}
}

// Close stops the pub/sub; open subscriptions see their channels close.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	if err := f.pubsub.Close(); err != nil {
		return crerr.Wrap(err, "close match feed")
	}
	return nil
}

type subscription struct {
	events chan match.ChangeEvent
	cancel context.CancelFunc
	once   sync.Once
}

func (s *subscription) Events() <-chan match.ChangeEvent {
	return s.events
}

func (s *subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}
