package bus

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/progressbar/internal/infrastructure/store"
)

func startBus(t *testing.T, s *store.Store) *Bus {
	t.Helper()

	b, err := NewInMemory(nil)
	require.NoError(t, err)
	b.RouteTo(s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = b.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	select {
	case <-b.Router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}
	return b
}

func TestPublishCommitsIntoStore(t *testing.T) {
	t.Parallel()

	s := store.New(nil)
	rec := s.Create("r-1", map[string]any{"Progress": 0})
	b := startBus(t, s)

	require.NoError(t, b.Publish(Change{Record: "r-1", Values: map[string]any{"Progress": 64}}))

	require.Eventually(t, func() bool {
		v, _ := s.Attribute(rec, "Progress")
		return v == float64(64)
	}, 5*time.Second, 10*time.Millisecond)
}

func TestPublishRequiresRecord(t *testing.T) {
	t.Parallel()

	b, err := NewInMemory(nil)
	require.NoError(t, err)
	require.Error(t, b.Publish(Change{Values: map[string]any{"Progress": 1}}))
}

func TestFeedLines(t *testing.T) {
	t.Parallel()

	s := store.New(nil)
	rec := s.Create("r-1", nil)
	b := startBus(t, s)

	feed := strings.Join([]string{
		`{"record":"r-1","values":{"Progress":10}}`,
		``,
		`not json`,
		`{"record":"unknown","values":{"Progress":1}}`,
		`{"record":"r-1","values":{"Progress":"75","Style":"danger"}}`,
	}, "\n")

	require.NoError(t, b.FeedLines(context.Background(), strings.NewReader(feed)))

	require.Eventually(t, func() bool {
		v, _ := s.Attribute(rec, "Progress")
		style, _ := s.Attribute(rec, "Style")
		return v == "75" && style == "danger"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestFeedLinesReturnsWhenCancelledMidRead(t *testing.T) {
	t.Parallel()

	b := startBus(t, store.New(nil))
	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.FeedLines(ctx, r) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("feed did not stop")
	}
}
