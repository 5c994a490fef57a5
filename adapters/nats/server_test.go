package nats

import (
	"context"
	"log/slog"
	"testing"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/codewandler/idgen-go/core/uid"
)

func startServer(t *testing.T, ctx context.Context, connect Connector, subject string, h *uid.Handle) (*Server, <-chan error) {
	t.Helper()

	srv := NewServer(ServerConfig{Connect: connect, Log: slog.Default(), Subject: subject}, h)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx) }()

	select {
	case <-srv.Ready():
	case err := <-errCh:
		t.Fatalf("serve failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server not ready")
	}
	return srv, errCh
}

func TestNats_Server(t *testing.T) {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	connect := ReuseConnection(NewTestContainer(t))

	t.Run("serves sequential ids", func(t *testing.T) {
		h := uid.New(uid.Options{Context: t.Context()})
		defer h.Release()

		ctx, cancel := context.WithCancel(t.Context())
		srv, errCh := startServer(t, ctx, connect, "test.seq", h)

		client, err := NewClient(ClientConfig{Connect: connect, Subject: "test.seq"})
		require.NoError(t, err)
		defer client.Close()

		for want := uint32(1); want <= 3; want++ {
			id, err := client.Next(t.Context())
			require.NoError(t, err)
			require.Equal(t, want, id)
		}

		// local and remote callers share one counter
		require.Equal(t, uint32(4), h.GetUniqueID())

		cancel()
		require.NoError(t, <-errCh)

		require.ErrorIs(t, srv.Serve(t.Context()), ErrServerClosed)
	})

	t.Run("concurrent clients", func(t *testing.T) {
		h := uid.New(uid.Options{Context: t.Context()})
		defer h.Release()

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		startServer(t, ctx, connect, "test.concurrent", h)

		client, err := NewClient(ClientConfig{Connect: connect, Subject: "test.concurrent"})
		require.NoError(t, err)
		defer client.Close()

		const n = 100
		ids := make([]uint32, n)
		var g errgroup.Group
		for i := range n {
			g.Go(func() error {
				id, err := client.Next(t.Context())
				ids[i] = id
				return err
			})
		}
		require.NoError(t, g.Wait())

		want := make([]uint32, n)
		for i := range want {
			want[i] = uint32(i + 1)
		}
		require.ElementsMatch(t, want, ids)
	})

	t.Run("killed actor", func(t *testing.T) {
		actorCtx, kill := context.WithCancel(t.Context())
		h := uid.New(uid.Options{Context: actorCtx})
		defer h.Release()
		require.NoError(t, h.Pause())

		_, errCh := startServer(t, t.Context(), connect, "test.killed", h)

		client, err := NewClient(ClientConfig{Connect: connect, Subject: "test.killed"})
		require.NoError(t, err)
		defer client.Close()

		resCh := make(chan error, 1)
		go func() {
			_, err := client.Next(t.Context())
			resCh <- err
		}()
		require.Eventually(t, func() bool { return h.Pending() == 1 }, 5*time.Second, 10*time.Millisecond)

		kill()

		select {
		case err := <-resCh:
			var remote *RemoteError
			require.ErrorAs(t, err, &remote)
			require.Equal(t, uid.ErrActorKilled.Error(), remote.Msg)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout")
		}

		// the server stops on its own once the actor is gone
		select {
		case err := <-errCh:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})

	t.Run("no server", func(t *testing.T) {
		client, err := NewClient(ClientConfig{Connect: connect, Subject: "test.nobody"})
		require.NoError(t, err)

		_, err = client.Next(t.Context())
		require.ErrorIs(t, err, natsgo.ErrNoResponders)

		require.NoError(t, client.Close())
		require.ErrorIs(t, client.Close(), ErrClientClosed)

		_, err = client.Next(t.Context())
		require.ErrorIs(t, err, ErrClientClosed)
	})
}
