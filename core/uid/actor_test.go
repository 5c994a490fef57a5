package uid

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetUniqueID_reply(t *testing.T) {
	msg, reply := newGetUniqueID(t.Context())
	require.True(t, msg.reply(7))
	require.Equal(t, uint32(7), <-reply)

	// one-shot: a second write is dropped instead of blocking the actor
	msg, _ = newGetUniqueID(t.Context())
	require.True(t, msg.reply(1))
	require.False(t, msg.reply(2))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	msg, reply = newGetUniqueID(ctx)
	require.False(t, msg.reply(3))
	require.Empty(t, reply)
}

func TestActor_run_until_released(t *testing.T) {
	tx, rx := newChannel(2)
	a := newActor(rx, Options{Context: t.Context(), Logger: slog.Default(), Metrics: NopActorMetrics(), ID: "test"})
	go a.run()

	for want := uint32(1); want <= 3; want++ {
		msg, reply := newGetUniqueID(t.Context())
		tx.msgs <- msg
		require.Equal(t, want, <-reply)
	}

	tx.release()
	<-a.done
	require.Equal(t, uint32(3), a.nextID)
}

func TestCtrlKind_String(t *testing.T) {
	require.Equal(t, "pause", ctrlPause.String())
	require.Equal(t, "resume", ctrlResume.String())
	require.Equal(t, "step", ctrlStep.String())
	require.Equal(t, "unknown", ctrlKind(42).String())
}
