package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type staticIdentities []*model.Identity

func (s staticIdentities) All(context.Context) ([]*model.Identity, error) { return s, nil }

type urgentByTutor map[string][]model.RequestView

func (u urgentByTutor) Urgent(_ context.Context, identity *model.Identity) ([]model.RequestView, error) {
	views, ok := u[identity.TutorID]
	if !ok {
		return nil, errors.New("backend down")
	}
	return views, nil
}

type recordingNotifier struct {
	sent map[int64][]string
}

func (r *recordingNotifier) NotifyUrgent(_ context.Context, identity *model.Identity, views []model.RequestView) error {
	for _, v := range views {
		r.sent[identity.ChatID] = append(r.sent[identity.ChatID], v.Request.ID)
	}
	return nil
}

func view(id string) model.RequestView {
	return model.RequestView{Request: model.SessionRequest{ID: id}, Urgency: model.UrgencyHigh}
}

func TestRunDigestSendsOnlyNewRequests(t *testing.T) {
	ids := staticIdentities{
		{TutorID: "t1", ChatID: 1},
		{TutorID: "t2", ChatID: 2},
		{TutorID: "broken", ChatID: 3},
	}
	urgent := urgentByTutor{
		"t1": {view("a"), view("b")},
		"t2": {},
	}
	n := &recordingNotifier{sent: map[int64][]string{}}
	s := NewScheduler(ids, urgent, n, 0, zap.NewNop())

	s.RunDigest(context.Background())
	require.Equal(t, []string{"a", "b"}, n.sent[1])
	assert.Empty(t, n.sent[2])
	assert.Empty(t, n.sent[3])

	urgent["t1"] = append(urgent["t1"], view("c"))
	s.RunDigest(context.Background())
	assert.Equal(t, []string{"a", "b", "c"}, n.sent[1])
}

type failingDigestLog struct {
	*memoryDigestLog
	seenErr error
	marks   int
}

func (f *failingDigestLog) Seen(ctx context.Context, tutorID string, ids []string) (map[string]bool, error) {
	if f.seenErr != nil {
		return nil, f.seenErr
	}
	return f.memoryDigestLog.Seen(ctx, tutorID, ids)
}

func (f *failingDigestLog) Mark(ctx context.Context, tutorID string, ids []string) error {
	f.marks++
	return f.memoryDigestLog.Mark(ctx, tutorID, ids)
}

func TestRunDigestSkipsTutorWhenLogUnavailable(t *testing.T) {
	ids := staticIdentities{{TutorID: "t1", ChatID: 1}}
	urgent := urgentByTutor{"t1": {view("a")}}
	n := &recordingNotifier{sent: map[int64][]string{}}
	log := &failingDigestLog{memoryDigestLog: newMemoryDigestLog(time.Now), seenErr: errors.New("db down")}

	s := NewScheduler(ids, urgent, n, 0, zap.NewNop()).WithDigestLog(log)
	s.RunDigest(context.Background())
	assert.Empty(t, n.sent[1])
	assert.Zero(t, log.marks)

	log.seenErr = nil
	s.RunDigest(context.Background())
	assert.Equal(t, []string{"a"}, n.sent[1])
	assert.Equal(t, 1, log.marks)
}

func TestMemoryDigestLogPrune(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	log := newMemoryDigestLog(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, log.Mark(ctx, "t1", []string{"a", "b"}))
	now = now.Add(48 * time.Hour)
	require.NoError(t, log.Mark(ctx, "t1", []string{"c"}))

	pruned, err := log.Prune(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)

	seen, err := log.Seen(ctx, "t1", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"c": true}, seen)
}

func TestStartWithZeroIntervalIsNoop(t *testing.T) {
	s := NewScheduler(staticIdentities{}, urgentByTutor{}, &recordingNotifier{}, 0, zap.NewNop())
	s.Start(context.Background())
	s.Stop()
	s.Stop()
}

func TestNewLoggerLevel(t *testing.T) {
	logger := NewLogger(true, "warn")
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	dev := NewLogger(false, "")
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))

	bogus := NewLogger(true, "loud")
	assert.True(t, bogus.Core().Enabled(zap.InfoLevel))
	assert.False(t, bogus.Core().Enabled(zap.DebugLevel))
}

func TestTutorLoggerAddsIdentityFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	TutorLogger(zap.New(core), &model.Identity{TutorID: "t1", ChatID: 42}).Info("hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "t1", fields["tutor_id"])
	assert.Equal(t, int64(42), fields["chat_id"])

	base := zap.NewNop()
	assert.Same(t, base, TutorLogger(base, nil))
}
