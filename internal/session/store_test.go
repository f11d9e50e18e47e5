package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/studyline/internal/api"
	"github.com/soyeahso/studyline/internal/domain"
	"github.com/soyeahso/studyline/internal/logging"
)

type fakeGateway struct {
	startResp    *api.StartSessionResponse
	startErr     error
	sendResp     *api.SendMessageResponse
	sendErr      error
	historyResp  *api.SessionHistoryResponse
	historyErr   error
	completeResp *api.CompleteSessionResponse
	completeErr  error

	sendCalls     int
	startCalls    int
	completeCalls int
}

func (f *fakeGateway) StartSession(ctx context.Context, topic, userID string) (*api.StartSessionResponse, error) {
	f.startCalls++
	return f.startResp, f.startErr
}

func (f *fakeGateway) SendMessage(ctx context.Context, sessionID, message string) (*api.SendMessageResponse, error) {
	f.sendCalls++
	return f.sendResp, f.sendErr
}

func (f *fakeGateway) SessionHistory(ctx context.Context, sessionID string) (*api.SessionHistoryResponse, error) {
	return f.historyResp, f.historyErr
}

func (f *fakeGateway) CompleteSession(ctx context.Context, sessionID string) (*api.CompleteSessionResponse, error) {
	f.completeCalls++
	return f.completeResp, f.completeErr
}

type spyNotifier struct {
	errors []string
	infos  []string
}

func (s *spyNotifier) Info(msg string)  { s.infos = append(s.infos, msg) }
func (s *spyNotifier) Error(msg string) { s.errors = append(s.errors, msg) }

func newStore(gw *fakeGateway) (*Store, *spyNotifier) {
	spy := &spyNotifier{}
	return NewStore(gw, spy, logging.New(nil, "silent")), spy
}

func startedStore(t *testing.T, gw *fakeGateway) (*Store, *spyNotifier) {
	t.Helper()
	gw.startResp = &api.StartSessionResponse{
		SessionID:      "s1",
		InitialMessage: "Let's learn...",
		StartedAt:      "2026-01-01T00:00:00Z",
	}
	store, spy := newStore(gw)
	require.NoError(t, store.Start(context.Background(), "Photosynthesis", "u1"))
	return store, spy
}

func TestStart_Success(t *testing.T) {
	store, spy := startedStore(t, &fakeGateway{})

	assert.Equal(t, "s1", store.SessionID())
	assert.Equal(t, "Photosynthesis", store.Topic())
	assert.False(t, store.IsLoading())
	assert.Empty(t, store.Err())
	assert.Empty(t, spy.errors)

	msgs := store.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "initial", msgs[0].ID)
	assert.Equal(t, domain.RoleAssistant, msgs[0].Role)
	assert.Equal(t, "Let's learn...", msgs[0].Content)
}

func TestStart_FailureResetsAndReturnsError(t *testing.T) {
	gw := &fakeGateway{startErr: &api.APIError{Status: 500}}
	store, spy := newStore(gw)

	err := store.Start(context.Background(), "Photosynthesis", "u1")
	require.Error(t, err)

	assert.Empty(t, store.SessionID())
	assert.Empty(t, store.Topic())
	assert.Empty(t, store.Messages())
	assert.False(t, store.IsLoading())
	assert.NotEmpty(t, store.Err())
	require.Len(t, spy.errors, 1)
}

func TestStart_DiscardsPriorSession(t *testing.T) {
	gw := &fakeGateway{}
	store, _ := startedStore(t, gw)

	gw.startResp = &api.StartSessionResponse{SessionID: "s2", InitialMessage: "New topic!"}
	require.NoError(t, store.Start(context.Background(), "Algebra", "u1"))

	assert.Equal(t, "s2", store.SessionID())
	assert.Equal(t, "Algebra", store.Topic())
	require.Len(t, store.Messages(), 1)
	assert.Equal(t, "New topic!", store.Messages()[0].Content)
}

func TestSend_AppendsUserThenAssistant(t *testing.T) {
	gw := &fakeGateway{sendResp: &api.SendMessageResponse{
		MessageID: "m2",
		Response:  "Chlorophyll is...",
		Timestamp: "2026-01-01T00:00:01Z",
	}}
	store, _ := startedStore(t, gw)

	require.NoError(t, store.Send(context.Background(), "What is chlorophyll?"))

	msgs := store.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, domain.RoleUser, msgs[1].Role)
	assert.Equal(t, "What is chlorophyll?", msgs[1].Content)
	assert.NotEmpty(t, msgs[1].ID)
	assert.Equal(t, domain.RoleAssistant, msgs[2].Role)
	assert.Equal(t, "m2", msgs[2].ID)
	assert.Equal(t, "Chlorophyll is...", msgs[2].Content)
	assert.False(t, store.IsSending())
}

func TestSend_AppendOnlyUnderSuccess(t *testing.T) {
	gw := &fakeGateway{}
	store, _ := startedStore(t, gw)

	for i, reply := range []string{"first", "second", "third"} {
		gw.sendResp = &api.SendMessageResponse{MessageID: "m", Response: reply}
		prior := store.Messages()
		require.NoError(t, store.Send(context.Background(), "q"))

		msgs := store.Messages()
		require.Len(t, msgs, len(prior)+2, "send %d must append exactly two messages", i)
		assert.Equal(t, prior, msgs[:len(prior)], "existing messages must be untouched")
		assert.Equal(t, domain.RoleUser, msgs[len(msgs)-2].Role)
		assert.Equal(t, domain.RoleAssistant, msgs[len(msgs)-1].Role)
	}
}

func TestSend_FailureRollsBackAndIsSwallowed(t *testing.T) {
	gw := &fakeGateway{sendErr: &api.NetworkError{Err: errors.New("connection refused")}}
	store, spy := startedStore(t, gw)
	before := store.Messages()

	// The deliberate asymmetry: a failed send returns nil so the chat
	// stays usable, unlike Start/LoadHistory/Complete.
	err := store.Send(context.Background(), "X")
	assert.NoError(t, err)

	assert.Equal(t, before, store.Messages(), "optimistic message must be rolled back")
	assert.False(t, store.IsSending())
	assert.NotEmpty(t, store.Err())
	require.Len(t, spy.errors, 1)
}

func TestSend_NoSessionIsNoOp(t *testing.T) {
	gw := &fakeGateway{}
	store, spy := newStore(gw)

	err := store.Send(context.Background(), "hello?")
	assert.NoError(t, err)
	assert.Empty(t, store.Messages())
	assert.NotEmpty(t, store.Err())
	assert.Zero(t, gw.sendCalls, "no network call may be issued without a session")
	require.Len(t, spy.errors, 1)
}

func TestLoadHistory_ReplacesWholesale(t *testing.T) {
	history := []domain.Message{
		{ID: "h1", Role: domain.RoleAssistant, Content: "a"},
		{ID: "h2", Role: domain.RoleUser, Content: "b"},
		{ID: "h3", Role: domain.RoleAssistant, Content: "c"},
		{ID: "h4", Role: domain.RoleUser, Content: "d"},
		{ID: "h5", Role: domain.RoleAssistant, Content: "e"},
	}
	gw := &fakeGateway{historyResp: &api.SessionHistoryResponse{
		SessionID:    "s1",
		Topic:        "X",
		Messages:     history,
		MessageCount: 5,
	}}
	store, _ := newStore(gw)

	require.NoError(t, store.LoadHistory(context.Background(), "s1"))
	assert.Equal(t, "s1", store.SessionID())
	assert.Equal(t, "X", store.Topic())
	assert.Equal(t, history, store.Messages())
	assert.False(t, store.IsLoading())
}

func TestLoadHistory_FailureReturnsError(t *testing.T) {
	gw := &fakeGateway{historyErr: &api.APIError{Status: 404, Detail: "Session not found"}}
	store, spy := newStore(gw)

	err := store.LoadHistory(context.Background(), "stale")
	require.Error(t, err)
	assert.Equal(t, "Session not found", store.Err())
	require.Len(t, spy.errors, 1)
}

func TestComplete_StoresSummary(t *testing.T) {
	gw := &fakeGateway{completeResp: &api.CompleteSessionResponse{
		Summary:      "You covered the light reactions.",
		NextTopics:   []string{"Cellular respiration"},
		MessageCount: 12,
	}}
	store, _ := startedStore(t, gw)

	assert.Nil(t, store.Summary())
	require.NoError(t, store.Complete(context.Background()))

	sum := store.Summary()
	require.NotNil(t, sum)
	assert.Equal(t, "You covered the light reactions.", sum.Summary)
	assert.Equal(t, []string{"Cellular respiration"}, sum.NextTopics)
}

func TestComplete_NoSession(t *testing.T) {
	gw := &fakeGateway{}
	store, _ := newStore(gw)

	err := store.Complete(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Zero(t, gw.completeCalls)
}

func TestComplete_FailureReturnsError(t *testing.T) {
	gw := &fakeGateway{completeErr: &api.APIError{Status: 500}}
	store, _ := startedStore(t, gw)

	require.Error(t, store.Complete(context.Background()))
	assert.Nil(t, store.Summary())
	assert.NotEmpty(t, store.Err())
}

func TestClear_ResetsEverything(t *testing.T) {
	gw := &fakeGateway{sendResp: &api.SendMessageResponse{MessageID: "m2", Response: "r"}}
	store, _ := startedStore(t, gw)
	require.NoError(t, store.Send(context.Background(), "q"))

	store.Clear()

	assert.Empty(t, store.SessionID())
	assert.Empty(t, store.Topic())
	assert.Empty(t, store.Messages())
	assert.Nil(t, store.Summary())
	assert.Empty(t, store.Err())
	assert.False(t, store.IsLoading())
	assert.False(t, store.IsSending())
}

func TestSnapshot(t *testing.T) {
	store, _ := startedStore(t, &fakeGateway{})
	snap := store.Snapshot()
	assert.Equal(t, "s1", snap.ID)
	assert.Equal(t, "Photosynthesis", snap.Topic)
	require.Len(t, snap.Messages, 1)
}
