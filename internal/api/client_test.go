package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/studyline/internal/logging"
)

type fakeCreds struct {
	mu     sync.Mutex
	token  string
	clears int
}

func (f *fakeCreds) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeCreds) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.clears++
	return nil
}

func (f *fakeCreds) clearCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clears
}

func newTestClient(t *testing.T, url string, creds *fakeCreds) *Client {
	t.Helper()
	c := New(url, creds, logging.New(nil, "silent"))
	c.http.Backoff = func(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
		return time.Millisecond
	}
	return c
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"u1","email":"a@b.c","username":"a"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeCreds{token: "tok-123"})
	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeCreds{})
	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRetry_NetworkFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	var accepts int32
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			atomic.AddInt32(&accepts, 1)
			conn.Close()
		}
	}()

	c := newTestClient(t, "http://"+ln.Addr().String(), &fakeCreds{})
	_, err = c.CurrentUser(context.Background())

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	// Initial attempt plus three retries.
	assert.Equal(t, int32(1+maxRetries), atomic.LoadInt32(&accepts))
}

func TestRetry_NotAppliedToHTTPErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeCreds{})
	_, err := c.CurrentUser(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "HTTP error responses must not be retried")
}

func TestBackoffSchedule(t *testing.T) {
	assert.Equal(t, 1*time.Second, retryBackoff(0, 0, 0, nil))
	assert.Equal(t, 2*time.Second, retryBackoff(0, 0, 1, nil))
	assert.Equal(t, 4*time.Second, retryBackoff(0, 0, 2, nil))
}

func TestUnauthorized_ClearsOnceAndLatches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, `{"detail":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := &fakeCreds{token: "stale"}
	c := newTestClient(t, srv.URL, creds)

	var expiredCalls int32
	c.OnSessionExpired(func() { atomic.AddInt32(&expiredCalls, 1) })

	// Two requests in flight concurrently, both observing a 401.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.CurrentUser(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&expiredCalls), "expired callback must fire exactly once")
	assert.Equal(t, 1, creds.clearCount(), "credentials cleared exactly once")
	assert.Empty(t, creds.Token())

	// Requests after the latch reject fast without touching the network.
	before := atomic.LoadInt32(&hits)
	_, err := c.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, before, atomic.LoadInt32(&hits))
}

func TestReauthorized_ResetsLatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			http.Error(w, `{}`, http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id":"u1"}`))
	}))
	defer srv.Close()

	creds := &fakeCreds{}
	c := newTestClient(t, srv.URL, creds)

	_, err := c.CurrentUser(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)

	creds.mu.Lock()
	creds.token = "fresh"
	creds.mu.Unlock()
	c.Reauthorized()

	_, err = c.CurrentUser(context.Background())
	assert.NoError(t, err)
}

func TestLogin_401DoesNotTripLatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid email or password"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := &fakeCreds{}
	c := newTestClient(t, srv.URL, creds)
	fired := false
	c.OnSessionExpired(func() { fired = true })

	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, fired)
	assert.Zero(t, creds.clearCount())
}

func TestLogout_ForbiddenTreatedAsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeCreds{token: "t"})
	assert.NoError(t, c.Logout(context.Background()))
}

func TestStartSession_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/start", r.URL.Path)
		w.Write([]byte(`{"session_id":"s1","topic":"Photosynthesis","initial_message":"Let's learn...","started_at":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeCreds{token: "t"})
	resp, err := c.StartSession(context.Background(), "Photosynthesis", "u1")
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.SessionID)
	assert.Equal(t, "Let's learn...", resp.InitialMessage)
}

func TestSendMessage_PathAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/s1/message", r.URL.Path)
		w.Write([]byte(`{"message_id":"m2","response":"Chlorophyll is...","timestamp":"2026-01-01T00:00:01Z"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeCreds{token: "t"})
	resp, err := c.SendMessage(context.Background(), "s1", "What is chlorophyll?")
	require.NoError(t, err)
	assert.Equal(t, "m2", resp.MessageID)
	assert.Equal(t, "Chlorophyll is...", resp.Response)
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeCreds{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.CurrentUser(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
