package keepalive_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirtansukhadiya/logified-prod/pkg/keepalive"
	"github.com/kirtansukhadiya/logified-prod/pkg/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		schedule string
		wantErr  bool
	}{
		{"every", "https://logified.in/health", "@every 14m", false},
		{"cron expression", "https://logified.in/health", "*/10 * * * *", false},
		{"bad schedule", "https://logified.in/health", "whenever", true},
		{"no scheme", "logified.in/health", "@every 14m", true},
		{"unsupported scheme", "ftp://logified.in", "@every 14m", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := keepalive.New(tt.url, tt.schedule, logger.Discard())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPing(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		p, err := keepalive.New(srv.URL, "@every 14m", logger.Discard())
		require.NoError(t, err)

		status, err := p.Ping(context.Background())
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		p, err := keepalive.New(srv.URL, "@every 14m", logger.Discard())
		require.NoError(t, err)

		status, err := p.Ping(context.Background())
		assert.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, status)
	})
}

func TestScheduledPings(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	p, err := keepalive.New(srv.URL, "@every 1s", logger.Discard())
	require.NoError(t, err)

	p.Start()
	assert.Eventually(t, func() bool { return hits.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	p.Stop(ctx)

	after := hits.Load()
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, after, hits.Load(), "no pings after Stop")
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestScheduledPingLoggedAtInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	var logs lockedBuffer
	p, err := keepalive.New(srv.URL, "@every 1s", logger.NewWithWriter(&logs, "info", "json"))
	require.NoError(t, err)

	p.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		p.Stop(ctx)
	}()

	assert.Eventually(t, func() bool {
		return strings.Contains(logs.String(), `"msg":"keepalive ping"`)
	}, 5*time.Second, 50*time.Millisecond)
	assert.Contains(t, logs.String(), `"status":200`)
}
