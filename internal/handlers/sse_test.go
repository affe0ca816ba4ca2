package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ecosort-backend/internal/logger"
	"github.com/yungbote/ecosort-backend/internal/requestdata"
	"github.com/yungbote/ecosort-backend/internal/sse"
)

func newTestSSEHandler(t *testing.T) *SSEHandler {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewSSEHandler(log, sse.NewSSEHub(log))
}

func newStreamContext(userID uuid.UUID) (*gin.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(
		requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID}))
	req := httptest.NewRequest("GET", "/sse/stream", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, cancel
}

// runStream drives SSEStream on its own goroutine, reporting a panic in the
// stream's teardown instead of crashing the test process.
func runStream(h *SSEHandler, c *gin.Context) chan error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("stream teardown panicked: %v", r)
				return
			}
			done <- nil
		}()
		h.SSEStream(c)
	}()
	return done
}

func waitForRegisteredClient(t *testing.T, h *SSEHandler, userID uuid.UUID, not uuid.UUID) uuid.UUID {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		clientID, ok := h.clients[userID]
		h.mu.RUnlock()
		if ok && clientID != not {
			return clientID
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("no registered stream for user %s", userID)
	return uuid.Nil
}

func TestSSEStreamReconnectReplacesOldStream(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestSSEHandler(t)
	userID := uuid.New()

	firstCtx, firstCancel := newStreamContext(userID)
	defer firstCancel()
	firstDone := runStream(h, firstCtx)
	firstID := waitForRegisteredClient(t, h, userID, uuid.Nil)

	// Reconnect: the new stream closes the old client, the old stream's
	// teardown then runs against an already-closed client.
	secondCtx, secondCancel := newStreamContext(userID)
	defer secondCancel()
	secondDone := runStream(h, secondCtx)
	secondID := waitForRegisteredClient(t, h, userID, firstID)

	select {
	case err := <-firstDone:
		if err != nil {
			t.Fatalf("old stream: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("old stream did not shut down after reconnect")
	}

	// The old stream's teardown must not evict the replacement's entry.
	h.mu.RLock()
	registered, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok || registered != secondID {
		t.Fatalf("registry entry: want=%s got=%s (present=%v)", secondID, registered, ok)
	}

	// Subscribe against the live replacement stream must succeed.
	subReq := httptest.NewRequest("POST", "/sse/subscribe",
		bytes.NewBufferString(`{"channel":"extra"}`)).
		WithContext(requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID}))
	subReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = subReq
	h.SSESubscribe(c)
	if w.Code != 200 {
		t.Fatalf("subscribe after reconnect: want=200 got=%d body=%s", w.Code, w.Body.String())
	}

	secondCancel()
	select {
	case err := <-secondDone:
		if err != nil {
			t.Fatalf("new stream: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("new stream did not shut down on cancel")
	}
}
