package service

import (
	"Harbor/internal/pkg/hub"
	"context"
	"sync"
	"testing"
	"time"
)

type noopTransport struct{}

func (noopTransport) WriteMessage(messageType int, data []byte) error { return nil }
func (noopTransport) SetWriteDeadline(t time.Time) error              { return nil }
func (noopTransport) Close() error                                    { return nil }

type fakeMirror struct {
	mu      sync.Mutex
	added   []uint64
	removed []uint64
}

func (f *fakeMirror) Add(_ context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, userID)
	return nil
}

func (f *fakeMirror) Remove(_ context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, userID)
	return nil
}

func TestAnnounceRegistersAndMirrors(t *testing.T) {
	convRepo := newFakeConversationRepo()
	h := hub.NewHub()
	mirror := &fakeMirror{}
	svc := NewPresenceService(convRepo, h, mirror)
	ctx := context.Background()

	conn := hub.NewConn(noopTransport{})
	if err := svc.Announce(ctx, 1, conn); err != nil {
		t.Fatalf("announce: %v", err)
	}

	if !h.IsOnline(1) {
		t.Fatalf("user 1 must be online after announce")
	}
	if len(mirror.added) != 1 || mirror.added[0] != 1 {
		t.Fatalf("mirror add = %v, want [1]", mirror.added)
	}

	online := svc.OnlineUsers()
	if len(online.UserIDs) != 1 || online.UserIDs[0] != 1 {
		t.Fatalf("online users = %v, want [1]", online.UserIDs)
	}
}

func TestForgetOnlyClearsCurrentConnection(t *testing.T) {
	convRepo := newFakeConversationRepo()
	h := hub.NewHub()
	mirror := &fakeMirror{}
	svc := NewPresenceService(convRepo, h, mirror)
	ctx := context.Background()

	oldConn := hub.NewConn(noopTransport{})
	newConn := hub.NewConn(noopTransport{})
	_ = svc.Announce(ctx, 1, oldConn)
	_ = svc.Announce(ctx, 1, newConn)

	// 旧连接迟到的断开不能清掉镜像里的在线标记
	svc.Forget(ctx, oldConn)
	if len(mirror.removed) != 0 {
		t.Fatalf("stale forget must not touch the mirror, removed=%v", mirror.removed)
	}
	if !h.IsOnline(1) {
		t.Fatalf("user 1 must stay online")
	}

	svc.Forget(ctx, newConn)
	if len(mirror.removed) != 1 || mirror.removed[0] != 1 {
		t.Fatalf("mirror remove = %v, want [1]", mirror.removed)
	}
	if h.IsOnline(1) {
		t.Fatalf("user 1 must be offline")
	}
}
