package service

import (
	"Harbor/internal/pkg/hub"
	mongoPkg "Harbor/internal/pkg/mongo"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingTransport struct {
	mu     sync.Mutex
	writes [][]byte
}

func (r *recordingTransport) WriteMessage(messageType int, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	r.writes = append(r.writes, cp)
	return nil
}

func (r *recordingTransport) SetWriteDeadline(t time.Time) error { return nil }
func (r *recordingTransport) Close() error                       { return nil }

func (r *recordingTransport) snapshot() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]byte(nil), r.writes...)
}

func waitForPush(t *testing.T, rt *recordingTransport, n int) [][]byte {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := rt.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d pushed frames, got %d", n, len(rt.snapshot()))
	return nil
}

func TestDispatchSuppressesSelfNotification(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, hub.NewHub())

	err := svc.Dispatch(context.Background(), &mongoPkg.Notification{
		RecipientID: 5,
		SenderID:    5,
		Type:        mongoPkg.NotifyReact,
	})
	if err != nil {
		t.Fatalf("self notification must be silently dropped, got %v", err)
	}
	if len(repo.notifs) != 0 {
		t.Fatalf("self notification must not be persisted")
	}
}

func TestDispatchRejectsUnknownType(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, hub.NewHub())

	err := svc.Dispatch(context.Background(), &mongoPkg.Notification{
		RecipientID: 2, SenderID: 1, Type: "poke",
	})
	if !errors.Is(err, ErrNotificationTypeInvalid) {
		t.Fatalf("unknown type: got %v, want ErrNotificationTypeInvalid", err)
	}
}

func TestDispatchPushesToOnlineRecipient(t *testing.T) {
	repo := &fakeNotificationRepo{}
	h := hub.NewHub()
	svc := NewNotificationService(repo, h)

	rt := &recordingTransport{}
	conn := hub.NewConn(rt)
	h.Register(2, conn, nil)
	go conn.WritePump()
	defer conn.Close()

	err := svc.Dispatch(context.Background(), &mongoPkg.Notification{
		RecipientID: 2, SenderID: 1, Type: mongoPkg.NotifyReact, Message: "新的反应",
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	frames := waitForPush(t, rt, 1)
	var pushed hub.Event
	if err := json.Unmarshal(frames[0], &pushed); err != nil {
		t.Fatalf("unmarshal push: %v", err)
	}
	if pushed.Event != "newNotification" {
		t.Fatalf("push event = %q, want newNotification", pushed.Event)
	}
	if len(repo.notifs) != 1 {
		t.Fatalf("notification must also be persisted for history")
	}
}

func TestDispatchStoresForOfflineRecipient(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, hub.NewHub())

	err := svc.Dispatch(context.Background(), &mongoPkg.Notification{
		RecipientID: 2, SenderID: 1, Type: mongoPkg.NotifyComment,
	})
	if err != nil {
		t.Fatalf("dispatch to offline user: %v", err)
	}
	if len(repo.notifs) != 1 || repo.notifs[0].IsRead {
		t.Fatalf("offline dispatch must persist one unread notification")
	}
}

func TestMarkReadGuards(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, hub.NewHub())
	ctx := context.Background()

	n := &mongoPkg.Notification{RecipientID: 2, SenderID: 1, Type: mongoPkg.NotifyReact}
	_ = repo.CreateNotification(ctx, n)

	if err := svc.MarkRead(ctx, 2, "not-an-object-id"); !errors.Is(err, ErrParamInvalid) {
		t.Fatalf("bad id: got %v, want ErrParamInvalid", err)
	}
	if err := svc.MarkRead(ctx, 2, primitive.NewObjectID().Hex()); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("missing id: got %v, want ErrNotificationNotFound", err)
	}
	if err := svc.MarkRead(ctx, 9, n.ID.Hex()); !errors.Is(err, UnauthorizedError) {
		t.Fatalf("wrong recipient: got %v, want UnauthorizedError", err)
	}

	if err := svc.MarkRead(ctx, 2, n.ID.Hex()); err != nil {
		t.Fatalf("first mark read: %v", err)
	}
	if err := svc.MarkRead(ctx, 2, n.ID.Hex()); !errors.Is(err, ErrNotificationAlreadyRead) {
		t.Fatalf("second mark read: got %v, want ErrNotificationAlreadyRead", err)
	}
}

func TestListOrdersUnreadFirst(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, hub.NewHub())
	ctx := context.Background()

	old := &mongoPkg.Notification{RecipientID: 2, SenderID: 1, Type: mongoPkg.NotifyReact, CreatedAt: time.Now().Add(-time.Hour)}
	read := &mongoPkg.Notification{RecipientID: 2, SenderID: 1, Type: mongoPkg.NotifyComment, IsRead: true, CreatedAt: time.Now()}
	fresh := &mongoPkg.Notification{RecipientID: 2, SenderID: 3, Type: mongoPkg.NotifyReact, CreatedAt: time.Now()}
	_ = repo.CreateNotification(ctx, old)
	_ = repo.CreateNotification(ctx, read)
	_ = repo.CreateNotification(ctx, fresh)

	res, err := svc.List(ctx, 2, "", 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Notifications) != 3 || res.TotalPages != 1 {
		t.Fatalf("list size/pages = %d/%d, want 3/1", len(res.Notifications), res.TotalPages)
	}
	// 未读在前，组内时间倒序，已读垫底
	if res.Notifications[0].ID != fresh.ID.Hex() || res.Notifications[2].ID != read.ID.Hex() {
		t.Fatalf("unexpected ordering: %v", []string{res.Notifications[0].ID, res.Notifications[1].ID, res.Notifications[2].ID})
	}

	filtered, err := svc.List(ctx, 2, mongoPkg.NotifyComment, 1)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered.Notifications) != 1 || filtered.Notifications[0].Type != mongoPkg.NotifyComment {
		t.Fatalf("type filter must only return matching notifications")
	}

	if _, err := svc.List(ctx, 2, "poke", 1); !errors.Is(err, ErrNotificationTypeInvalid) {
		t.Fatalf("bad filter: got %v, want ErrNotificationTypeInvalid", err)
	}
}

func TestUnreadCountAndMarkAll(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, hub.NewHub())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = repo.CreateNotification(ctx, &mongoPkg.Notification{RecipientID: 2, SenderID: 1, Type: mongoPkg.NotifyReact})
	}

	count, err := svc.UnreadCount(ctx, 2)
	if err != nil || count.Count != 3 {
		t.Fatalf("unread = %v/%v, want 3/nil", count, err)
	}

	if err := svc.MarkAllRead(ctx, 2); err != nil {
		t.Fatalf("mark all: %v", err)
	}
	count, _ = svc.UnreadCount(ctx, 2)
	if count.Count != 0 {
		t.Fatalf("unread after mark all = %d, want 0", count.Count)
	}
}
