package service

import (
	"Harbor/internal/pkg/consts"
	"Harbor/internal/pkg/hub"
	mongoPkg "Harbor/internal/pkg/mongo"
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func newFriendFixture() (FriendService, *fakeFriendRepo, *fakeNotificationRepo) {
	friendRepo := &fakeFriendRepo{}
	notifRepo := &fakeNotificationRepo{}
	notification := NewNotificationService(notifRepo, hub.NewHub())
	return NewFriendService(friendRepo, notifRepo, notification), friendRepo, notifRepo
}

func findNotif(repo *fakeNotificationRepo, recipientID uint64, typ string) *mongoPkg.Notification {
	for _, n := range repo.notifs {
		if n.RecipientID == recipientID && n.Type == typ {
			return n
		}
	}
	return nil
}

func TestSendRequestCreatesPendingAndNotifies(t *testing.T) {
	svc, friendRepo, notifRepo := newFriendFixture()
	ctx := context.Background()

	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("send request: %v", err)
	}

	fr, err := friendRepo.GetByPair(ctx, 1, 2)
	if err != nil || fr.Status != consts.FriendStatusPending {
		t.Fatalf("pending row missing: %+v err=%v", fr, err)
	}

	n := findNotif(notifRepo, 2, mongoPkg.NotifyFriendRequest)
	if n == nil || n.IsRead {
		t.Fatalf("recipient must get an unread friend_request notification")
	}

	if err := svc.SendRequest(ctx, 1, 2); !errors.Is(err, ErrFriendRequestExist) {
		t.Fatalf("duplicate request: got %v, want ErrFriendRequestExist", err)
	}
	if err := svc.SendRequest(ctx, 2, 1); !errors.Is(err, ErrFriendRequestExist) {
		t.Fatalf("reverse duplicate: got %v, want ErrFriendRequestExist", err)
	}
	if err := svc.SendRequest(ctx, 1, 1); !errors.Is(err, ErrTargetUserInvalid) {
		t.Fatalf("self request: got %v, want ErrTargetUserInvalid", err)
	}
}

func TestAcceptFlipsNotificationAndStatus(t *testing.T) {
	svc, friendRepo, notifRepo := newFriendFixture()
	ctx := context.Background()

	_ = svc.SendRequest(ctx, 1, 2)
	if err := svc.Accept(ctx, 2, 1); err != nil {
		t.Fatalf("accept: %v", err)
	}

	fr, _ := friendRepo.GetByPair(ctx, 1, 2)
	if fr.Status != consts.FriendStatusAccepted {
		t.Fatalf("status = %q, want accepted", fr.Status)
	}

	// 原请求通知被改写为 accepted 并强制已读
	converted := findNotif(notifRepo, 2, mongoPkg.NotifyAcceptedFriendRequest)
	if converted == nil || !converted.IsRead {
		t.Fatalf("pending request notification must be converted and read")
	}
	if findNotif(notifRepo, 2, mongoPkg.NotifyFriendRequest) != nil {
		t.Fatalf("no friend_request notification may survive an accept")
	}

	// 请求方收到结果通知
	if findNotif(notifRepo, 1, mongoPkg.NotifyAcceptedFriendRequest) == nil {
		t.Fatalf("requester must be notified about the accept")
	}

	if err := svc.Accept(ctx, 2, 1); !errors.Is(err, ErrAlreadyFriends) {
		t.Fatalf("double accept: got %v, want ErrAlreadyFriends", err)
	}
}

func TestDeclineDeletesRowAndConvertsNotification(t *testing.T) {
	svc, friendRepo, notifRepo := newFriendFixture()
	ctx := context.Background()

	_ = svc.SendRequest(ctx, 1, 2)
	if err := svc.Decline(ctx, 2, 1); err != nil {
		t.Fatalf("decline: %v", err)
	}

	if _, err := friendRepo.GetByPair(ctx, 1, 2); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("declined row must be deleted, got %v", err)
	}

	converted := findNotif(notifRepo, 2, mongoPkg.NotifyDeclinedFriendRequest)
	if converted == nil || !converted.IsRead {
		t.Fatalf("request notification must be converted to declined and read")
	}
	if findNotif(notifRepo, 1, mongoPkg.NotifyDeclinedFriendRequest) == nil {
		t.Fatalf("requester must be notified about the decline")
	}

	// 拒绝后可以重新发起
	if err := svc.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("re-request after decline: %v", err)
	}
}

func TestAcceptMissingRequest(t *testing.T) {
	svc, _, _ := newFriendFixture()

	if err := svc.Accept(context.Background(), 2, 1); !errors.Is(err, ErrFriendRequestNotFound) {
		t.Fatalf("accept without request: got %v, want ErrFriendRequestNotFound", err)
	}
	if err := svc.Decline(context.Background(), 2, 1); !errors.Is(err, ErrFriendRequestNotFound) {
		t.Fatalf("decline without request: got %v, want ErrFriendRequestNotFound", err)
	}
}

func TestFriendsAndRelationship(t *testing.T) {
	svc, _, _ := newFriendFixture()
	ctx := context.Background()

	_ = svc.SendRequest(ctx, 1, 2)
	_ = svc.Accept(ctx, 2, 1)
	_ = svc.SendRequest(ctx, 1, 3)

	friends, err := svc.Friends(ctx, 1)
	if err != nil || len(friends) != 1 || friends[0].UserID != 2 {
		t.Fatalf("friends of 1 = %+v err=%v, want just user 2", friends, err)
	}

	cases := []struct {
		other uint64
		want  string
	}{
		{2, "friends"},
		{3, "request_sent"},
		{9, "none"},
	}
	for _, tc := range cases {
		rel, err := svc.Relationship(ctx, 1, tc.other)
		if err != nil || rel.Status != tc.want {
			t.Fatalf("relationship(1,%d) = %v err=%v, want %q", tc.other, rel, err, tc.want)
		}
	}

	rel, _ := svc.Relationship(ctx, 3, 1)
	if rel.Status != "request_received" {
		t.Fatalf("relationship(3,1) = %q, want request_received", rel.Status)
	}
}
