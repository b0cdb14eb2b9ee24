package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/leopark123/ideahub/internal/repos"
	"github.com/leopark123/ideahub/internal/repos/testutil"
	"github.com/leopark123/ideahub/internal/types"
)

func newMessageTestEnv(t *testing.T) (MessageService, *types.User, *types.User) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	sender := testutil.SeedUser(t, ctx, db, fmt.Sprintf("sender-%s@example.com", uuid.NewString()))
	receiver := testutil.SeedUser(t, ctx, db, fmt.Sprintf("receiver-%s@example.com", uuid.NewString()))

	t.Cleanup(func() {
		db.Where("sender_id IN ? OR receiver_id IN ?",
			[]uuid.UUID{sender.ID, receiver.ID}, []uuid.UUID{sender.ID, receiver.ID}).
			Delete(&types.Message{})
		db.Delete(&types.User{}, "id IN ?", []uuid.UUID{sender.ID, receiver.ID})
	})

	service := NewMessageService(db, log, repos.NewMessageRepo(db, log), repos.NewUserRepo(db, log))
	return service, sender, receiver
}

func TestSendMessage(t *testing.T) {
	service, sender, receiver := newMessageTestEnv(t)
	ctx := context.Background()

	sent, err := service.Send(ctx, sender.ID, MessageCreate{
		ReceiverID: receiver.ID,
		Content:    "hello",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sent.MessageType != types.MessageTypeText {
		t.Fatalf("expected default type text, got %s", sent.MessageType)
	}
	if sent.IsRead {
		t.Fatalf("new message must start unread")
	}

	_, err = service.Send(ctx, sender.ID, MessageCreate{
		ReceiverID: sender.ID,
		Content:    "to myself",
	})
	if err == nil {
		t.Fatalf("self send: expected error")
	}
	if code := apiCode(t, err); code != "INVALID_STATE" {
		t.Fatalf("self send: expected INVALID_STATE, got %s", code)
	}

	_, err = service.Send(ctx, sender.ID, MessageCreate{
		ReceiverID: uuid.New(),
		Content:    "to nobody",
	})
	if err == nil {
		t.Fatalf("unknown receiver: expected error")
	}
	if code := apiCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("unknown receiver: expected NOT_FOUND, got %s", code)
	}
}

func TestConversationFlow(t *testing.T) {
	service, sender, receiver := newMessageTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := service.Send(ctx, sender.ID, MessageCreate{
			ReceiverID: receiver.ID,
			Content:    fmt.Sprintf("msg %d", i),
		}); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}

	list, err := service.ListConversations(ctx, receiver.ID)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(list.Conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(list.Conversations))
	}
	if list.TotalUnread != 3 {
		t.Fatalf("expected 3 total unread, got %d", list.TotalUnread)
	}
	if list.Conversations[0].UserID != sender.ID {
		t.Fatalf("expected counterparty %s, got %s", sender.ID, list.Conversations[0].UserID)
	}

	affected, err := service.MarkConversationRead(ctx, receiver.ID, sender.ID)
	if err != nil {
		t.Fatalf("MarkConversationRead: %v", err)
	}
	if affected != 3 {
		t.Fatalf("expected 3 marked, got %d", affected)
	}

	count, err := service.UnreadCount(ctx, receiver.ID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 unread after marking, got %d", count)
	}

	page, err := service.GetConversation(ctx, receiver.ID, sender.ID, 1, 10)
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 3 {
		t.Fatalf("expected 3 messages, got total=%d items=%d", page.Total, len(page.Items))
	}

	// A user with no history gets an empty list, not an error.
	list, err = service.ListConversations(ctx, uuid.New())
	if err != nil {
		t.Fatalf("ListConversations (empty): %v", err)
	}
	if len(list.Conversations) != 0 || list.TotalUnread != 0 {
		t.Fatalf("expected empty conversation list, got %+v", list)
	}
}
