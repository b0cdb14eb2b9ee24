package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leopark123/ideahub/internal/repos/testutil"
)

func TestListConversations(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewMessageRepo(db, testutil.Logger(t))
	ctx := context.Background()

	me := testutil.SeedUser(t, ctx, tx, "me-conv@example.com")
	alice := testutil.SeedUser(t, ctx, tx, "alice-conv@example.com")
	bob := testutil.SeedUser(t, ctx, tx, "bob-conv@example.com")

	base := time.Now().UTC().Truncate(time.Second).Add(-time.Hour)

	// Conversation with alice: two messages, newest from alice, unread.
	testutil.SeedMessage(t, ctx, tx, me.ID, alice.ID, "hi alice", base)
	aliceLast := testutil.SeedMessage(t, ctx, tx, alice.ID, me.ID, "hi back", base.Add(10*time.Minute))

	// Conversation with bob: older, three unread messages from bob.
	testutil.SeedMessage(t, ctx, tx, bob.ID, me.ID, "one", base.Add(time.Minute))
	testutil.SeedMessage(t, ctx, tx, bob.ID, me.ID, "two", base.Add(2*time.Minute))
	bobLast := testutil.SeedMessage(t, ctx, tx, bob.ID, me.ID, "three", base.Add(3*time.Minute))

	summaries, err := repo.ListConversations(ctx, tx, me.ID)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(summaries))
	}

	// Newest conversation first.
	if summaries[0].UserID != alice.ID {
		t.Fatalf("expected alice first, got %s", summaries[0].UserID)
	}
	if summaries[1].UserID != bob.ID {
		t.Fatalf("expected bob second, got %s", summaries[1].UserID)
	}

	if summaries[0].LastMessage == nil || summaries[0].LastMessage.ID != aliceLast.ID {
		t.Fatalf("alice last message mismatch: %+v", summaries[0].LastMessage)
	}
	if summaries[1].LastMessage == nil || summaries[1].LastMessage.ID != bobLast.ID {
		t.Fatalf("bob last message mismatch: %+v", summaries[1].LastMessage)
	}

	if summaries[0].UnreadCount != 1 {
		t.Fatalf("expected 1 unread from alice, got %d", summaries[0].UnreadCount)
	}
	if summaries[1].UnreadCount != 3 {
		t.Fatalf("expected 3 unread from bob, got %d", summaries[1].UnreadCount)
	}

	if summaries[0].User == nil || summaries[0].User.ID != alice.ID {
		t.Fatalf("alice profile missing: %+v", summaries[0].User)
	}
}

func TestListConversationsTieBreak(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewMessageRepo(db, testutil.Logger(t))
	ctx := context.Background()

	me := testutil.SeedUser(t, ctx, tx, "me-tie@example.com")
	other := testutil.SeedUser(t, ctx, tx, "other-tie@example.com")

	// Two messages in the same pair with identical timestamps; the higher
	// message id must win deterministically.
	at := time.Now().UTC().Truncate(time.Second)
	m1 := testutil.SeedMessage(t, ctx, tx, me.ID, other.ID, "first", at)
	m2 := testutil.SeedMessage(t, ctx, tx, other.ID, me.ID, "second", at)

	want := m1
	if m2.ID.String() > m1.ID.String() {
		want = m2
	}

	summaries, err := repo.ListConversations(ctx, tx, me.ID)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(summaries))
	}
	if summaries[0].LastMessage == nil || summaries[0].LastMessage.ID != want.ID {
		t.Fatalf("tie break: expected %s, got %+v", want.ID, summaries[0].LastMessage)
	}
}

func TestListConversationsEmpty(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewMessageRepo(db, testutil.Logger(t))
	ctx := context.Background()

	loner := testutil.SeedUser(t, ctx, tx, "loner@example.com")

	summaries, err := repo.ListConversations(ctx, tx, loner.ID)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected no conversations, got %d", len(summaries))
	}
}

func TestMarkConversationRead(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewMessageRepo(db, testutil.Logger(t))
	ctx := context.Background()

	me := testutil.SeedUser(t, ctx, tx, "me-read@example.com")
	other := testutil.SeedUser(t, ctx, tx, "other-read@example.com")

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		testutil.SeedMessage(t, ctx, tx, other.ID, me.ID, "msg", base.Add(time.Duration(i)*time.Minute))
	}
	// A message in the other direction must be untouched by my read marker.
	testutil.SeedMessage(t, ctx, tx, me.ID, other.ID, "mine", base)

	count, err := repo.UnreadCount(ctx, tx, me.ID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 unread, got %d", count)
	}

	affected, err := repo.MarkConversationRead(ctx, tx, me.ID, other.ID)
	if err != nil {
		t.Fatalf("MarkConversationRead: %v", err)
	}
	if affected != 5 {
		t.Fatalf("expected 5 rows marked, got %d", affected)
	}

	// Idempotent: nothing left to mark.
	affected, err = repo.MarkConversationRead(ctx, tx, me.ID, other.ID)
	if err != nil {
		t.Fatalf("MarkConversationRead (repeat): %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows marked on repeat, got %d", affected)
	}

	count, err = repo.UnreadCount(ctx, tx, me.ID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 unread, got %d", count)
	}

	count, err = repo.UnreadCount(ctx, tx, other.ID)
	if err != nil {
		t.Fatalf("UnreadCount (other): %v", err)
	}
	if count != 1 {
		t.Fatalf("other user's unread must be untouched, got %d", count)
	}
}

func TestGetConversationPagination(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewMessageRepo(db, testutil.Logger(t))
	ctx := context.Background()

	me := testutil.SeedUser(t, ctx, tx, "me-page@example.com")
	other := testutil.SeedUser(t, ctx, tx, "other-page@example.com")
	third := testutil.SeedUser(t, ctx, tx, "third-page@example.com")

	base := time.Now().UTC().Truncate(time.Second)
	var newest uuid.UUID
	for i := 0; i < 7; i++ {
		from, to := me.ID, other.ID
		if i%2 == 1 {
			from, to = other.ID, me.ID
		}
		m := testutil.SeedMessage(t, ctx, tx, from, to, "msg", base.Add(time.Duration(i)*time.Minute))
		newest = m.ID
	}
	// Noise from an unrelated pair must not leak in.
	testutil.SeedMessage(t, ctx, tx, third.ID, me.ID, "noise", base.Add(time.Hour))

	items, total, err := repo.GetConversation(ctx, tx, me.ID, other.ID, 1, 3)
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if total != 7 {
		t.Fatalf("expected total 7, got %d", total)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != newest {
		t.Fatalf("expected newest message first, got %s", items[0].ID)
	}

	items, _, err = repo.GetConversation(ctx, tx, me.ID, other.ID, 3, 3)
	if err != nil {
		t.Fatalf("GetConversation (page 3): %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item on last page, got %d", len(items))
	}
}
