package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/types"
)

type MessageRepo interface {
  Create(ctx context.Context, tx *gorm.DB, messages []*types.Message) ([]*types.Message, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, messageIDs []uuid.UUID) ([]*types.Message, error)
  GetConversation(ctx context.Context, tx *gorm.DB, user1ID, user2ID uuid.UUID, page, pageSize int) ([]*types.Message, int64, error)
  UnreadCount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
  MarkConversationRead(ctx context.Context, tx *gorm.DB, receiverID, senderID uuid.UUID) (int64, error)
  ListConversations(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.ConversationSummary, error)
}

type messageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
  repoLog := baseLog.With("repo", "MessageRepo")
  return &messageRepo{db: db, log: repoLog}
}

func (mr *messageRepo) Create(ctx context.Context, tx *gorm.DB, messages []*types.Message) ([]*types.Message, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  if len(messages) == 0 {
    return []*types.Message{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&messages).Error; err != nil {
    return nil, err
  }
  return messages, nil
}

func (mr *messageRepo) GetByIDs(ctx context.Context, tx *gorm.DB, messageIDs []uuid.UUID) ([]*types.Message, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  var results []*types.Message
  if len(messageIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", messageIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mr *messageRepo) GetConversation(ctx context.Context, tx *gorm.DB, user1ID, user2ID uuid.UUID, page, pageSize int) ([]*types.Message, int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  if page < 1 {
    page = 1
  }
  if pageSize < 1 {
    pageSize = 50
  }

  query := transaction.WithContext(ctx).
    Model(&types.Message{}).
    Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
      user1ID, user2ID, user2ID, user1ID)

  var total int64
  if err := query.Count(&total).Error; err != nil {
    return nil, 0, err
  }

  var results []*types.Message
  if err := query.
    Order("created_at DESC").
    Offset((page - 1) * pageSize).
    Limit(pageSize).
    Find(&results).Error; err != nil {
    return nil, 0, err
  }
  return results, total, nil
}

func (mr *messageRepo) UnreadCount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Message{}).
    Where("receiver_id = ? AND is_read = ?", userID, false).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (mr *messageRepo) MarkConversationRead(ctx context.Context, tx *gorm.DB, receiverID, senderID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  now := time.Now().UTC()
  result := transaction.WithContext(ctx).
    Model(&types.Message{}).
    Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
    Updates(map[string]interface{}{"is_read": true, "read_at": now})
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}

type conversationHead struct {
  OtherUserID     uuid.UUID   `gorm:"column:other_user_id"`
  LastMessageTime time.Time   `gorm:"column:last_message_time"`
}

type unreadRow struct {
  SenderID    uuid.UUID   `gorm:"column:sender_id"`
  UnreadCount int         `gorm:"column:unread_count"`
}

// ListConversations produces one summary per distinct counterparty ordered by
// most-recent-message time descending. The whole listing costs four bulk
// queries regardless of how many conversations the user has:
//   1. group messages by counterparty, taking max(created_at) per group
//   2. batch-load counterparty profiles
//   3. grouped unread counts from those counterparties
//   4. load the last-message rows by (pair, max timestamp) match
// Timestamps are not unique across pairs, so step 4 over-fetches and is
// post-filtered in memory; ties on identical timestamps within a pair break
// to the higher message id.
func (mr *messageRepo) ListConversations(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.ConversationSummary, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  // Step 1: counterparty ids + last message time per pair.
  var heads []conversationHead
  if err := transaction.WithContext(ctx).
    Model(&types.Message{}).
    Select("CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS other_user_id, MAX(created_at) AS last_message_time", userID).
    Where("sender_id = ? OR receiver_id = ?", userID, userID).
    Group("other_user_id").
    Order("last_message_time DESC").
    Scan(&heads).Error; err != nil {
    return nil, err
  }
  if len(heads) == 0 {
    return []types.ConversationSummary{}, nil
  }

  otherIDs := make([]uuid.UUID, 0, len(heads))
  for _, h := range heads {
    otherIDs = append(otherIDs, h.OtherUserID)
  }

  // Step 2: batch profile lookup.
  var users []*types.User
  if err := transaction.WithContext(ctx).
    Where("id IN ?", otherIDs).
    Find(&users).Error; err != nil {
    return nil, err
  }
  usersByID := make(map[uuid.UUID]*types.User, len(users))
  for _, u := range users {
    usersByID[u.ID] = u
  }

  // Step 3: grouped unread counts.
  var unread []unreadRow
  if err := transaction.WithContext(ctx).
    Model(&types.Message{}).
    Select("sender_id, COUNT(*) AS unread_count").
    Where("receiver_id = ? AND sender_id IN ? AND is_read = ?", userID, otherIDs, false).
    Group("sender_id").
    Scan(&unread).Error; err != nil {
    return nil, err
  }
  unreadByID := make(map[uuid.UUID]int, len(unread))
  for _, row := range unread {
    unreadByID[row.SenderID] = row.UnreadCount
  }

  // Step 4: last-message rows matched by pair + timestamp.
  var pairConds *gorm.DB
  for _, h := range heads {
    cond := transaction.Session(&gorm.Session{NewDB: true}).
      Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND created_at = ?",
        userID, h.OtherUserID, h.OtherUserID, userID, h.LastMessageTime)
    if pairConds == nil {
      pairConds = cond
    } else {
      pairConds = pairConds.Or(cond)
    }
  }
  var lastMessages []*types.Message
  if err := transaction.WithContext(ctx).
    Where(pairConds).
    Find(&lastMessages).Error; err != nil {
    return nil, err
  }

  lastByID := make(map[uuid.UUID]*types.Message, len(heads))
  for _, msg := range lastMessages {
    otherID := msg.SenderID
    if msg.SenderID == userID {
      otherID = msg.ReceiverID
    }
    prev, ok := lastByID[otherID]
    if !ok || msg.CreatedAt.After(prev.CreatedAt) {
      lastByID[otherID] = msg
      continue
    }
    // Equal timestamps within a pair: higher id wins.
    if msg.CreatedAt.Equal(prev.CreatedAt) && msg.ID.String() > prev.ID.String() {
      lastByID[otherID] = msg
    }
  }

  summaries := make([]types.ConversationSummary, 0, len(heads))
  for _, h := range heads {
    summary := types.ConversationSummary{
      UserID:      h.OtherUserID,
      LastMessage: lastByID[h.OtherUserID],
      UnreadCount: unreadByID[h.OtherUserID],
    }
    if u, ok := usersByID[h.OtherUserID]; ok {
      brief := u.Brief()
      summary.User = &brief
    }
    summaries = append(summaries, summary)
  }
  return summaries, nil
}
