package services

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leopark123/ideahub/internal/apierr"
  "github.com/leopark123/ideahub/internal/logger"
  "github.com/leopark123/ideahub/internal/repos"
  "github.com/leopark123/ideahub/internal/types"
)

type MessageCreate struct {
  ReceiverID     uuid.UUID           `json:"receiver_id" binding:"required"`
  Content        string              `json:"content" binding:"required"`
  MessageType    types.MessageType   `json:"message_type"`
  AttachmentURL  string              `json:"attachment_url"`
  AttachmentName string              `json:"attachment_name"`
  ProjectID      *uuid.UUID          `json:"project_id"`
}

type MessagePage struct {
  Items    []*types.Message   `json:"items"`
  Total    int64              `json:"total"`
  Page     int                `json:"page"`
  PageSize int                `json:"page_size"`
}

type MessageService interface {
  Send(ctx context.Context, senderID uuid.UUID, data MessageCreate) (*types.Message, error)
  GetConversation(ctx context.Context, userID, otherUserID uuid.UUID, page, pageSize int) (*MessagePage, error)
  // ListConversations returns one summary per counterparty, newest
  // conversation first, plus the grand total of unread messages.
  ListConversations(ctx context.Context, userID uuid.UUID) (*types.ConversationList, error)
  MarkConversationRead(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error)
  UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type messageService struct {
  db          *gorm.DB
  log         *logger.Logger
  messageRepo repos.MessageRepo
  userRepo    repos.UserRepo
}

func NewMessageService(db *gorm.DB, baseLog *logger.Logger, messageRepo repos.MessageRepo, userRepo repos.UserRepo) MessageService {
  serviceLog := baseLog.With("service", "MessageService")
  return &messageService{db: db, log: serviceLog, messageRepo: messageRepo, userRepo: userRepo}
}

func (ms *messageService) Send(ctx context.Context, senderID uuid.UUID, data MessageCreate) (*types.Message, error) {
  if data.ReceiverID == senderID {
    return nil, apierr.InvalidState("cannot send a message to yourself")
  }
  receivers, err := ms.userRepo.GetByIDs(ctx, nil, []uuid.UUID{data.ReceiverID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load receiver: %w", err))
  }
  if len(receivers) == 0 {
    return nil, apierr.NotFound("receiver %s not found", data.ReceiverID)
  }

  messageType := data.MessageType
  if messageType == "" {
    messageType = types.MessageTypeText
  }
  message := &types.Message{
    ID:             uuid.New(),
    SenderID:       senderID,
    ReceiverID:     data.ReceiverID,
    Content:        data.Content,
    MessageType:    messageType,
    AttachmentURL:  data.AttachmentURL,
    AttachmentName: data.AttachmentName,
    ProjectID:      data.ProjectID,
  }
  if _, err := ms.messageRepo.Create(ctx, nil, []*types.Message{message}); err != nil {
    ms.log.Error("Send message failed", "error", err)
    return nil, apierr.Internal(fmt.Errorf("create message: %w", err))
  }
  return message, nil
}

func (ms *messageService) GetConversation(ctx context.Context, userID, otherUserID uuid.UUID, page, pageSize int) (*MessagePage, error) {
  items, total, err := ms.messageRepo.GetConversation(ctx, nil, userID, otherUserID, page, pageSize)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("load conversation: %w", err))
  }
  if page < 1 {
    page = 1
  }
  if pageSize < 1 {
    pageSize = 50
  }
  return &MessagePage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (ms *messageService) ListConversations(ctx context.Context, userID uuid.UUID) (*types.ConversationList, error) {
  summaries, err := ms.messageRepo.ListConversations(ctx, nil, userID)
  if err != nil {
    ms.log.Error("ListConversations failed", "error", err, "user_id", userID)
    return nil, apierr.Internal(fmt.Errorf("list conversations: %w", err))
  }
  totalUnread := 0
  for _, s := range summaries {
    totalUnread += s.UnreadCount
  }
  return &types.ConversationList{Conversations: summaries, TotalUnread: totalUnread}, nil
}

func (ms *messageService) MarkConversationRead(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error) {
  affected, err := ms.messageRepo.MarkConversationRead(ctx, nil, receiverID, senderID)
  if err != nil {
    return 0, apierr.Internal(fmt.Errorf("mark conversation read: %w", err))
  }
  return affected, nil
}

func (ms *messageService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
  count, err := ms.messageRepo.UnreadCount(ctx, nil, userID)
  if err != nil {
    return 0, apierr.Internal(fmt.Errorf("unread count: %w", err))
  }
  return count, nil
}
