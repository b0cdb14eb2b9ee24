package types

import (
  "time"
  "github.com/google/uuid"
)

type MessageType string

const (
  MessageTypeText         MessageType = "text"
  MessageTypeImage        MessageType = "image"
  MessageTypeFile         MessageType = "file"
  MessageTypeSystem       MessageType = "system"
  MessageTypeNotification MessageType = "notification"
)

// Message is append-only; only IsRead/ReadAt are ever mutated after insert.
type Message struct {
  ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  SenderID        uuid.UUID     `gorm:"type:uuid;not null;index;column:sender_id" json:"sender_id"`
  ReceiverID      uuid.UUID     `gorm:"type:uuid;not null;index;column:receiver_id" json:"receiver_id"`
  Content         string        `gorm:"not null;column:content" json:"content"`
  MessageType     MessageType   `gorm:"column:message_type;default:text" json:"message_type"`
  AttachmentURL   string        `gorm:"column:attachment_url" json:"attachment_url,omitempty"`
  AttachmentName  string        `gorm:"column:attachment_name" json:"attachment_name,omitempty"`
  IsRead          bool          `gorm:"column:is_read;default:false;index" json:"is_read"`
  ReadAt          *time.Time    `gorm:"column:read_at" json:"read_at,omitempty"`
  ProjectID       *uuid.UUID    `gorm:"type:uuid;column:project_id" json:"project_id,omitempty"`
  CreatedAt       time.Time     `gorm:"not null;index" json:"created_at"`
  UpdatedAt       time.Time     `gorm:"not null" json:"updated_at"`
}

func (Message) TableName() string {
  return "message"
}

// ConversationSummary is derived per counterparty, never persisted.
type ConversationSummary struct {
  UserID        uuid.UUID   `json:"user_id"`
  User          *UserBrief  `json:"user,omitempty"`
  LastMessage   *Message    `json:"last_message,omitempty"`
  UnreadCount   int         `json:"unread_count"`
}

type ConversationList struct {
  Conversations []ConversationSummary   `json:"conversations"`
  TotalUnread   int                     `json:"total_unread"`
}
