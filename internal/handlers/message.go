package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/leopark123/ideahub/internal/services"
)

type MessageHandler struct {
  messageService services.MessageService
}

func NewMessageHandler(messageService services.MessageService) *MessageHandler {
  return &MessageHandler{messageService: messageService}
}

func (mh *MessageHandler) Send(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.MessageCreate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  message, err := mh.messageService.Send(c.Request.Context(), userID, req)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondCreated(c, message)
}

func (mh *MessageHandler) ListConversations(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  list, err := mh.messageService.ListConversations(c.Request.Context(), userID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, list)
}

func (mh *MessageHandler) GetConversation(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  otherUserID, ok := parseIDParam(c, "userID")
  if !ok {
    return
  }
  page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
  pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
  conversation, err := mh.messageService.GetConversation(c.Request.Context(), userID, otherUserID, page, pageSize)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, conversation)
}

func (mh *MessageHandler) MarkConversationRead(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  otherUserID, ok := parseIDParam(c, "userID")
  if !ok {
    return
  }
  affected, err := mh.messageService.MarkConversationRead(c.Request.Context(), userID, otherUserID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"marked_read": affected})
}

func (mh *MessageHandler) UnreadCount(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  count, err := mh.messageService.UnreadCount(c.Request.Context(), userID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{"unread_count": count})
}
