package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/leopark123/ideahub/internal/requestdata"
)

// currentUserID pulls the authenticated user from the request context. The
// auth middleware guarantees it is set on protected routes; the fallback
// abort covers misrouted handlers.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
    return uuid.Nil, false
  }
  return rd.UserID, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param(name))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_ID", err)
    return uuid.Nil, false
  }
  return id, true
}
