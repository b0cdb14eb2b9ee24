package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/leopark123/ideahub/internal/types"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: "pw",
		Nickname:       "tester",
		Role:           types.UserRoleUser,
		IsActive:       true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, status types.ProjectStatus) *types.Project {
	tb.Helper()
	p := &types.Project{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       "project",
		Description: "desc",
		Category:    types.ProjectCategoryTech,
		Status:      status,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedCrowdfunding(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uuid.UUID, status types.CrowdfundingStatus) *types.Crowdfunding {
	tb.Helper()
	now := time.Now().UTC()
	c := &types.Crowdfunding{
		ID:            uuid.New(),
		ProjectID:     projectID,
		TargetAmount:  decimal.NewFromInt(50000),
		CurrentAmount: decimal.Zero,
		MinInvestment: decimal.NewFromInt(100),
		StartTime:     now,
		EndTime:       now.Add(30 * 24 * time.Hour),
		Status:        status,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed crowdfunding: %v", err)
	}
	return c
}

func SeedPendingInvestment(tb testing.TB, ctx context.Context, tx *gorm.DB, investorID, crowdfundingID uuid.UUID, amount decimal.Decimal) *types.Investment {
	tb.Helper()
	inv := &types.Investment{
		ID:             uuid.New(),
		InvestorID:     investorID,
		CrowdfundingID: crowdfundingID,
		Amount:         amount,
		PaymentMethod:  types.PaymentMethodAlipay,
		Status:         types.InvestmentStatusPending,
	}
	if err := tx.WithContext(ctx).Create(inv).Error; err != nil {
		tb.Fatalf("seed investment: %v", err)
	}
	return inv
}

func SeedMessage(tb testing.TB, ctx context.Context, tx *gorm.DB, senderID, receiverID uuid.UUID, content string, createdAt time.Time) *types.Message {
	tb.Helper()
	m := &types.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Content:     content,
		MessageType: types.MessageTypeText,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed message: %v", err)
	}
	return m
}

func PtrDecimal(v decimal.Decimal) *decimal.Decimal { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
