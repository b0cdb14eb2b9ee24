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

type partnershipTestEnv struct {
	service   PartnershipService
	owner     *types.User
	applicant *types.User
	project   *types.Project
}

func newPartnershipTestEnv(t *testing.T) *partnershipTestEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, fmt.Sprintf("powner-%s@example.com", uuid.NewString()))
	applicant := testutil.SeedUser(t, ctx, db, fmt.Sprintf("papplicant-%s@example.com", uuid.NewString()))
	project := testutil.SeedProject(t, ctx, db, owner.ID, types.ProjectStatusActive)

	t.Cleanup(func() {
		db.Where("project_id = ?", project.ID).Delete(&types.Partnership{})
		db.Delete(&types.Project{}, "id = ?", project.ID)
		db.Delete(&types.User{}, "id IN ?", []uuid.UUID{owner.ID, applicant.ID})
	})

	service := NewPartnershipService(db, log, repos.NewPartnershipRepo(db, log), repos.NewProjectRepo(db, log))
	return &partnershipTestEnv{service: service, owner: owner, applicant: applicant, project: project}
}

func TestPartnershipLifecycle(t *testing.T) {
	env := newPartnershipTestEnv(t)
	ctx := context.Background()

	applied, err := env.service.Apply(ctx, env.applicant.ID, PartnershipApply{
		ProjectID:          env.project.ID,
		Position:           "backend",
		ApplicationMessage: "let me in",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if applied.Status != types.PartnershipStatusPending {
		t.Fatalf("expected pending, got %s", applied.Status)
	}
	if applied.Role != types.PartnershipRoleMember {
		t.Fatalf("expected default role member, got %s", applied.Role)
	}

	// A pending application blocks a second one.
	_, err = env.service.Apply(ctx, env.applicant.ID, PartnershipApply{ProjectID: env.project.ID})
	if err == nil {
		t.Fatalf("duplicate apply: expected error")
	}
	if code := apiCode(t, err); code != "CONFLICT" {
		t.Fatalf("duplicate apply: expected CONFLICT, got %s", code)
	}

	// Only the owner reviews.
	_, err = env.service.Approve(ctx, applied.ID, env.applicant.ID)
	if err == nil {
		t.Fatalf("non-owner approve: expected error")
	}
	if code := apiCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("non-owner approve: expected FORBIDDEN, got %s", code)
	}

	approved, err := env.service.Approve(ctx, applied.ID, env.owner.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != types.PartnershipStatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	// Approval is final; a second review is rejected.
	_, err = env.service.Reject(ctx, applied.ID, env.owner.ID)
	if err == nil {
		t.Fatalf("re-review: expected error")
	}
	if code := apiCode(t, err); code != "INVALID_STATE" {
		t.Fatalf("re-review: expected INVALID_STATE, got %s", code)
	}

	left, err := env.service.Leave(ctx, applied.ID, env.applicant.ID)
	if err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if left.Status != types.PartnershipStatusLeft {
		t.Fatalf("expected left, got %s", left.Status)
	}

	// Re-application after leaving resets the same row to pending.
	reapplied, err := env.service.Apply(ctx, env.applicant.ID, PartnershipApply{
		ProjectID: env.project.ID,
		Role:      types.PartnershipRoleAdvisor,
	})
	if err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if reapplied.ID != applied.ID {
		t.Fatalf("re-apply must reuse the existing row, got %s", reapplied.ID)
	}
	if reapplied.Status != types.PartnershipStatusPending {
		t.Fatalf("expected pending after re-apply, got %s", reapplied.Status)
	}
	if reapplied.Role != types.PartnershipRoleAdvisor {
		t.Fatalf("re-apply must update the role, got %s", reapplied.Role)
	}
}

func TestPartnershipApplyGuards(t *testing.T) {
	env := newPartnershipTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Apply(ctx, env.owner.ID, PartnershipApply{ProjectID: env.project.ID})
	if err == nil {
		t.Fatalf("own project: expected error")
	}
	if code := apiCode(t, err); code != "INVALID_STATE" {
		t.Fatalf("own project: expected INVALID_STATE, got %s", code)
	}

	_, err = env.service.Apply(ctx, env.applicant.ID, PartnershipApply{ProjectID: uuid.New()})
	if err == nil {
		t.Fatalf("unknown project: expected error")
	}
	if code := apiCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("unknown project: expected NOT_FOUND, got %s", code)
	}
}
