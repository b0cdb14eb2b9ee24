package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/leopark123/ideahub/internal/apierr"
	"github.com/leopark123/ideahub/internal/repos"
	"github.com/leopark123/ideahub/internal/repos/testutil"
	"github.com/leopark123/ideahub/internal/types"
	"gorm.io/gorm"
)

type investmentTestEnv struct {
	db               *gorm.DB
	investmentRepo   repos.InvestmentRepo
	crowdfundingRepo repos.CrowdfundingRepo
	service          InvestmentService
	investor         *types.User
	crowdfunding     *types.Crowdfunding
}

// newInvestmentTestEnv seeds a committed owner, investor, active campaign and
// wires a real InvestmentService against them. Settlement opens its own
// transactions, so the fixtures must be committed rather than rolled back;
// cleanup deletes them by id.
func newInvestmentTestEnv(t *testing.T) *investmentTestEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, fmt.Sprintf("owner-%s@example.com", uuid.NewString()))
	investor := testutil.SeedUser(t, ctx, db, fmt.Sprintf("investor-%s@example.com", uuid.NewString()))
	project := testutil.SeedProject(t, ctx, db, owner.ID, types.ProjectStatusFunding)
	crowdfunding := testutil.SeedCrowdfunding(t, ctx, db, project.ID, types.CrowdfundingStatusActive)

	t.Cleanup(func() {
		db.Where("crowdfunding_id = ?", crowdfunding.ID).Delete(&types.Investment{})
		db.Delete(&types.Crowdfunding{}, "id = ?", crowdfunding.ID)
		db.Delete(&types.Project{}, "id = ?", project.ID)
		db.Delete(&types.User{}, "id IN ?", []uuid.UUID{owner.ID, investor.ID})
	})

	investmentRepo := repos.NewInvestmentRepo(db, log)
	crowdfundingRepo := repos.NewCrowdfundingRepo(db, log)
	service := NewInvestmentService(db, log, investmentRepo, crowdfundingRepo, NewCacheService(nil, log))

	return &investmentTestEnv{
		db:               db,
		investmentRepo:   investmentRepo,
		crowdfundingRepo: crowdfundingRepo,
		service:          service,
		investor:         investor,
		crowdfunding:     crowdfunding,
	}
}

func (env *investmentTestEnv) reloadCampaign(t *testing.T) *types.Crowdfunding {
	t.Helper()
	got, err := env.crowdfundingRepo.GetByIDs(context.Background(), nil, []uuid.UUID{env.crowdfunding.ID})
	if err != nil {
		t.Fatalf("reload campaign: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("reload campaign: expected 1 row, got %d", len(got))
	}
	return got[0]
}

func apiCode(t *testing.T, err error) string {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	return ae.Code
}

func TestConfirmSettlesInvestmentAndCampaign(t *testing.T) {
	env := newInvestmentTestEnv(t)
	ctx := context.Background()

	created, err := env.service.Create(ctx, env.investor.ID, InvestmentCreate{
		CrowdfundingID: env.crowdfunding.ID,
		Amount:         decimal.NewFromInt(500),
		PaymentMethod:  types.PaymentMethodAlipay,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != types.InvestmentStatusPending {
		t.Fatalf("Create: expected pending, got %s", created.Status)
	}
	if created.TransactionID != nil {
		t.Fatalf("Create: transaction id must not be set before settlement")
	}

	before := env.reloadCampaign(t)
	if !before.CurrentAmount.IsZero() || before.InvestorCount != 0 {
		t.Fatalf("pledge must not move campaign totals: amount=%s count=%d", before.CurrentAmount, before.InvestorCount)
	}

	confirmed, err := env.service.Confirm(ctx, created.ID, "TXN1")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if confirmed.Status != types.InvestmentStatusPaid {
		t.Fatalf("Confirm: expected paid, got %s", confirmed.Status)
	}
	if confirmed.TransactionID == nil || *confirmed.TransactionID != "TXN1" {
		t.Fatalf("Confirm: transaction id not recorded: %+v", confirmed.TransactionID)
	}

	after := env.reloadCampaign(t)
	if !after.CurrentAmount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("Confirm: expected current amount 500, got %s", after.CurrentAmount)
	}
	if after.InvestorCount != 1 {
		t.Fatalf("Confirm: expected investor count 1, got %d", after.InvestorCount)
	}
}

func TestConfirmIsIdempotentPerInvestment(t *testing.T) {
	env := newInvestmentTestEnv(t)
	ctx := context.Background()

	created, err := env.service.Create(ctx, env.investor.ID, InvestmentCreate{
		CrowdfundingID: env.crowdfunding.ID,
		Amount:         decimal.NewFromInt(300),
		PaymentMethod:  types.PaymentMethodWechat,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := env.service.Confirm(ctx, created.ID, "TXN-A"); err != nil {
		t.Fatalf("first Confirm: %v", err)
	}

	_, err = env.service.Confirm(ctx, created.ID, "TXN-B")
	if err == nil {
		t.Fatalf("second Confirm: expected error")
	}
	if code := apiCode(t, err); code != "INVALID_STATE" {
		t.Fatalf("second Confirm: expected INVALID_STATE, got %s", code)
	}

	// The rejected retry must not double-count.
	after := env.reloadCampaign(t)
	if !after.CurrentAmount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected current amount 300, got %s", after.CurrentAmount)
	}
	if after.InvestorCount != 1 {
		t.Fatalf("expected investor count 1, got %d", after.InvestorCount)
	}
	reloaded, err := env.service.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if reloaded.TransactionID == nil || *reloaded.TransactionID != "TXN-A" {
		t.Fatalf("retry must not overwrite the transaction id: %+v", reloaded.TransactionID)
	}
}

func TestConfirmConcurrentSettlements(t *testing.T) {
	env := newInvestmentTestEnv(t)
	ctx := context.Background()

	const n = 8
	amount := decimal.NewFromInt(250)
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		inv := testutil.SeedPendingInvestment(t, ctx, env.db, env.investor.ID, env.crowdfunding.ID, amount)
		ids = append(ids, inv.ID)
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			if _, err := env.service.Confirm(ctx, id, fmt.Sprintf("TXN-%d", i)); err != nil {
				errs <- err
			}
		}(i, id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent Confirm: %v", err)
	}

	after := env.reloadCampaign(t)
	want := amount.Mul(decimal.NewFromInt(n))
	if !after.CurrentAmount.Equal(want) {
		t.Fatalf("expected current amount %s, got %s", want, after.CurrentAmount)
	}
	if after.InvestorCount != n {
		t.Fatalf("expected investor count %d, got %d", n, after.InvestorCount)
	}
}

func TestCreateRejectsInvalidPledges(t *testing.T) {
	env := newInvestmentTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Create(ctx, env.investor.ID, InvestmentCreate{
		CrowdfundingID: env.crowdfunding.ID,
		Amount:         decimal.NewFromInt(50),
	})
	if err == nil {
		t.Fatalf("below minimum: expected error")
	}
	if code := apiCode(t, err); code != "OUT_OF_RANGE" {
		t.Fatalf("below minimum: expected OUT_OF_RANGE, got %s", code)
	}

	// Even if a campaign row carries a broken non-positive minimum, the
	// pledge amount itself must still be positive.
	env.crowdfunding.MinInvestment = decimal.Zero
	if _, err := env.crowdfundingRepo.Update(ctx, nil, env.crowdfunding); err != nil {
		t.Fatalf("zero out minimum: %v", err)
	}
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		_, err = env.service.Create(ctx, env.investor.ID, InvestmentCreate{
			CrowdfundingID: env.crowdfunding.ID,
			Amount:         amount,
		})
		if err == nil {
			t.Fatalf("non-positive amount %s: expected error", amount)
		}
		if code := apiCode(t, err); code != "OUT_OF_RANGE" {
			t.Fatalf("non-positive amount %s: expected OUT_OF_RANGE, got %s", amount, code)
		}
	}
	env.crowdfunding.MinInvestment = decimal.NewFromInt(100)
	if _, err := env.crowdfundingRepo.Update(ctx, nil, env.crowdfunding); err != nil {
		t.Fatalf("restore minimum: %v", err)
	}

	env.crowdfunding.MaxInvestment = testutil.PtrDecimal(decimal.NewFromInt(1000))
	if _, err := env.crowdfundingRepo.Update(ctx, nil, env.crowdfunding); err != nil {
		t.Fatalf("set max investment: %v", err)
	}
	_, err = env.service.Create(ctx, env.investor.ID, InvestmentCreate{
		CrowdfundingID: env.crowdfunding.ID,
		Amount:         decimal.NewFromInt(5000),
	})
	if err == nil {
		t.Fatalf("above maximum: expected error")
	}
	if code := apiCode(t, err); code != "OUT_OF_RANGE" {
		t.Fatalf("above maximum: expected OUT_OF_RANGE, got %s", code)
	}

	env.crowdfunding.Status = types.CrowdfundingStatusPending
	if _, err := env.crowdfundingRepo.Update(ctx, nil, env.crowdfunding); err != nil {
		t.Fatalf("set campaign pending: %v", err)
	}
	_, err = env.service.Create(ctx, env.investor.ID, InvestmentCreate{
		CrowdfundingID: env.crowdfunding.ID,
		Amount:         decimal.NewFromInt(500),
	})
	if err == nil {
		t.Fatalf("inactive campaign: expected error")
	}
	if code := apiCode(t, err); code != "INVALID_STATE" {
		t.Fatalf("inactive campaign: expected INVALID_STATE, got %s", code)
	}

	_, err = env.service.Create(ctx, env.investor.ID, InvestmentCreate{
		CrowdfundingID: uuid.New(),
		Amount:         decimal.NewFromInt(500),
	})
	if err == nil {
		t.Fatalf("unknown campaign: expected error")
	}
	if code := apiCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("unknown campaign: expected NOT_FOUND, got %s", code)
	}
}

// failingCampaignRepo delegates everything except Update, which always
// fails. It simulates the campaign-totals write dying mid-settlement.
type failingCampaignRepo struct {
	repos.CrowdfundingRepo
}

func (r *failingCampaignRepo) Update(ctx context.Context, tx *gorm.DB, crowdfunding *types.Crowdfunding) (*types.Crowdfunding, error) {
	return nil, errors.New("campaign write failed")
}

func TestConfirmRollsBackOnCampaignWriteFailure(t *testing.T) {
	env := newInvestmentTestEnv(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	created, err := env.service.Create(ctx, env.investor.ID, InvestmentCreate{
		CrowdfundingID: env.crowdfunding.ID,
		Amount:         decimal.NewFromInt(400),
		PaymentMethod:  types.PaymentMethodBank,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	broken := NewInvestmentService(env.db, log, env.investmentRepo,
		&failingCampaignRepo{env.crowdfundingRepo}, NewCacheService(nil, log))

	_, err = broken.Confirm(ctx, created.ID, "TXN-FAIL")
	if err == nil {
		t.Fatalf("Confirm: expected error when the campaign write fails")
	}

	// The whole settlement rolls back: the investment row written before
	// the failing campaign update must not survive.
	reloaded, err := env.service.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if reloaded.Status != types.InvestmentStatusPending {
		t.Fatalf("expected investment still pending, got %s", reloaded.Status)
	}
	if reloaded.TransactionID != nil {
		t.Fatalf("transaction id must not survive a rollback: %+v", reloaded.TransactionID)
	}
	campaign := env.reloadCampaign(t)
	if !campaign.CurrentAmount.IsZero() || campaign.InvestorCount != 0 {
		t.Fatalf("campaign totals moved despite rollback: %s / %d", campaign.CurrentAmount, campaign.InvestorCount)
	}

	// The pledge stays retry-safe and settles once the write path recovers.
	if _, err := env.service.Confirm(ctx, created.ID, "TXN-RETRY"); err != nil {
		t.Fatalf("Confirm retry: %v", err)
	}
	campaign = env.reloadCampaign(t)
	if !campaign.CurrentAmount.Equal(decimal.NewFromInt(400)) || campaign.InvestorCount != 1 {
		t.Fatalf("retry did not settle exactly once: %s / %d", campaign.CurrentAmount, campaign.InvestorCount)
	}
}

func TestConfirmUnknownInvestment(t *testing.T) {
	env := newInvestmentTestEnv(t)

	_, err := env.service.Confirm(context.Background(), uuid.New(), "TXN-X")
	if err == nil {
		t.Fatalf("expected error")
	}
	if code := apiCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}
