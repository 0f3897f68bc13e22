package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	onboardingDomain "github.com/BruksfildServices01/barber-booking/internal/domain/onboarding"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucOnboarding "github.com/BruksfildServices01/barber-booking/internal/usecase/onboarding"
	ucSubscription "github.com/BruksfildServices01/barber-booking/internal/usecase/subscription"
)

type fakeOnboarding struct {
	created    ucOnboarding.BarbershopInput
	linked     string
	linkedTo   uint
	resetFor   string
	deletedFor string
}

func (f *fakeOnboarding) CreateBarbershop(_ context.Context, in ucOnboarding.BarbershopInput) (*models.Barbershop, error) {
	f.created = in
	return &models.Barbershop{ID: 1, Name: in.Name, Slug: "navalha", Timezone: "America/Sao_Paulo"}, nil
}

func (f *fakeOnboarding) ListBarbershops(context.Context) ([]onboardingDomain.BarbershopSummary, error) {
	return []onboardingDomain.BarbershopSummary{
		{Barbershop: models.Barbershop{ID: 1, Name: "Navalha", Slug: "navalha"}, HasBarber: true},
	}, nil
}

func (f *fakeOnboarding) LinkBarberByEmail(_ context.Context, email string, shopID uint) (*models.Barber, error) {
	f.linked, f.linkedTo = email, shopID
	return &models.Barber{ID: 4, BarbershopID: shopID}, nil
}

func (f *fakeOnboarding) ResetRole(_ context.Context, email string) error {
	f.resetFor = email
	return nil
}

func (f *fakeOnboarding) DeleteUser(_ context.Context, email string) error {
	f.deletedFor = email
	return nil
}

type fakePlans struct {
	setup     ucSubscription.PlanInput
	activated uint
}

func (f *fakePlans) Setup(_ context.Context, in ucSubscription.PlanInput) (*models.Plan, error) {
	f.setup = in
	return &models.Plan{ID: 2, Name: in.Name, Price: in.Price, Currency: in.Currency, Active: true}, nil
}

func (f *fakePlans) Activate(_ context.Context, id uint) (*models.Plan, error) {
	f.activated = id
	return &models.Plan{ID: id, Name: "Mensal"}, nil
}

func (f *fakePlans) List(context.Context) ([]models.Plan, error) {
	return []models.Plan{{ID: 2, Name: "Mensal", Currency: "brl", Active: true}}, nil
}

func run(t *testing.T, onb *fakeOnboarding, plans *fakePlans, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd(onb, plans)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSetupPlan(t *testing.T) {
	plans := &fakePlans{}

	out, err := run(t, &fakeOnboarding{}, plans, "setup-plan", "--name", "Mensal", "--price", "49.90")
	if err != nil {
		t.Fatal(err)
	}
	if plans.setup.Price.StringFixed(2) != "49.90" || plans.setup.Currency != "brl" {
		t.Fatalf("unexpected input: %+v", plans.setup)
	}
	if !strings.Contains(out, "plan 2 active") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSetupPlanRejectsBadPrice(t *testing.T) {
	if _, err := run(t, &fakeOnboarding{}, &fakePlans{}, "setup-plan", "--name", "Mensal", "--price", "abc"); err == nil {
		t.Fatal("expected error")
	}
}

func TestPlansActivate(t *testing.T) {
	plans := &fakePlans{}

	if _, err := run(t, &fakeOnboarding{}, plans, "plans", "activate", "7"); err != nil {
		t.Fatal(err)
	}
	if plans.activated != 7 {
		t.Fatalf("expected plan 7, got %d", plans.activated)
	}

	if _, err := run(t, &fakeOnboarding{}, plans, "plans", "activate", "x"); err == nil {
		t.Fatal("expected invalid id error")
	}
}

func TestBarbershopsAndUsers(t *testing.T) {
	onb := &fakeOnboarding{}

	if _, err := run(t, onb, &fakePlans{}, "barbershops", "create", "--name", "Navalha", "--timezone", "America/Recife"); err != nil {
		t.Fatal(err)
	}
	if onb.created.Name != "Navalha" || onb.created.Timezone != "America/Recife" {
		t.Fatalf("unexpected input: %+v", onb.created)
	}

	out, err := run(t, onb, &fakePlans{}, "barbershops", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "navalha") {
		t.Fatalf("unexpected list output: %q", out)
	}

	if _, err := run(t, onb, &fakePlans{}, "barber", "link", "--email", "ze@example.com", "--barbershop", "1"); err != nil {
		t.Fatal(err)
	}
	if onb.linked != "ze@example.com" || onb.linkedTo != 1 {
		t.Fatalf("unexpected link: %s %d", onb.linked, onb.linkedTo)
	}

	if _, err := run(t, onb, &fakePlans{}, "user", "reset-role", "--email", "ze@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, onb, &fakePlans{}, "user", "delete", "--email", "ana@example.com"); err != nil {
		t.Fatal(err)
	}
	if onb.resetFor != "ze@example.com" || onb.deletedFor != "ana@example.com" {
		t.Fatalf("unexpected calls: %+v", onb)
	}
}

func TestBarberLinkRequiresFlags(t *testing.T) {
	if _, err := run(t, &fakeOnboarding{}, &fakePlans{}, "barber", "link", "--email", "ze@example.com"); err == nil {
		t.Fatal("expected missing flag error")
	}
}
