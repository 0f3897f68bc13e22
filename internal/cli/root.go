package cli

import (
	"context"

	"github.com/spf13/cobra"

	onboardingDomain "github.com/BruksfildServices01/barber-booking/internal/domain/onboarding"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucOnboarding "github.com/BruksfildServices01/barber-booking/internal/usecase/onboarding"
	ucSubscription "github.com/BruksfildServices01/barber-booking/internal/usecase/subscription"
)

// Onboarding é implementado por usecase/onboarding.Onboarding.
type Onboarding interface {
	CreateBarbershop(ctx context.Context, in ucOnboarding.BarbershopInput) (*models.Barbershop, error)
	ListBarbershops(ctx context.Context) ([]onboardingDomain.BarbershopSummary, error)
	LinkBarberByEmail(ctx context.Context, email string, barbershopID uint) (*models.Barber, error)
	ResetRole(ctx context.Context, email string) error
	DeleteUser(ctx context.Context, email string) error
}

// Plans é implementado por usecase/subscription.Plans.
type Plans interface {
	Setup(ctx context.Context, in ucSubscription.PlanInput) (*models.Plan, error)
	Activate(ctx context.Context, planID uint) (*models.Plan, error)
	List(ctx context.Context) ([]models.Plan, error)
}

// NewRootCmd monta a CLI de operação (barber-admin).
func NewRootCmd(onboarding Onboarding, plans Plans) *cobra.Command {
	root := &cobra.Command{
		Use:           "barber-admin",
		Short:         "Ferramentas de operação do barber-booking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSetupPlanCmd(plans))
	root.AddCommand(newPlansCmd(plans))
	root.AddCommand(newBarbershopsCmd(onboarding))
	root.AddCommand(newBarberCmd(onboarding))
	root.AddCommand(newUserCmd(onboarding))

	return root
}
