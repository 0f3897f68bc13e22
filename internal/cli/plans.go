package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	ucSubscription "github.com/BruksfildServices01/barber-booking/internal/usecase/subscription"
)

func newSetupPlanCmd(plans Plans) *cobra.Command {
	var (
		name        string
		description string
		price       string
		currency    string
	)

	cmd := &cobra.Command{
		Use:   "setup-plan",
		Short: "Cria o plano na Stripe e o torna o único plano ativo",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid --price %q: %w", price, err)
			}

			plan, err := plans.Setup(cmd.Context(), ucSubscription.PlanInput{
				Name:        name,
				Description: description,
				Price:       amount,
				Currency:    currency,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "plan %d active: %s %s %s (price %s)\n",
				plan.ID, plan.Name, plan.Price.StringFixed(2), plan.Currency, plan.StripePriceID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "nome do plano")
	cmd.Flags().StringVar(&description, "description", "", "descrição")
	cmd.Flags().StringVar(&price, "price", "", "preço mensal, ex.: 49.90")
	cmd.Flags().StringVar(&currency, "currency", "brl", "moeda ISO 4217")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newPlansCmd(plans Plans) *cobra.Command {
	plansCmd := &cobra.Command{
		Use:   "plans",
		Short: "Gerencia planos de assinatura",
	}

	plansCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Lista os planos",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := plans.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tCURRENCY\tACTIVE")
			for _, p := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", p.ID, p.Name, p.Price.StringFixed(2), p.Currency, p.Active)
			}
			return w.Flush()
		},
	})

	plansCmd.AddCommand(&cobra.Command{
		Use:   "activate <id>",
		Short: "Ativa um plano e desativa os demais",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			plan, err := plans.Activate(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "plan %d (%s) is now active\n", plan.ID, plan.Name)
			return nil
		},
	})

	return plansCmd
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}
