package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	ucOnboarding "github.com/BruksfildServices01/barber-booking/internal/usecase/onboarding"
)

// ======================================================
// barbershops
// ======================================================

func newBarbershopsCmd(onboarding Onboarding) *cobra.Command {
	shopsCmd := &cobra.Command{
		Use:   "barbershops",
		Short: "Gerencia barbearias",
	}

	var in ucOnboarding.BarbershopInput

	create := &cobra.Command{
		Use:   "create",
		Short: "Cadastra uma barbearia",
		RunE: func(cmd *cobra.Command, args []string) error {
			shop, err := onboarding.CreateBarbershop(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "barbershop %d created: %s (%s, %s)\n", shop.ID, shop.Name, shop.Slug, shop.Timezone)
			return nil
		},
	}
	create.Flags().StringVar(&in.Name, "name", "", "nome")
	create.Flags().StringVar(&in.Slug, "slug", "", "slug (gerado a partir do nome quando vazio)")
	create.Flags().StringVar(&in.Phone, "phone", "", "telefone")
	create.Flags().StringVar(&in.Address, "address", "", "endereço")
	create.Flags().StringVar(&in.Timezone, "timezone", "", "fuso IANA (padrão America/Sao_Paulo)")
	_ = create.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista as barbearias",
		RunE: func(cmd *cobra.Command, args []string) error {
			shops, err := onboarding.ListBarbershops(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSLUG\tTIMEZONE\tBARBER")
			for _, s := range shops {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", s.ID, s.Name, s.Slug, s.Timezone, s.HasBarber)
			}
			return w.Flush()
		},
	}

	shopsCmd.AddCommand(create, list)
	return shopsCmd
}

// ======================================================
// barber
// ======================================================

func newBarberCmd(onboarding Onboarding) *cobra.Command {
	barberCmd := &cobra.Command{
		Use:   "barber",
		Short: "Vínculo barbeiro-barbearia",
	}

	var (
		email  string
		shopID uint
	)

	link := &cobra.Command{
		Use:   "link",
		Short: "Torna o usuário barbeiro da barbearia",
		RunE: func(cmd *cobra.Command, args []string) error {
			barber, err := onboarding.LinkBarberByEmail(cmd.Context(), email, shopID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s linked as barber %d of barbershop %d\n", email, barber.ID, barber.BarbershopID)
			return nil
		},
	}
	link.Flags().StringVar(&email, "email", "", "email do usuário")
	link.Flags().UintVar(&shopID, "barbershop", 0, "id da barbearia")
	_ = link.MarkFlagRequired("email")
	_ = link.MarkFlagRequired("barbershop")

	barberCmd.AddCommand(link)
	return barberCmd
}

// ======================================================
// user
// ======================================================

func newUserCmd(onboarding Onboarding) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manutenção de usuários",
	}

	var email string

	resetRole := &cobra.Command{
		Use:   "reset-role",
		Short: "Remove o vínculo de barbeiro e volta o usuário para cliente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := onboarding.ResetRole(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s is now a client\n", email)
			return nil
		},
	}
	resetRole.Flags().StringVar(&email, "email", "", "email do usuário")
	_ = resetRole.MarkFlagRequired("email")

	del := &cobra.Command{
		Use:   "delete",
		Short: "Apaga o usuário e tudo que depende dele",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := onboarding.DeleteUser(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s deleted\n", email)
			return nil
		},
	}
	del.Flags().StringVar(&email, "email", "", "email do usuário")
	_ = del.MarkFlagRequired("email")

	userCmd.AddCommand(resetRole, del)
	return userCmd
}
