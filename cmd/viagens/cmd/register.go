package cmd

import (
	"github.com/spf13/cobra"

	"github.com/franceviagens/portal/internal/domain"
	"github.com/franceviagens/portal/internal/i18n"
)

func newRegisterCmd(rt *runtime) *cobra.Command {
	var details domain.RegistrationDetails

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Send one registration request to AuthService and print its answer.

Examples:
  viagens register --username Ana --email ana@example.com
  viagens register --username Ana --email ana@example.com --confirm-precheck`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)
			printer := i18n.Printer(rt.lang)

			var err error
			if details.Username, err = p.value(details.Username, printer.Sprintf(i18n.LabelUsername)); err != nil {
				return err
			}
			if details.Email, err = p.value(details.Email, printer.Sprintf(i18n.LabelEmail)); err != nil {
				return err
			}
			if details.Password, err = p.secret(details.Password, printer.Sprintf(i18n.LabelPassword)); err != nil {
				return err
			}
			if details.ConfirmPassword, err = p.secret(details.ConfirmPassword, printer.Sprintf(i18n.LabelConfirm)); err != nil {
				return err
			}

			f := rt.flows.Register(rt.lang)
			f.SetUsername(details.Username)
			f.SetEmail(details.Email)
			f.SetPassword(details.Password)
			f.SetConfirmPassword(details.ConfirmPassword)

			r, err := f.Submit(cmd.Context())
			if err != nil {
				return err
			}
			return report(cmd, r)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&details.Username, "username", "", "display name")
	flags.StringVar(&details.Email, "email", "", "account email")
	flags.StringVar(&details.Password, "password", "", "password (prompted when empty)")
	flags.StringVar(&details.ConfirmPassword, "confirm-password", "", "password confirmation (prompted when empty)")
	return cmd
}
