package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/franceviagens/portal/internal/domain"
	"github.com/franceviagens/portal/internal/i18n"
)

func newLoginCmd(rt *runtime) *cobra.Command {
	var creds domain.LoginCredentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an account",
		Long: `Send one login request to AuthService.

The command exits with status 1 and prints the server's message when the
login is refused, and exits quietly with status 0 when it is accepted.

Examples:
  viagens login --email ana@example.com          # asks for the password
  viagens login --email ana@example.com --password s3cret --lang en`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)
			printer := i18n.Printer(rt.lang)

			var err error
			if creds.Email, err = p.value(creds.Email, printer.Sprintf(i18n.LabelEmail)); err != nil {
				return err
			}
			if creds.Password, err = p.secret(creds.Password, printer.Sprintf(i18n.LabelPassword)); err != nil {
				return err
			}

			f := rt.flows.Login(rt.lang)
			f.SetEmail(creds.Email)
			f.SetPassword(creds.Password)

			r, err := f.Submit(cmd.Context())
			if err != nil {
				return err
			}
			return report(cmd, r)
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password (prompted when empty)")
	return cmd
}

// report prints a flow result: the error on stderr, a success message on stdout.
func report(cmd *cobra.Command, r domain.Result) error {
	switch {
	case r.HasError():
		fmt.Fprintln(cmd.ErrOrStderr(), r.Error)
		return errFlowFailed
	case r.HasSuccess():
		fmt.Fprintln(cmd.OutOrStdout(), r.Success)
	}
	return nil
}
