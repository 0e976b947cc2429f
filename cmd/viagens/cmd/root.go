// Package cmd implements the viagens command line client, which drives the
// login and registration flows from a terminal.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/franceviagens/portal/internal/app"
	"github.com/franceviagens/portal/internal/config"
	"github.com/franceviagens/portal/internal/flowstore"
	"github.com/franceviagens/portal/internal/i18n"
	"github.com/franceviagens/portal/internal/logging"
)

// errFlowFailed is returned when a flow ends in its Error state. Its message
// has already been printed.
var errFlowFailed = errors.New("flow failed")

// runtime is what a subcommand needs once flags and configuration are resolved.
type runtime struct {
	flows flowstore.Factory
	lang  language.Tag
}

type rootOptions struct {
	authURL  string
	timeout  time.Duration
	lang     string
	precheck bool
	verbose  bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "viagens",
		Short: "France Viagens account client",
		Long: `viagens logs in to or creates a France Viagens account from the terminal.

Settings come from the same environment variables and .env file as the web
front end (AUTH_BASE_URL, AUTH_REQUEST_TIMEOUT, APP_LANGUAGE, ...); flags
override them. Passwords that are not given as flags are read from the
terminal without echo.

Use "viagens [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "error"
			if opts.verbose {
				level = "debug"
			}
			slog.SetDefault(logging.NewWithWriter(cmd.ErrOrStderr(), os.Getenv("LOG_FORMAT"), level))

			cfg, err := config.New()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}

			i := app.New(cfg)
			if rt.lang, err = do.Invoke[language.Tag](i); err != nil {
				return err
			}
			rt.flows, err = do.Invoke[flowstore.Factory](i)
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.authURL, "auth-url", "", "AuthService base URL (overrides AUTH_BASE_URL)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (overrides AUTH_REQUEST_TIMEOUT)")
	flags.StringVar(&opts.lang, "lang", "", "message language, pt-BR or en (overrides APP_LANGUAGE)")
	flags.BoolVar(&opts.precheck, "confirm-precheck", false, "refuse registrations whose passwords differ (overrides AUTH_CONFIRM_PRECHECK)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newLoginCmd(rt), newRegisterCmd(rt), newVersionCmd())
	return root
}

// apply lays explicitly set flags over cfg.
func (o *rootOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("auth-url") {
		cfg.AuthBaseURL = o.authURL
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = o.timeout
	}
	if flags.Changed("lang") {
		if _, err := i18n.Parse(o.lang); err != nil {
			return fmt.Errorf("--lang: %w", err)
		}
		cfg.Language = o.lang
	}
	if flags.Changed("confirm-precheck") {
		cfg.ConfirmPrecheck = o.precheck
	}
	return cfg.Validate()
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errFlowFailed) {
			fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
