// Package app wires the portal's services into a do container shared by the
// HTTP server and the CLI.
package app

import (
	"fmt"
	"log/slog"

	"github.com/samber/do/v2"
	"golang.org/x/text/language"

	"github.com/franceviagens/portal/internal/audit"
	"github.com/franceviagens/portal/internal/authclient"
	"github.com/franceviagens/portal/internal/config"
	"github.com/franceviagens/portal/internal/flow"
	"github.com/franceviagens/portal/internal/flowstore"
	"github.com/franceviagens/portal/internal/handlers"
	"github.com/franceviagens/portal/internal/i18n"
	"github.com/franceviagens/portal/internal/pubsub"
	"github.com/franceviagens/portal/internal/rendering"
)

// New creates the container. Services are built lazily on first Invoke.
func New(cfg config.Provider) *do.RootScope {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.Provide(i, newLanguage)
	do.Provide(i, newAuthClient)
	do.Provide(i, newBridge)
	do.Provide(i, newFlowFactory)
	do.Provide(i, newFlowStore)
	do.Provide(i, newRenderer)
	do.Provide(i, newAuthHandler)
	do.Provide(i, newAuditLogger)

	return i
}

func newLanguage(i do.Injector) (language.Tag, error) {
	cfg, err := do.Invoke[config.Provider](i)
	if err != nil {
		return language.Und, err
	}
	tag, err := i18n.Parse(cfg.GetLanguage())
	if err != nil {
		return language.Und, fmt.Errorf("APP_LANGUAGE: %w", err)
	}
	return tag, nil
}

func newAuthClient(i do.Injector) (*authclient.Client, error) {
	cfg, err := do.Invoke[config.Provider](i)
	if err != nil {
		return nil, err
	}
	return authclient.New(cfg.GetAuthBaseURL(), authclient.WithTimeout(cfg.GetRequestTimeout()))
}

func newBridge(do.Injector) (*pubsub.WatermillBridge, error) {
	return pubsub.NewWatermillBridge(), nil
}

// newFlowFactory builds flows that talk to AuthService and publish their
// outcomes on the bridge.
func newFlowFactory(i do.Injector) (flowstore.Factory, error) {
	cfg, err := do.Invoke[config.Provider](i)
	if err != nil {
		return flowstore.Factory{}, err
	}
	client, err := do.Invoke[*authclient.Client](i)
	if err != nil {
		return flowstore.Factory{}, err
	}
	bridge, err := do.Invoke[*pubsub.WatermillBridge](i)
	if err != nil {
		return flowstore.Factory{}, err
	}
	notifier := pubsub.NewOutcomeNotifier(bridge)

	options := func(lang language.Tag) []flow.Option {
		return []flow.Option{
			flow.WithPrinter(i18n.Printer(lang)),
			flow.WithNotifier(notifier),
			flow.WithConfirmPrecheck(cfg.GetConfirmPrecheck()),
		}
	}
	return flowstore.Factory{
		Login: func(lang language.Tag) *flow.LoginFlow {
			return flow.NewLogin(client, options(lang)...)
		},
		Register: func(lang language.Tag) *flow.RegistrationFlow {
			return flow.NewRegistration(client, options(lang)...)
		},
	}, nil
}

func newFlowStore(i do.Injector) (*flowstore.Store, error) {
	cfg, err := do.Invoke[config.Provider](i)
	if err != nil {
		return nil, err
	}
	factory, err := do.Invoke[flowstore.Factory](i)
	if err != nil {
		return nil, err
	}
	return flowstore.New(factory, cfg.GetFlowIdleTTL()), nil
}

func newRenderer(do.Injector) (rendering.Renderer, error) {
	return rendering.NewUniversalRenderer(), nil
}

func newAuthHandler(i do.Injector) (*handlers.AuthHandler, error) {
	store, err := do.Invoke[*flowstore.Store](i)
	if err != nil {
		return nil, err
	}
	renderer, err := do.Invoke[rendering.Renderer](i)
	if err != nil {
		return nil, err
	}
	lang, err := do.Invoke[language.Tag](i)
	if err != nil {
		return nil, err
	}
	return handlers.NewAuthHandler(store, renderer, lang), nil
}

func newAuditLogger(do.Injector) (*audit.Logger, error) {
	return audit.New(slog.Default()), nil
}
