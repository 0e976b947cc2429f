// Package i18n holds the user-facing strings of the account pages in
// Brazilian Portuguese and English.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. Keys are the English text so an untranslated key still reads well.
const (
	LoginTitle        = "LOGIN"
	LoginSubmit       = "Log in"
	LoginToRegister   = "Create an account"
	RegisterTitle     = "REGISTER"
	RegisterSubmit    = "Sign up"
	RegisterToLogin   = "Back to login"
	LabelUsername     = "Name:"
	LabelEmail        = "Email:"
	LabelPassword     = "Password:"
	LabelConfirm      = "Confirm password:"
	Submitting        = "Sending..."
	ErrUnreachable    = "Could not reach the server. Try again in a moment."
	ErrRejected       = "The request was refused by the server."
	ErrMissingFields  = "Fill in all fields."
	ErrMismatch       = "Passwords do not match."
	RegisteredDefault = "Account created."
)

// Default is the language of the original pages.
var Default = language.BrazilianPortuguese

var supported = []language.Tag{language.BrazilianPortuguese, language.English}

var matcher = language.NewMatcher(supported)

var portuguese = map[string]string{
	LoginTitle:        "LOGIN",
	LoginSubmit:       "ENTRAR",
	LoginToRegister:   "Cadastrar-se",
	RegisterTitle:     "CADASTRO",
	RegisterSubmit:    "Cadastrar-se",
	RegisterToLogin:   "Entrar",
	LabelUsername:     "Nome:",
	LabelEmail:        "Email:",
	LabelPassword:     "Senha:",
	LabelConfirm:      "Confirme a senha:",
	Submitting:        "Enviando...",
	ErrUnreachable:    "Não foi possível contatar o servidor. Tente novamente em instantes.",
	ErrRejected:       "O servidor recusou a solicitação.",
	ErrMissingFields:  "Preencha todos os campos.",
	ErrMismatch:       "As senhas não coincidem.",
	RegisteredDefault: "Conta criada.",
}

func init() {
	for key, text := range portuguese {
		_ = message.SetString(language.BrazilianPortuguese, key, text)
		_ = message.SetString(language.English, key, key)
	}
}

// Match picks the best supported language for an Accept-Language header,
// falling back to fallback when the header is empty or unparsable.
func Match(acceptLanguage string, fallback language.Tag) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supported[idx]
}

// Parse resolves a configured language name such as "pt-BR" or "en".
func Parse(name string) (language.Tag, error) {
	tag, err := language.Parse(name)
	if err != nil {
		return language.Und, err
	}
	_, idx, _ := matcher.Match(tag)
	return supported[idx], nil
}

// Printer returns a printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
