package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// prompter reads missing values from the command's input. Secrets are read
// without echo when the input is a terminal.
type prompter struct {
	cmd    *cobra.Command
	reader *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{cmd: cmd, reader: bufio.NewReader(cmd.InOrStdin())}
}

func (p *prompter) terminal() (int, bool) {
	f, ok := p.cmd.InOrStdin().(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// value returns current when set, otherwise asks for it.
func (p *prompter) value(current, label string) (string, error) {
	if current != "" {
		return current, nil
	}
	fmt.Fprint(p.cmd.ErrOrStderr(), label+" ")
	return p.line()
}

// secret is like value but never echoes what is typed.
func (p *prompter) secret(current, label string) (string, error) {
	if current != "" {
		return current, nil
	}
	fmt.Fprint(p.cmd.ErrOrStderr(), label+" ")
	if fd, ok := p.terminal(); ok {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(p.cmd.ErrOrStderr())
		return string(b), err
	}
	return p.line()
}

func (p *prompter) line() (string, error) {
	s, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}
