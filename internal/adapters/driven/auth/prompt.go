package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// PromptToken asks for a token on out and reads it from in. Input is not
// echoed when in is a terminal.
func PromptToken(in *os.File, out io.Writer) (string, error) {
	fmt.Fprint(out, "GitHub token: ")

	var token string
	if term.IsTerminal(int(in.Fd())) {
		raw, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		token = string(raw)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("read token: %w", err)
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: no token entered", domain.ErrAuthRequired)
	}
	return token, nil
}
