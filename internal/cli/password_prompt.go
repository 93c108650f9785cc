package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordReader shows prompt and returns the entered password.
type PasswordReader func(prompt string) (string, error)

// TerminalPasswordReader reads without echo from a terminal and falls back to
// plain lines when stdin is piped.
func TerminalPasswordReader(stdin *os.File, prompts io.Writer) PasswordReader {
	fd := int(stdin.Fd())
	if term.IsTerminal(fd) {
		return func(prompt string) (string, error) {
			fmt.Fprint(prompts, prompt)
			password, err := term.ReadPassword(fd)
			fmt.Fprintln(prompts)
			if err != nil {
				return "", err
			}
			return string(password), nil
		}
	}

	reader := bufio.NewReader(stdin)
	return func(prompt string) (string, error) {
		fmt.Fprint(prompts, prompt)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" && errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
