package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrInterrupted is returned when the user presses Ctrl+C at a prompt
var ErrInterrupted = errors.New("interrupted")

// ReadPassword prints prompt to out and reads a password from stdin, echoing
// an asterisk per character. Without a terminal it falls back to hidden input.
func ReadPassword(prompt string, out io.Writer) (string, error) {
	fmt.Fprint(out, prompt)
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		fmt.Fprintln(out)
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return trimNewline(line), nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}
	defer term.Restore(fd, oldState)

	password, err := readMasked(bufio.NewReader(os.Stdin), out)
	// raw mode needs an explicit carriage return
	fmt.Fprint(out, "\r\n")
	return password, err
}

func readMasked(r *bufio.Reader, out io.Writer) (string, error) {
	var password []rune
	for {
		char, _, err := r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return string(password), nil
			}
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		switch char {
		case '\n', '\r':
			return string(password), nil
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Fprint(out, "\b \b")
			}
		case 3: // Ctrl+C
			return "", ErrInterrupted
		default:
			if char >= 32 && char != 127 {
				password = append(password, char)
				fmt.Fprint(out, "*")
			}
		}
	}
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
