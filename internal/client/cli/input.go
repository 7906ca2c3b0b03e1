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

// Terminal access, swapped out in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

func prompt(w io.Writer, text string) error {
	_, err := fmt.Fprint(w, text+"\n> ")
	return err
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetSimpleText prompts on w and returns the next trimmed line from
// reader. A final line without a newline is accepted.
//
//	Enter email
//	> _
func GetSimpleText(reader *bufio.Reader, text string, w io.Writer) (string, error) {
	if err := prompt(w, text); err != nil {
		return "", err
	}
	return readLine(reader)
}

// Confirm asks question and reports whether the answer was "yes".
func Confirm(reader *bufio.Reader, question string, w io.Writer) (bool, error) {
	answer, err := GetSimpleText(reader, question+" (yes/no)", w)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes"), nil
}

// GetPassword reads a password without echo when stdin is a terminal and
// falls back to a plain line from reader otherwise, so piped input works.
// The caller should clear the returned slice.
func GetPassword(reader *bufio.Reader, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := readLine(reader)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
