// Command backgrep reports whether one line of standard input matches a
// pattern.
//
// Usage:
//
//	echo "cat and cat" | backgrep -E '(cat|dog) and \1'
//
// The exit status is 0 when the line matches and 1 when it does not or
// when the arguments are wrong.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coregx/backre"
)

var errUsage = errors.New("expected arguments: -E <pattern>")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stderr))
}

func run(args []string, stdin io.Reader, stderr io.Writer) (code int) {
	pattern, err := parseArgs(args)
	if err != nil {
		_ = writeln(stderr, "error:", err)
		_ = writef(stderr, "Usage: %s -E <pattern>\n", "backgrep")
		return 1
	}

	line, err := readLine(stdin)
	if err != nil {
		_ = writef(stderr, "error reading input: %v\n", err)
		return 1
	}

	defer func() {
		if r := recover(); r != nil {
			_ = writef(stderr, "error matching %q: %v\n", pattern, r)
			code = 1
		}
	}()

	if backre.Compile(pattern).MatchString(line) {
		return 0
	}
	return 1
}

func parseArgs(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("%w (got %d arguments)", errUsage, len(args))
	}
	if args[0] != "-E" {
		return "", fmt.Errorf("%w (first argument is %q)", errUsage, args[0])
	}
	return args[1], nil
}

// readLine returns the first line of r without its line terminator. Input
// without a trailing newline, including empty input, is one line.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
