package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

func main() {
	cmd := newRootCmd()
	cmd.SetArgs(normalizeArgs(os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		var t *troubleError
		if errors.As(err, &t) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Try 'mdiff --help' for more information.")
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// Set by runDiff; 1 when brief mode found a difference.
var exitCode int

// troubleError marks I/O and engine failures, which exit with 2 rather
// than the usage/difference code 1.
type troubleError struct {
	err error
}

func (t *troubleError) Error() string { return t.err.Error() }
func (t *troubleError) Unwrap() error { return t.err }

// normalizeArgs rewrites the getopt-style context count forms into ones
// pflag understands: "-u 5" and "-u5" both become "-u=5". A non-numeric
// token following -u/-c is left alone and the default count applies.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		switch {
		case arg == "-u" || arg == "-c" || arg == "--unified" || arg == "--context":
			if i+1 < len(args) && allDigits(args[i+1]) {
				out = append(out, arg+"="+args[i+1])
				i++
				continue
			}
			out = append(out, arg)
		case len(arg) > 2 && (strings.HasPrefix(arg, "-u") || strings.HasPrefix(arg, "-c")) && allDigits(arg[2:]):
			out = append(out, arg[:2]+"="+arg[2:])
		default:
			out = append(out, arg)
		}
	}
	return out
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
