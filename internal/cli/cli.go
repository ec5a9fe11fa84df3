// Package cli implements the revtrail command line: listing a file's revisions, showing one revision against its predecessor, browsing them interactively,
// and exporting a static HTML timeline.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Version is the revtrail version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.3.0"

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// usageError marks errors caused by how revtrail was invoked (bad flags, wrong arguments) rather than by what it found.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (flags are correct, etc).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	a := &app{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	if opts != nil {
		if opts.In != nil {
			a.in = opts.In
		}
		if opts.Out != nil {
			a.out = opts.Out
		}
		if opts.Err != nil {
			a.errOut = opts.Err
		}
	}
	defer a.close()

	root := a.newRootCommand()
	root.SetArgs(argv)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.Execute()
	if err == nil {
		return 0, nil
	}

	fmt.Fprintf(a.errOut, "Error: %v\n", err)

	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(a.errOut, "Run '%s --help' for usage.\n", root.Name())
		return 2, err
	}
	a.logger().Errorw("command failed", "error", err)
	return 1, err
}
