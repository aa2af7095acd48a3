// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolchain

import (
	"fmt"
	"io"
	"strings"
)

// excerptLines is how many trailing output lines a failure error carries.
const excerptLines = 20

// RunOptions control how an external tool is executed.
type RunOptions struct {
	// Dir is the working directory for the process.
	Dir string

	// Verbose streams output to Stdout/Stderr instead of capturing it.
	Verbose bool

	// Stdout and Stderr receive streamed output in verbose mode.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the tool with args and returns its captured combined output.
// In verbose mode output is streamed through and the returned string is
// empty. A non-zero exit produces an error naming the tool and carrying a
// trailing excerpt of the captured output.
func Run(x Executor, tool Tool, args []string, opts RunOptions) (string, error) {
	if opts.Verbose {
		fmt.Fprintf(opts.Stdout, "+ %s %s\n", tool.Command(), strings.Join(args, " "))
		if err := x.RunStreaming(opts.Dir, opts.Stdout, opts.Stderr, tool.Command(), args...); err != nil {
			return "", fmt.Errorf("%s: %w", tool.Name, err)
		}
		return "", nil
	}

	out, err := x.Run(opts.Dir, tool.Command(), args...)
	if err != nil {
		if excerpt := Excerpt(out, excerptLines); excerpt != "" {
			return out, fmt.Errorf("%s: %w\n%s", tool.Name, err, excerpt)
		}
		return out, fmt.Errorf("%s: %w", tool.Name, err)
	}
	return out, nil
}

// Excerpt returns the last n non-blank lines of tool output, for inclusion
// in failure messages.
func Excerpt(output string, n int) string {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "\n")
}
