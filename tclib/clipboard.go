package tclib

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// clipboardCommand returns the command line of a program that copies its
// standard input to the system clipboard.
func clipboardCommand() ([]string, error) {
	if runtime.GOOS == "darwin" {
		return []string{"pbcopy"}, nil
	}
	// The X and Wayland tools can't work without a display.
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return []string{"wl-copy"}, nil
	} else if os.Getenv("DISPLAY") != "" {
		return []string{"xsel", "--clipboard", "--input"}, nil
	}
	return nil, errors.New("unable to copy to clipboard (no DISPLAY)")
}

// CopyToClipboard attempts to copy the formatted lines for results to the
// system clipboard. The text is always UTF-8; f.Encoding is not used.
func CopyToClipboard(f Formatter, results []Result) error {
	args, err := clipboardCommand()
	if err != nil {
		return err
	}
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(f.Line(r))
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(sb.String())
	return cmd.Run()
}
