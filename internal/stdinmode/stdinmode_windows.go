//go:build windows

package stdinmode

import (
	"os"

	"golang.org/x/sys/windows"
)

// rebind is best-effort: Go's os.Stdin already reads raw bytes with no
// CRLF or Ctrl-Z translation of its own (that is a C-runtime concept,
// not an io.Reader one), so the only real risk on Windows is an
// interactive console session applying line-editing/echo processing to
// what should be a raw byte pipe. When stdin is a console handle, clear
// ENABLE_PROCESSED_INPUT so control characters inside PCM data are not
// intercepted; when stdin is redirected from a file or a pipe (the
// normal case for this tool), GetConsoleMode fails and rebind is a
// no-op.
func rebind() error {
	handle := windows.Handle(os.Stdin.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return nil
	}

	mode &^= windows.ENABLE_PROCESSED_INPUT
	return windows.SetConsoleMode(handle, mode)
}
