//go:build !windows
// +build !windows

package cmd

import (
	"os"
	"strconv"
	"syscall"
	"unsafe"
)

// getTerminalSize reports the terminal dimensions, or (0, 0) when they
// cannot be determined. COLUMNS/LINES take precedence so users can
// override a misreporting terminal.
func getTerminalSize() (int, int) {
	if cols, rows := sizeFromEnv(); cols > 0 && rows > 0 {
		return cols, rows
	}

	type winsize struct {
		Row    uint16
		Col    uint16
		Xpixel uint16
		Ypixel uint16
	}
	ws := &winsize{}
	// Query stdout, not stdin, so piped input does not break detection.
	ret, _, _ := syscall.Syscall(syscall.SYS_IOCTL,
		os.Stdout.Fd(),
		uintptr(syscall.TIOCGWINSZ),
		uintptr(unsafe.Pointer(ws)))
	if int(ret) == -1 {
		return 0, 0
	}
	return int(ws.Col), int(ws.Row)
}

func sizeFromEnv() (int, int) {
	cols, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil {
		return 0, 0
	}
	rows, err := strconv.Atoi(os.Getenv("LINES"))
	if err != nil {
		return 0, 0
	}
	return cols, rows
}
