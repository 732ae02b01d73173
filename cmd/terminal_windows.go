//go:build windows
// +build windows

package cmd

import (
	"os"
	"strconv"
	"syscall"
	"unsafe"
)

var (
	kernel32                       = syscall.NewLazyDLL("kernel32.dll")
	procGetConsoleScreenBufferInfo = kernel32.NewProc("GetConsoleScreenBufferInfo")
)

type (
	coord struct {
		X int16
		Y int16
	}
	smallRect struct {
		Left   int16
		Top    int16
		Right  int16
		Bottom int16
	}
	consoleScreenBufferInfo struct {
		Size              coord
		CursorPosition    coord
		Attributes        int16
		Window            smallRect
		MaximumWindowSize coord
	}
)

// getTerminalSize reports the console dimensions, or (0, 0) when they
// cannot be determined. COLUMNS/LINES take precedence so users can
// override a misreporting console.
func getTerminalSize() (int, int) {
	if cols, rows := sizeFromEnv(); cols > 0 && rows > 0 {
		return cols, rows
	}

	var csbi consoleScreenBufferInfo
	ret, _, _ := procGetConsoleScreenBufferInfo.Call(
		uintptr(syscall.Stdout),
		uintptr(unsafe.Pointer(&csbi)))
	if ret == 0 {
		return 0, 0
	}
	width := int(csbi.Window.Right - csbi.Window.Left + 1)
	height := int(csbi.Window.Bottom - csbi.Window.Top + 1)
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return width, height
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
