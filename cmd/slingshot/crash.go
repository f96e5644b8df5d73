package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

// handleCrash restores the terminal, reports the panic and exits
func handleCrash(screen tcell.Screen, logger zerolog.Logger, r any) {
	if r == nil {
		return
	}
	stack := debug.Stack()
	logger.Error().Interface("panic", r).Bytes("stack", stack).Msg("crash")

	if screen != nil {
		screen.Fini()
	}
	fmt.Fprintf(os.Stderr, "\n\x1b[31mSLINGSHOT CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", stack)
	os.Exit(1)
}

// goSafe runs fn on a new goroutine that restores the terminal if it panics
func goSafe(screen tcell.Screen, logger zerolog.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handleCrash(screen, logger, r)
			}
		}()
		fn()
	}()
}
