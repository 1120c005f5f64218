// Command primer-demo remaps and locks its own text, then sleeps so the
// result can be examined externally (e.g. via /proc/<pid>/smaps or a
// debugger) while it's running.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	pageprimer "github.com/scottlamb/page-primer"
)

//go:noinline
func foo(logger zerolog.Logger) {
	logger.Info().Msg("about to sleep")
	time.Sleep(60 * time.Second)
	logger.Info().Msg("done sleeping")
}

//go:noinline
func bar(logger zerolog.Logger) {
	foo(logger)
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	out := pageprimer.Prime().MLock(true).Remap(true).Run()
	out.Log(logger)

	bar(logger)
}
