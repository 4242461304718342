package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lifetick/lifetick/core"
	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/internal/outwriter"
	"github.com/lifetick/lifetick/schema"
	"github.com/spf13/cobra"
)

// countdownCmd renders the live life countdown.
var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Run a live countdown of the time you have left.",
	Long: `Render a second-by-second countdown derived from the latest projection.

Each tick shows years, days and hh:mm:ss remaining plus the fraction of the
adjusted lifespan already lived. The projection is computed once up front;
ticks only re-decompose it against the wall clock, so the loop stays cheap.

With --at the countdown renders exactly once at the given instant, which
makes output deterministic for scripts and tests. With --ticks N the live
loop stops after N renders instead of running until interrupted.

Examples:
  # Live countdown until Ctrl-C
  lifetick countdown --baseline 81 --age 40

  # One deterministic render at a fixed instant
  lifetick countdown --baseline 81 --birth-year 1986 --at 2026-03-10T09:00:00Z

  # Five ticks, then exit
  lifetick countdown --baseline 81 --age 40 --ticks 5`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := requireBaseline(); err != nil {
			contract.LogFatal("Cannot run countdown", err)
		}

		eng := core.NewEngineFromConfig(cfg)
		if _, err := core.GetProjectionResults(rootCtx, cfg, sampleStore, eng); err != nil {
			contract.LogFatal("Cannot compute projection", err)
		}

		// A fixed anchor or a non-text format is a single render.
		if !cfg.Anchor.IsZero() || cfg.Output != schema.TextOut {
			data := eng.Tick(cfg.AnchorOrNow(time.Now()))
			if err := outwriter.NewOutWriter().WriteCountdown(data, cfg); err != nil {
				contract.LogFatal("Cannot write countdown", err)
			}
			return
		}

		runCountdownLoop(eng, cfg.Ticks)
	},
}

// runCountdownLoop rewrites the countdown line in place once per second
// until the tick budget is spent or the process is interrupted.
func runCountdownLoop(eng *core.Engine, ticks int) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	rendered := 0
	render := func(now time.Time) {
		fmt.Printf("\r%s", outwriter.FormatCountdownLine(eng.Tick(now)))
		rendered++
	}

	render(time.Now())
	for ticks == 0 || rendered < ticks {
		select {
		case now := <-ticker.C:
			render(now)
		case <-interrupt:
			fmt.Println()
			return
		}
	}
	fmt.Println()
}
