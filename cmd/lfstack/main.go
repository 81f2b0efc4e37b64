package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/cosmicexplorer/minimal-lock-free-stack/platform"
	"github.com/cosmicexplorer/minimal-lock-free-stack/stress"
)

type output struct {
	Platform platform.Capabilities `json:"platform"`
	LockFree bool                  `json:"lock_free"`
	Report   *stress.Report        `json:"report,omitempty"`
	Error    string                `json:"error,omitempty"`
}

func main() {
	// Parse command-line flags
	pushers := flag.Int("pushers", stress.DefaultPushers, "Number of pushing goroutines")
	poppers := flag.Int("poppers", stress.DefaultPoppers, "Number of popping goroutines")
	values := flag.Int("values", stress.DefaultValuesPerPusher, "Distinct values pushed by each pusher")
	pops := flag.Int("pops", stress.DefaultPopsPerPopper, "Pop attempts per popper (0 = pop until pushers finish)")
	goroutines := flag.Int("goroutines", 0, "Maximum executor goroutines (0 = executor default)")
	timeout := flag.Duration("timeout", stress.DefaultTimeout, "Timeout for the whole run")
	asJSON := flag.Bool("json", false, "Print a JSON document instead of text")
	requireLockFree := flag.Bool("require-lock-free", false, "Fail if the platform atomics are not lock-free")
	capsOnly := flag.Bool("caps", false, "Only print platform capabilities")
	flag.Parse()

	out := output{
		Platform: platform.Detect(),
	}
	out.LockFree = out.Platform.LockFree()

	failed := false
	if *requireLockFree {
		if err := platform.Require(); err != nil {
			out.Error = err.Error()
			failed = true
		}
	}

	if !failed && !*capsOnly {
		report, err := stress.Run(
			context.Background(),
			stress.WithPushers(*pushers),
			stress.WithPoppers(*poppers),
			stress.WithValuesPerPusher(*values),
			stress.WithPopsPerPopper(*pops),
			stress.WithMaxGoroutines(*goroutines),
			stress.WithTimeout(*timeout),
		)
		if err != nil {
			out.Error = err.Error()
			failed = true
		}
		if !stress.IsInvalidOption(err) {
			out.Report = &report
		}
	}

	if *asJSON {
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
	} else {
		printText(out)
	}

	if failed {
		os.Exit(1)
	}
}

func printText(out output) {
	fmt.Printf("platform:  %s\n", out.Platform)
	fmt.Printf("lock-free: %t\n", out.LockFree)
	if r := out.Report; r != nil {
		fmt.Printf("pushers:   %d x %d values\n", r.Pushers, r.Pushed/max(r.Pushers, 1))
		fmt.Printf("poppers:   %d (popped %d, empty %d)\n", r.Poppers, r.Popped, r.EmptyPops)
		fmt.Printf("drained:   %d\n", r.Drained)
		fmt.Printf("errors:    duplicates=%d lost=%d foreign=%d order=%d\n",
			r.Duplicates, r.Lost, r.Foreign, r.OrderViolations)
		fmt.Printf("elapsed:   %s\n", r.Elapsed.Round(time.Microsecond))
		fmt.Printf("ok:        %t\n", r.OK())
	}
	if out.Error != "" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", out.Error)
	}
}
