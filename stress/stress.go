// Package stress runs concurrent push/pop workloads against a stack.Stack
// and checks that every pushed value comes back exactly once.
package stress

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/rxp"

	"github.com/cosmicexplorer/minimal-lock-free-stack/set"
	"github.com/cosmicexplorer/minimal-lock-free-stack/stack"
)

// Run pushes Pushers*ValuesPerPusher distinct ints from Pushers workers
// while Poppers workers pop concurrently, then drains what is left.
//
// The default options are two pushers of 1000 values each and one popper
// making 2000 pop attempts. A non-nil error is returned with the report
// when the run times out, a worker cannot be scheduled, or the popped
// values do not match the pushed ones.
func Run(ctx context.Context, opts ...Option) (report Report, err error) {
	options := defaultOptions()
	for _, opt := range opts {
		if err = opt(&options); err != nil {
			return
		}
	}
	if err = options.validate(); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, options.Timeout)
	defer cancel()

	exec, execErr := rxp.New(options.AsRxpOptions()...)
	if execErr != nil {
		err = errors.From(
			ErrExecutor,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithWrap(execErr),
		)
		return
	}
	defer func() {
		_ = exec.Close()
	}()

	r := newRun(options)
	start := time.Now()

	var wg sync.WaitGroup
	submit := func(name string, fn func()) error {
		wg.Add(1)
		if execErr := exec.Execute(ctx, &worker{wg: &wg, fn: fn}); execErr != nil {
			wg.Done()
			return errors.From(
				ErrExecutor,
				errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
				errors.WithMeta(errMetaWorker, name),
				errors.WithWrap(execErr),
			)
		}
		return nil
	}
	for g := 0; g < options.Pushers; g++ {
		g := g
		if err = submit("pusher-"+strconv.Itoa(g), func() { r.push(g) }); err != nil {
			break
		}
	}
	for g := 0; err == nil && g < options.Poppers; g++ {
		g := g
		err = submit("popper-"+strconv.Itoa(g), func() { r.pop(g) })
	}
	if err != nil {
		r.stop.Store(true)
		wg.Wait()
		return
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		r.stop.Store(true)
		<-done
		r.drain()
		report = r.report(time.Since(start))
		err = errors.From(
			ErrTimeout,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithWrap(ctx.Err()),
		)
		return
	}

	r.drain()
	report = r.report(time.Since(start))
	if !report.OK() {
		err = errors.From(
			ErrMismatch,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaReport, report.String()),
		)
	}
	return
}

var _ rxp.Task = (*worker)(nil)

// worker is an rxp.Task running one pusher or popper.
type worker struct {
	wg *sync.WaitGroup
	fn func()
}

func (w *worker) Handle(_ context.Context) {
	defer w.wg.Done()
	w.fn()
}

type popper struct {
	seen  set.Bits
	count int
	empty int
}

type run struct {
	options Options
	stack   stack.Stack[int]
	pushing atomic.Int64 // pushers still running
	pushed  atomic.Int64
	stop    atomic.Bool
	poppers []popper
	drained popper
	// order counts drained values that break per-pusher LIFO order.
	order int
}

func newRun(options Options) *run {
	r := &run{
		options: options,
		poppers: make([]popper, options.Poppers),
	}
	r.pushing.Store(int64(options.Pushers))
	return r
}

// push pushes pusher g's values g*n .. g*n+n-1 in increasing order.
func (r *run) push(g int) {
	defer r.pushing.Add(-1)
	n := r.options.ValuesPerPusher
	for i := 0; i < n; i++ {
		if r.stop.Load() {
			return
		}
		r.stack.Push(g*n + i)
		r.pushed.Add(1)
	}
}

func (r *run) pop(g int) {
	p := &r.poppers[g]
	attempt := func() {
		if v, ok := r.stack.Pop(); ok {
			p.count++
			p.seen.Add(v)
		} else {
			p.empty++
		}
	}
	if n := r.options.PopsPerPopper; n > 0 {
		for i := 0; i < n && !r.stop.Load(); i++ {
			attempt()
		}
		return
	}
	for r.pushing.Load() > 0 && !r.stop.Load() {
		attempt()
	}
}

// drain pops everything left. Values a single pusher left behind must
// come out newest first.
func (r *run) drain() {
	n := r.options.ValuesPerPusher
	last := make([]int, r.options.Pushers)
	for g := range last {
		last[g] = n
	}
	for {
		v, ok := r.stack.Pop()
		if !ok {
			return
		}
		r.drained.count++
		r.drained.seen.Add(v)
		if g := v / n; v >= 0 && g < len(last) {
			if i := v % n; i < last[g] {
				last[g] = i
			} else {
				r.order++
			}
		}
	}
}

func (r *run) report(elapsed time.Duration) Report {
	var want set.Bits
	pushers, n := r.options.Pushers, r.options.ValuesPerPusher
	for i := 0; i < pushers*n; i++ {
		want.Add(i)
	}

	var all set.Bits
	report := Report{
		Pushers:         pushers,
		Poppers:         r.options.Poppers,
		Pushed:          int(r.pushed.Load()),
		Drained:         r.drained.count,
		OrderViolations: r.order,
		Elapsed:         elapsed,
	}
	for g := range r.poppers {
		p := &r.poppers[g]
		report.Popped += p.count
		report.EmptyPops += p.empty
		all.UnionWith(&p.seen)
	}
	all.UnionWith(&r.drained.seen)

	report.Foreign = foreign(&all, &want)
	report.Duplicates = report.Popped + report.Drained - all.Len()
	report.Lost = report.Pushed - (all.Len() - report.Foreign)
	return report
}

// foreign counts values in got that were never pushed.
func foreign(got, want *set.Bits) int {
	var extra set.Bits
	extra.UnionWith(got)
	extra.DifferenceWith(want)
	return extra.Len()
}
