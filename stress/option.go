package stress

import (
	"strconv"
	"time"

	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/rxp"
)

const (
	DefaultPushers         = 2
	DefaultPoppers         = 1
	DefaultValuesPerPusher = 1000
	DefaultPopsPerPopper   = 2000
	DefaultTimeout         = 30 * time.Second
)

type Options struct {
	Pushers         int
	Poppers         int
	ValuesPerPusher int
	// PopsPerPopper is the number of pop attempts per popper. Zero makes
	// poppers run until every pusher is done.
	PopsPerPopper int
	// MaxGoroutines bounds the executor; zero keeps the rxp default.
	MaxGoroutines int
	Timeout       time.Duration
}

func defaultOptions() Options {
	return Options{
		Pushers:         DefaultPushers,
		Poppers:         DefaultPoppers,
		ValuesPerPusher: DefaultValuesPerPusher,
		PopsPerPopper:   DefaultPopsPerPopper,
		Timeout:         DefaultTimeout,
	}
}

func (options *Options) AsRxpOptions() []rxp.Option {
	opts := make([]rxp.Option, 0, 1)
	if n := options.MaxGoroutines; n > 0 {
		opts = append(opts, rxp.WithMaxGoroutines(n))
	}
	return opts
}

func (options *Options) validate() error {
	if n := options.MaxGoroutines; n > 0 && n < options.Pushers+options.Poppers {
		return invalid("max_goroutines", n)
	}
	return nil
}

type Option func(options *Options) (err error)

// WithPushers
// sets the number of pushing workers, at least 1.
func WithPushers(n int) Option {
	return func(options *Options) error {
		if n < 1 {
			return invalid("pushers", n)
		}
		options.Pushers = n
		return nil
	}
}

// WithPoppers
// sets the number of popping workers. Zero leaves every value to the
// final drain.
func WithPoppers(n int) Option {
	return func(options *Options) error {
		if n < 0 {
			return invalid("poppers", n)
		}
		options.Poppers = n
		return nil
	}
}

// WithValuesPerPusher
// sets how many distinct values each pusher pushes.
func WithValuesPerPusher(n int) Option {
	return func(options *Options) error {
		if n < 1 {
			return invalid("values_per_pusher", n)
		}
		options.ValuesPerPusher = n
		return nil
	}
}

// WithPopsPerPopper
// sets the pop attempts per popper; 0 pops until the pushers finish.
func WithPopsPerPopper(n int) Option {
	return func(options *Options) error {
		if n < 0 {
			return invalid("pops_per_popper", n)
		}
		options.PopsPerPopper = n
		return nil
	}
}

// WithMaxGoroutines
// bounds the executor goroutines. It must cover every worker.
func WithMaxGoroutines(n int) Option {
	return func(options *Options) error {
		if n < 0 {
			return invalid("max_goroutines", n)
		}
		options.MaxGoroutines = n
		return nil
	}
}

// WithTimeout
// bounds the whole run.
func WithTimeout(d time.Duration) Option {
	return func(options *Options) error {
		if d <= 0 {
			return invalid("timeout", int(d))
		}
		options.Timeout = d
		return nil
	}
}

func invalid(name string, value int) error {
	return errors.From(
		ErrInvalidOption,
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaOption, name+"="+strconv.Itoa(value)),
	)
}
