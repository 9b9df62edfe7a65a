package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	pflag "github.com/spf13/pflag"
)

// secondsValue is a pflag.Value for durations that also accepts a bare
// number of seconds, so "--delay 0.5" and "--delay 500ms" are equivalent.
type secondsValue struct {
	d *time.Duration
}

var _ pflag.Value = (*secondsValue)(nil)

// SecondsVar defines a duration flag that accepts plain seconds.
func SecondsVar(fs *pflag.FlagSet, p *time.Duration, name string, value time.Duration, usage string) {
	*p = value
	fs.Var(&secondsValue{d: p}, name, usage)
}

func (v *secondsValue) String() string {
	if v.d == nil {
		return "0s"
	}
	return v.d.String()
}

func (v *secondsValue) Set(s string) error {
	d, err := parseSeconds(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v *secondsValue) Type() string {
	return "duration"
}

// parseSeconds accepts a Go duration or a decimal number of seconds.
func parseSeconds(s string) (time.Duration, error) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			return 0, fmt.Errorf("negative duration %q", s)
		}
		return time.Duration(f * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (want seconds or a value like 500ms)", s)
	}
	return d, nil
}
