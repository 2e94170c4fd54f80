//go:build linux

package platform

import (
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// Modifier is a pre-transfer hint applied before a base strategy runs.
// Modifiers never move data themselves.
type Modifier int

const (
	Advice    Modifier = iota // fadvise WILLNEED + SEQUENTIAL on the input
	Fallocate                 // fallocate the output to the input length
	Truncate                  // ftruncate the output to the input length
)

func (m Modifier) String() string {
	switch m {
	case Advice:
		return "advices"
	case Fallocate:
		return "falloc"
	case Truncate:
		return "trunc"
	default:
		return "unknown"
	}
}

// apply issues the hint for an input of size bytes. Hints are advisory and
// not supported everywhere, so failures are logged and otherwise ignored.
//
//nolint:gosec // G115: fd values are small non-negative integers
func (m Modifier) apply(in, out *os.File, size int64) {
	var err error
	switch m {
	case Advice:
		fd := int(in.Fd())
		if err = unix.Fadvise(fd, 0, size, unix.FADV_WILLNEED); err == nil {
			err = unix.Fadvise(fd, 0, size, unix.FADV_SEQUENTIAL)
		}
	case Fallocate:
		err = unix.Fallocate(int(out.Fd()), 0, 0, size)
	case Truncate:
		err = unix.Ftruncate(int(out.Fd()), size)
	}
	if err != nil {
		slog.Debug("hint ignored", "hint", m.String(), "size", size, "error", err)
	}
}

// modified runs its hints in order, then delegates to base.
type modified struct {
	base Strategy
	mods []Modifier
}

// Modify wraps base so that each modifier is applied, in the given order,
// before every transfer.
//
//nolint:ireturn // decorators compose behind the Strategy interface
func Modify(base Strategy, mods ...Modifier) Strategy {
	if len(mods) == 0 {
		return base
	}
	all := append([]Modifier(nil), mods...)
	if inner, ok := base.(modified); ok {
		return modified{base: inner.base, mods: append(all, inner.mods...)}
	}
	return modified{base: base, mods: all}
}

func (s modified) Method() Method { return s.base.Method() }

func (s modified) Transfer(in, out *os.File) (int64, error) {
	size, err := FileSize(in)
	if err != nil {
		return 0, err
	}
	for _, m := range s.mods {
		m.apply(in, out, size)
	}
	return s.base.Transfer(in, out)
}

// Modifiers returns the hints applied by s, outermost first. It is empty
// for an undecorated strategy.
func Modifiers(s Strategy) []Modifier {
	if m, ok := s.(modified); ok {
		return append([]Modifier(nil), m.mods...)
	}
	return nil
}
