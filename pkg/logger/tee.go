package logger

import "errors"

// Tee returns a Logger that writes every message to each non-nil backend.
// With a single backend it returns that backend unchanged.
func Tee(backends ...Logger) Logger {
	var ls tee
	for _, l := range backends {
		if l != nil {
			ls = append(ls, l)
		}
	}
	switch len(ls) {
	case 0:
		return NewNopLogger()
	case 1:
		return ls[0]
	}
	return ls
}

type tee []Logger

func (t tee) Info(format string, args ...interface{}) {
	for _, l := range t {
		l.Info(format, args...)
	}
}

func (t tee) Warning(format string, args ...interface{}) {
	for _, l := range t {
		l.Warning(format, args...)
	}
}

func (t tee) Error(format string, args ...interface{}) {
	for _, l := range t {
		l.Error(format, args...)
	}
}

// Close closes every backend, even after a failure, and joins the errors.
func (t tee) Close() error {
	var errs []error
	for _, l := range t {
		errs = append(errs, l.Close())
	}
	return errors.Join(errs...)
}
