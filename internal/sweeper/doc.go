// Package sweeper runs the raise loop: discover the account's categories,
// raise each of them in order, then wait for the cooldown or the next cron
// tick before sweeping again.
//
// The loop runs on the caller's goroutine and only returns when its context
// is cancelled. Faults inside a sweep are logged and followed by a backoff.
package sweeper
