// Package leaktest holds goroutine leak assertions shared by package tests.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout  = 2 * time.Second
	settleInterval = 10 * time.Millisecond
)

// GoroutineChecker compares goroutine counts before and after a block of work
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count once it is stable
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	return &GoroutineChecker{before: settledCount(0), t: t}
}

// Check fails the test if more than tolerance goroutines outlive the work.
// It polls until the count drops or settleTimeout elapses, so workers that are
// still unwinding after a cancel are not reported.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	target := g.before + tolerance
	after := settledCount(target)
	if after > target {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, after-g.before, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and requires every goroutine it started to exit
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// settledCount waits until the goroutine count is at most target, or stops
// changing when target is 0, and returns it
func settledCount(target int) int {
	deadline := time.Now().Add(settleTimeout)
	last := -1
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if target > 0 && n <= target {
			return n
		}
		if target == 0 && n == last {
			return n
		}
		if time.Now().After(deadline) {
			return n
		}
		last = n
		time.Sleep(settleInterval)
	}
}
