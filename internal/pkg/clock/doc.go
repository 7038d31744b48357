// Package clock provides a tiny time abstraction.
//
// Code that reasons about freshness (for example the account cache TTL)
// depends on Clocker instead of calling time.Now() directly, so tests can use
// a ManualClocker and step time forward deterministically.
package clock
