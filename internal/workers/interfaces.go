// Package workers bounds the amount of CPU-heavy work the server performs
// at once. Password hashing runs through a [Pool] so that a burst of
// register or login requests cannot occupy every core.
package workers

import "context"

// Executor runs fn once a slot is available.
//
// Implementations must return ctx.Err() without running fn if ctx is done
// before a slot frees up.
type Executor interface {
	Do(ctx context.Context, fn func() error) error
}
