// Package async runs a single computation in the background and lets the
// caller wait for its result.
//
// Async starts the supplied function in its own goroutine and returns a
// *Future immediately. The caller can block with Await, bound the wait with
// AwaitWithTimeout, poll with IsComplete, or select on Done alongside other
// channels such as a request context.
//
//	future := async.Async(ctx, reg, creator.CreateUser)
//
//	select {
//	case <-future.Done():
//	    user, err := future.Await()
//	case <-ctx.Done():
//	}
//
// If ctx is cancelled before the goroutine starts, the future completes with
// the context error and the function is not called. Otherwise cancellation is
// left to the function itself.
package async
