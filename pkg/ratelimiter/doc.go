// Package ratelimiter throttles requests with a token bucket.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request consumes one token; a request that drives
// the count below zero is rejected until the bucket refills.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, cfg)
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.ByClientIP)).Post("/signup", submit)
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every response and Retry-After on rejected ones.
// Rejections answer 429 unless WithLimitedHandler routes them elsewhere.
package ratelimiter
