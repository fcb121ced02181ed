// Package ratelimiter is an in-process, allocation-free rate-limiting
// decision engine built on the Generic Cell Rate Algorithm (GCRA). It
// answers, for a request arriving at a known time, whether that request
// conforms to a caller-specified Quota, and if not, how long until it
// would.
//
// Two limiter shapes are provided: DirectLimiter, which holds a single
// GCRA cell for "global" limits (don't do more than N things a day), and
// KeyedLimiter, which keeps one independent cell per key (a budget per API
// client). Both are parameterized over a Middleware type that turns the
// kernel's raw decision into whatever payload the caller wants back.
//
// Check and CheckN take no locks: a clock read, a pure function call, and
// (only when admitting the request) a single CompareAndSwap. CheckKey and
// CheckKeyN first look the key's cell up in the store, which takes a lock
// (a read lock on one shard for store.Sharded, the map mutex for
// store.Coarse). The decision path is not allocation-free: a rejected
// request allocates its *NotYetError, and every decision is passed to the
// configured Logger as variadic interface arguments.
package ratelimiter
