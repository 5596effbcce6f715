// Package github talks to the GitHub REST API on behalf of the scanner.
//
// All requests go through [Client.Get], which shares one [RateLimiter]
// across goroutines. The limiter has two parts:
//
//  1. An optional token bucket that spaces requests proactively.
//  2. A blocked window taken from X-RateLimit-* and Retry-After headers.
//     When a response reports exhaustion (429, or 403 with no remaining
//     quota or a Retry-After header) every caller pauses until the reset
//     time plus a safety margin, then resumes in staggered order.
//
// Rate-limit retries are bounded by [Config.MaxRateLimitRetries] and
// [Config.MaxWait]; exceeding either returns a [*RateLimitError].
// Any other non-2xx response becomes an [*APIError].
//
// List endpoints are read with [ListAll], which follows page numbers until
// an empty page or a response without a rel="next" Link.
//
// The Client implements [driven.Platform]:
//
//   - ListRepositories: repositories owned by a user
//   - ListFiles: blob entries of a recursive tree
//   - FetchContent: base64 file contents decoded to text
//   - ListFollowing: accounts a user follows
//
// Anonymous use is supported (60 requests per hour); a token raises the
// quota to 5,000.
package github
