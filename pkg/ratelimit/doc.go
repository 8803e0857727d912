// Package ratelimit provides rate limiting for the bulk downloader.
//
// The token bucket keeps download bursts within the backend's comfort
// zone: a fixed-capacity bucket refills after a configured period, and the
// downloader's worker pool calls Wait before every fetch.
//
// All rate limiters implement the Limiter interface:
//   - Allow() bool - check if a request is allowed
//   - Wait() - block until a request is allowed
//   - Reset() - reset the limiter state
package ratelimit
