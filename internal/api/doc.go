// Package api implements the HTTP transport for the NASA Web APIs.
// It handles URL construction, api_key query authentication, retries
// with exponential backoff, error body parsing, and rate limit header
// tracking. The public SDK surface lives in the root stellaria package.
package api
