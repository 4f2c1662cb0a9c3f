// Package clientip resolves the caller's address from proxy headers or the
// connection and exposes it through the request context and log records.
package clientip
