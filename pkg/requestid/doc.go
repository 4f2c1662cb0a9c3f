// Package requestid tags every HTTP request with an identifier that is
// echoed in the X-Request-ID response header and added to log records.
package requestid
