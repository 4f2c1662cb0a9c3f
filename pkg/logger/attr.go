package logger

import (
	"log/slog"
	"time"
)

// Error returns an "error" attribute, or an empty Attr for a nil error.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID returns a "user_id" attribute, or an empty Attr for nil.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// RequestID returns a "request_id" attribute, or an empty Attr for "".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Duration records d in its string form under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.String("duration", d.String())
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}

// Variant names the form implementation that served the request.
func Variant(name string) slog.Attr {
	return slog.String("variant", name)
}

// Fields lists the form fields that failed validation.
func Fields(names []string) slog.Attr {
	return slog.Any("fields", names)
}
