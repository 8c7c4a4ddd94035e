package state

import "time"

// KV is the host's text storage. Get reports found == false when the key is
// absent. Any method may fail (quota, unavailable backend).
type KV interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

type Clock interface {
	Now() time.Time
}

type Logger interface {
	Info(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type nopLogger struct{}

func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
