package core

// Logger is any service that can log application events.
//
// args may hold an error, a map[string]interface{} of extra fields
// and the session.Session the event happened in.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
