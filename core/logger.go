package core

// Logger is the application-wide logging capability. Implementations may
// forward entries to an error-tracking service; args may carry extra context
// objects (maps, errors, the acting user).
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
