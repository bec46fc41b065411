// Package logging builds the zap loggers used by the examples and by
// callers that want to see what a chain does.
package logging
