// Package logger provides structured logging for the scribe library,
// built on zerolog. Components obtain tagged sub-loggers via WithComponent
// so every log line identifies the stage that emitted it.
package logger
