// Package devserver is a self-contained stand-in for the remote
// transcription/inference backend. It serves the session and file-upload
// resources over HTTP, simulates the transcription lifecycle with
// configurable delays and a pluggable inferencer, and signs upload URLs
// so the client's signed-transfer path is exercised end to end.
//
// It exists for development and integration testing only; nothing in it
// transcribes real audio.
package devserver
