// Package scribe is the orchestrator: it sequences recording, upload,
// remote transcription, inference and review into one recording cycle,
// owning the lifecycle state machine and its failure paths.
package scribe
