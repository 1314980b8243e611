package main

// Exit codes. Callers can branch on the JSON error envelope alone; the
// codes exist for shells that only see the exit status.
const (
	ExitSuccess        = 0 // Success
	ExitError          = 1 // General error (invalid arguments, API or runtime failure)
	ExitConfigError    = 2 // Configuration error (missing credential, bad config)
	ExitHandshakeError = 3 // Provider handshake failed or timed out
)
