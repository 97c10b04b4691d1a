package portal

import "errors"

// Error kinds surfaced by the handshake, the restore path, and the
// authenticated API client. Callers match with errors.Is; the command
// boundary flattens them to strings.
var (
	// Login path.
	ErrPortalUnreachable  = errors.New("portal unreachable")
	ErrCASUnreachable     = errors.New("cas unreachable")
	ErrTokenMissing       = errors.New("token not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoProfile          = errors.New("no student profile found")

	// Restore path. All of these mean "please log in again".
	ErrNoSavedSession = errors.New("no saved session")
	ErrCorruptSession = errors.New("corrupt session file")
	ErrEmptySession   = errors.New("empty session")
	ErrSessionExpired = errors.New("session expired")

	// Authenticated API.
	ErrNotAuthenticated = errors.New("not logged in")
	ErrRequestFailed    = errors.New("request failed")
	ErrInvalidResponse  = errors.New("invalid response")
)

// IsRestoreError reports whether err is one of the restore-path kinds
// that should be presented as a re-login prompt.
func IsRestoreError(err error) bool {
	return errors.Is(err, ErrNoSavedSession) ||
		errors.Is(err, ErrCorruptSession) ||
		errors.Is(err, ErrEmptySession) ||
		errors.Is(err, ErrSessionExpired)
}
