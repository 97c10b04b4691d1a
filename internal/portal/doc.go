// Package portal implements the CAS handshake against the university
// single sign-on and the authenticated session it yields for the
// student portal's JSON API.
//
// The package owns exactly one session per process: an HTTP client
// with the portal cookies, the anti-forgery token scraped from the
// portal landing page, and the profile id discovered from the profile
// listing endpoint. The session is installed atomically behind a
// read-write mutex and is never held across network I/O.
//
// The CAS provider signals credential rejection only through the host
// of the final redirect target, never through status codes or error
// bodies. That heuristic is load-bearing and must not be replaced
// with status inspection.
package portal
