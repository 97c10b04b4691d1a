package portal

import "net/url"

// Fixed provider origins. The portal only trusts its own CAS
// deployment, so these are compile-time constants rather than
// configuration.
const (
	// PortalURL is the student portal origin.
	PortalURL = "https://sis-portal.uom.gr"

	// SSOURL is the CAS login endpoint.
	SSOURL = "https://sso.uom.gr/login"

	// ServiceURL is the service parameter the CAS redirects back to
	// after a successful ticket grant.
	ServiceURL = "https://sis-portal.uom.gr/login/cas"

	// userAgent mirrors a desktop browser; the SSO serves a reduced
	// login page to unrecognized agents.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// API paths on the portal origin.
const (
	profilesPath    = "/api/person/profiles"
	studentDataPath = "/feign/student/student_data"
	gradesPath      = "/feign/student/grades/all"
)

// Endpoints groups the provider origins so the handshake can be
// pointed at local fakes in tests. Production code always uses
// DefaultEndpoints.
type Endpoints struct {
	Portal  string
	SSO     string
	Service string
}

// DefaultEndpoints returns the fixed production origins.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Portal:  PortalURL,
		SSO:     SSOURL,
		Service: ServiceURL,
	}
}

// casHost returns the host (including any port) of the SSO endpoint.
// A credential POST whose final resolved URL still lives on this host
// means the CAS refused the login.
func (e Endpoints) casHost() string {
	u, err := url.Parse(e.SSO)
	if err != nil {
		return ""
	}
	return u.Host
}

// portalOrigin returns the parsed portal origin for cookie scoping.
func (e Endpoints) portalOrigin() (*url.URL, error) {
	return url.Parse(e.Portal)
}
