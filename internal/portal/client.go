package portal

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// newClient builds a portal HTTP client: fresh cookie jar, browser
// user-agent, bounded timeout. Redirects are followed so the CAS
// ticket dance resolves to its final URL.
func newClient(timeout time.Duration) *resty.Client {
	jar, _ := cookiejar.New(nil)

	client := resty.New().
		SetCookieJar(jar).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	return client
}

// serializeCookies flattens the jar's cookies for the given origin to
// the "name=value; name2=value2" form stored in the session record.
// Returns the empty string when the jar holds nothing for the origin.
func serializeCookies(jar http.CookieJar, origin *url.URL) string {
	if jar == nil || origin == nil {
		return ""
	}
	cookies := jar.Cookies(origin)
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// clientFromCookies reconstructs a client whose jar is pre-seeded with
// the serialized cookies, scoped to the portal origin at root path.
// An empty input yields a cookie-less client; the server's response to
// the validation call is the only freshness check.
func clientFromCookies(cookies string, origin *url.URL, timeout time.Duration) *resty.Client {
	client := newClient(timeout)

	var restored []*http.Cookie
	for _, part := range strings.Split(cookies, "; ") {
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok || name == "" {
			continue
		}
		restored = append(restored, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	if len(restored) > 0 {
		client.GetClient().Jar.SetCookies(origin, restored)
	}
	return client
}

// finalURL returns the fully resolved URL of a response after any
// redirects, or nil when the transport never completed a request.
func finalURL(resp *resty.Response) *url.URL {
	if resp == nil || resp.RawResponse == nil || resp.RawResponse.Request == nil {
		return nil
	}
	return resp.RawResponse.Request.URL
}
