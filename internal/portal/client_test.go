package portal

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookiePairs(t *testing.T, serialized string) []string {
	t.Helper()
	if serialized == "" {
		return nil
	}
	pairs := strings.Split(serialized, "; ")
	sort.Strings(pairs)
	return pairs
}

func TestCookieRoundTrip(t *testing.T) {
	origin, err := url.Parse(PortalURL)
	require.NoError(t, err)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	jar.SetCookies(origin, []*http.Cookie{
		{Name: "a", Value: "1", Path: "/"},
		{Name: "b", Value: "2", Path: "/"},
	})

	serialized := serializeCookies(jar, origin)
	require.NotEmpty(t, serialized)

	client := clientFromCookies(serialized, origin, time.Second)
	again := serializeCookies(client.GetClient().Jar, origin)

	assert.Equal(t, cookiePairs(t, serialized), cookiePairs(t, again))
	assert.ElementsMatch(t, []string{"a=1", "b=2"}, cookiePairs(t, again))
}

func TestSerializeCookiesEmptyJar(t *testing.T) {
	origin, err := url.Parse(PortalURL)
	require.NoError(t, err)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	assert.Empty(t, serializeCookies(jar, origin))
}

func TestClientFromCookiesEmptyInput(t *testing.T) {
	origin, err := url.Parse(PortalURL)
	require.NoError(t, err)

	client := clientFromCookies("", origin, time.Second)
	require.NotNil(t, client)
	assert.Empty(t, client.GetClient().Jar.Cookies(origin))
}

func TestClientFromCookiesSkipsGarbage(t *testing.T) {
	origin, err := url.Parse(PortalURL)
	require.NoError(t, err)

	client := clientFromCookies("good=1; noequals; =novalue", origin, time.Second)
	assert.Equal(t, []string{"good=1"}, cookiePairs(t, serializeCookies(client.GetClient().Jar, origin)))
}

func TestNewClientHasBoundedTimeout(t *testing.T) {
	client := newClient(5 * time.Second)
	assert.Equal(t, 5*time.Second, client.GetClient().Timeout)
	assert.NotNil(t, client.GetClient().Jar)
}
