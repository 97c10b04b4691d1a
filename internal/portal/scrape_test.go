package portal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const casLoginPage = `<!DOCTYPE html>
<html><body>
<form id="fm1" action="/login" method="post">
  <input type="text" name="username"/>
  <input type="password" name="password"/>
  <input type="hidden" name="execution" value="e1s1-abc"/>
  <input type="hidden" name="_eventId" value="submit"/>
</form>
</body></html>`

const casLoginPageWithLT = `<html><body>
<form action="/login" method="post">
  <input type="hidden" name="execution" value="e2s1-def"/>
  <input type="hidden" name="lt" value="LT-42"/>
</form>
</body></html>`

func TestExtractLoginTokens(t *testing.T) {
	execution, lt, err := ExtractLoginTokens(casLoginPage)
	require.NoError(t, err)
	assert.Equal(t, "e1s1-abc", execution)
	assert.Empty(t, lt)
}

func TestExtractLoginTokensWithLT(t *testing.T) {
	execution, lt, err := ExtractLoginTokens(casLoginPageWithLT)
	require.NoError(t, err)
	assert.Equal(t, "e2s1-def", execution)
	assert.Equal(t, "LT-42", lt)
}

func TestExtractLoginTokensMissingExecution(t *testing.T) {
	_, _, err := ExtractLoginTokens(`<html><body><form><input name="lt" value="x"/></form></body></html>`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenMissing))
}

func TestExtractLoginTokensMalformedMarkup(t *testing.T) {
	// Unclosed tags still parse; the required token is simply absent.
	_, _, err := ExtractLoginTokens(`<html><body><div><span>broken`)
	assert.True(t, errors.Is(err, ErrTokenMissing))
}

func TestExtractSecurityToken(t *testing.T) {
	token, err := ExtractSecurityToken(`<html><head><meta name="_csrf" content="tok-123"/></head></html>`)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestExtractSecurityTokenMissing(t *testing.T) {
	_, err := ExtractSecurityToken(`<html><head><meta name="viewport" content="width=device-width"/></head></html>`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenMissing))
}

func TestExtractSecurityTokenEmptyDocument(t *testing.T) {
	_, err := ExtractSecurityToken("")
	assert.Error(t, err)
}
