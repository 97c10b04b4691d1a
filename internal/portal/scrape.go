package portal

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// maxDocumentSize bounds login-page parsing to keep a misbehaving
// provider from exhausting memory.
const maxDocumentSize = 10 * 1024 * 1024

// detectCharset sniffs the document charset, defaulting to utf-8.
func detectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// loadDocument parses hypertext with charset conversion. Partial or
// malformed markup yields a best-effort document, never a panic.
func loadDocument(doc string) (*goquery.Document, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if len(doc) > maxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", maxDocumentSize)
	}

	data := []byte(doc)
	reader := bytes.NewReader(data)
	utf8Reader, err := charset.NewReader(reader, detectCharset(data))
	if err != nil {
		// Fall back to parsing the raw bytes.
		return goquery.NewDocumentFromReader(strings.NewReader(doc))
	}
	return goquery.NewDocumentFromReader(utf8Reader)
}

// ExtractLoginTokens pulls the hidden form tokens out of the CAS login
// page. The execution token is required; lt is returned empty when the
// provider omits it and is then left out of the credential POST.
func ExtractLoginTokens(doc string) (execution, lt string, err error) {
	page, err := loadDocument(doc)
	if err != nil {
		return "", "", fmt.Errorf("login page parse: %w", err)
	}

	execution, ok := page.Find(`input[name="execution"]`).First().Attr("value")
	if !ok {
		return "", "", fmt.Errorf("execution %w", ErrTokenMissing)
	}

	lt = page.Find(`input[name="lt"]`).First().AttrOr("value", "")
	return execution, lt, nil
}

// ExtractSecurityToken pulls the anti-forgery token from the portal
// landing page meta tags.
func ExtractSecurityToken(doc string) (string, error) {
	page, err := loadDocument(doc)
	if err != nil {
		return "", fmt.Errorf("portal page parse: %w", err)
	}

	token, ok := page.Find(`meta[name="_csrf"]`).First().Attr("content")
	if !ok {
		return "", fmt.Errorf("security %w", ErrTokenMissing)
	}
	return token, nil
}
