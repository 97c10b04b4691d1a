package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/uomtools/sisgate/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// defaultTimeout bounds every round trip so a hung provider cannot
// stall the process.
const defaultTimeout = 30 * time.Second

// session is the in-memory authenticated session. It is installed and
// cleared as a whole; no partial session is ever observable.
type session struct {
	client    *resty.Client
	csrf      string
	profileID string
}

// Config tunes the manager. Zero values fall back to the production
// endpoints, the default timeout, and no request pacing.
type Config struct {
	Endpoints         Endpoints
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Manager owns the process's single portal session and drives the CAS
// handshake, persistence, and restore.
type Manager struct {
	store     *Store
	endpoints Endpoints
	timeout   time.Duration
	limiter   *rate.Limiter
	log       *logging.Logger

	mu   sync.RWMutex
	sess *session
}

// NewManager creates a session manager in the NoSession state.
func NewManager(cfg Config, store *Store, log *logging.Logger) *Manager {
	if cfg.Endpoints == (Endpoints{}) {
		cfg.Endpoints = DefaultEndpoints()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1)
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Manager{
		store:     store,
		endpoints: cfg.Endpoints,
		timeout:   cfg.Timeout,
		limiter:   limiter,
		log:       log,
	}
}

// Authenticated reports whether a session is installed.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess != nil
}

// snapshot copies the current session fields without holding the lock
// across any subsequent network call.
func (m *Manager) snapshot() (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.sess == nil {
		return nil, ErrNotAuthenticated
	}
	return m.sess, nil
}

// install atomically replaces the session slot.
func (m *Manager) install(s *session) {
	m.mu.Lock()
	m.sess = s
	m.mu.Unlock()
}

// wait applies outbound request pacing.
func (m *Manager) wait(ctx context.Context) error {
	return m.limiter.Wait(ctx)
}

// Login runs the full CAS handshake and installs the resulting
// session. On success it returns the student data payload fetched as
// the session's correctness proof.
func (m *Manager) Login(ctx context.Context, username, password string) (interface{}, error) {
	client := newClient(m.timeout)

	// Portal root first, to pick up the origin cookies the CAS
	// redirect chain expects.
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := client.R().SetContext(ctx).Get(m.endpoints.Portal); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPortalUnreachable, err)
	}

	// Load the CAS login page and capture its resolved URL for the
	// Referer of the credential POST.
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	page, err := client.R().
		SetContext(ctx).
		SetQueryParam("service", m.endpoints.Service).
		Get(m.endpoints.SSO)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCASUnreachable, err)
	}
	loginURL := finalURL(page)

	execution, lt, err := ExtractLoginTokens(page.String())
	if err != nil {
		return nil, err
	}

	// Submit credentials. The lt token is provider-optional.
	form := map[string]string{
		"username":  username,
		"password":  password,
		"execution": execution,
		"_eventId":  "submit",
	}
	if lt != "" {
		form["lt"] = lt
	}
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	req := client.R().
		SetContext(ctx).
		SetQueryParam("service", m.endpoints.Service).
		SetFormData(form)
	if loginURL != nil {
		req.SetHeader("Referer", loginURL.String())
	}
	resp, err := req.Post(m.endpoints.SSO)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCASUnreachable, err)
	}

	// The CAS never reports rejection explicitly: a POST that ends up
	// back on the SSO host was refused, any other host means the
	// service redirect went through.
	if final := finalURL(resp); final != nil && final.Host == m.endpoints.casHost() {
		return nil, fmt.Errorf("%w (ended at %s)", ErrInvalidCredentials, final)
	}

	// The portal landing page now carries the anti-forgery token.
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	home, err := client.R().SetContext(ctx).Get(m.endpoints.Portal)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPortalUnreachable, err)
	}
	csrf, err := ExtractSecurityToken(home.String())
	if err != nil {
		return nil, err
	}

	// Discover which profile subsequent calls operate on.
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	profResp, err := client.R().
		SetContext(ctx).
		SetHeader("X-CSRF-TOKEN", csrf).
		SetHeader("X-Requested-With", "XMLHttpRequest").
		Get(m.endpoints.Portal + profilesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	var profiles interface{}
	if err := json.Unmarshal(profResp.Body(), &profiles); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	profileID, ok := FindProfileID(profiles)
	if !ok {
		return nil, fmt.Errorf("%w in: %s", ErrNoProfile, profResp.String())
	}

	// Fetch the student payload with the complete session fields;
	// this doubles as the proof the session works.
	sess := &session{client: client, csrf: csrf, profileID: profileID}
	info, err := m.apiGet(ctx, sess, studentDataPath)
	if err != nil {
		return nil, err
	}

	// Persistence is best-effort: losing the cache must not fail an
	// otherwise successful login.
	if origin, err := m.endpoints.portalOrigin(); err == nil {
		rec := Record{
			PortalCookies: serializeCookies(client.GetClient().Jar, origin),
			CSRF:          csrf,
			ProfileID:     profileID,
		}
		if err := m.store.Save(rec); err != nil {
			m.log.Warn("session persist failed", zap.Error(err))
		}
	}

	m.install(sess)
	m.log.Info("login complete", zap.String("profile_id", profileID))
	return info, nil
}

// Restore rebuilds a session from the persisted record and validates
// it with a single student data fetch. A failed validation is the one
// place an API error is read as session invalidity: the record is
// deleted and the caller must log in again.
func (m *Manager) Restore(ctx context.Context) (interface{}, error) {
	rec, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	origin, err := m.endpoints.portalOrigin()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	client := clientFromCookies(rec.PortalCookies, origin, m.timeout)

	sess := &session{client: client, csrf: rec.CSRF, profileID: rec.ProfileID}
	info, err := m.apiGet(ctx, sess, studentDataPath)
	if err != nil {
		if derr := m.store.Delete(); derr != nil {
			m.log.Warn("stale session delete failed", zap.Error(derr))
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	// Nothing changed on disk, so no re-persist.
	m.install(sess)
	m.log.Info("session restored", zap.String("profile_id", rec.ProfileID))
	return info, nil
}

// Logout clears the in-memory session and drops the persisted record.
// Idempotent; a missing record or failed delete never blocks the
// state transition.
func (m *Manager) Logout() {
	if err := m.store.Delete(); err != nil {
		m.log.Warn("session delete failed", zap.Error(err))
	}
	m.mu.Lock()
	m.sess = nil
	m.mu.Unlock()
}
