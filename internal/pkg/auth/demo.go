package auth

import "crypto/subtle"

// DemoProvider is an explicitly flagged identity provider for demo logins.
// It holds one fixed credential pair configured at startup; when disabled,
// Match never succeeds. Demo users are ordinary seeded accounts; the
// provider only decides whether the credential-store password check is
// bypassed, it never mints identities of its own.
type DemoProvider struct {
	enabled  bool
	email    string
	password string
}

// NewDemoProvider creates a DemoProvider. An empty email or password
// disables the provider regardless of the enabled flag.
func NewDemoProvider(enabled bool, email, password string) *DemoProvider {
	if email == "" || password == "" {
		enabled = false
	}
	return &DemoProvider{
		enabled:  enabled,
		email:    email,
		password: password,
	}
}

// Enabled reports whether demo login is active
func (p *DemoProvider) Enabled() bool {
	return p.enabled
}

// Email returns the configured demo account email
func (p *DemoProvider) Email() string {
	return p.email
}

// Match reports whether the given credentials are the demo credentials
func (p *DemoProvider) Match(email, password string) bool {
	if !p.enabled {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(p.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(p.password)) == 1
	return emailOK && passOK
}
