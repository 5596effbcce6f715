package domain

// AuthMethod represents how requests to the platform are authenticated.
type AuthMethod string

const (
	// AuthMethodNone sends requests without credentials.
	AuthMethodNone AuthMethod = "none"

	// AuthMethodPAT sends a static personal access token.
	AuthMethodPAT AuthMethod = "pat"
)

// String returns the auth method name.
func (m AuthMethod) String() string {
	return string(m)
}
