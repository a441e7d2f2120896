package constants

const (
	// ContextKeyPrincipal is the gin context key holding the authenticated principal.
	ContextKeyPrincipal = "principal"
	// ContextKeyRequestID is the gin context key holding the request id.
	ContextKeyRequestID = "request_id"

	HeaderRequestID = "X-Request-ID"

	MinPasswordLength = 8
	// bcrypt only reads the first 72 bytes
	MaxPasswordLength = 72
	MinUsernameLength = 3
	MaxUsernameLength = 50

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
