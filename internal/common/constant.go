// Package common contains constants shared by the client packages: header
// names, roles, navigation paths and the keys of the durable session entries.
package common

// Outbound request headers.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
	RequestIDHeaderName     = "X-Request-ID"
)

// Roles issued by the backend.
const (
	RoleAdmin     = "ROLE_ADMIN"
	RoleApplicant = "ROLE_APPLICANT"
)

// Navigation paths.
const (
	PathHome         = "/"
	PathLogin        = "/auth/login"
	PathRegister     = "/auth/register"
	PathApplicant    = "/applicant"
	PathAdmin        = "/admin"
	PathAdminUsers   = "/admin/users"
	QueryExpired     = "expired"
	QueryRegistered  = "registered"
	OAuthRedirectURL = "oauth2/authorization"
)

// Keys of the two durable session entries.
const (
	StorageKeyToken    = "accessToken"
	StorageKeyUserData = "userData"
)
