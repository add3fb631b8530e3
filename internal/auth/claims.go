package auth

import "github.com/golang-jwt/jwt/v5"

// TokenType distinguishes access tokens from refresh tokens. Verify
// rejects a token whose type does not match what the caller asked for,
// so a refresh token can never authenticate an API call directly.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the one claims shape this service issues and accepts.
// Every token is scoped to a workspace; anything that cuts across
// workspaces is an authorization decision made server-side, never
// something a token can grant on its own.
type Claims struct {
	jwt.RegisteredClaims

	UserID      string    `json:"user_id"`
	WorkspaceID string    `json:"workspace_id"`
	Role        string    `json:"role"`
	TokenType   TokenType `json:"token_type"`
}
