// Package common contains shared constants and sentinel errors used across
// contactbook components.
package common

const (
	// AuthorizationHeaderName carries the session token as "Bearer <token>".
	AuthorizationHeaderName = "Authorization"

	// DefaultSubscription is assigned to every new account.
	DefaultSubscription = "starter"
)
