// Package auth validates the bearer tokens that identify the current user.
// Tokens are HS256-signed JWTs whose subject is the user's UUID. Issuing
// tokens for real users happens outside this service; GenerateToken exists
// for development and tests.
package auth
