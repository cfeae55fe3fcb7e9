// Package api exposes the reading-notes services over HTTP. Handlers
// decode and validate requests, call the service layer and translate
// domain error kinds into status codes and sanitized messages.
package api
