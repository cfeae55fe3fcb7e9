// Package mocks provides shared test doubles for interfaces that several
// packages depend on.
//
// Function-field mocks (MockTokenService) fall back to their default
// fields when no function is set. MockStatsCache embeds testify's
// mock.Mock for expectation-based tests.
package mocks
