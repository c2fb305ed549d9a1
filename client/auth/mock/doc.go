// Package mock provides an in-process implementation of the research-RAG API
// that facilitates testing of the session transport and the API client.
//
// The mock issues real HS256 JWT credential pairs, rotates refresh tokens on
// every refresh and exposes hooks to expire or revoke them, so tests can
// drive the client through every session state without a remote service.
package mock
