// Package store holds the session credential pair used by the transport in
// the sibling `transport` package.
//
// The pair is the only session state the client keeps: an access token sent
// on every request and a refresh token exchanged for a new pair once the
// access token is rejected. Both are kept under the fixed keys `accessToken`
// and `refreshToken` and are always cleared together.
//
// An in-memory implementation is enough for tests and short lived processes;
// FileStore persists the pair to any afs URL so a CLI session survives
// restarts.
package store
