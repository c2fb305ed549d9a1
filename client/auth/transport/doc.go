// Package transport implements the session http.RoundTripper.
//
// Every outbound request carries the stored access token as a bearer
// credential. When the server answers `401 Unauthorized` the RoundTripper
// exchanges the stored refresh token for a new credential pair, persists the
// rotated pair and replays the original request once. A request is never
// refreshed twice, and concurrent rejections share a single refresh call.
//
// When the session cannot be recovered (no refresh token, or the refresh call
// fails) registered InvalidationHandlers are notified so the presentation
// layer can send the user back to login.
package transport
