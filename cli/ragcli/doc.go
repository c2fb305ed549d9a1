// Command ragcli is a command line client for the research-RAG API.
//
// Log in once with `ragcli login --email ...`; later commands reuse the stored
// session and refresh it when the access token expires. `ragcli serve-mock`
// runs an in-memory API for trying the client without the real service.
package main
