// Package cli implements ragcli, a command line client for the research-RAG API.
//
// The session survives between invocations in an afs backed file store, so a
// user logs in once and every later command transparently refreshes an
// expired access token. Flags take precedence over RAG_* environment
// variables, which may come from a .env file, and both override the optional
// YAML file given with --config.
package cli
