// Package rag provides high-level helpers for working with the research-RAG API.
//
// The package glues the API client with a persistent session store, logging
// and metrics. Its entry point is NewClient, which accepts ClientOptions that
// can be populated from CLI flags, a YAML file (LoadClientOptions) or RAG_*
// environment variables.
//
// Example:
//
//	options, _ := rag.LoadClientOptions(ctx, "file:///etc/rag/client.yaml")
//	cli, _ := rag.NewClient(ctx, options)
//	docs, _ := cli.ListDocuments(ctx)
//
// Sessions survive restarts: the credential pair is stored at
// ClientOptions.SessionURL and rotated transparently when the service
// rejects an expired access token.
package rag
