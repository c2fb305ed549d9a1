// Package client implements a Go client for the research-RAG HTTP API.
//
// It covers account management, document upload, per-document question
// answering and faculty publication reports. All calls go through the session
// transport from `client/auth/transport`, which attaches the stored bearer
// credential and transparently refreshes it once when the service answers
// `401 Unauthorized`.
//
// Example:
//
//	cli, _ := client.New("http://localhost:8081/api/v1",
//		client.WithInvalidationHandler(func(ctx context.Context, inv *transport.Invalidation) {
//			fmt.Println("please log in again:", inv.Reason)
//		}))
//	_, _ = cli.Authenticate(ctx, &schema.AuthenticationRequest{Email: "a@b.c", Password: "secret"})
//	docs, _ := cli.ListDocuments(ctx)
package client
