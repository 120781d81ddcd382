// Package httpclient provides a small configurable HTTP client used to talk
// to the scribe backend: base URL resolution, bearer auth, default headers,
// status-code classification into typed errors, and generic JSON helpers.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://backend.example.com",
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//	resp, err := httpclient.Get[Session](ctx, client, "/api/scribe/abc/")
//
// There is deliberately no automatic retry: the scribe poller owns all
// wait-and-recheck behavior.
package httpclient
