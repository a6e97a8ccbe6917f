// Package k2 provides types, interfaces, and helpers for working with the
// Knowledge2 retrieval platform API.
//
// # Overview
//
// The k2 package defines the domain types (e.g., Corpus, Document, Job,
// SearchResponse) and the interfaces for resource-oriented clients (e.g.,
// CorporaClient, SearchClient). A concrete implementation of these clients is
// provided by the k2client package, which wires configuration, transport,
// authentication, and retries. Most consumers should import k2client to
// construct a client and then interact with the resource client interfaces
// exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/knowledge2-io/knowledge2-go/pkg/k2"
//	  "github.com/knowledge2-io/knowledge2-go/pkg/k2client"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := k2client.New(ctx, &k2.Config{APIKey: "sk-..."})
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  // List the first page of corpora
//	  corpora, err := cli.Corpora().List(ctx, k2.NewListParams().WithLimit(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = corpora
//	}
//
// # Queries and pagination
//
// Use ListParams to express common list options (limit, offset, filters).
// The package also provides helpers for iterating or collecting paginated
// results lazily:
//
//	it := cli.Corpora().Iterate(ctx, 100)
//	for it.HasNext() {
//	  corpus, err := it.Next()
//	  if err != nil { break }
//	  _ = corpus
//	}
//
// # Errors
//
// Every error returned by the SDK implements the Error interface, which
// carries a Retryable flag. Status-bearing errors are concrete variants of
// APIError (AuthenticationError, NotFoundError, RateLimitError, ...);
// transport failures surface as APIConnectionError or APITimeoutError.
// Helpers such as IsNotFound, IsRateLimit, and IsRetryable make it easy to
// branch on common cases.
//
// # Retries
//
// Transient failures (HTTP 429, 5xx, connection failures, timeouts) are
// retried automatically with exponential backoff and jitter, bounded by
// Config.MaxRetries. A server-supplied Retry-After is honored. Non-retryable
// errors are surfaced immediately.
package k2
