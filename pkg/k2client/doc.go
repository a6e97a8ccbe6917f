// Package k2client provides the primary entry point for constructing a
// Knowledge2 API client that implements the k2.Client interface.
//
// It layers configuration, HTTP transport, authentication, and retries on
// top of the resource interfaces and types defined in the k2 package. Most
// applications should import k2client to build a client, then use the
// returned k2.Client to access resource-specific clients, for example
// Corpora(), Documents(), Search(), etc.
//
// Quick start
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
//
//	  // Minimal: an API key against the production endpoint.
//	  cli, err := k2client.NewWithAPIKey(ctx, "sk-...")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  // Or with full configuration:
//	  cli, err = k2client.New(ctx, &k2.Config{
//	    APIHost:    "https://api.staging.knowledge2.ai",
//	    APIKey:     "sk-...",
//	    MaxRetries: k2.Int(3),
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the k2.Client interface
//	  corpora, err := cli.Corpora().List(ctx, k2.NewListParams().WithLimit(10))
//	  if err != nil { log.Fatal(err) }
//	  _ = corpora
//	}
//
// # Organisation scoping
//
// When Config.OrgID is empty and an API key is configured, New calls the
// identity endpoint once to discover the key's organisation. Bearer sessions
// must pass the org explicitly.
//
// # Helpers
//
// The package also provides convenience constructors NewWithAPIKey,
// NewWithBearerToken, and NewWithAdminToken that wrap New with the
// appropriate configuration.
package k2client
