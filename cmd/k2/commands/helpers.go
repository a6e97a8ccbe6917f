// Package commands implements the k2 CLI command tree.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/knowledge2-io/knowledge2-go/internal/constants"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2client"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// JSON formatting.
	defaultJSONIndent = 2
)

// Common static errors used throughout the commands package.
var (
	ErrAPIKeyRequired     = errors.New("API key is required (use --api-key, K2_API_KEY, or k2 login)")
	ErrCorpusNotFound     = errors.New("corpus not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrCorpusNameRequired = errors.New("corpus name is required")
	ErrQueryRequired      = errors.New("search query is required")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// zerologAdapter exposes a zerolog.Logger through the SDK's Logger interface.
type zerologAdapter struct {
	logger zerolog.Logger
}

func (a *zerologAdapter) log(event *zerolog.Event, msg string, fields map[string]interface{}) {
	for key, value := range fields {
		event = event.Interface(key, value)
	}

	event.Msg(msg)
}

func (a *zerologAdapter) Debug(msg string, fields map[string]interface{}) {
	a.log(a.logger.Debug(), msg, fields)
}

func (a *zerologAdapter) Info(msg string, fields map[string]interface{}) {
	a.log(a.logger.Info(), msg, fields)
}

func (a *zerologAdapter) Warn(msg string, fields map[string]interface{}) {
	a.log(a.logger.Warn(), msg, fields)
}

func (a *zerologAdapter) Error(msg string, fields map[string]interface{}) {
	a.log(a.logger.Error(), msg, fields)
}

// newCLILogger builds the zerolog-backed logger used for --verbose/--debug.
func newCLILogger() k2.Logger {
	level := zerolog.WarnLevel
	if viper.GetBool("verbose") || viper.GetBool("debug") {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	return &zerologAdapter{logger: logger}
}

// CreateClient builds an API client from flags, environment, and the saved
// config file.
func CreateClient(ctx context.Context) (k2.Client, error) {
	apiKey := viper.GetString("api-key")
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	config := &k2.Config{
		APIHost: viper.GetString("api"),
		APIKey:  apiKey,
		OrgID:   viper.GetString("org"),
		Debug:   viper.GetBool("debug"),
		Logger:  newCLILogger(),
	}

	client, err := k2client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// StandardJSONRenderer writes data as indented JSON to stdout.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML to stdout.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer func() {
		_ = encoder.Close()
	}()

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return nil
}

// newLookupCache builds the name-to-ID lookup cache selected by --cache. The
// cache memoizes resolutions only; API responses are never cached.
func newLookupCache() k2.Cache {
	builder := k2.DefaultCacheConfig()

	switch viper.GetString("cache") {
	case "nats":
		builder.Type = k2.CacheTypeNATS
		builder.NATS = &k2.NATSKVConfig{
			URL:    viper.GetString("nats-url"),
			Bucket: "k2-cli-lookups",
			TTL:    constants.DefaultCacheTTL,
		}
	case "none":
		builder.Type = k2.CacheTypeNone
	}

	cache, err := k2.NewCacheFromConfig(builder)
	if err != nil {
		// Fall back to no caching rather than failing the command.
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Warning: lookup cache unavailable: %v\n", err)
		}

		return k2.NewNoOpCache()
	}

	return cache
}

// resolveCorpusID resolves a corpus name or ID to its ID, consulting the
// lookup cache before listing corpora.
func resolveCorpusID(ctx context.Context, client k2.Client, nameOrID string) (string, error) {
	// IDs pass through; a direct Get is cheaper than a listing.
	if _, err := client.Corpora().Get(ctx, nameOrID); err == nil {
		return nameOrID, nil
	}

	cache := newLookupCache()
	key := k2.LookupKey("corpus", client.OrgID(), nameOrID)

	if entry, err := cache.Get(ctx, key); err == nil {
		return string(entry.Data), nil
	}

	iterator := client.Corpora().Iterate(ctx, constants.DefaultPageSize)

	for iterator.HasNext() {
		corpus, err := iterator.Next()
		if err != nil {
			return "", fmt.Errorf("failed to find corpus: %w", err)
		}

		if corpus.Name == nameOrID || corpus.ID == nameOrID {
			_ = cache.Set(ctx, key, &k2.CacheEntry{
				Data:      []byte(corpus.ID),
				ExpiresAt: time.Now().Add(constants.DefaultCacheTTL),
			})

			return corpus.ID, nil
		}
	}

	return "", fmt.Errorf("corpus '%s': %w", nameOrID, ErrCorpusNotFound)
}
