// Package client provides the concrete implementation of the k2.Client
// interface and its resource clients.
package client

import (
	"context"
	"fmt"

	"github.com/knowledge2-io/knowledge2-go/internal/constants"
	"github.com/knowledge2-io/knowledge2-go/internal/http"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// Client implements the k2.Client interface.
type Client struct {
	httpClient *http.Client
	orgID      string

	// Resource clients
	auth        k2.AuthClient
	orgs        k2.OrgsClient
	projects    k2.ProjectsClient
	corpora     k2.CorporaClient
	documents   k2.DocumentsClient
	search      k2.SearchClient
	indexes     k2.IndexesClient
	models      k2.ModelsClient
	deployments k2.DeploymentsClient
	training    k2.TrainingClient
	metadata    k2.MetadataClient
	jobs        k2.JobsClient
	usage       k2.UsageClient
	audit       k2.AuditClient
}

// buildHTTPOptions translates the public config into transport options.
func buildHTTPOptions(config *k2.Config) []http.Option {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if len(config.Headers) > 0 {
		opts = append(opts, http.WithDefaultHeaders(config.Headers))
	}

	if config.Timeout > 0 {
		opts = append(opts, http.WithTimeout(config.Timeout))
	}

	if config.Limits != nil {
		opts = append(opts, http.WithLimits(config.Limits))
	}

	maxRetries := constants.DefaultMaxRetries
	if config.MaxRetries != nil {
		maxRetries = *config.MaxRetries
	}

	waitMin := config.BackoffFactor
	if waitMin <= 0 {
		waitMin = constants.DefaultBackoffFactor
	}

	waitMax := config.BackoffMax
	if waitMax <= 0 {
		waitMax = constants.DefaultBackoffMax
	}

	opts = append(opts, http.WithRetryConfig(maxRetries, waitMin, waitMax))

	return opts
}

// New creates a new Knowledge2 API client. When an API key is configured and
// no org ID is given, the org is discovered from the key's identity.
func New(ctx context.Context, config *k2.Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	host := config.APIHost
	if host == "" {
		host = k2.DefaultAPIHost
	}

	baseURL, err := k2.NormalizeAPIHost(host)
	if err != nil {
		return nil, err
	}

	credentials := &http.Credentials{
		APIKey:      config.APIKey,
		BearerToken: config.BearerToken,
		AdminToken:  config.AdminToken,
	}

	httpClient := http.NewClient(baseURL, credentials, buildHTTPOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		orgID:      config.OrgID,
	}

	client.auth = NewAuthClient(httpClient)
	client.orgs = NewOrgsClient(httpClient)
	client.projects = NewProjectsClient(httpClient)
	client.corpora = NewCorporaClient(httpClient)
	client.documents = NewDocumentsClient(httpClient)
	client.search = NewSearchClient(httpClient)
	client.indexes = NewIndexesClient(httpClient)
	client.models = NewModelsClient(httpClient)
	client.deployments = NewDeploymentsClient(httpClient)
	client.metadata = NewMetadataClient(httpClient)
	client.jobs = NewJobsClient(httpClient)
	client.training = NewTrainingClient(httpClient, client.jobs)
	client.usage = NewUsageClient(httpClient)
	client.audit = NewAuditClient(httpClient)

	if client.orgID == "" && config.APIKey != "" {
		identity, err := client.auth.WhoAmI(ctx)
		if err != nil {
			httpClient.Close()

			return nil, fmt.Errorf("discovering org from API key: %w", err)
		}

		client.orgID = identity.OrgID
	}

	return client, nil
}

// Auth implements k2.Client.Auth.
func (c *Client) Auth() k2.AuthClient { return c.auth }

// Orgs implements k2.Client.Orgs.
func (c *Client) Orgs() k2.OrgsClient { return c.orgs }

// Projects implements k2.Client.Projects.
func (c *Client) Projects() k2.ProjectsClient { return c.projects }

// Corpora implements k2.Client.Corpora.
func (c *Client) Corpora() k2.CorporaClient { return c.corpora }

// Documents implements k2.Client.Documents.
func (c *Client) Documents() k2.DocumentsClient { return c.documents }

// Search implements k2.Client.Search.
func (c *Client) Search() k2.SearchClient { return c.search }

// Indexes implements k2.Client.Indexes.
func (c *Client) Indexes() k2.IndexesClient { return c.indexes }

// Models implements k2.Client.Models.
func (c *Client) Models() k2.ModelsClient { return c.models }

// Deployments implements k2.Client.Deployments.
func (c *Client) Deployments() k2.DeploymentsClient { return c.deployments }

// Training implements k2.Client.Training.
func (c *Client) Training() k2.TrainingClient { return c.training }

// Metadata implements k2.Client.Metadata.
func (c *Client) Metadata() k2.MetadataClient { return c.metadata }

// Jobs implements k2.Client.Jobs.
func (c *Client) Jobs() k2.JobsClient { return c.jobs }

// Usage implements k2.Client.Usage.
func (c *Client) Usage() k2.UsageClient { return c.usage }

// Audit implements k2.Client.Audit.
func (c *Client) Audit() k2.AuditClient { return c.audit }

// OrgID implements k2.Client.OrgID.
func (c *Client) OrgID() string { return c.orgID }

// Close implements k2.Client.Close.
func (c *Client) Close() { c.httpClient.Close() }
