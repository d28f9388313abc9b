package azuredevops

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiVersion = "7.1"

// Recursion levels accepted by the items endpoint.
const (
	RecursionOneLevel = "OneLevel"
	RecursionFull     = "Full"
)

// Client represents an Azure DevOps API client
type Client struct {
	baseURL    string
	authorizer Authorizer
	httpClient *http.Client
}

// NewClient creates a new Azure DevOps client
func NewClient(organization string, authorizer Authorizer) *Client {
	// Normalize organization URL
	org := strings.TrimSuffix(organization, "/")
	if !strings.HasPrefix(org, "https://") && !strings.HasPrefix(org, "http://") {
		org = "https://dev.azure.com/" + org
	}

	return &Client{
		baseURL:    org,
		authorizer: authorizer,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// RemoteURL returns the HTTPS clone URL of a repository.
func (c *Client) RemoteURL(projectID, repoID string) string {
	return fmt.Sprintf("%s/%s/_git/%s", c.baseURL, url.PathEscape(projectID), url.PathEscape(repoID))
}

// RepositoryItem represents a file or folder in a repository
type RepositoryItem struct {
	ObjectID      string `json:"objectId"`
	GitObjectType string `json:"gitObjectType"`
	CommitID      string `json:"commitId"`
	Path          string `json:"path"`
	IsFolder      bool   `json:"isFolder"`
	URL           string `json:"url"`
}

// ItemsQuery selects the items returned by GetItems.
type ItemsQuery struct {
	ScopePath      string
	Branch         string // empty means the default branch
	RecursionLevel string // one of the Recursion* constants, default OneLevel
}

// GetItems returns items (files/folders) under a scope path
func (c *Client) GetItems(ctx context.Context, projectID, repoID string, query ItemsQuery) ([]RepositoryItem, error) {
	params := url.Values{}
	params.Set("scopePath", query.ScopePath)
	recursion := query.RecursionLevel
	if recursion == "" {
		recursion = RecursionOneLevel
	}
	params.Set("recursionLevel", recursion)
	setBranch(params, query.Branch)

	endpoint := fmt.Sprintf("/%s/_apis/git/repositories/%s/items?%s",
		url.PathEscape(projectID), url.PathEscape(repoID), params.Encode())

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, "application/json")
	if err != nil {
		return nil, err
	}

	var result struct {
		Value []RepositoryItem `json:"value"`
		Count int              `json:"count"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse items response: %w", err)
	}

	return result.Value, nil
}

// GetItemContent returns the raw content of a file in a repository
func (c *Client) GetItemContent(ctx context.Context, projectID, repoID, path, branch string) ([]byte, error) {
	params := url.Values{}
	params.Set("path", path)
	params.Set("download", "false")
	params.Set("resolveLfs", "true")
	setBranch(params, branch)

	endpoint := fmt.Sprintf("/%s/_apis/git/repositories/%s/items?%s",
		url.PathEscape(projectID), url.PathEscape(repoID), params.Encode())

	return c.doRequest(ctx, http.MethodGet, endpoint, "application/octet-stream")
}

func setBranch(params url.Values, branch string) {
	params.Set("api-version", apiVersion)
	if branch == "" {
		return
	}
	params.Set("versionDescriptor.version", branch)
	params.Set("versionDescriptor.versionType", "branch")
}

func (c *Client) doRequest(ctx context.Context, method, endpoint, accept string) ([]byte, error) {
	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if err := c.authorizer.Authorize(ctx, req); err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Azure DevOps answers a rejected credential with 203 and a sign-in page.
	if resp.StatusCode == http.StatusNonAuthoritativeInfo {
		return nil, fmt.Errorf("API error (status %d): credentials were not accepted", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
