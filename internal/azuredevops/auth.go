package azuredevops

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// Scope is the Entra ID resource scope of Azure DevOps.
const Scope = "499b84ac-1321-427f-aa17-267ca6975798/.default"

// Authorizer sets credentials on an outgoing request.
type Authorizer interface {
	Authorize(ctx context.Context, req *http.Request) error
}

// PATAuthorizer authenticates with a personal access token (Basic auth, empty user).
type PATAuthorizer struct {
	token string
}

// NewPATAuthorizer creates an Authorizer for the given PAT.
func NewPATAuthorizer(pat string) *PATAuthorizer {
	return &PATAuthorizer{token: pat}
}

func (a *PATAuthorizer) Authorize(_ context.Context, req *http.Request) error {
	auth := base64.StdEncoding.EncodeToString([]byte(":" + a.token))
	req.Header.Set("Authorization", "Basic "+auth)
	return nil
}

// TokenAuthorizer authenticates with an Entra ID bearer token, typically obtained
// from a managed identity.
type TokenAuthorizer struct {
	credential azcore.TokenCredential
}

// NewTokenAuthorizer creates an Authorizer backed by credential.
func NewTokenAuthorizer(credential azcore.TokenCredential) *TokenAuthorizer {
	return &TokenAuthorizer{credential: credential}
}

// Token acquires a bearer token for Azure DevOps. The credential caches and refreshes it.
func (a *TokenAuthorizer) Token(ctx context.Context) (string, error) {
	token, err := a.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{Scope}})
	if err != nil {
		return "", fmt.Errorf("failed to acquire Azure DevOps token: %w", err)
	}
	return token.Token, nil
}

func (a *TokenAuthorizer) Authorize(ctx context.Context, req *http.Request) error {
	token, err := a.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
