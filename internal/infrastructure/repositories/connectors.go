package repositories

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/rios0rios0/devops2blob/internal/azuredevops"
	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	domainRepos "github.com/rios0rios0/devops2blob/internal/domain/repositories"
	"github.com/rios0rios0/devops2blob/internal/infrastructure/repositories/azureblob"
	"github.com/rios0rios0/devops2blob/internal/infrastructure/repositories/devops"
	"github.com/rios0rios0/devops2blob/internal/infrastructure/repositories/gitclone"
)

// NewManagedIdentityConnector authenticates both sides with one Azure identity.
// DevOps receives a bearer token for its resource scope; Blob Storage receives the
// credential itself.
func NewManagedIdentityConnector(
	settings *entities.Settings,
) (domainRepos.SourceRepository, domainRepos.SinkRepository, error) {
	credential, err := newIdentityCredential(settings.ClientID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create managed identity credential: %w", err)
	}

	authorizer := azuredevops.NewTokenAuthorizer(credential)
	source := newSource(settings, authorizer, gitclone.BearerAuth(authorizer.Token))

	client, err := azblob.NewClient(settings.StorageAccountURL(), credential, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create blob service client: %w", err)
	}
	return source, azureblob.NewSinkRepository(client), nil
}

// NewPATAndKeyConnector authenticates DevOps with a PAT and Blob Storage with a
// connection string, or with the account name and key when no connection string is set.
func NewPATAndKeyConnector(
	settings *entities.Settings,
) (domainRepos.SourceRepository, domainRepos.SinkRepository, error) {
	source := newSource(settings, azuredevops.NewPATAuthorizer(settings.PAT), gitclone.BasicAuth(settings.PAT))

	client, err := newSharedKeyClient(settings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create blob service client: %w", err)
	}
	return source, azureblob.NewSinkRepository(client), nil
}

func newIdentityCredential(clientID string) (azcore.TokenCredential, error) {
	if clientID != "" {
		//nolint:exhaustruct // only the user-assigned identity is selected
		return azidentity.NewManagedIdentityCredential(&azidentity.ManagedIdentityCredentialOptions{
			ID: azidentity.ClientID(clientID),
		})
	}
	return azidentity.NewDefaultAzureCredential(nil)
}

func newSharedKeyClient(settings *entities.Settings) (*azblob.Client, error) {
	if settings.StorageConnectionString != "" {
		return azblob.NewClientFromConnectionString(settings.StorageConnectionString, nil)
	}
	credential, err := azblob.NewSharedKeyCredential(settings.StorageAccountName, settings.StorageAccountKey)
	if err != nil {
		return nil, err
	}
	return azblob.NewClientWithSharedKeyCredential(settings.StorageAccountURL(), credential, nil)
}

func newSource(
	settings *entities.Settings,
	authorizer azuredevops.Authorizer,
	gitAuth gitclone.AuthProvider,
) domainRepos.SourceRepository {
	client := azuredevops.NewClient(settings.HostURL(), authorizer)
	rest := devops.NewSourceRepository(client)
	if settings.Source == entities.SourceKindGit {
		return gitclone.NewSourceRepository(client.RemoteURL(settings.Project, settings.Repository), gitAuth, nil).
			ResolveLFSWith(rest.GetItemContent)
	}
	return rest
}
