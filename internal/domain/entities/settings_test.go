//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	builders "github.com/rios0rios0/devops2blob/test/domain/entitybuilders"
)

// clearEnvironment blanks every variable NewSettings reads so the host cannot leak in.
func clearEnvironment(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"AZURE_DEVOPS_ORGANIZATION", "AZURE_DEVOPS_URL", "AZURE_DEVOPS_PROJECT",
		"AZURE_DEVOPS_REPOSITORY", "AZURE_DEVOPS_BRANCH", "AZURE_DEVOPS_ROOT_PATH",
		"AZURE_DEVOPS_SOURCE", "AZURE_DEVOPS_PAT", "AZURE_STORAGE_ACCOUNT",
		"AZURE_STORAGE_CONTAINER", "AZURE_STORAGE_KEY", "AZURE_STORAGE_CONNECTION_STRING",
		"AUTH_MODE", "AZURE_CLIENT_ID",
	} {
		t.Setenv(name, "")
	}
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestResolveSecret(t *testing.T) {
	t.Run("should return empty string for empty input", func(t *testing.T) {
		t.Parallel()

		// given
		raw := ""

		// when
		result := entities.ResolveSecret(raw)

		// then
		assert.Empty(t, result)
	})

	t.Run("should return inline secret unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "abc123xyz"

		// when
		result := entities.ResolveSecret(raw)

		// then
		assert.Equal(t, "abc123xyz", result)
	})

	t.Run("should expand environment variable reference", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("TEST_SECRET_RESOLVE", "my-secret-token")
		raw := "${TEST_SECRET_RESOLVE}"

		// when
		result := entities.ResolveSecret(raw)

		// then
		assert.Equal(t, "my-secret-token", result)
	})

	t.Run("should return empty for unset env var", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "${DEFINITELY_NOT_SET_VAR_12345}"

		// when
		result := entities.ResolveSecret(raw)

		// then
		assert.Empty(t, result)
	})

	t.Run("should read the secret from a file and trim it", func(t *testing.T) {
		t.Parallel()

		// given
		secretFile := filepath.Join(t.TempDir(), "pat")
		require.NoError(t, os.WriteFile(secretFile, []byte("  file-pat\n"), 0o600))

		// when
		result := entities.ResolveSecret(secretFile)

		// then
		assert.Equal(t, "file-pat", result)
	})
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings *entities.Settings
		errPart  string
	}{
		{
			name: "should fail without organization",
			settings: func() *entities.Settings {
				s := builders.NewSettingsBuilder().BuildSettings()
				s.Organization = ""
				return s
			}(),
			errPart: "organization is required",
		},
		{
			name: "should fail without project",
			settings: func() *entities.Settings {
				s := builders.NewSettingsBuilder().BuildSettings()
				s.Project = ""
				return s
			}(),
			errPart: "project is required",
		},
		{
			name: "should fail without repository",
			settings: func() *entities.Settings {
				s := builders.NewSettingsBuilder().BuildSettings()
				s.Repository = ""
				return s
			}(),
			errPart: "repository is required",
		},
		{
			name:     "should fail without container",
			settings: builders.NewSettingsBuilder().WithContainerName("").BuildSettings(),
			errPart:  "container name is required",
		},
		{
			name:     "should fail with an upper-case container name",
			settings: builders.NewSettingsBuilder().WithContainerName("Reports").BuildSettings(),
			errPart:  "invalid container name",
		},
		{
			name:     "should fail with consecutive hyphens in the container name",
			settings: builders.NewSettingsBuilder().WithContainerName("my--container").BuildSettings(),
			errPart:  "invalid container name",
		},
		{
			name:     "should fail with a too short container name",
			settings: builders.NewSettingsBuilder().WithContainerName("ab").BuildSettings(),
			errPart:  "invalid container name",
		},
		{
			name:     "should fail with an unknown source",
			settings: builders.NewSettingsBuilder().WithSource("svn").BuildSettings(),
			errPart:  "unknown source",
		},
		{
			name:     "should fail with an unknown auth mode",
			settings: builders.NewSettingsBuilder().WithAuthMode("certificate").BuildSettings(),
			errPart:  "unknown auth mode",
		},
		{
			name: "should fail for managed identity without storage account",
			settings: func() *entities.Settings {
				s := builders.NewSettingsBuilder().BuildSettings()
				s.StorageAccountName = ""
				return s
			}(),
			errPart: "storage account is required",
		},
		{
			name: "should fail for patAndKey without PAT",
			settings: builders.NewSettingsBuilder().
				WithAuthMode(entities.AuthModePATAndKey).
				WithStorageKey("a2V5").
				BuildSettings(),
			errPart: "personal access token is required",
		},
		{
			name: "should fail for patAndKey without key or connection string",
			settings: builders.NewSettingsBuilder().
				WithAuthMode(entities.AuthModePATAndKey).
				WithPAT("pat").
				BuildSettings(),
			errPart: "AZURE_STORAGE_CONNECTION_STRING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			settings := tt.settings

			// when
			err := settings.Validate()

			// then
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}

	t.Run("should pass for a managed identity configuration", func(t *testing.T) {
		t.Parallel()

		// given
		settings := builders.NewSettingsBuilder().BuildSettings()

		// when
		err := settings.Validate()

		// then
		require.NoError(t, err)
	})

	t.Run("should pass for patAndKey with a connection string only", func(t *testing.T) {
		t.Parallel()

		// given
		settings := builders.NewSettingsBuilder().
			WithAuthMode(entities.AuthModePATAndKey).
			WithPAT("pat").
			WithConnectionString("DefaultEndpointsProtocol=https;AccountName=a;AccountKey=a2V5").
			BuildSettings()
		settings.StorageAccountName = ""

		// when
		err := settings.Validate()

		// then
		require.NoError(t, err)
	})
}

func TestSettingsDerivedValues(t *testing.T) {
	t.Parallel()

	t.Run("should build the host URL from the organization", func(t *testing.T) {
		t.Parallel()

		// given
		settings := builders.NewSettingsBuilder().BuildSettings()

		// when
		coords := settings.Coordinates()

		// then
		assert.Equal(t, "https://dev.azure.com/MyOrg", coords.HostURL)
		assert.Equal(t, "csv_files", coords.Repository)
	})

	t.Run("should prefer the explicit DevOps URL", func(t *testing.T) {
		t.Parallel()

		// given
		settings := builders.NewSettingsBuilder().BuildSettings()
		settings.DevOpsURL = "https://myorg.visualstudio.com/"

		// when
		hostURL := settings.HostURL()

		// then
		assert.Equal(t, "https://myorg.visualstudio.com", hostURL)
	})

	t.Run("should build the blob endpoint from the account", func(t *testing.T) {
		t.Parallel()

		// given
		settings := builders.NewSettingsBuilder().BuildSettings()

		// when
		accountURL := settings.StorageAccountURL()

		// then
		assert.Equal(t, "https://faqtestblobstorage.blob.core.windows.net/", accountURL)
	})
}

func TestNewSettings(t *testing.T) {
	t.Run("should load from the environment only", func(t *testing.T) {
		// given
		clearEnvironment(t)
		t.Setenv("AZURE_DEVOPS_ORGANIZATION", "adarshs0791")
		t.Setenv("AZURE_DEVOPS_PROJECT", "FAQ_Copilot")
		t.Setenv("AZURE_DEVOPS_REPOSITORY", "csv_files")
		t.Setenv("AZURE_STORAGE_ACCOUNT", "faqtestblobstorage")
		t.Setenv("AZURE_STORAGE_CONTAINER", "empty-container")

		// when
		settings, err := entities.NewSettings("")

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://dev.azure.com/adarshs0791", settings.HostURL())
		assert.Equal(t, "main", settings.Branch)
		assert.Equal(t, "/", settings.RootPath)
		assert.Equal(t, entities.SourceKindREST, settings.Source)
		assert.Equal(t, entities.AuthModeManagedIdentity, settings.AuthMode)
	})

	t.Run("should load a YAML file and let the environment override it", func(t *testing.T) {
		// given
		clearEnvironment(t)
		t.Setenv("AZURE_DEVOPS_BRANCH", "refs/heads/release")
		t.Setenv("TEST_STORAGE_KEY", "a2V5")

		cfgFile := filepath.Join(t.TempDir(), "devops2blob.yaml")
		content := `
organization: MyOrg
project: FAQ_Copilot
repository: csv_files
branch: main
root_path: /data
source: git
container_name: data-ingestion
storage_account_name: faqtestblobstorage
auth_mode: patAndKey
pat: inline-pat
storage_account_key: "${TEST_STORAGE_KEY}"
`
		require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o600))

		// when
		settings, err := entities.NewSettings(cfgFile)

		// then
		require.NoError(t, err)
		assert.Equal(t, "release", settings.Branch)
		assert.Equal(t, "/data", settings.RootPath)
		assert.Equal(t, entities.SourceKindGit, settings.Source)
		assert.Equal(t, entities.AuthModePATAndKey, settings.AuthMode)
		assert.Equal(t, "inline-pat", settings.PAT)
		assert.Equal(t, "a2V5", settings.StorageAccountKey)
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		// given
		clearEnvironment(t)

		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("should fail validation when required values are missing", func(t *testing.T) {
		// given
		clearEnvironment(t)

		// when
		_, err := entities.NewSettings("")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "organization is required")
	})
}
