//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create valid settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	settings entities.Settings
}

// NewSettingsBuilder creates a builder with a valid managed-identity configuration.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		settings: entities.Settings{
			Organization:       "MyOrg",
			Project:            "FAQ_Copilot",
			Repository:         "csv_files",
			Branch:             "main",
			RootPath:           "/",
			Source:             entities.SourceKindREST,
			ContainerName:      "empty-container",
			StorageAccountName: "faqtestblobstorage",
			AuthMode:           entities.AuthModeManagedIdentity,
		},
	}
}

// WithAuthMode sets the auth mode.
func (b *SettingsBuilder) WithAuthMode(mode entities.AuthMode) *SettingsBuilder {
	b.settings.AuthMode = mode
	return b
}

// WithSource sets the source kind.
func (b *SettingsBuilder) WithSource(source entities.SourceKind) *SettingsBuilder {
	b.settings.Source = source
	return b
}

// WithContainerName sets the container name.
func (b *SettingsBuilder) WithContainerName(name string) *SettingsBuilder {
	b.settings.ContainerName = name
	return b
}

// WithPAT sets the personal access token.
func (b *SettingsBuilder) WithPAT(pat string) *SettingsBuilder {
	b.settings.PAT = pat
	return b
}

// WithStorageKey sets the storage account key.
func (b *SettingsBuilder) WithStorageKey(key string) *SettingsBuilder {
	b.settings.StorageAccountKey = key
	return b
}

// WithConnectionString sets the storage connection string.
func (b *SettingsBuilder) WithConnectionString(connectionString string) *SettingsBuilder {
	b.settings.StorageConnectionString = connectionString
	return b
}

// WithClientID sets the user-assigned managed identity.
func (b *SettingsBuilder) WithClientID(clientID string) *SettingsBuilder {
	b.settings.ClientID = clientID
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := b.settings
	return &settings
}
