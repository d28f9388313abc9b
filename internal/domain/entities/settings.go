package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// AuthMode selects how both sides of a transfer authenticate.
type AuthMode string

const (
	// AuthModeManagedIdentity shares one Azure identity between DevOps and Blob Storage.
	AuthModeManagedIdentity AuthMode = "managedIdentity"
	// AuthModePATAndKey uses a DevOps PAT and a storage connection string or account key.
	AuthModePATAndKey AuthMode = "patAndKey"
)

// SourceKind selects how repository items are read.
type SourceKind string

const (
	SourceKindREST SourceKind = "rest"
	SourceKindGit  SourceKind = "git"
)

const (
	defaultBranch   = "main"
	defaultRootPath = "/"
	devOpsHost      = "https://dev.azure.com/"
)

// Settings is the configuration of one deployment. It is built once at process start.
type Settings struct {
	Organization string     `yaml:"organization"`
	DevOpsURL    string     `yaml:"devops_url"` // overrides https://dev.azure.com/<organization>
	Project      string     `yaml:"project"`
	Repository   string     `yaml:"repository"`
	Branch       string     `yaml:"branch"`
	RootPath     string     `yaml:"root_path"`
	Source       SourceKind `yaml:"source"`

	ContainerName      string `yaml:"container_name"`
	StorageAccountName string `yaml:"storage_account_name"`

	AuthMode AuthMode `yaml:"auth_mode"`
	ClientID string   `yaml:"client_id"` // user-assigned managed identity

	// Secrets: inline, ${ENV_VAR}, or a path to a file holding the value.
	PAT                     string `yaml:"pat"`
	StorageAccountKey       string `yaml:"storage_account_key"`
	StorageConnectionString string `yaml:"storage_connection_string"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// containerNamePattern follows the Azure container naming rules.
var containerNamePattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9]|-[a-z0-9])*$`)

// envOverrides maps environment variables onto settings fields.
func envOverrides(s *Settings) map[string]*string {
	return map[string]*string{
		"AZURE_DEVOPS_ORGANIZATION":       &s.Organization,
		"AZURE_DEVOPS_URL":                &s.DevOpsURL,
		"AZURE_DEVOPS_PROJECT":            &s.Project,
		"AZURE_DEVOPS_REPOSITORY":         &s.Repository,
		"AZURE_DEVOPS_BRANCH":             &s.Branch,
		"AZURE_DEVOPS_ROOT_PATH":          &s.RootPath,
		"AZURE_DEVOPS_SOURCE":             (*string)(&s.Source),
		"AZURE_DEVOPS_PAT":                &s.PAT,
		"AZURE_STORAGE_ACCOUNT":           &s.StorageAccountName,
		"AZURE_STORAGE_CONTAINER":         &s.ContainerName,
		"AZURE_STORAGE_KEY":               &s.StorageAccountKey,
		"AZURE_STORAGE_CONNECTION_STRING": &s.StorageConnectionString,
		"AUTH_MODE":                       (*string)(&s.AuthMode),
		"AZURE_CLIENT_ID":                 &s.ClientID,
	}
}

// NewSettings loads the settings. A .env file in the working directory is loaded first
// when present; path may be empty, in which case only the environment is read.
// Environment variables take precedence over the file.
func NewSettings(path string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf("Failed to load .env file: %v", err)
	}

	var settings Settings
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	applyEnvironment(&settings)
	settings.PAT = ResolveSecret(settings.PAT)
	settings.StorageAccountKey = ResolveSecret(settings.StorageAccountKey)
	settings.StorageConnectionString = ResolveSecret(settings.StorageConnectionString)
	applyDefaults(&settings)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".devops2blob.yaml",
		".devops2blob.yml",
		"devops2blob.yaml",
		"devops2blob.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveSecret expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the secret from the file.
func ResolveSecret(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read secret file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read secret from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// Coordinates returns the repository coordinates described by the settings.
func (s *Settings) Coordinates() RepositoryCoordinates {
	return RepositoryCoordinates{
		HostURL:    s.HostURL(),
		Project:    s.Project,
		Repository: s.Repository,
		Branch:     s.Branch,
		RootPath:   s.RootPath,
	}
}

// HostURL returns the DevOps organization URL.
func (s *Settings) HostURL() string {
	if s.DevOpsURL != "" {
		return strings.TrimSuffix(s.DevOpsURL, "/")
	}
	return devOpsHost + s.Organization
}

// StorageAccountURL returns the Blob service endpoint of the storage account.
func (s *Settings) StorageAccountURL() string {
	return fmt.Sprintf("https://%s.blob.core.windows.net/", s.StorageAccountName)
}

// Validate checks for required configuration values.
func (s *Settings) Validate() error {
	if s.Organization == "" && s.DevOpsURL == "" {
		return errors.New("organization is required (AZURE_DEVOPS_ORGANIZATION or AZURE_DEVOPS_URL)")
	}
	if s.Project == "" {
		return errors.New("project is required (AZURE_DEVOPS_PROJECT)")
	}
	if s.Repository == "" {
		return errors.New("repository is required (AZURE_DEVOPS_REPOSITORY)")
	}
	if s.Branch == "" {
		return errors.New("branch is required (AZURE_DEVOPS_BRANCH)")
	}
	if err := validateContainerName(s.ContainerName); err != nil {
		return err
	}

	switch s.Source {
	case SourceKindREST, SourceKindGit:
	default:
		return fmt.Errorf("unknown source %q (expected %q or %q)", s.Source, SourceKindREST, SourceKindGit)
	}

	switch s.AuthMode {
	case AuthModeManagedIdentity:
		if s.StorageAccountName == "" {
			return errors.New("storage account is required for managed identity (AZURE_STORAGE_ACCOUNT)")
		}
	case AuthModePATAndKey:
		if s.PAT == "" {
			return errors.New("personal access token is required for patAndKey (AZURE_DEVOPS_PAT)")
		}
		if s.StorageConnectionString == "" && (s.StorageAccountName == "" || s.StorageAccountKey == "") {
			return errors.New(
				"patAndKey requires AZURE_STORAGE_CONNECTION_STRING or both AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY",
			)
		}
	default:
		return fmt.Errorf(
			"unknown auth mode %q (expected %q or %q)",
			s.AuthMode, AuthModeManagedIdentity, AuthModePATAndKey,
		)
	}

	return nil
}

func applyEnvironment(s *Settings) {
	for name, field := range envOverrides(s) {
		if val, ok := os.LookupEnv(name); ok && val != "" {
			*field = val
		}
	}
}

func applyDefaults(s *Settings) {
	if s.Branch == "" {
		s.Branch = defaultBranch
	}
	s.Branch = strings.TrimPrefix(s.Branch, "refs/heads/")
	if s.RootPath == "" {
		s.RootPath = defaultRootPath
	}
	if s.Source == "" {
		s.Source = SourceKindREST
	}
	if s.AuthMode == "" {
		s.AuthMode = AuthModeManagedIdentity
	}
}

func validateContainerName(name string) error {
	if name == "" {
		return errors.New("container name is required (AZURE_STORAGE_CONTAINER)")
	}
	if len(name) < 3 || len(name) > 63 || !containerNamePattern.MatchString(name) {
		return fmt.Errorf(
			"invalid container name %q: use 3-63 lowercase letters, digits and single hyphens",
			name,
		)
	}
	return nil
}
