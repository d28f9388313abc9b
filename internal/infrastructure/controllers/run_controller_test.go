//go:build unit

package controllers_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	"github.com/rios0rios0/devops2blob/internal/infrastructure/controllers"
	"github.com/rios0rios0/devops2blob/test/domain/commanddoubles"
)

const validConfig = `
organization: MyOrg
project: FAQ_Copilot
repository: csv_files
container_name: empty-container
storage_account_name: faqtestblobstorage
`

func newCommandWithConfig(t *testing.T, content string) *cobra.Command {
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

	cfgFile := filepath.Join(t.TempDir(), "devops2blob.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o600))

	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{Use: "run"}
	cmd.Flags().String("config", "", "")
	require.NoError(t, cmd.Flags().Set("config", cfgFile))
	return cmd
}

func TestRunController(t *testing.T) {
	t.Run("should run one sync with the loaded settings", func(t *testing.T) {
		// given
		stub := &commanddoubles.StubSyncCommand{
			Report: entities.TransferReport{Listed: 2, Uploaded: []string{"q1.csv"}},
		}
		controller := controllers.NewRunController(stub)
		cmd := newCommandWithConfig(t, validConfig)

		// when
		err := controller.RunForTest(cmd)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, "FAQ_Copilot", stub.LastSettings.Project)
		assert.Equal(t, "main", stub.LastSettings.Branch)
	})

	t.Run("should return the sync failure", func(t *testing.T) {
		// given
		cause := &entities.SyncError{Phase: entities.SyncPhaseBind, Err: errors.New("denied")}
		stub := &commanddoubles.StubSyncCommand{ExecuteErr: cause}
		controller := controllers.NewRunController(stub)
		cmd := newCommandWithConfig(t, validConfig)

		// when
		err := controller.RunForTest(cmd)

		// then
		require.ErrorIs(t, err, cause)
	})

	t.Run("should not run with invalid settings", func(t *testing.T) {
		// given
		stub := &commanddoubles.StubSyncCommand{}
		controller := controllers.NewRunController(stub)
		cmd := newCommandWithConfig(t, "organization: MyOrg\n")

		// when
		err := controller.RunForTest(cmd)

		// then
		require.Error(t, err)
		assert.Equal(t, 0, stub.ExecuteCallCount)
	})
}

func TestControllerBinds(t *testing.T) {
	t.Parallel()

	t.Run("should expose serve and run subcommands", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubSyncCommand{}

		// when
		all := controllers.NewControllers(
			controllers.NewServeController(stub, nil),
			controllers.NewRunController(stub),
		)

		// then
		require.Len(t, *all, 2)
		assert.Equal(t, "serve", (*all)[0].GetBind().Use)
		assert.Equal(t, "run", (*all)[1].GetBind().Use)
	})
}

func TestListenAddress(t *testing.T) {
	t.Run("should default to port 8080", func(t *testing.T) {
		// given
		t.Setenv("FUNCTIONS_CUSTOMHANDLER_PORT", "")

		// when
		addr := controllers.ListenAddress()

		// then
		assert.Equal(t, ":8080", addr)
	})

	t.Run("should use the port assigned by the host", func(t *testing.T) {
		// given
		t.Setenv("FUNCTIONS_CUSTOMHANDLER_PORT", "7071")

		// when
		addr := controllers.ListenAddress()

		// then
		assert.Equal(t, ":7071", addr)
	})
}
