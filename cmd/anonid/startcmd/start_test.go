/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/anonid/cmd/common"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/service/issuecredential"
	"github.com/trustbloc/anonid/pkg/storage"
	"github.com/trustbloc/anonid/pkg/storage/provider"
)

type mockServer struct {
	host    string
	handler http.Handler
	check   func(h http.Handler)
}

func (s *mockServer) ListenAndServe(host string, handler http.Handler) error {
	s.host = host
	s.handler = handler

	if s.check != nil {
		s.check(handler)
	}

	return nil
}

func TestStartCmdContents(t *testing.T) {
	startCmd := GetStartCmd(&mockServer{})

	require.Equal(t, "start", startCmd.Use)
	require.Equal(t, "Start anonid", startCmd.Short)

	checkFlagPropertiesCorrect(t, startCmd, hostURLFlagName, hostURLFlagShorthand, hostURLFlagUsage)
	require.NotNil(t, startCmd.Flags().Lookup(common.StorageTypeFlagName))
	require.NotNil(t, startCmd.Flags().Lookup(common.ProviderConfigFlagName))
}

func TestStartCmdWithBlankArg(t *testing.T) {
	t.Run("blank host url arg", func(t *testing.T) {
		startCmd := GetStartCmd(&mockServer{})
		startCmd.SetArgs([]string{"--" + hostURLFlagName, ""})

		err := startCmd.Execute()
		require.Error(t, err)
		require.Contains(t, err.Error(), "host-url value is empty")
	})

	t.Run("missing host url", func(t *testing.T) {
		startCmd := GetStartCmd(&mockServer{})
		startCmd.SetArgs(nil)

		err := startCmd.Execute()
		require.Error(t, err)
		require.Contains(t, err.Error(), "Neither host-url (command line flag) nor ANONID_HOST_URL")
	})
}

func TestStartCmdWithInvalidArgs(t *testing.T) {
	for name, args := range map[string][]string{
		"sweep interval":   {"--" + sessionSweepIntervalFlagName, "often"},
		"skip audit":       {"--" + skipStartupAuditFlagName, "perhaps"},
		"tracing provider": {"--" + common.TracingProviderFlagName, "ZIPKIN"},
		"storage type":     {"--" + common.StorageTypeFlagName, "floppy"},
		"provider config":  {"--" + common.ProviderConfigFlagName, filepath.Join(t.TempDir(), "missing.json")},
	} {
		t.Run(name, func(t *testing.T) {
			srv := &mockServer{}

			startCmd := GetStartCmd(srv)
			startCmd.SetArgs(append([]string{"--" + hostURLFlagName, "localhost:8080"}, args...))

			require.Error(t, startCmd.Execute())
			require.Nil(t, srv.handler)
		})
	}
}

func TestStartCmdValidArgs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "identities")
	seedStore(t, dbPath)

	var ready, metrics, healthCheck *httptest.ResponseRecorder

	srv := &mockServer{check: func(h http.Handler) {
		ready = serve(h, readinessEndpoint)
		metrics = serve(h, "/metrics")
		healthCheck = serve(h, healthCheckEndpoint)
	}}

	startCmd := GetStartCmd(srv)
	startCmd.SetArgs([]string{
		"--" + hostURLFlagName, "localhost:8080",
		"--" + common.LogLevelFlagName, "debug",
		"--" + common.StorageTypeFlagName, string(storage.TypeDatabase),
		"--" + common.LevelDBPathFlagName, dbPath,
	})

	require.NoError(t, startCmd.Execute())
	require.Equal(t, "localhost:8080", srv.host)

	require.Equal(t, http.StatusOK, ready.Code)
	require.Equal(t, http.StatusOK, metrics.Code)
	require.Contains(t, metrics.Body.String(), "anonid_verifier_verifyBatch_credentials")

	require.Equal(t, http.StatusOK, healthCheck.Code)

	status := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(healthCheck.Body.Bytes(), &status))
	require.Equal(t, "up", status["status"])
	require.Contains(t, status, "storage")
}

func TestStartCmdSkipAudit(t *testing.T) {
	srv := &mockServer{}

	startCmd := GetStartCmd(srv)
	startCmd.SetArgs([]string{
		"--" + hostURLFlagName, "localhost:8080",
		"--" + skipStartupAuditFlagName, "true",
		"--" + sessionSweepIntervalFlagName, "1s",
	})

	require.NoError(t, startCmd.Execute())
	require.NotNil(t, srv.handler)
}

func TestHealthChecks(t *testing.T) {
	store := &storeHealthStub{checks: map[string]func(ctx context.Context) error{
		"redis":   func(ctx context.Context) error { return nil },
		"mongodb": func(ctx context.Context) error { return nil },
	}}

	checks := healthChecks(store)
	require.Len(t, checks, 2)
	require.Equal(t, "mongodb", checks[0].Name)
	require.Equal(t, "redis", checks[1].Name)
}

type storeHealthStub struct {
	checks map[string]func(ctx context.Context) error
}

func (s *storeHealthStub) HealthChecks() map[string]func(ctx context.Context) error {
	return s.checks
}

func (s *storeHealthStub) GetStorageInfo(context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func seedStore(t *testing.T, path string) {
	t.Helper()

	ctx := context.Background()

	store, err := provider.New(ctx, &storage.Config{Type: storage.TypeDatabase, LevelDBPath: path})
	require.NoError(t, err)

	holder, _, err := issuecredential.New(&issuecredential.Config{}).IssueIdentity(ctx, "Alice",
		map[string]interface{}{"email": "alice@example.com"})
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, []*identity.Identity{holder}))
	require.NoError(t, store.Close())
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func checkFlagPropertiesCorrect(t *testing.T, cmd *cobra.Command, flagName, flagShorthand, flagUsage string) {
	t.Helper()

	flag := cmd.Flag(flagName)

	require.NotNil(t, flag)
	require.Equal(t, flagName, flag.Name)
	require.Equal(t, flagShorthand, flag.Shorthand)
	require.Equal(t, flagUsage, flag.Usage)
	require.Equal(t, []string{}, flag.Annotations[cobra.BashCompOneRequiredFlag])
	require.Equal(t, "string", flag.Value.Type())
}
