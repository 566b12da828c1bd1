/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/observability/metrics"
	"github.com/trustbloc/anonid/pkg/observability/tracing"
	issuecredentialtracing "github.com/trustbloc/anonid/pkg/observability/tracing/wrappers/issuecredential"
	verifycredentialtracing "github.com/trustbloc/anonid/pkg/observability/tracing/wrappers/verifycredential"
	"github.com/trustbloc/anonid/pkg/service/issuecredential"
	"github.com/trustbloc/anonid/pkg/service/session"
	"github.com/trustbloc/anonid/pkg/service/verifycredential"
	"github.com/trustbloc/anonid/pkg/service/verifycredential/revocation"
	"github.com/trustbloc/anonid/pkg/storage/provider"
	"github.com/trustbloc/anonid/pkg/storage/redis"
	"github.com/trustbloc/anonid/pkg/storage/redis/requeststore"
	"github.com/trustbloc/anonid/pkg/storage/redis/sessionstore"
	cmdutils "github.com/trustbloc/anonid/pkg/utils/cmd"
)

const (
	IssuerDIDFlagName  = "issuer-did"
	IssuerDIDEnvKey    = envKeyPrefix + "ISSUER_DID"
	IssuerDIDFlagUsage = "Issuer of every credential. Defaults to " + issuecredential.DefaultIssuerDID + "." +
		" Alternatively, this can be set with the following environment variable: " + IssuerDIDEnvKey

	CredentialTTLFlagName  = "credential-ttl"
	CredentialTTLEnvKey    = envKeyPrefix + "CREDENTIAL_TTL"
	CredentialTTLFlagUsage = "Lifetime of issued credentials, e.g. 8760h. Credentials never expire when unset." +
		" Alternatively, this can be set with the following environment variable: " + CredentialTTLEnvKey

	ProviderConfigFlagName  = "provider-config"
	ProviderConfigEnvKey    = envKeyPrefix + "PROVIDER_CONFIG"
	ProviderConfigFlagUsage = "Path to a JSON service provider configuration (trusted issuers, required " +
		"attributes, session duration). Every issuer is trusted when unset." +
		" Alternatively, this can be set with the following environment variable: " + ProviderConfigEnvKey

	RevokedCredentialsFlagName  = "revoked-credentials"
	RevokedCredentialsEnvKey    = envKeyPrefix + "REVOKED_CREDENTIALS"
	RevokedCredentialsFlagUsage = "Comma-separated ids of credentials to treat as revoked." +
		" Alternatively, this can be set with the following environment variable: " + RevokedCredentialsEnvKey

	TracingProviderFlagName  = "tracing-provider"
	TracingProviderEnvKey    = envKeyPrefix + "TRACING_PROVIDER"
	TracingProviderFlagUsage = "Span exporter. Supported values: JAEGER, STDOUT. Tracing is disabled when unset." +
		" Alternatively, this can be set with the following environment variable: " + TracingProviderEnvKey

	serviceName = "anonid"
)

// Services holds the trust engine built for a command.
type Services struct {
	Store          *provider.Store
	Issuer         issuecredential.ServiceInterface
	Verifier       verifycredential.ServiceInterface
	Sessions       *session.Manager
	Revocations    *revocation.Registry
	ProviderConfig *verifycredential.ProviderConfig
	TracerProvider trace.TracerProvider
	// SessionsDurable is set when sessions are kept in Redis rather than in process memory.
	SessionsDurable bool
	// Requests is nil unless Redis addresses are configured.
	Requests *requeststore.Store

	closers []func() error
}

// Close releases the store and session connections and flushes pending spans.
func (s *Services) Close() error {
	var errs []error

	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ServiceFlags registers the storage flags together with the issuer, verifier and tracing flags.
func ServiceFlags(cmd *cobra.Command) {
	Flags(cmd)

	cmd.Flags().String(IssuerDIDFlagName, "", IssuerDIDFlagUsage)
	cmd.Flags().String(CredentialTTLFlagName, "", CredentialTTLFlagUsage)
	cmd.Flags().String(ProviderConfigFlagName, "", ProviderConfigFlagUsage)
	cmd.Flags().StringSlice(RevokedCredentialsFlagName, nil, RevokedCredentialsFlagUsage)
	cmd.Flags().String(TracingProviderFlagName, "", TracingProviderFlagUsage)
}

// InitServices builds the identity store, the issuer, the verifier and the session manager configured for
// cmd. Sessions live in Redis when Redis addresses are configured and in process memory otherwise.
func InitServices(ctx context.Context, cmd *cobra.Command, logger *log.Log,
	m metrics.Metrics) (*Services, error) {
	params, err := StorageParams(cmd)
	if err != nil {
		return nil, err
	}

	credentialTTL, err := cmdutils.GetUserSetOptionalDuration(cmd, CredentialTTLFlagName, CredentialTTLEnvKey, 0)
	if err != nil {
		return nil, err
	}

	providerConfig, err := loadProviderConfig(
		cmdutils.GetUserSetOptionalVarFromString(cmd, ProviderConfigFlagName, ProviderConfigEnvKey))
	if err != nil {
		return nil, err
	}

	exporter := cmdutils.GetUserSetOptionalVarFromString(cmd, TracingProviderFlagName, TracingProviderEnvKey)
	if !tracing.IsExportedSupported(exporter) {
		return nil, fmt.Errorf("unsupported tracing provider: %s", exporter)
	}

	shutdownTracer, tp, err := tracing.Initialize(exporter, serviceName)
	if err != nil {
		return nil, fmt.Errorf("initialize tracing: %w", err)
	}

	s := &Services{
		ProviderConfig: providerConfig,
		TracerProvider: tp,
		closers:        []func() error{func() error { shutdownTracer(); return nil }},
	}

	s.Store, err = InitStore(ctx, params, logger, provider.WithMetrics(m), provider.WithTraceProvider(tp))
	if err != nil {
		_ = s.Close() //nolint:errcheck

		return nil, err
	}

	s.closers = append(s.closers, s.Store.Close)

	sessionStore, err := s.sessionStore(ctx, params)
	if err != nil {
		_ = s.Close() //nolint:errcheck

		return nil, err
	}

	s.Sessions = session.New(&session.Config{Store: sessionStore, Metrics: m})

	s.Revocations = revocation.NewRegistry(&revocation.Config{})

	for _, id := range cmdutils.GetUserSetOptionalCSVVar(cmd, RevokedCredentialsFlagName, RevokedCredentialsEnvKey) {
		s.Revocations.Revoke(id, "revoked by operator")
	}

	tracer := tracing.Tracer(tp)

	s.Issuer = issuecredentialtracing.Wrap(issuecredential.New(&issuecredential.Config{
		IssuerDID:     cmdutils.GetUserSetOptionalVarFromString(cmd, IssuerDIDFlagName, IssuerDIDEnvKey),
		CredentialTTL: credentialTTL,
	}), tracer)

	s.Verifier = verifycredentialtracing.Wrap(verifycredential.New(&verifycredential.Config{
		TrustPolicy:      providerConfig.TrustPolicy(),
		RevocationPolicy: s.Revocations,
		Metrics:          m,
	}), tracer)

	return s, nil
}

type sessionStore interface {
	Put(ctx context.Context, s *session.Session) error
	Get(ctx context.Context, id string) (*session.Session, error)
	List(ctx context.Context) ([]*session.Session, error)
}

// sessionStore keeps sessions and presentation requests in Redis when Redis addresses are configured.
func (s *Services) sessionStore(ctx context.Context, params *StorageParameters) (sessionStore, error) {
	cfg := params.Config

	if len(cfg.RedisAddrs) == 0 {
		return session.NewMemStore(), nil
	}

	opts := []redis.ClientOpt{
		redis.WithMasterName(cfg.RedisMasterName),
		redis.WithPassword(cfg.RedisPassword),
		redis.WithTLSConfig(cfg.RedisTLSConfig),
		redis.WithTraceProvider(s.TracerProvider),
	}

	if cfg.Timeout > 0 {
		opts = append(opts, redis.WithTimeout(cfg.Timeout))
	}

	client, err := redis.New(ctx, cfg.RedisAddrs, opts...)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	s.closers = append(s.closers, client.Close)
	s.SessionsDurable = true
	s.Requests = requeststore.New(client)

	return sessionstore.NewStore(client), nil
}

func loadProviderConfig(path string) (*verifycredential.ProviderConfig, error) {
	if path == "" {
		return &verifycredential.ProviderConfig{}, nil
	}

	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read provider config: %w", err)
	}

	cfg := &verifycredential.ProviderConfig{}

	if err = json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse provider config %s: %w", path, err)
	}

	return cfg, nil
}
