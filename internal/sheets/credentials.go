package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2/google"

	"zenbot/internal/domain"
)

// Scopes requested for every credential. Drive access is needed to open
// spreadsheets shared with a service account.
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

// CredentialResolver produces an authorization handle for the spreadsheet
// API. Resolution happens per append; nothing is cached across requests.
type CredentialResolver interface {
	Resolve(ctx context.Context) (*google.Credentials, error)
}

// Strategy is one way of obtaining credentials. ChainResolver tries
// strategies in order; the first success wins.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context) (*google.Credentials, error)
}

// ChainResolver walks an ordered list of strategies and fails with a
// credential error joining every cause once all of them are exhausted.
type ChainResolver struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewChainResolver builds the default chain: ambient identity first, then
// the configured service-account keyfile.
func NewChainResolver(credsFile string, logger *slog.Logger) *ChainResolver {
	return NewChain(logger, ambientStrategy{}, keyfileStrategy{path: credsFile})
}

// NewChain builds a resolver over explicit strategies.
func NewChain(logger *slog.Logger, strategies ...Strategy) *ChainResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChainResolver{
		strategies: strategies,
		logger:     logger,
	}
}

// Resolve tries each strategy in order.
func (r *ChainResolver) Resolve(ctx context.Context) (*google.Credentials, error) {
	var causes []error
	for _, s := range r.strategies {
		creds, err := s.Resolve(ctx)
		if err == nil {
			return creds, nil
		}
		r.logger.Debug("credential strategy failed",
			slog.String("strategy", s.Name()),
			slog.String("error", err.Error()),
		)
		causes = append(causes, fmt.Errorf("%s: %w", s.Name(), err))
	}
	return nil, domain.ErrCredential("all credential strategies failed").WithCause(errors.Join(causes...))
}

// ambientStrategy resolves application default credentials: workload
// identity, GOOGLE_APPLICATION_CREDENTIALS, or a local gcloud login.
type ambientStrategy struct{}

func (ambientStrategy) Name() string { return "application_default" }

func (ambientStrategy) Resolve(ctx context.Context) (*google.Credentials, error) {
	return google.FindDefaultCredentials(ctx, Scopes...)
}

// keyfileStrategy resolves a service-account JSON keyfile from disk.
type keyfileStrategy struct {
	path string
}

func (s keyfileStrategy) Name() string { return "keyfile" }

func (s keyfileStrategy) Resolve(ctx context.Context) (*google.Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return google.CredentialsFromJSON(ctx, data, Scopes...)
}
