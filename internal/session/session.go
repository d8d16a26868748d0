// Package session owns one user's configuration session: the wizard,
// the connected-broker list, the last verified balance, and the deploy
// flow against the backend.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/botforge/botwizard/internal/api"
	"github.com/botforge/botwizard/internal/broker"
	"github.com/botforge/botwizard/internal/deploy"
	"github.com/botforge/botwizard/internal/monitoring"
	"github.com/botforge/botwizard/internal/storage"
	"github.com/botforge/botwizard/internal/wizard"
	"github.com/botforge/botwizard/pkg/metric"
)

var (
	// ErrDuplicateBroker means a broker with the same name (compared
	// case-insensitively) is already connected. Detection is by name
	// only, not credentials.
	ErrDuplicateBroker = errors.New("a broker with this name is already connected")

	// ErrVerificationFailed wraps a failed credential round-trip. The
	// wizard stays on the API-connect sub-step; the user may retry or
	// skip.
	ErrVerificationFailed = errors.New("credential verification failed")
)

// Backend is the slice of the API client the session needs.
type Backend interface {
	ListBrokers(ctx context.Context) ([]api.Broker, error)
	CreateBroker(ctx context.Context, b api.Broker) (*api.Broker, error)
	DeleteBroker(ctx context.Context, idOrName string) error
	DeployBot(ctx context.Context, payload interface{}, botType string) (*api.DeployResult, error)
}

// Session is the single owner of the wizard state for one user session.
// All mutation is serialized through its methods.
type Session struct {
	Wizard *wizard.Wizard

	backend  Backend
	verifier broker.Verifier
	store    *storage.Store

	brokers []api.Broker
}

// New creates a session around a fresh wizard. When the draft store
// holds a modify record it hydrates the wizard and clears the draft, so
// a second session entry starts clean.
func New(backend Backend, verifier broker.Verifier, store *storage.Store) *Session {
	s := &Session{
		Wizard:   wizard.New(),
		backend:  backend,
		verifier: verifier,
		store:    store,
	}

	if store != nil {
		var rec wizard.ModifyRecord
		if err := store.Get(storage.DraftBotKey, &rec); err == nil {
			s.Wizard.HydrateFromModify(rec)
			store.Remove(storage.DraftBotKey)
		}
	}

	return s
}

// Brokers returns the cached connected-broker list.
func (s *Session) Brokers() []api.Broker {
	return s.brokers
}

// RefreshBrokers reloads the connected-broker list from the backend.
func (s *Session) RefreshBrokers(ctx context.Context) error {
	brokers, err := s.backend.ListBrokers(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh brokers: %w", err)
	}
	s.brokers = brokers
	return nil
}

// AddMetric adds a metric to the wizard's collection, recording the
// outcome. Rejections leave state untouched; the caller surfaces them
// as a transient notice.
func (s *Session) AddMetric(name string) error {
	col, err := s.Wizard.Metrics.Add(name)
	kind := string(metric.DeriveKind(name))
	if err != nil {
		monitoring.RecordMetricAdd(kind, "rejected")
		return err
	}
	monitoring.RecordMetricAdd(kind, "added")
	s.Wizard.Metrics = col
	return nil
}

// VerifyCredentials runs a credential verification round-trip for the
// wizard's credentials form. The wizard's generation counter guards
// against a stale response mutating state after a retry or reset.
func (s *Session) VerifyCredentials(ctx context.Context) error {
	if errs := wizard.ValidateCredentials(s.Wizard.Credentials); errs.HasErrors() {
		return errs
	}

	creds := s.Wizard.Credentials
	gen := s.Wizard.BeginVerification()

	balance, err := s.verifier.VerifyCredentials(ctx, creds.APIKey, creds.SecretKey, creds.TestMode)
	if !s.Wizard.ApplyVerification(gen, balance, err) {
		// Superseded attempt; drop the result either way.
		return nil
	}
	if err != nil {
		monitoring.RecordVerification("failure")
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	monitoring.RecordVerification("success")
	return nil
}

// ConnectBroker registers the wizard's broker and credentials with the
// backend. Duplicate detection compares by case-insensitive name only.
func (s *Session) ConnectBroker(ctx context.Context) (*api.Broker, error) {
	name := s.Wizard.Basic.Broker
	for _, b := range s.brokers {
		if strings.EqualFold(b.Name, name) {
			return nil, ErrDuplicateBroker
		}
	}

	created, err := s.backend.CreateBroker(ctx, api.Broker{
		Name:      deploy.NormalizeBroker(name),
		APIKey:    s.Wizard.Credentials.APIKey,
		APISecret: s.Wizard.Credentials.SecretKey,
		TestMode:  s.Wizard.Credentials.TestMode,
	})
	if err != nil {
		return nil, err
	}

	s.brokers = append(s.brokers, *created)
	return created, nil
}

// resolveBrokerID picks the broker account matching the wizard's chosen
// broker name, falling back to the first connected broker.
func (s *Session) resolveBrokerID() string {
	want := deploy.NormalizeBroker(s.Wizard.Basic.Broker)
	for _, b := range s.brokers {
		if strings.EqualFold(b.Name, want) {
			return b.ID
		}
	}
	if len(s.brokers) > 0 {
		return s.brokers[0].ID
	}
	return ""
}

// Deploy builds the payload from the accumulated wizard state and
// submits it. The returned warning, when non-nil, is non-fatal: the bot
// was still deployed. On success the draft is cleared and the wizard
// reset for the next configuration.
func (s *Session) Deploy(ctx context.Context) (*api.DeployResult, *deploy.BalanceWarning, error) {
	w := s.Wizard
	botType := w.Basic.BotType

	payload, err := deploy.Build(w.Basic, w.Schedule, w.Metrics, botType, s.resolveBrokerID(), w.Balance())
	if err != nil {
		monitoring.RecordDeployment(string(botType), "failure", 0)
		if errors.Is(err, deploy.ErrInsufficientBroker) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to build payload: %w", err)
	}

	result, err := s.backend.DeployBot(ctx, payload, string(botType))
	if err != nil {
		monitoring.RecordDeployment(string(botType), "failure", 0)
		return nil, payload.Warning, err
	}

	monitoring.RecordDeployment(string(botType), "success", payload.Amount)
	monitoring.UpdateWizardStep(w.MainStep())

	if s.store != nil {
		s.store.Remove(storage.DraftBotKey)
	}
	w.Reset()

	return result, payload.Warning, nil
}

// SaveDraft persists the current wizard state as a modify record so the
// session can be resumed later.
func (s *Session) SaveDraft() error {
	if s.store == nil {
		return nil
	}

	w := s.Wizard
	rec := wizard.ModifyRecord{
		BotID:         w.ModifyBotID(),
		BotName:       w.Basic.BotName,
		Broker:        w.Basic.Broker,
		BotType:       w.Basic.BotType,
		Asset:         w.Schedule.Asset,
		Amount:        w.Schedule.Amount,
		TimeFrame:     w.Schedule.TimeFrame,
		Loop:          w.Schedule.Loop,
		AmountOfTimes: w.Schedule.AmountOfTimes,
		Metrics:       w.Metrics.Metrics,
	}
	return s.store.Set(storage.DraftBotKey, rec)
}
