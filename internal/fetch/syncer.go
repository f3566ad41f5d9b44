// Package fetch downloads integration specs and persists the converted
// schemas, falling back to a generic schema when an integration's spec
// cannot be retrieved or parsed.
package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/sirupsen/logrus"

	"github.com/takumiyoshikawa/ddschema/internal/config"
	"github.com/takumiyoshikawa/ddschema/internal/convert"
	"github.com/takumiyoshikawa/ddschema/internal/spec"
	"github.com/takumiyoshikawa/ddschema/internal/store"
)

// SpecFetcher abstracts the upstream retrieval for testability.
type SpecFetcher interface {
	FetchSpec(ctx context.Context, integration string) ([]byte, error)
}

// Result is the best-effort outcome for one integration. Callers never
// branch on Fallback except for logging: a fallback schema is persisted
// and registered exactly like a converted one.
type Result struct {
	Integration string
	Schema      *jsonschema.Schema
	Fallback    bool
	Err         error
}

type Syncer struct {
	fetcher      SpecFetcher
	store        *store.Store
	integrations []string
	log          *logrus.Logger
}

func New(cfg *config.Config, log *logrus.Logger) *Syncer {
	client := NewClient(cfg.SourceURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
	return NewWith(client, store.New(cfg.SchemasDir), cfg.Integrations, log)
}

func NewWith(fetcher SpecFetcher, st *store.Store, integrations []string, log *logrus.Logger) *Syncer {
	return &Syncer{
		fetcher:      fetcher,
		store:        st,
		integrations: integrations,
		log:          log,
	}
}

func (s *Syncer) Store() *store.Store {
	return s.store
}

// Sync processes the integration list sequentially. With force set, every
// integration is re-fetched; otherwise integrations that already have a
// schema file are skipped. Per-integration failures yield fallback schemas
// and never abort the batch; persistence failures are collected and
// surfaced as a single batch error.
func (s *Syncer) Sync(ctx context.Context, force bool) error {
	if err := s.store.EnsureDir(); err != nil {
		return err
	}

	var batchErrs []error
	for _, name := range s.integrations {
		if !force && s.store.Exists(name) {
			s.log.WithField("integration", name).Debug("schema file exists, skipping")
			continue
		}

		res := s.fetchSchema(ctx, name)
		if res.Fallback {
			s.log.WithFields(logrus.Fields{
				"integration": name,
				"error":       res.Err,
			}).Warn("using generic fallback schema")
		} else {
			s.log.WithField("integration", name).Info("converted upstream spec")
		}

		data, err := convert.Marshal(res.Schema)
		if err != nil {
			batchErrs = append(batchErrs, err)
			continue
		}
		if err := s.store.Write(name, data); err != nil {
			s.log.WithFields(logrus.Fields{
				"integration": name,
				"error":       err,
			}).Error("failed to persist schema")
			batchErrs = append(batchErrs, err)
		}
	}

	return errors.Join(batchErrs...)
}

// fetchSchema never fails: any fetch or parse error degrades to the
// generic fallback schema for that integration.
func (s *Syncer) fetchSchema(ctx context.Context, name string) Result {
	raw, err := s.fetcher.FetchSpec(ctx, name)
	if err != nil {
		return Result{Integration: name, Schema: convert.Fallback(name), Fallback: true, Err: err}
	}

	doc, err := spec.Parse(raw)
	if err != nil {
		return Result{Integration: name, Schema: convert.Fallback(name), Fallback: true, Err: err}
	}

	return Result{Integration: name, Schema: convert.Schema(doc, name)}
}
