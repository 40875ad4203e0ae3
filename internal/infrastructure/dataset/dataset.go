// Package dataset provides the theme data used to build itineraries. The
// default set is embedded; a JSON file can replace it and be reloaded on a
// cron schedule.
package dataset

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ecopilot/trip-planner/internal/api/metrics"
	"github.com/ecopilot/trip-planner/internal/core/domain"
)

//go:embed data/themes.json
var embeddedThemes []byte

// Parse decodes a theme dataset and rejects sets that cannot produce a full
// request: the default theme must exist and every theme must be complete.
func Parse(raw []byte) (domain.Dataset, error) {
	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if _, ok := ds[domain.DefaultTheme]; !ok {
		return nil, fmt.Errorf("dataset has no %q theme", domain.DefaultTheme)
	}
	for theme, data := range ds {
		if !data.Complete() {
			return nil, fmt.Errorf("theme %q needs at least %d titles, activities and accommodations",
				theme, domain.ItinerariesPerRequest)
		}
	}
	return ds, nil
}

// Embedded returns the built-in dataset.
func Embedded() domain.Dataset {
	ds, err := Parse(embeddedThemes)
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded themes are invalid: %v", err))
	}
	return ds
}

// Source holds the current dataset. It is safe for concurrent use.
type Source struct {
	mu      sync.RWMutex
	current domain.Dataset
	path    string
	log     zerolog.Logger
	cron    *cron.Cron
}

// NewSource starts from the embedded dataset and, when path is set, replaces
// it with the file's contents. A bad file is logged and the embedded set kept.
func NewSource(path string, log zerolog.Logger) *Source {
	s := &Source{current: Embedded(), path: path, log: log}
	if path != "" {
		if err := s.Reload(); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("using embedded dataset")
		}
	}
	return s
}

// Current returns the active dataset. Callers must not modify it.
func (s *Source) Current() domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload reads the dataset file again. On error the previous dataset stays active.
func (s *Source) Reload() error {
	if s.path == "" {
		return errors.New("dataset path not configured")
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		metrics.DatasetReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("read dataset: %w", err)
	}
	ds, err := Parse(raw)
	if err != nil {
		metrics.DatasetReloadsTotal.WithLabelValues("error").Inc()
		return err
	}

	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()

	metrics.DatasetReloadsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("path", s.path).Int("themes", len(ds)).Msg("dataset loaded")
	return nil
}

// Schedule reloads the dataset on the given cron spec until Stop is called.
func (s *Source) Schedule(spec string) error {
	if s.path == "" {
		return errors.New("dataset reload requires a dataset path")
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if err := s.Reload(); err != nil {
			s.log.Warn().Err(err).Msg("scheduled dataset reload failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}
	s.cron = c
	c.Start()
	return nil
}

// Stop halts scheduled reloads and waits for a running one to finish.
func (s *Source) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
