package config

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"flightrec/pkg/store"
)

// ErrNoStore is returned when persisting without a state store.
var ErrNoStore = errors.New("no state store")

// Provider defines the interface for accessing unified configuration.
type Provider interface {
	// General
	Variant(ctx context.Context) string
	FrameInterval(ctx context.Context) time.Duration

	// MFD view
	MFDPage(ctx context.Context) int
	AxisRange(ctx context.Context, key string) string

	// Dialog view
	DialogGraphs(ctx context.Context) []string

	// Set persists a view setting under one of the registry keys.
	Set(ctx context.Context, key, val string) error

	// Raw access (for components that need deep access)
	AppConfig() *Config
}

// UnifiedProvider implements Provider by bridging static Config and persistent Store.
type UnifiedProvider struct {
	base  *Config
	store store.StateStore
}

// NewProvider creates a new UnifiedProvider.
func NewProvider(base *Config, st store.StateStore) *UnifiedProvider {
	return &UnifiedProvider{
		base:  base,
		store: st,
	}
}

func (p *UnifiedProvider) AppConfig() *Config { return p.base }

// Variant returns the persisted variant only when it names a known one.
func (p *UnifiedProvider) Variant(ctx context.Context) string {
	switch v := p.getString(ctx, KeyVariant, p.base.Recorder.Variant); v {
	case VariantMFD, VariantDialog:
		return v
	}
	return p.base.Recorder.Variant
}

func (p *UnifiedProvider) FrameInterval(ctx context.Context) time.Duration {
	d := p.getDuration(ctx, KeyFrameInterval, time.Duration(p.base.Display.FrameInterval))
	if d <= 0 {
		return time.Duration(p.base.Display.FrameInterval)
	}
	return d
}

// MFDPage returns the stored page, 0 or 1.
func (p *UnifiedProvider) MFDPage(ctx context.Context) int {
	if p.getInt(ctx, KeyMFDPage, 0) == 1 {
		return 1
	}
	return 0
}

// AxisRange returns a stored axis range in chart.ParseAxis form; "a" when unset.
func (p *UnifiedProvider) AxisRange(ctx context.Context, key string) string {
	return p.getString(ctx, key, "a")
}

// DialogGraphs returns the graph keys that were open when the dialog closed.
func (p *UnifiedProvider) DialogGraphs(ctx context.Context) []string {
	val := p.getString(ctx, KeyDialogGraphs, "")
	if val == "" {
		return nil
	}
	var out []string
	for _, k := range strings.Split(val, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func (p *UnifiedProvider) Set(ctx context.Context, key, val string) error {
	if p.store == nil {
		return ErrNoStore
	}
	return p.store.SetState(ctx, key, val)
}

// --- Helpers ---

func (p *UnifiedProvider) getString(ctx context.Context, key, fallback string) string {
	if p.store != nil {
		if val, ok := p.store.GetState(ctx, key); ok && val != "" {
			return val
		}
	}
	return fallback
}

func (p *UnifiedProvider) getInt(ctx context.Context, key string, fallback int) int {
	if p.store != nil {
		if val, ok := p.store.GetState(ctx, key); ok && val != "" {
			if i, err := strconv.Atoi(val); err == nil {
				return i
			}
		}
	}
	return fallback
}

func (p *UnifiedProvider) getDuration(ctx context.Context, key string, fallback time.Duration) time.Duration {
	if p.store != nil {
		if val, ok := p.store.GetState(ctx, key); ok && val != "" {
			if dur, err := ParseDuration(val); err == nil {
				return dur
			}
		}
	}
	return fallback
}
