package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/store"
)

// NewProvider builds the configured vendor's provider. Calls pass through
// retry, then event logging, then the vendor:
//
//	caller → retry → logging → vendor
//
// so every attempt is logged. A nil events repo disables event logging.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *zap.Logger) (Provider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Provider == Mock {
		return NewMockProvider(), nil
	}

	v, _ := lookupVendor(cfg.Provider)
	vc := cfg.Vendor(v.name)
	b, err := v.dial(ctx, vc)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", v.name, err)
	}

	var p Provider = &chatProvider{name: v.name, model: v.resolve(vc.Model), backend: b}
	log.Debug("llm provider ready",
		zap.String("provider", p.Name()),
		zap.String("model", p.ModelID()))

	if events != nil {
		p = WithLogging(p, events, log)
	}
	return WithRetry(p, cfg.Retry, log), nil
}
