package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Dispatcher routes calls to the tools of a Registry.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher returns a dispatcher over reg.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{registry: reg}
}

// List returns the registered descriptors.
func (d *Dispatcher) List() []Descriptor {
	return d.registry.List()
}

// Dispatch runs the named tool once and always returns a non-nil Result. Unknown names,
// handler errors, nil results and panics all become error results.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) (result *Result) {
	tool, ok := d.registry.Lookup(name)
	if !ok {
		log.Warn().Str("tool", name).Msg("Call for unregistered tool")
		return ErrorResultf("Tool %s not found.", name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("tool", name).Interface("panic", rec).Msg("Tool handler panicked")
			result = ErrorResult(fmt.Sprint(rec))
		}
	}()

	log.Debug().Str("tool", name).RawJSON("args", rawOrNull(args)).Msg("Dispatching tool call")
	res, err := tool.Handler(ctx, args)
	if err != nil {
		log.Error().Err(err).Str("tool", name).Msg("Tool handler failed")
		return ErrorResult(err.Error())
	}
	if res == nil {
		log.Error().Str("tool", name).Msg("Tool handler returned no result")
		return ErrorResultf("Tool %s did not return a result.", name)
	}
	log.Debug().Str("tool", name).Bool("is_error", res.IsError).Msg("Tool call finished")
	return res
}

func rawOrNull(args json.RawMessage) []byte {
	if len(args) == 0 || !json.Valid(args) {
		return []byte("null")
	}
	return args
}
