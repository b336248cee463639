package service

import (
	"context"

	"github.com/rs/zerolog/log"
)

const (
	SideEffectCacheRead    = "featured_cache_read"
	SideEffectCacheWrite   = "featured_cache_write"
	SideEffectCacheRefresh = "featured_cache_refresh"
	SideEffectImageDelete  = "image_delete"
	SideEffectEventPublish = "event_publish"
)

// SideEffect is the outcome of a best-effort step that runs next to an
// operation's primary effect. Its failure never fails the operation.
type SideEffect struct {
	Name string
	Err  error
}

func (s SideEffect) Failed() bool {
	return s.Err != nil
}

type SideEffects []SideEffect

func (s SideEffects) Failures() SideEffects {
	var failed SideEffects
	for _, sideEffect := range s {
		if sideEffect.Failed() {
			failed = append(failed, sideEffect)
		}
	}

	return failed
}

func (s SideEffects) Has(name string) bool {
	for _, sideEffect := range s {
		if sideEffect.Name == name {
			return true
		}
	}

	return false
}

// Log writes every failed side effect as a warning and discards it.
func (s SideEffects) Log(ctx context.Context, component string) {
	for _, sideEffect := range s.Failures() {
		log.Ctx(ctx).Warn().Err(sideEffect.Err).
			Str("component", component).
			Str("side_effect", sideEffect.Name).
			Msg("best-effort step failed")
	}
}
