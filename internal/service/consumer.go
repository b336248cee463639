package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/dto"
)

// ConsumeEvent refreshes the featured snapshot whenever another writer of
// the products collection reports a change. It returns when ctx is done or
// the reader is closed.
func (s *ProductServiceImpl) ConsumeEvent(ctx context.Context) {
	if s.eventReader == nil {
		return
	}

	for {
		msg, err := s.eventReader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				log.Ctx(ctx).Info().Str("component", "ConsumeEvent").Msg("event consumer stopped")
				return
			}

			log.Ctx(ctx).Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		s.handleEvent(ctx, msg.Value)
	}
}

func (s *ProductServiceImpl) handleEvent(ctx context.Context, value []byte) {
	var receivedMsg dto.KafkaMessage
	if err := json.Unmarshal(value, &receivedMsg); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ConsumeEvent").Msg("")
		return
	}

	switch receivedMsg.EventType {
	case dto.EventAddProduct, dto.EventUpdateProduct, dto.EventDeleteProduct:
		sideEffect := s.RefreshFeaturedProductsCache(ctx)
		if sideEffect.Failed() {
			log.Ctx(ctx).Error().Err(sideEffect.Err).Str("component", "ConsumeEvent").Str("event_type", receivedMsg.EventType).Msg("")
			return
		}

		log.Ctx(ctx).Debug().Str("component", "ConsumeEvent").Str("event_type", receivedMsg.EventType).Msg("featured products cache refreshed")
	case dto.EventProductCreated, dto.EventProductDeleted, dto.EventProductFeaturedToggled:
		// Published by this service, which refreshes the cache itself.
	default:
		log.Ctx(ctx).Warn().Str("component", "ConsumeEvent").Str("event_type", receivedMsg.EventType).Msg("unknown event type")
	}
}
