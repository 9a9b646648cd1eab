package interpreter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ledgertalk/ledgertalk/internal/common"
	"github.com/ledgertalk/ledgertalk/internal/model"
)

// ParseEvents decodes the model's raw response into a validated event batch.
func ParseEvents(raw string) ([]model.Event, error) {
	cleaned := cleanMarkdownWrapper(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty interpreter response")
	}

	var events []model.Event
	if err := json.Unmarshal([]byte(cleaned), &events); err != nil {
		return nil, fmt.Errorf("failed to parse interpreter JSON: %w", err)
	}

	if len(events) == 0 {
		return nil, common.ErrEmptyBatch
	}

	for i := range events {
		if err := validateEvent(&events[i]); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}

	return events, nil
}

// validateEvent checks tag/payload agreement and discards payloads that do
// not match the kind, so a sloppy model response cannot smuggle in a second
// payload.
func validateEvent(ev *model.Event) error {
	keep := model.Event{Kind: ev.Kind}

	switch ev.Kind {
	case model.KindTransaction:
		if ev.Transaction == nil {
			return fmt.Errorf("transaction event without transaction payload")
		}
		keep.Transaction = ev.Transaction
	case model.KindAssetUpdate:
		if ev.AssetUpdate == nil {
			return fmt.Errorf("asset_update event without asset payload")
		}
		keep.AssetUpdate = ev.AssetUpdate
	case model.KindCardUpdate:
		if ev.CardUpdate == nil {
			return fmt.Errorf("card_update event without card payload")
		}
		keep.CardUpdate = ev.CardUpdate
	case model.KindHoldingUpdate:
		if ev.Holding == nil {
			return fmt.Errorf("holding_update event without holding payload")
		}
		keep.Holding = ev.Holding
	case model.KindBudget:
		if ev.Budget == nil {
			return fmt.Errorf("budget event without budget payload")
		}
		keep.Budget = ev.Budget
	case model.KindAutoPayment:
		if ev.AutoPayment == nil {
			return fmt.Errorf("auto_payment event without payment payload")
		}
		keep.AutoPayment = ev.AutoPayment
	case model.KindQueryResponse:
		if ev.Query == nil {
			return fmt.Errorf("query_response event without answer payload")
		}
		keep.Query = ev.Query
	case model.KindNullStatement:
		// No payload.
	case model.KindNeedsMoreInfo:
		if ev.MoreInfo == nil {
			return fmt.Errorf("needs_more_info event without descriptor")
		}
		if ev.MoreInfo.Question == "" {
			return fmt.Errorf("needs_more_info event without question")
		}
		keep.MoreInfo = ev.MoreInfo
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}

	*ev = keep
	return nil
}

// cleanMarkdownWrapper strips code fences and surrounding commentary a model
// sometimes adds despite instructions, keeping the outermost JSON array.
func cleanMarkdownWrapper(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
