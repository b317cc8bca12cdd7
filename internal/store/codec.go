package store

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/agent-pet/internal/model"
)

func encodeState(s *model.PetState) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return b, nil
}

// decodeState overlays doc onto a copy of dst and only commits it on success.
func decodeState(doc []byte, dst *model.PetState) error {
	next := dst.Clone()
	if err := json.Unmarshal(doc, next); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	*dst = *next
	return nil
}
