package handlers

import (
	"fmt"

	"github.com/google/uuid"
	effectmodel "github.com/on-the-ground/memo_ive_go/effects/model"
)

func errHandlerClosed(effectId uuid.UUID) error {
	return fmt.Errorf("%w: effectId: %v", effectmodel.ErrHandlerClosed, effectId)
}
