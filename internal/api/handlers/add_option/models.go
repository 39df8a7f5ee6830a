package add_option

import "github.com/google/uuid"

// AddOptionRequest HTTP request model
type AddOptionRequest struct {
	OptionID uuid.UUID `json:"optionId"`
}
