package dto

import "encoding/json"

// UpdateSettingRequest carries the raw settings document. The value is
// stored as-is under the user's key after a well-formedness check.
type UpdateSettingRequest struct {
	Value json.RawMessage `json:"value" validate:"required"`
}

type SettingResponse struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}
