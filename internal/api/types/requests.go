package types

import "encoding/json"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type DataCreateRequest struct {
	Key   string          `json:"key" validate:"required,max=128"`
	Value json.RawMessage `json:"value" validate:"required"`
}
