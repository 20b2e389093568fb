package entity

import "time"

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryPatch describes a partial category update.
// DescriptionSet distinguishes "clear the description" from "leave it".
type CategoryPatch struct {
	Name           *string
	Description    *string
	DescriptionSet bool
}
