// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package models

// SystemConfig is one backend configuration entry.
// Identity is the (Category, Key) pair, unique within a category.
// Entries are read-only from this side; the backend creates and updates them.
type SystemConfig struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"` // e.g. storage, ai_api, system
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	ValueType   string    `json:"valueType"`
	IsEncrypted bool      `json:"isEncrypted"`
	Description *string   `json:"description"`
	Metadata    *string   `json:"metadata"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// Identity returns the "category/key" form of the entry identity.
func (c *SystemConfig) Identity() string {
	return c.Category + "/" + c.Key
}
