package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// LandingPage is a stored landing page. Content holds the persisted page
// content as decoded by the content package.
type LandingPage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Published   bool       `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Content     RawContent `gorm:"type:jsonb" json:"content"`
}

// RawContent is JSON stored verbatim in a jsonb column.
type RawContent json.RawMessage

func (c RawContent) Value() (driver.Value, error) {
	if len(bytes.TrimSpace(c)) == 0 {
		return nil, nil
	}
	if !json.Valid(c) {
		return nil, errors.New("content is not valid JSON")
	}
	return string(c), nil
}

func (c *RawContent) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = nil
	case []byte:
		*c = append(RawContent(nil), v...)
	case string:
		*c = RawContent(v)
	default:
		return errors.New("failed to scan RawContent")
	}
	return nil
}

func (c RawContent) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(c)) == 0 {
		return []byte("null"), nil
	}
	return c, nil
}

func (c *RawContent) UnmarshalJSON(data []byte) error {
	*c = append(RawContent(nil), data...)
	return nil
}

// LandingPageSummary is the list view of a page.
type LandingPageSummary struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Mode        string     `json:"mode"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
