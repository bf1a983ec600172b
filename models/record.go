package models

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Record is implemented by every content record. All records are keyed by UUID.
type Record interface {
	RecordID() uuid.UUID
	SetRecordID(id uuid.UUID)
}

// StringList is an ordered list of short strings kept in a JSON array column.
type StringList = datatypes.JSONSlice[string]

// NormalizeList trims every entry and drops the empty ones. The result is never nil so
// the column always holds a JSON array.
func NormalizeList(list StringList) StringList {
	out := make(StringList, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

const maxSlugLength = 50

var (
	slugPattern    = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	nonSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify lowercases s and collapses every run of characters outside [a-z0-9] into a
// single hyphen.
func Slugify(s string) string {
	slug := nonSlugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func nilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
