package models

import (
	"strings"

	"gorm.io/gorm"
)

// SystemConfig is a key-value configuration entry maintained by
// administrators.
type SystemConfig struct {
	DefaultModel
	Key         string `gorm:"uniqueIndex"`
	Value       string
	Description string
}

func (s *SystemConfig) BeforeSave(_ *gorm.DB) error {
	s.Key = strings.TrimSpace(s.Key)
	s.Description = strings.TrimSpace(s.Description)

	return nil
}
