package models

import "time"

type SeedMode string

const (
	SeedModeAppend  SeedMode = "append"
	SeedModeReplace SeedMode = "replace"
)

type SeedStatus string

const (
	SeedStatusSucceeded SeedStatus = "succeeded"
	SeedStatusFailed    SeedStatus = "failed"
)

// SeedRun is the audit row written for every attempt to load the seed dataset.
type SeedRun struct {
	ID         uint       `gorm:"primaryKey"`
	RunID      string     `gorm:"column:run_id;size:36"`
	Mode       SeedMode   `gorm:"column:mode;size:16"`
	Status     SeedStatus `gorm:"column:status;size:16"`
	Records    int        `gorm:"column:records"`
	Error      string     `gorm:"column:error"`
	StartedAt  time.Time  `gorm:"column:started_at"`
	FinishedAt time.Time  `gorm:"column:finished_at"`
}

func (SeedRun) TableName() string {
	return "seed_runs"
}
