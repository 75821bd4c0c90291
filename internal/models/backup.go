package models

import "time"

// BackupVersion is written into every backup document.
const BackupVersion = "1.0"

// Backup is the single persisted snapshot written by the backup intent.
type Backup struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Contacts  []Contact `json:"contacts"`
}
