package models

import "fmt"

// FormatFileSize renders a byte count as B, KB or MB with one decimal.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	}
}

// StatusTone groups document and application statuses for display.
type StatusTone string

const (
	ToneSuccess StatusTone = "success"
	ToneDanger  StatusTone = "danger"
	TonePending StatusTone = "pending"
	ToneNeutral StatusTone = "neutral"
)

func ToneOf(status string) StatusTone {
	switch status {
	case "VALIDATED", "APPROVED":
		return ToneSuccess
	case "REJECTED":
		return ToneDanger
	case "PENDING_REVIEW", "UPLOADED", "PENDING":
		return TonePending
	default:
		return ToneNeutral
	}
}

// AccountStatus is the display text for a user's account flags.
func AccountStatus(enabled, locked bool) string {
	switch {
	case !enabled:
		return "Disabled"
	case locked:
		return "Locked"
	default:
		return "Active"
	}
}
