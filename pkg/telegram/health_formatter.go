package telegram

import (
	"fmt"
	"time"
)

// FormatBackendDown builds the alert sent when the analytics backend stops responding.
func FormatBackendDown(baseURL string, lastErr error, at time.Time) string {
	return fmt.Sprintf("🔴 *Analytics backend unreachable*\n`%s`\nError: %s\nAt: %s",
		baseURL, lastErr, at.Format(time.RFC3339))
}

// FormatBackendRecovered builds the alert sent when the backend answers again.
func FormatBackendRecovered(baseURL string, downFor time.Duration, at time.Time) string {
	return fmt.Sprintf("🟢 *Analytics backend recovered*\n`%s`\nDowntime: %s\nAt: %s",
		baseURL, downFor.Round(time.Second), at.Format(time.RFC3339))
}
