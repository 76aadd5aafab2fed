// Package analysis holds the scoring logic behind moderation decisions.
package analysis

import "claimboard/backend/internal/config"

// GetWeight returns the suspension weight a report reason contributes.
// Unrecognized reasons fall back to a small default so junk reports still
// count without dominating.
func GetWeight(reason string) int {
	if w, ok := config.ReportWeights[reason]; ok {
		return w
	}
	return config.DefaultReportWeight
}
