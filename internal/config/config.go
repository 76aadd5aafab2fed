package config

import "time"

const (
	// Claims and replies
	MaxClaimTextLen = 300

	// Auth
	TokenTTL  = 72 * time.Hour
	JWTIssuer = "claimboard-service"

	// Moderation
	ReportSnapshotMessages = 20
	SuspendThresholdWeight = 250
	SuspendWindow          = 24 * time.Hour
	SuspendDuration        = 24 * time.Hour
)

// ReportWeights maps a report reason category to the weight it contributes
// toward the suspension threshold.
var ReportWeights = map[string]int{
	"spam":       25,
	"abuse":      100,
	"harassment": 250,
}

// DefaultReportWeight applies when the reason category is not recognized.
const DefaultReportWeight = 10
