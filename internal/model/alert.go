package model

// AlertType identifies which heuristic produced an alert.
type AlertType string

const (
	AlertNoActivity        AlertType = "no_activity"
	AlertSpendingSpike     AlertType = "spending_spike"
	AlertNegativeStreak    AlertType = "negative_streak"
	AlertMonthlyComparison AlertType = "monthly_comparison"
)

// Severity ranks how urgent an alert is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is a rendered financial notice. Message is final Portuguese text.
type Alert struct {
	Type     AlertType
	Message  string
	Severity Severity
}
