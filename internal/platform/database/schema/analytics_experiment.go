package schema

// AnalyticsExperimentTable represents the 'analytics.experiment' table.
//
// Durable read model for A/B tallies. Live counters accumulate in Redis;
// totals are folded into this table.
type AnalyticsExperimentTable struct {
	Table       string
	Name        string
	Variant     string
	Impressions string
	Conversions string
	UpdatedAt   string
}

// AnalyticsExperiment is the schema definition for analytics.experiment
var AnalyticsExperiment = AnalyticsExperimentTable{
	Table:       "analytics.experiment",
	Name:        "name",
	Variant:     "variant",
	Impressions: "impressions",
	Conversions: "conversions",
	UpdatedAt:   "updatedat",
}
