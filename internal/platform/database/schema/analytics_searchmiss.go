package schema

// AnalyticsSearchMissTable represents the 'analytics.searchmiss' table.
//
// A row is recorded whenever a site search returns zero hits, so editors
// can see what readers looked for and did not find.
type AnalyticsSearchMissTable struct {
	Table      string
	ID         string
	Query      string
	OccurredAt string
}

// AnalyticsSearchMiss is the schema definition for analytics.searchmiss
var AnalyticsSearchMiss = AnalyticsSearchMissTable{
	Table:      "analytics.searchmiss",
	ID:         "id",
	Query:      "query",
	OccurredAt: "occurredat",
}
