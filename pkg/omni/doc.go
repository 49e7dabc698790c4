// Package omni translates dashboard definitions to and from the BI
// platform's wire formats: the creation payload submitted to the REST API
// and the export payload the API returns.
//
// The translation tables here are deliberately explicit. The platform's
// defaults differ from ours in ways that silently break dashboards (its
// default row limit is 1000 where ours is 200; it rejects sorted or
// multi-row KPI queries), so every discrepancy is normalized in one place
// rather than patched up by callers.
package omni
