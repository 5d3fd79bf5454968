package storage

import "time"

// Termination reasons recorded for runs and metrics
const (
	ReasonFound       = "found"
	ReasonTrivial     = "start_is_target"
	ReasonNotFound    = "not_found"
	ReasonInterrupted = "interrupted"
	ReasonError       = "error"
)

// Run is the outcome of one search invocation
type Run struct {
	RunID             int64
	StartURL          string
	TargetURL         string
	Found             bool
	Hops              int
	Explored          int
	MaxHops           int
	TerminationReason string
	StartedAt         time.Time
	FinishedAt        time.Time
	Path              []string
}

// Metrics tracks search statistics for export on exit
type Metrics struct {
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	HopsCompleted     int       `json:"hops_completed"`
	URLsSeen          int       `json:"urls_seen"`
	FrontierSize      int       `json:"frontier_size"`
	PagesFetched      int       `json:"pages_fetched"`
	PagesFailed       int       `json:"pages_failed"`
	TotalFetchTimeMs  int64     `json:"total_fetch_time_ms"`
	AvgFetchTimeMs    int64     `json:"avg_fetch_time_ms"`
	PathHops          int       `json:"path_hops"`
	TerminationReason string    `json:"termination_reason"`
}
