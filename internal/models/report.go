package models

// ReportRow is one ranked line of the report. JSON names are the ones the report template reads.
type ReportRow struct {
	URL        string  `json:"url"`
	Count      int64   `json:"count"`
	CountPerc  float64 `json:"count_perc"`
	TimeSum    float64 `json:"time_sum"`
	TimePerc   float64 `json:"time_perc"`
	TimeAvg    float64 `json:"time_avg"`
	TimeMax    float64 `json:"time_max"`
	TimeMedian float64 `json:"time_med"`
}

// ReportTable is the persisted, machine-readable form of a report.
//
// Example JSON:
//
//	{
//	  "date": "2017.06.30",
//	  "source_file": "nginx-access-ui.log-20170630.gz",
//	  "total_count": 3,
//	  "total_duration_sum": 6,
//	  "requests_by_user_agent": {"Chrome": 2, "curl": 1},
//	  "rows": [
//	    {"url": "/a", "count": 2, "count_perc": 66.667, "time_sum": 4, "time_perc": 66.667,
//	     "time_avg": 2, "time_max": 3, "time_med": 2}
//	  ]
//	}
type ReportTable struct {
	Date                LogDate          `json:"date"`
	SourceFile          string           `json:"source_file"`
	TotalCount          int64            `json:"total_count"`
	TotalDurationSum    float64          `json:"total_duration_sum"`
	RequestsByUserAgent map[string]int64 `json:"requests_by_user_agent"`
	Rows                []ReportRow      `json:"rows"`
}
