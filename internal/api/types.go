package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// RunStatus describes the pipeline run behind a response.
type RunStatus struct {
	OK         bool      `json:"ok"`
	Status     string    `json:"status"`
	ErrorKind  string    `json:"errorKind,omitempty"`
	Error      string    `json:"error,omitempty"`
	Source     string    `json:"source"`
	StatusCode int       `json:"statusCode,omitempty"`
	RunID      string    `json:"runId"`
	FetchedAt  string    `json:"fetchedAt,omitempty"`
	DurationMS int64     `json:"durationMs"`
	Cached     bool      `json:"cached"`
	Warnings   []Warning `json:"warnings,omitempty"`
}

// Warning flags a row whose dataset_type was defaulted.
type Warning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// DatasetsResponse is the published table.
type DatasetsResponse struct {
	Run     RunStatus        `json:"run"`
	Count   int              `json:"count"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// SummaryResponse carries counts and distributions.
type SummaryResponse struct {
	Run           RunStatus      `json:"run"`
	Published     int            `json:"published"`
	Organs        int            `json:"organs"`
	Primary       int            `json:"primary"`
	Derived       int            `json:"derived"`
	Distributions []Distribution `json:"distributions"`
	WordCloud     []Term         `json:"wordCloud"`
}

// Distribution counts the labels of one column.
type Distribution struct {
	Column string  `json:"column"`
	Title  string  `json:"title"`
	Total  int     `json:"total"`
	Counts []Count `json:"counts"`
}

// Count is one label of a distribution.
type Count struct {
	Label string  `json:"label"`
	Value int     `json:"value"`
	Share float64 `json:"share"`
}

// Term is one word cloud entry.
type Term struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

// Health is the liveness payload.
type Health struct {
	Status       string `json:"status"`
	Endpoint     string `json:"endpoint"`
	CacheEnabled bool   `json:"cacheEnabled"`
	CacheEntries int    `json:"cacheEntries"`
}
