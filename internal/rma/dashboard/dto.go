package dashboard

// NameValue is a labelled count for the breakdown charts.
type NameValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// NameCount is a labelled count for the ranked lists.
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// MonthlyStat is one point on the received/cleared trend.
type MonthlyStat struct {
	Year     int   `json:"year"`
	Month    int   `json:"month"`
	Received int64 `json:"received"`
	Cleared  int64 `json:"cleared"`
}

type StatsResponse struct {
	TotalReceived  int64         `json:"totalReceived"`
	Processing     int64         `json:"processing"`
	Completed      int64         `json:"completed"`
	Pending        int64         `json:"pending"`
	MonthlyStats   []MonthlyStat `json:"monthlyStats"`
	BuyerStats     []NameValue   `json:"buyerStats"`
	DefectStats    []NameCount   `json:"defectStats"`
	ClearTypeStats []NameCount   `json:"clearTypeStats"`
}
