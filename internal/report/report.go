package report

const (
	KindSummary  = "summary"
	KindDetailed = "detailed"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// fileNames holds the Portuguese name each kind is downloaded under.
var fileNames = map[string]string{
	KindSummary:  "resumo",
	KindDetailed: "detalhado",
}

type Summary struct {
	TotalExtras   int     `json:"total_extras"`
	TotalValue    float64 `json:"total_value"`
	UniqueUsers   int     `json:"unique_users"`
	UniqueSectors int     `json:"unique_sectors"`
}

type DashboardStats struct {
	TotalExtras    int64   `json:"total_extras"`
	TotalValue     float64 `json:"total_value"`
	EmployeesCount int64   `json:"employees_count"`
	CompaniesCount int64   `json:"companies_count"`
}

// Export is a rendered workbook ready to be sent as an attachment.
type Export struct {
	Filename string
	Content  []byte
}

func ValidKind(kind string) bool {
	return kind == KindSummary || kind == KindDetailed
}
