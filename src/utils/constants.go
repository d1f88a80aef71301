package utils

const (
	ShortDashDateLayout = "2006-01-02"
	MonthLayout         = "2006-01"
)
