package check_date_range

// Request модель запроса проверки периода
type Request struct {
	ShopID    string
	ServiceID string
	Start     string // "2006-01-02"
	End       string // "2006-01-02", включительно
}

// Response результат проверки периода
type Response struct {
	Start   string
	End     string
	Days    int  // число календарных дней в периоде
	Blocked bool // хотя бы один день периода нельзя выбрать
}
