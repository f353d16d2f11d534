package model

// Dashboard holds the aggregated business metrics returned by the service.
// All monetary figures are decimal strings.
type Dashboard struct {
	RevenueToday string `json:"revenue_today"`
	RevenueWeek  string `json:"revenue_week"`
	RevenueMonth string `json:"revenue_month"`

	NetProfitToday   string `json:"net_profit_today"`
	NetProfitWeek    string `json:"net_profit_week"`
	NetProfitMonth   string `json:"net_profit_month"`
	NetProfitAllTime string `json:"net_profit_all_time"`

	TotalInventoryValue string `json:"total_inventory_value"`
	TotalExpectedValue  string `json:"total_expected_value"`
	PotentialProfit     string `json:"potential_profit"`

	TotalItems   int `json:"total_items"`
	ItemsInStock int `json:"items_in_stock"`
	ItemsListed  int `json:"items_listed"`
	ItemsSold    int `json:"items_sold"`

	TotalTransactions int `json:"total_transactions"`
	TotalRefunds      int `json:"total_refunds"`
}
