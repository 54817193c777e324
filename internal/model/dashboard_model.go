package model

type DashboardStats struct {
	TotalProducts  int64   `json:"total_products"`
	TotalOrders    int64   `json:"total_orders"`
	PendingOrders  int64   `json:"pending_orders"`
	TotalCustomers int64   `json:"total_customers"`
	UnreadMessages int64   `json:"unread_messages"`
	Revenue        float64 `json:"revenue"`
}
