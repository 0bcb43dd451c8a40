package models

// AdminStats is the data of GET /admin/stats
type AdminStats struct {
	TotalProducts int   `json:"totalProducts"`
	TotalOrders   int   `json:"totalOrders"`
	PendingOrders int   `json:"pendingOrders"`
	TotalRevenue  int64 `json:"totalRevenue"`
}

// Dashboard is the admin landing view
type Dashboard struct {
	Admin        *AdminUser `json:"admin,omitempty"`
	Stats        AdminStats `json:"stats"`
	RecentOrders []Order    `json:"recentOrders"`
}
