package models

import "time"

// DailyDelivery — агрегат доставок за один день для календаря на дашборде.
type DailyDelivery struct {
	DeliveryDate time.Time `json:"delivery_date"`
	Count        int       `json:"count"`
	TotalAmount  float64   `json:"total_amount"`
}

// DashboardStats — сводка по месяцу для админского дашборда.
type DashboardStats struct {
	Month           int              `json:"month"`
	Year            int              `json:"year"`
	TotalUsers      int              `json:"totalUsers"`
	TotalDeliveries int              `json:"totalDeliveries"`
	TotalRevenue    float64          `json:"totalRevenue"`
	PaidPayments    int              `json:"paidPayments"`
	PendingPayments int              `json:"pendingPayments"`
	DailyDeliveries []*DailyDelivery `json:"dailyDeliveries"`
}

// UserStats — месячная статистика пользователя: объём молока, сумма и число доставок.
type UserStats struct {
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	TotalMilk     int     `json:"totalMilk"`
	TotalAmount   float64 `json:"totalAmount"`
	DeliveryCount int     `json:"deliveryCount"`
}
