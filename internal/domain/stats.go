package domain

import "context"

// DashboardStats agrega os contadores exibidos no painel administrativo.
type DashboardStats struct {
	TotalPets        int            `json:"totalPets"`
	AdoptedPets      int            `json:"adoptedPets"`
	AvailablePets    int            `json:"availablePets"`
	InProcessPets    int            `json:"inProcessPets"`
	PendingRequests  int            `json:"pendingRequests"`
	ApprovedRequests int            `json:"approvedRequests"`
	RejectedRequests int            `json:"rejectedRequests"`
	PetsByKind       map[string]int `json:"petsByKind"`
}

// StatsRepository define as consultas de agregação do dashboard.
type StatsRepository interface {
	Dashboard(ctx context.Context) (DashboardStats, error)
}
