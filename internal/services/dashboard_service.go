package services

import (
	"context"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
)

type dashboardService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewDashboardService(repo repositories.Repository, logger utils.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) GetStats(ctx context.Context) (*repositories.DashboardStats, error) {
	return s.repo.Dashboard().GetStats(ctx)
}
