package usecase

import (
	"context"
	"time"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

type healthUsecase struct {
	service string
	now     func() time.Time
}

func NewHealthUsecase(service string) HealthUsecase {
	return &healthUsecase{service: service, now: time.Now}
}

func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "OK",
		Timestamp: u.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Service:   u.service,
	}
}
