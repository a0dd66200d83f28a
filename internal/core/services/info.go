package services

import (
	"context"
	"fmt"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
	"github.com/grans-labs/grans-cli/internal/core/ports/driving"
)

// Ensure InfoService implements the interface.
var _ driving.InfoQueries = (*InfoService)(nil)

// InfoService aggregates store statistics.
type InfoService struct {
	info driven.InfoStore
}

// NewInfoService creates a new info service.
func NewInfoService(info driven.InfoStore) *InfoService {
	return &InfoService{info: info}
}

// Info returns row counts, date bounds, embedding stats and file facts.
func (s *InfoService) Info(ctx context.Context) (*domain.DBInfo, error) {
	info, err := s.info.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting store info: %w", err)
	}
	return info, nil
}
