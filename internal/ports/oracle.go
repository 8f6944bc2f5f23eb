package ports

import (
	"context"

	"github.com/doelab/doe-gateway/internal/models"
)

// OracleService is the question-answering backend. The handle is created once
// at startup and shared by all requests; implementations must be safe for
// concurrent use.
type OracleService interface {
	Query(ctx context.Context, text string) (*models.Answer, error)
}
