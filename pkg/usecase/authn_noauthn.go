package usecase

import (
	"context"

	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
)

// NoAuthnUseCase authenticates every request as one configured buyer (for
// development/testing)
type NoAuthnUseCase struct {
	buyer model.Buyer
}

func NewNoAuthnUseCase(id, email, name string) *NoAuthnUseCase {
	return &NoAuthnUseCase{
		buyer: model.Buyer{ID: id, Email: email, Name: name},
	}
}

// Authenticate ignores the token and returns the configured buyer
func (uc *NoAuthnUseCase) Authenticate(_ context.Context, _ string) (*model.Buyer, error) {
	buyer := uc.buyer
	return &buyer, nil
}

func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
