package usecase

import (
	"context"
)

// LookupUsecase exposes the reference tables backing facility classification.
type LookupUsecase interface {
	ListMunicipalities(ctx context.Context) ([]*KommunView, error)
	ListFacilityTypes(ctx context.Context) ([]*FacilityTypeView, error)
}
