package usecase

import (
	"TechAnalyst/internal/domain/models"
	domsvc "TechAnalyst/internal/domain/service"
)

// StrategiesUseCase exposes the engine's evaluator catalog.
type StrategiesUseCase struct {
	engine domsvc.Analyzer
}

func NewStrategiesUseCase(engine domsvc.Analyzer) *StrategiesUseCase {
	return &StrategiesUseCase{engine: engine}
}

// List returns the ensemble members in evaluation order.
func (uc *StrategiesUseCase) List() models.StrategyCatalog {
	return uc.engine.Catalog()
}
