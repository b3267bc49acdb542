package repository

import "github.com/tu-usuario/pinturas-b2b/internal/domain/entity"

// AnalysisRepository define el puerto de persistencia para análisis de calidad (DIP).
// Una partida tiene como máximo un análisis.
type AnalysisRepository interface {
	Upsert(analysis *entity.Analysis) error
	GetByBatch(batchID string) (*entity.Analysis, error)
	Delete(id string) error
}
