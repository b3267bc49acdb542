package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
)

var _ repository.AnalysisRepository = (*AnalysisRepo)(nil)

// AnalysisRepo implementación del puerto AnalysisRepository sobre PostgreSQL.
// Las mediciones ausentes se guardan como NULL, nunca como cero.
type AnalysisRepo struct {
	q Querier
}

// NewAnalysisRepository construye el adaptador de análisis. Pasar pool o tx (Querier).
func NewAnalysisRepository(q Querier) *AnalysisRepo {
	return &AnalysisRepo{q: q}
}

const analysisColumns = `id, batch_id, gloss, viscosity, delta_e, delta_l, delta_a, delta_b,
	drying_time, peak_metal_temperature, soil_thickness, adhesion, solvent_resistance,
	grinding_degree, solids_by_volume, ground_content, mass_fraction, sample_count,
	COALESCE(visual_control, ''), COALESCE(appearance, ''), created_at, updated_at`

// Upsert crea o actualiza el análisis de una partida (uno por partida).
func (r *AnalysisRepo) Upsert(a *entity.Analysis) error {
	query := `
		INSERT INTO analyses (id, batch_id, gloss, viscosity, delta_e, delta_l, delta_a, delta_b,
			drying_time, peak_metal_temperature, soil_thickness, adhesion, solvent_resistance,
			grinding_degree, solids_by_volume, ground_content, mass_fraction, sample_count,
			visual_control, appearance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			NULLIF($19, ''), NULLIF($20, ''), $21, $22)
		ON CONFLICT (batch_id) DO UPDATE SET
			gloss = EXCLUDED.gloss, viscosity = EXCLUDED.viscosity,
			delta_e = EXCLUDED.delta_e, delta_l = EXCLUDED.delta_l,
			delta_a = EXCLUDED.delta_a, delta_b = EXCLUDED.delta_b,
			drying_time = EXCLUDED.drying_time, peak_metal_temperature = EXCLUDED.peak_metal_temperature,
			soil_thickness = EXCLUDED.soil_thickness, adhesion = EXCLUDED.adhesion,
			solvent_resistance = EXCLUDED.solvent_resistance, grinding_degree = EXCLUDED.grinding_degree,
			solids_by_volume = EXCLUDED.solids_by_volume, ground_content = EXCLUDED.ground_content,
			mass_fraction = EXCLUDED.mass_fraction, sample_count = EXCLUDED.sample_count,
			visual_control = EXCLUDED.visual_control, appearance = EXCLUDED.appearance,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.BatchID, a.Gloss, a.Viscosity, a.DeltaE, a.DeltaL, a.DeltaA, a.DeltaB,
		a.DryingTime, a.PeakMetalTemperature, a.SoilThickness, a.Adhesion, a.SolventResistance,
		a.GrindingDegree, a.SolidsByVolume, a.GroundContent, a.MassFraction, a.SampleCount,
		a.VisualControl, a.Appearance, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert analysis: %w", err)
	}
	return nil
}

// GetByBatch obtiene el análisis de una partida.
func (r *AnalysisRepo) GetByBatch(batchID string) (*entity.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE batch_id = $1`
	var a entity.Analysis
	err := r.q.QueryRow(context.Background(), query, batchID).Scan(
		&a.ID, &a.BatchID, &a.Gloss, &a.Viscosity, &a.DeltaE, &a.DeltaL, &a.DeltaA, &a.DeltaB,
		&a.DryingTime, &a.PeakMetalTemperature, &a.SoilThickness, &a.Adhesion, &a.SolventResistance,
		&a.GrindingDegree, &a.SolidsByVolume, &a.GroundContent, &a.MassFraction, &a.SampleCount,
		&a.VisualControl, &a.Appearance, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	return &a, nil
}

// Delete elimina un análisis.
func (r *AnalysisRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
