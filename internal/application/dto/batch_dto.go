package dto

import "time"

// CreateBatchRequest entrada para registrar una partida de producción.
type CreateBatchRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	ColorCode  string `json:"color_code" validate:"omitempty,max=8"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
	ProducedAt string `json:"produced_at" validate:"omitempty,datetime=2006-01-02"` // vacío = hoy
}

// AdjustBatchRequest entrada para corregir la cantidad restante de una partida.
type AdjustBatchRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// BatchResponse salida de una partida con los campos derivados para la vista
// de inventario: etiqueta de presentación y fecha de caducidad calculada.
type BatchResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductTitle string    `json:"product_title"`
	Nomenclature string    `json:"nomenclature"` // código base + sufijo RAL si aplica
	ColorCode    string    `json:"color_code,omitempty"`
	Quantity     int       `json:"quantity"`
	ProducedAt   time.Time `json:"produced_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	Label        string    `json:"label"`
	HasAnalysis  bool      `json:"has_analysis"`
}

// BatchListResponse lista de partidas (agrupadas por nomenclatura+color, fecha ascendente).
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
}

// UpsertAnalysisRequest mediciones de control de calidad de una partida.
// Los campos nil no sobrescriben mediciones existentes.
type UpsertAnalysisRequest struct {
	Gloss                *float64 `json:"gloss"`
	Viscosity            *float64 `json:"viscosity"`
	DeltaE               *float64 `json:"delta_e"`
	DeltaL               *float64 `json:"delta_l"`
	DeltaA               *float64 `json:"delta_a"`
	DeltaB               *float64 `json:"delta_b"`
	DryingTime           *float64 `json:"drying_time"`
	PeakMetalTemperature *float64 `json:"peak_metal_temperature"`
	SoilThickness        *float64 `json:"soil_thickness"`
	Adhesion             *float64 `json:"adhesion"`
	SolventResistance    *float64 `json:"solvent_resistance"`
	GrindingDegree       *float64 `json:"grinding_degree"`
	SolidsByVolume       *float64 `json:"solids_by_volume"`
	GroundContent        *float64 `json:"ground_content"`
	MassFraction         *float64 `json:"mass_fraction"`
	SampleCount          *int     `json:"sample_count"`
	VisualControl        *string  `json:"visual_control"`
	Appearance           *string  `json:"appearance"`
}

// AnalysisResponse salida del análisis de calidad de una partida.
type AnalysisResponse struct {
	ID                   string   `json:"id"`
	BatchID              string   `json:"batch_id"`
	Gloss                *float64 `json:"gloss,omitempty"`
	Viscosity            *float64 `json:"viscosity,omitempty"`
	DeltaE               *float64 `json:"delta_e,omitempty"`
	DeltaL               *float64 `json:"delta_l,omitempty"`
	DeltaA               *float64 `json:"delta_a,omitempty"`
	DeltaB               *float64 `json:"delta_b,omitempty"`
	DryingTime           *float64 `json:"drying_time,omitempty"`
	PeakMetalTemperature *float64 `json:"peak_metal_temperature,omitempty"`
	SoilThickness        *float64 `json:"soil_thickness,omitempty"`
	Adhesion             *float64 `json:"adhesion,omitempty"`
	SolventResistance    *float64 `json:"solvent_resistance,omitempty"`
	GrindingDegree       *float64 `json:"grinding_degree,omitempty"`
	SolidsByVolume       *float64 `json:"solids_by_volume,omitempty"`
	GroundContent        *float64 `json:"ground_content,omitempty"`
	MassFraction         *float64 `json:"mass_fraction,omitempty"`
	SampleCount          *int     `json:"sample_count,omitempty"`
	VisualControl        string   `json:"visual_control,omitempty"`
	Appearance           string   `json:"appearance,omitempty"`
}
