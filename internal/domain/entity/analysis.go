package entity

import "time"

// Analysis agrupa las mediciones de control de calidad de una partida.
// Como máximo existe un análisis por partida. Los campos numéricos son
// punteros: la ausencia de una medición es un estado modelado, no un cero.
type Analysis struct {
	ID      string
	BatchID string

	Gloss                *float64 // brillo especular
	Viscosity            *float64
	DeltaE               *float64 // desviación de color total
	DeltaL               *float64
	DeltaA               *float64
	DeltaB               *float64
	DryingTime           *float64 // minutos
	PeakMetalTemperature *float64
	SoilThickness        *float64 // espesor de imprimación, µm
	Adhesion             *float64
	SolventResistance    *float64
	GrindingDegree       *float64
	SolidsByVolume       *float64
	GroundContent        *float64
	MassFraction         *float64
	SampleCount          *int // muestras tomadas de la partida

	VisualControl string // control visual de planitud
	Appearance    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
