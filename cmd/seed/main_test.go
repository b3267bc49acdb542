package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Columnas de medición del análisis de calidad. La ausencia de una medición
// se modela como NULL; el esquema no debe imponer NOT NULL ni un cero por defecto.
var measurementColumns = []string{
	"gloss", "viscosity", "delta_e", "delta_l", "delta_a", "delta_b",
	"drying_time", "peak_metal_temperature", "soil_thickness", "adhesion",
	"solvent_resistance", "grinding_degree", "solids_by_volume",
	"ground_content", "mass_fraction", "sample_count",
}

func analysesDDL(t *testing.T) string {
	t.Helper()
	for _, stmt := range schema {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS analyses") {
			return stmt
		}
	}
	t.Fatal("falta la sentencia CREATE TABLE de analyses")
	return ""
}

func columnLines(ddl string) map[string]string {
	lines := map[string]string{}
	for _, line := range strings.Split(ddl, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			lines[fields[0]] = line
		}
	}
	return lines
}

func TestEsquemaAnalyses_MedicionesAdmitenNull(t *testing.T) {
	lines := columnLines(analysesDDL(t))
	for _, col := range measurementColumns {
		line, ok := lines[col]
		require.True(t, ok, "columna %s ausente del esquema", col)
		assert.NotContains(t, line, "NOT NULL", "columna %s debe admitir NULL", col)
		assert.NotContains(t, line, "DEFAULT", "columna %s no debe tener valor por defecto", col)
	}
}

func TestEsquemaAnalyses_SampleCountEsEntero(t *testing.T) {
	lines := columnLines(analysesDDL(t))
	line, ok := lines["sample_count"]
	require.True(t, ok)
	fields := strings.Fields(line)
	require.GreaterOrEqual(t, len(fields), 2)
	assert.Equal(t, "INTEGER", strings.TrimSuffix(fields[1], ","))
}
