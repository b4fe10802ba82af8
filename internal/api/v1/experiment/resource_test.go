package experiment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/thejerf/abtime"
)

func TestCreationYearFollowsClock(t *testing.T) {
	clock := abtime.NewManualAtTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	spec := Spec(clock)
	input := func(year string) utils.Input {
		return utils.Input{"nombre": "Titration", "fecha_creacion": json.Number(year), "duracion_estimada": json.Number("60")}
	}

	tests := []struct {
		name  string
		year  string
		valid bool
	}{
		{name: "Lower bound", year: "1900", valid: true},
		{name: "Before lower bound", year: "1899", valid: false},
		{name: "Upper bound", year: "2030", valid: true},
		{name: "After upper bound", year: "2031", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := spec.Validate(input(tt.year))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, apperr.Validation, apperr.KindOf(err))
		})
	}

	clock.Advance(365 * 24 * time.Hour)
	_, err := spec.Validate(input("2031"))
	assert.NoError(t, err, "the upper bound moves with the clock")
}

func TestMissingFieldsReportedBeforeRange(t *testing.T) {
	spec := Spec(abtime.NewRealTime())
	_, err := spec.Validate(utils.Input{"fecha_creacion": json.Number("1899")})
	assert.Equal(t, "All fields are required: nombre, fecha_creacion, duracion_estimada", apperr.MessageOf(err, ""))
}
