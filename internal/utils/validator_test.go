package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var experimentSpec = FieldSpec{
	RequiredMessage: "All fields are required: nombre, fecha_creacion, duracion_estimada",
	Fields: []Field{
		{Name: "nombre", Kind: KindString, Required: true},
		{Name: "fecha_creacion", Kind: KindInt, Required: true, Rules: "gte=1900,lte=2030", Message: "Creation year out of range"},
		{Name: "duracion_estimada", Kind: KindInt, Required: true, Rules: "gt=0", Message: "Estimated duration must be a positive number"},
	},
}

func TestFieldSpecValidate(t *testing.T) {
	tests := []struct {
		name        string
		input       Input
		expectedErr string
	}{
		{
			name:  "Valid",
			input: Input{"nombre": "Titration", "fecha_creacion": json.Number("2024"), "duracion_estimada": json.Number("60")},
		},
		{
			name:        "Missing field",
			input:       Input{"nombre": "Titration", "fecha_creacion": json.Number("2024")},
			expectedErr: "All fields are required: nombre, fecha_creacion, duracion_estimada",
		},
		{
			name:        "Blank string counts as missing",
			input:       Input{"nombre": "  ", "fecha_creacion": json.Number("2024"), "duracion_estimada": json.Number("60")},
			expectedErr: "All fields are required",
		},
		{
			name:        "Presence checked before range",
			input:       Input{"fecha_creacion": json.Number("1899"), "duracion_estimada": json.Number("60")},
			expectedErr: "All fields are required",
		},
		{
			name:        "Year below range",
			input:       Input{"nombre": "Old", "fecha_creacion": json.Number("1899"), "duracion_estimada": json.Number("60")},
			expectedErr: "Creation year out of range",
		},
		{
			name:        "Zero duration",
			input:       Input{"nombre": "Zero", "fecha_creacion": "2024", "duracion_estimada": "0"},
			expectedErr: "Estimated duration must be a positive number",
		},
		{
			name:        "Coercion failure",
			input:       Input{"nombre": "Bad", "fecha_creacion": "soon", "duracion_estimada": "60"},
			expectedErr: "Field 'fecha_creacion' must be an integer",
		},
		{
			name:        "Fractional integer",
			input:       Input{"nombre": "Bad", "fecha_creacion": json.Number("2024.5"), "duracion_estimada": "60"},
			expectedErr: "Field 'fecha_creacion' must be an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := experimentSpec.Validate(tt.input)
			if tt.expectedErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Titration", values.String("nombre"))
				assert.Equal(t, 2024, values.Int("fecha_creacion"))
				assert.Equal(t, 60, values.Int("duracion_estimada"))
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperr.Validation, apperr.KindOf(err))
			assert.Contains(t, apperr.MessageOf(err, ""), tt.expectedErr)
		})
	}
}

func TestFieldSpecOptionalFields(t *testing.T) {
	spec := FieldSpec{Fields: []Field{
		{Name: "nombre", Kind: KindString, Required: true},
		{Name: "fecha", Kind: KindDate},
		{Name: "activo", Kind: KindBool},
		{Name: "inicio", Kind: KindTime},
	}}

	values, err := spec.Validate(Input{"nombre": "x"})
	require.NoError(t, err)
	assert.False(t, values.Has("fecha"))
	assert.True(t, values.Bool("activo", true))

	values, err = spec.Validate(Input{"nombre": "x", "fecha": "2024-03-01", "activo": "on", "inicio": "2024-03-01T10:30"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", values.Date("fecha").String())
	assert.True(t, values.Bool("activo", false))
	assert.Equal(t, 10, values.Time("inicio").Hour())
	assert.Equal(t, 30, values.Time("inicio").Minute())

	_, err = spec.Validate(Input{"nombre": "x", "fecha": "yesterday"})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestFieldSpecRulesFunc(t *testing.T) {
	bound := "lte=10"
	spec := FieldSpec{Fields: []Field{
		{Name: "n", Kind: KindInt, Required: true, RulesFunc: func() string { return bound }},
	}}

	_, err := spec.Validate(Input{"n": "11"})
	assert.Error(t, err)

	bound = "lte=20"
	_, err = spec.Validate(Input{"n": "11"})
	assert.NoError(t, err)
}

func TestFieldSpecDecimalPlaces(t *testing.T) {
	spec := FieldSpec{Fields: []Field{
		{Name: "precio", Kind: KindFloat, Required: true, Rules: "gte=0,decimals=2",
			Message: "Price cannot be negative", Messages: map[string]string{"decimals": "Too precise"}},
	}}

	tests := []struct {
		name        string
		raw         interface{}
		expectedErr string
	}{
		{name: "Integer", raw: json.Number("10")},
		{name: "Two places", raw: json.Number("10.55")},
		{name: "Float rounding noise", raw: json.Number("0.29")},
		{name: "Three places", raw: json.Number("10.555"), expectedErr: "Too precise"},
		{name: "Negative keeps general message", raw: json.Number("-1"), expectedErr: "Price cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := spec.Validate(Input{"precio": tt.raw})
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.expectedErr, apperr.MessageOf(err, ""))
		})
	}
}

func TestInputFromJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"precio": 10.5, "stock": 5}`))

	in, err := InputFromJSON(c)
	require.NoError(t, err)
	assert.Equal(t, json.Number("10.5"), in["precio"])

	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"precio":`))
	_, err = InputFromJSON(c)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestInputFromForm(t *testing.T) {
	gin.SetMode(gin.TestMode)

	form := url.Values{"nombre": {"Lab A"}, "capacidad_personas": {"12"}}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	in, err := InputFromForm(c)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"nombre": "Lab A", "capacidad_personas": "12"}, in.Strings())
}
