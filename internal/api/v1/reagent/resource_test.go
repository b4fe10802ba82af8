package reagent

import (
	"encoding/json"
	"testing"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceFitsStoredColumn(t *testing.T) {
	input := func(price string) utils.Input {
		return utils.Input{
			"nombre":      "Etanol",
			"descripcion": "Alcohol 96%",
			"precio":      json.Number(price),
			"stock":       json.Number("3"),
		}
	}

	tests := []struct {
		price       string
		expectedErr string
	}{
		{price: "10.55"},
		{price: "9999999999.99"},
		{price: "10.555", expectedErr: "Price can have at most 2 decimal places"},
		{price: "-0.01", expectedErr: "Price cannot be negative"},
		{price: "10000000000", expectedErr: "Price is too large"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			values, err := Spec.Validate(input(tt.price))
			if tt.expectedErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.price, formatPrice(values.Float("precio")))
				return
			}
			assert.Equal(t, apperr.Validation, apperr.KindOf(err))
			assert.Equal(t, tt.expectedErr, apperr.MessageOf(err, ""))
		})
	}
}
