// Package paymentmethod serves the payment methods.
package paymentmethod

import (
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
)

const Path = "/metodospago"

var Spec = utils.FieldSpec{
	RequiredMessage: "Name is required",
	Fields: []utils.Field{
		{Name: "nombre", Label: "Nombre", Kind: utils.KindString, Required: true, Rules: "max=100"},
	},
}

func Resource(s store.PaymentMethodStore) crud.Resource[models.PaymentMethod] {
	return crud.Resource[models.PaymentMethod]{
		Singular: "Payment method",
		Title:    "Métodos de pago",
		PagePath: Path,
		Spec:     Spec,
		Storage: crud.Storage[models.PaymentMethod]{
			List:   s.GetAllPaymentMethods,
			Get:    s.GetPaymentMethodByID,
			Create: s.CreatePaymentMethod,
			Update: s.UpdatePaymentMethod,
			Delete: s.DeletePaymentMethod,
		},
		Build: func(v utils.Values) models.PaymentMethod {
			return models.PaymentMethod{Name: v.String("nombre")}
		},
		FormValues: func(m models.PaymentMethod) map[string]string {
			return map[string]string{"nombre": m.Name}
		},
		Columns: []crud.Column[models.PaymentMethod]{
			{Label: "Nombre", Value: func(m models.PaymentMethod) string { return m.Name }},
		},
		ID:     func(m models.PaymentMethod) uint { return m.ID },
		Access: crud.DefaultAccess,
	}
}
