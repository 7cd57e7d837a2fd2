package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Fields
}

func TestClientInput_Validate(t *testing.T) {
	email := "ana@example.com"
	in := ClientInput{Name: "  Ana Pérez ", Email: &email}
	require.NoError(t, in.Validate())
	assert.Equal(t, "Ana Pérez", in.Name)

	bad := "not-an-email"
	fields := fieldsOf(t, (&ClientInput{Name: " ", Email: &bad}).Validate())
	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "email", fields["email"])
}

func TestOrderInput_Validate(t *testing.T) {
	in := OrderInput{
		ClientID:           "c1",
		ApplianceType:      "Refrigerador",
		ProblemDescription: "No enfría la parte de abajo",
	}
	require.NoError(t, in.Validate())
	assert.Equal(t, ServiceRepair, in.ServiceType)
	assert.Equal(t, UrgencyMedium, in.Urgency)

	fields := fieldsOf(t, (&OrderInput{
		ApplianceType:      "Lavadora",
		ProblemDescription: "corto",
		Urgency:            "Urgente",
		Status:             "Entregado",
	}).Validate())
	assert.Equal(t, "required", fields["client_id"])
	assert.Equal(t, "min=10", fields["problem_description"])
	assert.Contains(t, fields, "urgency")
	assert.Contains(t, fields, "status")
}

func TestLineInputs_RejectNonPositive(t *testing.T) {
	part := PartInput{Description: "Compresor", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(-5)}
	fields := fieldsOf(t, part.Validate())
	assert.Equal(t, "gt=0", fields["quantity"])
	assert.Equal(t, "gt=0", fields["unit_price"])

	labor := LaborInput{Description: "Diagnóstico", Hours: decimal.NewFromInt(1), Rate: decimal.Zero}
	fields = fieldsOf(t, labor.Validate())
	assert.NotContains(t, fields, "hours")
	assert.Equal(t, "gt=0", fields["rate"])

	ok := PartInput{Description: "Termostato", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)}
	assert.NoError(t, ok.Validate())
}

func TestLineInputs_RejectAmountsTheColumnCannotHold(t *testing.T) {
	part := PartInput{
		Description: "Empaque",
		Quantity:    decimal.RequireFromString("1.005"),
		UnitPrice:   decimal.RequireFromString("0.004"),
	}
	fields := fieldsOf(t, part.Validate())
	assert.Equal(t, "max_decimals=2", fields["quantity"])
	assert.Equal(t, "max_decimals=2", fields["unit_price"])

	labor := LaborInput{
		Description: "Reparación",
		Hours:       decimal.NewFromInt(1_000_000),
		Rate:        decimal.RequireFromString("350.50"),
	}
	fields = fieldsOf(t, labor.Validate())
	assert.Equal(t, "lt=1000000", fields["hours"])
	assert.NotContains(t, fields, "rate")

	ok := LaborInput{Description: "Reparación", Hours: decimal.RequireFromString("1.50"), Rate: decimal.RequireFromString("350.5")}
	assert.NoError(t, ok.Validate())
}

func TestValidationError_Message(t *testing.T) {
	err := Invalid("time_slot", "required").Add("date", "required")
	assert.Equal(t, "validation failed: date: required; time_slot: required", err.Error())
	assert.Nil(t, (&ValidationError{}).OrNil())
}
