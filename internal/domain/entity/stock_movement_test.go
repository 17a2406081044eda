package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func TestDirection_SignoPorTipo(t *testing.T) {
	assert.Equal(t, int64(1), entity.Direction(entity.MovementTypePurchaseReceipt))
	assert.Equal(t, int64(1), entity.Direction(entity.MovementTypeAdjustment))
	assert.Equal(t, int64(1), entity.Direction(entity.MovementTypeTransferIn))
	assert.Equal(t, int64(-1), entity.Direction(entity.MovementTypeSalesIssue))
	assert.Equal(t, int64(-1), entity.Direction(entity.MovementTypeTransferOut))
}

func TestSignedQuantity(t *testing.T) {
	in := &entity.StockMovement{Quantity: 7, MovementType: entity.MovementTypePurchaseReceipt}
	out := &entity.StockMovement{Quantity: 7, MovementType: entity.MovementTypeSalesIssue}

	assert.Equal(t, int64(7), in.SignedQuantity())
	assert.Equal(t, int64(-7), out.SignedQuantity(),
		"la cantidad se almacena positiva; el signo lo aporta el tipo")
}

func TestValidMovementType(t *testing.T) {
	for _, mt := range []string{
		entity.MovementTypePurchaseReceipt,
		entity.MovementTypeSalesIssue,
		entity.MovementTypeAdjustment,
		entity.MovementTypeTransferOut,
		entity.MovementTypeTransferIn,
	} {
		assert.True(t, entity.ValidMovementType(mt), mt)
	}
	assert.False(t, entity.ValidMovementType("RETURN"))
	assert.False(t, entity.ValidMovementType(""))
}
