package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func TestComputeLineTotal_SinDescuento(t *testing.T) {
	total := entity.ComputeLineTotal(decimal.RequireFromString("19.99"), 3, decimal.Zero)
	assert.True(t, decimal.RequireFromString("59.97").Equal(total), total.String())
}

func TestComputeLineTotal_ConDescuento(t *testing.T) {
	// 100.00 * 4 * (1 - 25/100) = 300.00
	total := entity.ComputeLineTotal(decimal.RequireFromString("100.00"), 4, decimal.NewFromInt(25))
	assert.True(t, decimal.NewFromInt(300).Equal(total), total.String())
}

func TestComputeLineTotal_DescuentoTotal(t *testing.T) {
	total := entity.ComputeLineTotal(decimal.RequireFromString("50.00"), 2, decimal.NewFromInt(100))
	assert.True(t, total.IsZero(), total.String())
}

func TestPurchaseOrderItem_Outstanding(t *testing.T) {
	it := entity.PurchaseOrderItem{OrderedQty: 10, ReceivedQty: 4}
	assert.Equal(t, int64(6), it.Outstanding())

	it.ReceivedQty = 10
	assert.Equal(t, int64(0), it.Outstanding())
}

func TestPurchaseOrder_FullyReceived(t *testing.T) {
	po := entity.PurchaseOrder{Items: []entity.PurchaseOrderItem{
		{OrderedQty: 5, ReceivedQty: 5},
		{OrderedQty: 3, ReceivedQty: 2},
	}}
	assert.False(t, po.FullyReceived())

	po.Items[1].ReceivedQty = 3
	assert.True(t, po.FullyReceived())
}
