package entity

import "time"

// InventoryLevel es la proyección del stock actual por (producto, ubicación).
// Derivada del ledger; debe ser igual a la suma con signo de todos los
// movimientos de esa pareja en todo estado confirmado, y nunca negativa.
// La fila se crea perezosamente con el primer movimiento (base 0).
type InventoryLevel struct {
	ProductID      int64
	LocationID     int64
	QuantityOnHand int64
	LastUpdated    time.Time
}
