package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

func respondAppWith(err error) *fiber.App {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	return app
}

func doRespond(t *testing.T, app *fiber.App) (int, dto.ErrorResponse, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body, string(raw)
}

func TestRespondError_SentinelaEnvueltoViajaAlCliente(t *testing.T) {
	err := fmt.Errorf("%w: producto 7 en ubicación 2 (disponible 1, solicitado 5)", domain.ErrInsufficientStock)
	status, body, _ := doRespond(t, respondAppWith(err))

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "producto 7")
}

func TestRespondError_FallaInternaNoFiltraDetalles(t *testing.T) {
	// Error de almacenamiento con detalles de conexión que jamás deben
	// llegar al cliente.
	err := fmt.Errorf("insert movimiento: conexión rechazada host=db-internal.local user=almacen (SQLSTATE 08006)")
	status, body, raw := doRespond(t, respondAppWith(err))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "error interno", body.Message)
	assert.NotContains(t, raw, "db-internal")
	assert.NotContains(t, raw, "SQLSTATE")
}
