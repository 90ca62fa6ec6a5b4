package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/paintshop-api/pkg/logger"
)

func TestNewWriter_FiltraPorNivel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.NewWriter(buf, "warn")

	log.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	log.Warn().Str("material_id", "m1").Msg("stock negativo")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "m1", entry["material_id"])
	assert.Equal(t, "stock negativo", entry["message"])
}

func TestComponent_AgregaCampo(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.NewWriter(buf, "info").Component("bom").Info().Msg("ok")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "bom", entry["component"])
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Nop().Error().Msg("descartado")
	})
}
