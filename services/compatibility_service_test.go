package services

import (
	"errors"
	"testing"

	"dcim-asset-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portWithConnector(connector models.ConnectorType) *models.Port {
	return &models.Port{
		BaseModel: models.BaseModel{ID: 1},
		Connector: connector,
	}
}

func requireCompatibilityReason(t *testing.T, err error, reason CompatibilityReason) {
	t.Helper()
	var ce *CompatibilityError
	require.True(t, errors.As(err, &ce), "期望兼容性错误，实际: %v", err)
	assert.Equal(t, reason, ce.Reason)
}

func TestValidateCableCompatibilityDAC(t *testing.T) {
	// 直连铜缆只能接笼位类端口
	err := ValidateCableCompatibility(models.CableTypeDACSFP, portWithConnector(models.ConnectorRJ45))
	requireCompatibilityReason(t, err, ReasonWrongConnector)

	assert.NoError(t, ValidateCableCompatibility(models.CableTypeDACSFP, portWithConnector(models.ConnectorSFPPlus)))
	assert.NoError(t, ValidateCableCompatibility(models.CableTypeDACQSFP, portWithConnector(models.ConnectorQSFP28)))
}

func TestValidateCableCompatibilityFiber(t *testing.T) {
	port := portWithConnector(models.ConnectorSFPPlus)

	// 无光模块
	err := ValidateCableCompatibility(models.CableTypeFiberMM, port)
	requireCompatibilityReason(t, err, ReasonMissingModule)

	// 故障模块
	port.Module = &models.TransceiverModule{Status: models.ModuleStatusFaulty}
	err = ValidateCableCompatibility(models.CableTypeFiberSM, port)
	requireCompatibilityReason(t, err, ReasonFaultyModule)

	// 报废模块
	port.Module.Status = models.ModuleStatusScrapped
	err = ValidateCableCompatibility(models.CableTypeFiberMM, port)
	requireCompatibilityReason(t, err, ReasonScrappedModule)

	// 在用/备件模块放行
	port.Module.Status = models.ModuleStatusInUse
	assert.NoError(t, ValidateCableCompatibility(models.CableTypeFiberMM, port))
	port.Module.Status = models.ModuleStatusSpare
	assert.NoError(t, ValidateCableCompatibility(models.CableTypeFiberSM, port))
}

func TestValidateCableCompatibilityCopper(t *testing.T) {
	err := ValidateCableCompatibility(models.CableTypeCat6, portWithConnector(models.ConnectorSFP))
	requireCompatibilityReason(t, err, ReasonWrongConnector)

	assert.NoError(t, ValidateCableCompatibility(models.CableTypeCat5e, portWithConnector(models.ConnectorRJ45)))
	assert.NoError(t, ValidateCableCompatibility(models.CableTypeCat6a, portWithConnector(models.ConnectorRJ45)))
}

func TestValidateCableCompatibilityDefaultAllow(t *testing.T) {
	// 未识别的组合默认放行
	assert.NoError(t, ValidateCableCompatibility(models.CableTypePower, portWithConnector(models.ConnectorPower)))
	assert.NoError(t, ValidateCableCompatibility(models.CableTypeOther, portWithConnector(models.ConnectorLC)))
	assert.NoError(t, ValidateCableCompatibility(models.CableTypeOther, portWithConnector(models.ConnectorRJ45)))
}

func TestInferDefaultCableType(t *testing.T) {
	assert.Equal(t, models.CableTypeCat6, InferDefaultCableType(models.ConnectorRJ45))
	assert.Equal(t, models.CableTypeFiberMM, InferDefaultCableType(models.ConnectorSFP))
	assert.Equal(t, models.CableTypeFiberMM, InferDefaultCableType(models.ConnectorQSFP28))
	assert.Equal(t, models.CableTypeOther, InferDefaultCableType(models.ConnectorPower))
}

func TestIsCompatibilityError(t *testing.T) {
	err := ValidateCableCompatibility(models.CableTypeDACSFP, portWithConnector(models.ConnectorRJ45))
	ce, ok := IsCompatibilityError(err)
	require.True(t, ok)
	assert.Equal(t, models.CableTypeDACSFP, ce.CableType)
	assert.Equal(t, models.ConnectorRJ45, ce.Connector)

	_, ok = IsCompatibilityError(ErrPortNotFound)
	assert.False(t, ok)
}
