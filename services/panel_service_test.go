package services

import (
	"testing"

	"dcim-asset-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanelFixture(t *testing.T) (*connectionFixture, InterfacePanelService) {
	t.Helper()
	f := newConnectionFixture(t)
	return f, NewPanelService(f.db, f.cfg, f.identifiers)
}

func TestCreatePanelWithPorts(t *testing.T) {
	f, panels := newPanelFixture(t)

	panel := &models.Panel{CabinetID: f.panelA.CabinetID, Name: "新配线架", Type: models.PanelTypePatch}
	value := int64(80)
	require.NoError(t, panels.CreatePanel(panel, 24, models.ConnectorRJ45, &value))

	loaded, err := panels.GetPanelByID(panel.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Ports, 24)
	assert.Equal(t, 1, loaded.Ports[0].Number)
	assert.Equal(t, 24, loaded.Ports[23].Number)
	for _, port := range loaded.Ports {
		assert.Equal(t, models.ConnectorRJ45, port.Connector)
		assert.Equal(t, models.PortStatusAvailable, port.Status)
	}

	// 面板标签已绑定
	require.NotNil(t, loaded.Identifier)
	assert.Equal(t, int64(80), loaded.Identifier.Value)
	identifier := loadIdentifierByValue(t, f.db, 80)
	require.NotNil(t, identifier.EntityKind)
	assert.Equal(t, models.EntityKindPanel, *identifier.EntityKind)
	assert.Equal(t, panel.ID, *identifier.EntityID)
}

func TestCreatePanelUnknownCabinet(t *testing.T) {
	_, panels := newPanelFixture(t)

	panel := &models.Panel{CabinetID: 999, Name: "孤儿面板"}
	assert.Error(t, panels.CreatePanel(panel, 0, "", nil))
}

func TestDeletePanel(t *testing.T) {
	f, panels := newPanelFixture(t)

	panel := &models.Panel{CabinetID: f.panelA.CabinetID, Name: "临时面板"}
	value := int64(81)
	require.NoError(t, panels.CreatePanel(panel, 4, models.ConnectorRJ45, &value))

	require.NoError(t, panels.DeletePanel(panel.ID))

	// 端口级联删除，面板标签释放回池
	var count int64
	require.NoError(t, f.db.Model(&models.Port{}).Where("panel_id = ?", panel.ID).Count(&count).Error)
	assert.Zero(t, count)
	identifier := loadIdentifierByValue(t, f.db, 81)
	assert.Equal(t, models.IdentifierStateGenerated, identifier.State)
}

func TestDeletePanelWithOccupiedPort(t *testing.T) {
	f, panels := newPanelFixture(t)

	_, err := f.conns.ConnectSingleEnd(f.portA1.ID, 301, nil)
	require.NoError(t, err)

	assert.Error(t, panels.DeletePanel(f.panelA.ID))
}
