package services

import (
	"testing"

	"dcim-asset-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreePortAfterDeleteConnection(t *testing.T) {
	f := newConnectionFixture(t)
	ports := NewPortService(f.db, f.cfg, f.identifiers)

	cable, err := f.conns.CreateFullConnection(f.portA1.ID, f.portB1.ID, CableAttributes{}, 101, 102)
	require.NoError(t, err)

	// 端点还引用着端口，释放被拒绝
	_, err = ports.FreePort(f.portA1.ID)
	assert.ErrorIs(t, err, ErrPortStillReferenced)

	require.NoError(t, f.conns.DeleteConnection(cable.ID))

	// 拆线后端口仍是占用，显式释放才恢复可用
	assert.Equal(t, models.PortStatusOccupied, loadPort(t, f.db, f.portA1.ID).Status)

	port, err := ports.FreePort(f.portA1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PortStatusAvailable, port.Status)
	assert.Equal(t, models.PortLinkDisconnected, port.LinkStatus)

	_, err = ports.FreePort(999)
	assert.ErrorIs(t, err, ErrPortNotFound)
}

func TestCreatePortWithLabel(t *testing.T) {
	f := newConnectionFixture(t)
	ports := NewPortService(f.db, f.cfg, f.identifiers)

	value := int64(55)
	port := &models.Port{PanelID: f.panelA.ID, Number: 9}
	require.NoError(t, ports.CreatePort(port, &value))

	// 默认值补齐
	assert.Equal(t, models.PortStatusAvailable, port.Status)
	assert.Equal(t, models.ConnectorRJ45, port.Connector)
	require.NotNil(t, port.IdentifierID)

	identifier := loadIdentifierByValue(t, f.db, 55)
	assert.Equal(t, models.IdentifierStateBound, identifier.State)
	require.NotNil(t, identifier.EntityKind)
	assert.Equal(t, models.EntityKindPort, *identifier.EntityKind)
	assert.Equal(t, port.ID, *identifier.EntityID)
}

func TestDeletePortReleasesIdentifier(t *testing.T) {
	f := newConnectionFixture(t)
	ports := NewPortService(f.db, f.cfg, f.identifiers)

	value := int64(56)
	port := &models.Port{PanelID: f.panelA.ID, Number: 10}
	require.NoError(t, ports.CreatePort(port, &value))

	require.NoError(t, ports.DeletePort(port.ID))

	identifier := loadIdentifierByValue(t, f.db, 56)
	assert.Equal(t, models.IdentifierStateGenerated, identifier.State)

	assert.ErrorIs(t, ports.DeletePort(port.ID), ErrPortNotFound)
}

func TestDeletePortStillReferenced(t *testing.T) {
	f := newConnectionFixture(t)
	ports := NewPortService(f.db, f.cfg, f.identifiers)

	_, err := f.conns.ConnectSingleEnd(f.portA1.ID, 301, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, ports.DeletePort(f.portA1.ID), ErrPortStillReferenced)
}

func TestAttachDetachModule(t *testing.T) {
	f := newConnectionFixture(t)
	ports := NewPortService(f.db, f.cfg, f.identifiers)

	cagePort := models.Port{
		PanelID:    f.panelA.ID,
		Number:     3,
		Status:     models.PortStatusAvailable,
		LinkStatus: models.PortLinkDisconnected,
		Connector:  models.ConnectorSFPPlus,
	}
	require.NoError(t, f.db.Create(&cagePort).Error)

	module := models.TransceiverModule{Model: "SFP-10G-SR", Status: models.ModuleStatusSpare}
	require.NoError(t, f.db.Create(&module).Error)

	port, err := ports.AttachModule(cagePort.ID, module.ID)
	require.NoError(t, err)
	require.NotNil(t, port.ModuleID)
	assert.Equal(t, module.ID, *port.ModuleID)
	require.NotNil(t, port.Module)
	assert.Equal(t, models.ModuleStatusInUse, port.Module.Status)

	// 同一模块不能再插到其他端口
	otherPort := models.Port{
		PanelID:    f.panelA.ID,
		Number:     4,
		Status:     models.PortStatusAvailable,
		LinkStatus: models.PortLinkDisconnected,
		Connector:  models.ConnectorSFPPlus,
	}
	require.NoError(t, f.db.Create(&otherPort).Error)
	_, err = ports.AttachModule(otherPort.ID, module.ID)
	assert.Error(t, err)

	// 插上模块后光纤可以接入
	_, err = f.conns.ConnectSingleEnd(cagePort.ID, 301, &CableAttributes{Type: models.CableTypeFiberMM})
	require.NoError(t, err)

	// 端口占用期间不能拔模块
	_, err = ports.DetachModule(cagePort.ID)
	assert.Error(t, err)

	// 拆线并释放端口后可以拔出，模块回到备件
	var cable models.Cable
	require.NoError(t, f.db.First(&cable).Error)
	require.NoError(t, f.conns.DeleteConnection(cable.ID))
	_, err = ports.FreePort(cagePort.ID)
	require.NoError(t, err)

	port, err = ports.DetachModule(cagePort.ID)
	require.NoError(t, err)
	assert.Nil(t, port.ModuleID)

	var reloaded models.TransceiverModule
	require.NoError(t, f.db.First(&reloaded, module.ID).Error)
	assert.Equal(t, models.ModuleStatusSpare, reloaded.Status)
}

func TestAttachModuleScrappedRejected(t *testing.T) {
	f := newConnectionFixture(t)
	ports := NewPortService(f.db, f.cfg, f.identifiers)

	module := models.TransceiverModule{Model: "SFP-10G-SR", Status: models.ModuleStatusScrapped}
	require.NoError(t, f.db.Create(&module).Error)

	_, err := ports.AttachModule(f.portA1.ID, module.ID)
	assert.Error(t, err)
}

func TestGetPortsByPanelOrdered(t *testing.T) {
	f := newConnectionFixture(t)
	ports := NewPortService(f.db, f.cfg, f.identifiers)

	list, err := ports.GetPortsByPanel(f.panelA.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Number)
	assert.Equal(t, 2, list[1].Number)
}
