package services

import (
	"context"
	"fmt"
	"testing"

	"dcim-asset-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func loadPort(t *testing.T, db *gorm.DB, id uint) models.Port {
	t.Helper()
	var port models.Port
	require.NoError(t, db.First(&port, id).Error)
	return port
}

func TestCreateFullConnection(t *testing.T) {
	f := newConnectionFixture(t)

	cable, err := f.conns.CreateFullConnection(f.portA1.ID, f.portB1.ID, CableAttributes{
		Label: "TRUNK-01",
		Color: "blue",
	}, 101, 102)
	require.NoError(t, err)

	assert.Equal(t, models.CableStatusInUse, cable.Status)
	assert.Equal(t, models.CableTypeCat6, cable.Type) // RJ45端口的默认推断
	assert.Equal(t, "TRUNK-01", cable.Label)
	require.Len(t, cable.Endpoints, 2)

	epA := cable.EndpointByEnd(models.EndA)
	epB := cable.EndpointByEnd(models.EndB)
	require.NotNil(t, epA)
	require.NotNil(t, epB)
	assert.Equal(t, f.portA1.ID, *epA.PortID)
	assert.Equal(t, f.portB1.ID, *epB.PortID)

	// 两端端口转为占用/已连接
	for _, id := range []uint{f.portA1.ID, f.portB1.ID} {
		port := loadPort(t, f.db, id)
		assert.Equal(t, models.PortStatusOccupied, port.Status)
		assert.Equal(t, models.PortLinkConnected, port.LinkStatus)
	}

	// 端点标识符绑定到CABLE_ENDPOINT
	for _, value := range []int64{101, 102} {
		identifier := loadIdentifierByValue(t, f.db, value)
		assert.Equal(t, models.IdentifierStateBound, identifier.State)
		require.NotNil(t, identifier.EntityKind)
		assert.Equal(t, models.EntityKindCableEndpoint, *identifier.EntityKind)
	}

	// outbox事件已写入并投影完成
	var events []models.TopologyEvent
	require.NoError(t, f.db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, models.TopologyEventEdgeUpsert, events[0].Type)
	assert.Equal(t, models.TopologyEventApplied, events[0].Status)

	// 镜像邻接已建立
	members, err := f.redis.SMembers(context.Background(),
		fmt.Sprintf("topo:adj:panel:%d", f.panelA.ID)).Result()
	require.NoError(t, err)
	assert.Contains(t, members, fmt.Sprintf("%d:%d", f.panelB.ID, cable.ID))
}

func TestCreateFullConnectionValidation(t *testing.T) {
	f := newConnectionFixture(t)

	// 两端不能是同一端口
	_, err := f.conns.CreateFullConnection(f.portA1.ID, f.portA1.ID, CableAttributes{}, 101, 102)
	assert.ErrorIs(t, err, ErrPortUnavailable)

	// 两端不能共用一个标识符
	_, err = f.conns.CreateFullConnection(f.portA1.ID, f.portB1.ID, CableAttributes{}, 101, 101)
	assert.ErrorIs(t, err, ErrIdentifierBound)

	// 端口不存在
	_, err = f.conns.CreateFullConnection(999, f.portB1.ID, CableAttributes{}, 101, 102)
	assert.ErrorIs(t, err, ErrPortNotFound)

	// 校验失败不产生任何变更
	assert.Zero(t, countTopologyEvents(t, f.db))
	var cables int64
	require.NoError(t, f.db.Model(&models.Cable{}).Count(&cables).Error)
	assert.Zero(t, cables)
}

func TestCreateFullConnectionPortOccupied(t *testing.T) {
	f := newConnectionFixture(t)

	_, err := f.conns.CreateFullConnection(f.portA1.ID, f.portB1.ID, CableAttributes{}, 101, 102)
	require.NoError(t, err)

	_, err = f.conns.CreateFullConnection(f.portA1.ID, f.portB2.ID, CableAttributes{}, 103, 104)
	assert.ErrorIs(t, err, ErrPortUnavailable)
}

func TestCreateFullConnectionIncompatible(t *testing.T) {
	f := newConnectionFixture(t)

	// 笼位端口没插光模块，光纤接入被拒绝
	cagePort := models.Port{
		PanelID:    f.panelA.ID,
		Number:     3,
		Status:     models.PortStatusAvailable,
		LinkStatus: models.PortLinkDisconnected,
		Connector:  models.ConnectorSFPPlus,
	}
	require.NoError(t, f.db.Create(&cagePort).Error)

	_, err := f.conns.CreateFullConnection(cagePort.ID, f.portB1.ID,
		CableAttributes{Type: models.CableTypeFiberMM}, 101, 102)
	ce, ok := IsCompatibilityError(err)
	require.True(t, ok)
	assert.Equal(t, ReasonMissingModule, ce.Reason)
	assert.Equal(t, cagePort.ID, ce.PortID)

	// 失败的标识符未被占用
	var count int64
	require.NoError(t, f.db.Model(&models.Identifier{}).Where("value IN ?", []int64{101, 102}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConnectSingleEndNewIdentifier(t *testing.T) {
	f := newConnectionFixture(t)

	cable, err := f.conns.ConnectSingleEnd(f.portA1.ID, 301, nil)
	require.NoError(t, err)

	// 只知道一端：库存线缆，A端在位
	assert.Equal(t, models.CableStatusInventoried, cable.Status)
	assert.Equal(t, models.CableTypeCat6, cable.Type)
	require.Len(t, cable.Endpoints, 1)
	assert.Equal(t, models.EndA, cable.Endpoints[0].End)
	assert.Equal(t, f.portA1.ID, *cable.Endpoints[0].PortID)

	port := loadPort(t, f.db, f.portA1.ID)
	assert.Equal(t, models.PortStatusOccupied, port.Status)

	// 路径不完整，不写拓扑边
	assert.Zero(t, countTopologyEvents(t, f.db))
}

func TestConnectSingleEndSecondScanAttachesSibling(t *testing.T) {
	f := newConnectionFixture(t)

	first, err := f.conns.ConnectSingleEnd(f.portA1.ID, 301, nil)
	require.NoError(t, err)

	// 再次扫同一标签、指到另一端口：这次指向对端，补建B端并接通
	second, err := f.conns.ConnectSingleEnd(f.portB1.ID, 301, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.CableStatusInUse, second.Status)
	require.Len(t, second.Endpoints, 2)

	epB := second.EndpointByEnd(models.EndB)
	require.NotNil(t, epB)
	assert.Equal(t, f.portB1.ID, *epB.PortID)

	// B端拿到自己的新标签，不复用301
	require.NotNil(t, epB.Identifier)
	assert.NotEqual(t, int64(301), epB.Identifier.Value)
	sibling := loadIdentifierByValue(t, f.db, epB.Identifier.Value)
	assert.Equal(t, models.IdentifierStateBound, sibling.State)

	// 接通后写入拓扑边并投影
	var events []models.TopologyEvent
	require.NoError(t, f.db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, models.TopologyEventEdgeUpsert, events[0].Type)
	assert.Equal(t, models.TopologyEventApplied, events[0].Status)
}

func TestConnectSingleEndIdempotentRescan(t *testing.T) {
	f := newConnectionFixture(t)

	_, err := f.conns.ConnectSingleEnd(f.portA1.ID, 301, nil)
	require.NoError(t, err)
	cable, err := f.conns.ConnectSingleEnd(f.portB1.ID, 301, nil)
	require.NoError(t, err)
	eventsBefore := countTopologyEvents(t, f.db)

	// 在已插的端口上重扫：无变更、可合并属性
	color := "yellow"
	rescanned, err := f.conns.ConnectSingleEnd(f.portA1.ID, 301, &CableAttributes{Color: color})
	require.NoError(t, err)
	assert.Equal(t, cable.ID, rescanned.ID)
	assert.Len(t, rescanned.Endpoints, 2)
	assert.Equal(t, "yellow", rescanned.Color)
	assert.Equal(t, eventsBefore, countTopologyEvents(t, f.db))
}

func TestConnectSingleEndFullyConnected(t *testing.T) {
	f := newConnectionFixture(t)

	_, err := f.conns.ConnectSingleEnd(f.portA1.ID, 301, nil)
	require.NoError(t, err)
	_, err = f.conns.ConnectSingleEnd(f.portB1.ID, 301, nil)
	require.NoError(t, err)

	// 两端都已在位，扫到第三个端口报满
	_, err = f.conns.ConnectSingleEnd(f.portA2.ID, 301, nil)
	assert.ErrorIs(t, err, ErrCableFullyConnected)
}

func TestConnectSingleEndIdentifierConflicts(t *testing.T) {
	f := newConnectionFixture(t)

	// 绑定在非端点资产上的标识符不能用于接线
	value := int64(401)
	_, err := f.identifiers.Allocate(models.EntityKindPanel, f.panelA.ID, &value)
	require.NoError(t, err)
	_, err = f.conns.ConnectSingleEnd(f.portA1.ID, 401, nil)
	assert.ErrorIs(t, err, ErrIdentifierBound)

	// 作废的标识符直接拒绝
	require.NoError(t, f.db.Create(&models.Identifier{
		Value: 402,
		State: models.IdentifierStateCancelled,
	}).Error)
	_, err = f.conns.ConnectSingleEnd(f.portA1.ID, 402, nil)
	assert.ErrorIs(t, err, ErrIdentifierCancelled)
}

func TestConnectSingleEndPortOccupied(t *testing.T) {
	f := newConnectionFixture(t)

	_, err := f.conns.ConnectSingleEnd(f.portA1.ID, 301, nil)
	require.NoError(t, err)

	// 已占用端口不能再接全新线缆
	_, err = f.conns.ConnectSingleEnd(f.portA1.ID, 302, nil)
	assert.ErrorIs(t, err, ErrPortUnavailable)
}

func TestDeleteConnection(t *testing.T) {
	f := newConnectionFixture(t)

	cable, err := f.conns.CreateFullConnection(f.portA1.ID, f.portB1.ID, CableAttributes{}, 501, 502)
	require.NoError(t, err)

	require.NoError(t, f.conns.DeleteConnection(cable.ID))

	// 线缆与端点消失
	var count int64
	require.NoError(t, f.db.Model(&models.Cable{}).Where("id = ?", cable.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, f.db.Model(&models.CableEndpoint{}).Where("cable_id = ?", cable.ID).Count(&count).Error)
	assert.Zero(t, count)

	// 端点标识符回到可分配状态，物理标签还贴在线上
	for _, value := range []int64{501, 502} {
		identifier := loadIdentifierByValue(t, f.db, value)
		assert.Equal(t, models.IdentifierStateGenerated, identifier.State)
		assert.Nil(t, identifier.EntityKind)
	}

	// 端口保持占用，等待操作员现场确认后显式释放
	for _, id := range []uint{f.portA1.ID, f.portB1.ID} {
		assert.Equal(t, models.PortStatusOccupied, loadPort(t, f.db, id).Status)
	}

	// edge_delete事件已投影，镜像邻接清空
	var events []models.TopologyEvent
	require.NoError(t, f.db.Order("id ASC").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, models.TopologyEventEdgeDelete, events[1].Type)
	assert.Equal(t, models.TopologyEventApplied, events[1].Status)

	n, err := f.redis.SCard(context.Background(),
		fmt.Sprintf("topo:adj:panel:%d", f.panelA.ID)).Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, f.conns.DeleteConnection(cable.ID), ErrCableNotFound)
}

func TestDeleteConnectionInventoriedCable(t *testing.T) {
	f := newConnectionFixture(t)

	cable, err := f.conns.ConnectSingleEnd(f.portA1.ID, 301, nil)
	require.NoError(t, err)

	require.NoError(t, f.conns.DeleteConnection(cable.ID))

	// 单端库存线缆没有拓扑边，不写删除事件
	assert.Zero(t, countTopologyEvents(t, f.db))
	identifier := loadIdentifierByValue(t, f.db, 301)
	assert.Equal(t, models.IdentifierStateGenerated, identifier.State)
}

func TestGetPortConnection(t *testing.T) {
	f := newConnectionFixture(t)

	cable, err := f.conns.CreateFullConnection(f.portA1.ID, f.portB1.ID,
		CableAttributes{Label: "LINK-7"}, 601, 602)
	require.NoError(t, err)

	conn, err := f.conns.GetPortConnection(f.portA1.ID)
	require.NoError(t, err)
	assert.Equal(t, cable.ID, conn.Cable.ID)
	require.NotNil(t, conn.ThisEndpoint)
	assert.Equal(t, f.portA1.ID, *conn.ThisEndpoint.PortID)
	require.NotNil(t, conn.ThisEndpoint.Identifier)
	assert.Equal(t, int64(601), conn.ThisEndpoint.Identifier.Value)

	// 对端端口带完整定位上下文
	require.NotNil(t, conn.OtherEndpoint)
	require.NotNil(t, conn.ConnectedPort)
	assert.Equal(t, f.portB1.ID, conn.ConnectedPort.ID)
	require.NotNil(t, conn.ConnectedPort.Panel)
	assert.Equal(t, f.panelB.ID, conn.ConnectedPort.Panel.ID)
	require.NotNil(t, conn.ConnectedPort.Panel.Cabinet)
	require.NotNil(t, conn.ConnectedPort.Panel.Cabinet.Room)
	assert.Equal(t, "机房A", conn.ConnectedPort.Panel.Cabinet.Room.Name)
}

func TestGetPortConnectionSingleEnd(t *testing.T) {
	f := newConnectionFixture(t)

	_, err := f.conns.ConnectSingleEnd(f.portA1.ID, 301, nil)
	require.NoError(t, err)

	conn, err := f.conns.GetPortConnection(f.portA1.ID)
	require.NoError(t, err)
	assert.Nil(t, conn.OtherEndpoint)
	assert.Nil(t, conn.ConnectedPort)
}

func TestGetPortConnectionErrors(t *testing.T) {
	f := newConnectionFixture(t)

	_, err := f.conns.GetPortConnection(f.portA1.ID)
	assert.ErrorIs(t, err, ErrPortNotConnected)

	_, err = f.conns.GetPortConnection(999)
	assert.ErrorIs(t, err, ErrPortNotFound)
}

func TestGetNetworkTopology(t *testing.T) {
	f := newConnectionFixture(t)

	_, err := f.conns.CreateFullConnection(f.portA1.ID, f.portB1.ID, CableAttributes{}, 701, 702)
	require.NoError(t, err)

	paths, err := f.conns.GetNetworkTopology(f.panelA.ID, 3)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, f.panelB.ID, paths[0].PanelID)
	assert.Equal(t, 1, paths[0].Depth)

	_, err = f.conns.GetNetworkTopology(999, 3)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
