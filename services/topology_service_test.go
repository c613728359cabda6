package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"dcim-asset-service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpsertEvent(t *testing.T, cableID, portA, portB, panelA, panelB uint) *models.TopologyEvent {
	t.Helper()
	payload, err := json.Marshal(models.EdgeUpsertPayload{
		CableID:    cableID,
		CableType:  string(models.CableTypeCat6),
		PortAID:    portA,
		PortBID:    portB,
		PanelAID:   panelA,
		PanelAName: fmt.Sprintf("面板%d", panelA),
		PanelBID:   panelB,
		PanelBName: fmt.Sprintf("面板%d", panelB),
	})
	require.NoError(t, err)
	return &models.TopologyEvent{
		EventID: uuid.New().String(),
		Type:    models.TopologyEventEdgeUpsert,
		Payload: string(payload),
		Status:  models.TopologyEventPending,
	}
}

func newDeleteEvent(t *testing.T, cableID, portA, portB, panelA, panelB uint) *models.TopologyEvent {
	t.Helper()
	payload, err := json.Marshal(models.EdgeDeletePayload{
		CableID:  cableID,
		PortAID:  portA,
		PortBID:  portB,
		PanelAID: panelA,
		PanelBID: panelB,
	})
	require.NoError(t, err)
	return &models.TopologyEvent{
		EventID: uuid.New().String(),
		Type:    models.TopologyEventEdgeDelete,
		Payload: string(payload),
		Status:  models.TopologyEventPending,
	}
}

func TestApplyEventEdgeUpsert(t *testing.T) {
	client := newTestRedis(t)
	svc := NewTopologyService(newTestDB(t), newTestConfig(), client)
	ctx := context.Background()

	event := newUpsertEvent(t, 10, 101, 201, 1, 2)
	require.NoError(t, svc.ApplyEvent(event))

	members, err := client.SMembers(ctx, "topo:adj:panel:1").Result()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2:10"}, members)

	members, err = client.SMembers(ctx, "topo:adj:panel:2").Result()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1:10"}, members)

	name, err := client.HGet(ctx, "topo:panel:2", "name").Result()
	require.NoError(t, err)
	assert.Equal(t, "面板2", name)

	cableType, err := client.HGet(ctx, "topo:cable:10", "type").Result()
	require.NoError(t, err)
	assert.Equal(t, "CAT6", cableType)

	// 幂等：重复回放不会产生重复的邻接成员
	require.NoError(t, svc.ApplyEvent(event))
	members, err = client.SMembers(ctx, "topo:adj:panel:1").Result()
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestApplyEventEdgeDelete(t *testing.T) {
	client := newTestRedis(t)
	svc := NewTopologyService(newTestDB(t), newTestConfig(), client)
	ctx := context.Background()

	require.NoError(t, svc.ApplyEvent(newUpsertEvent(t, 10, 101, 201, 1, 2)))
	require.NoError(t, svc.ApplyEvent(newDeleteEvent(t, 10, 101, 201, 1, 2)))

	n, err := client.SCard(ctx, "topo:adj:panel:1").Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	exists, err := client.Exists(ctx, "topo:cable:10").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	// 删除同样幂等
	require.NoError(t, svc.ApplyEvent(newDeleteEvent(t, 10, 101, 201, 1, 2)))
}

func TestApplyEventUnknownType(t *testing.T) {
	svc := NewTopologyService(newTestDB(t), newTestConfig(), newTestRedis(t))

	err := svc.ApplyEvent(&models.TopologyEvent{
		EventID: uuid.New().String(),
		Type:    "bogus",
		Payload: "{}",
	})
	assert.Error(t, err)
}

func TestSyncPending(t *testing.T) {
	db := newTestDB(t)
	client := newTestRedis(t)
	svc := NewTopologyService(db, newTestConfig(), client)

	first := newUpsertEvent(t, 10, 101, 201, 1, 2)
	second := newUpsertEvent(t, 11, 202, 301, 2, 3)
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	applied, err := svc.SyncPending()
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	var events []models.TopologyEvent
	require.NoError(t, db.Order("id ASC").Find(&events).Error)
	for _, event := range events {
		assert.Equal(t, models.TopologyEventApplied, event.Status)
		assert.NotNil(t, event.AppliedAt)
	}

	// 没有pending事件时是空操作
	applied, err = svc.SyncPending()
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestSyncPendingStopsOnFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewTopologyService(db, newTestConfig(), newTestRedis(t))

	bad := &models.TopologyEvent{
		EventID: uuid.New().String(),
		Type:    models.TopologyEventEdgeUpsert,
		Payload: "not-json",
		Status:  models.TopologyEventPending,
	}
	good := newUpsertEvent(t, 10, 101, 201, 1, 2)
	require.NoError(t, db.Create(bad).Error)
	require.NoError(t, db.Create(good).Error)

	// 失败即停止：后面的事件也保留pending，顺序不被打乱
	applied, err := svc.SyncPending()
	assert.Error(t, err)
	assert.Zero(t, applied)

	// 每次查询用新变量，避免已填充主键混入查询条件
	var badReloaded models.TopologyEvent
	require.NoError(t, db.First(&badReloaded, bad.ID).Error)
	assert.Equal(t, models.TopologyEventPending, badReloaded.Status)
	assert.Equal(t, 1, badReloaded.Attempts)

	var goodReloaded models.TopologyEvent
	require.NoError(t, db.First(&goodReloaded, good.ID).Error)
	assert.Equal(t, models.TopologyEventPending, goodReloaded.Status)
	assert.Zero(t, goodReloaded.Attempts)

	// 移除坏事件后恢复投影
	require.NoError(t, db.Delete(&models.TopologyEvent{}, bad.ID).Error)
	applied, err = svc.SyncPending()
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
}

func TestQueryReachablePanels(t *testing.T) {
	svc := NewTopologyService(newTestDB(t), newTestConfig(), newTestRedis(t))

	// 链式拓扑: 1 -10- 2 -11- 3 -12- 4
	require.NoError(t, svc.ApplyEvent(newUpsertEvent(t, 10, 101, 201, 1, 2)))
	require.NoError(t, svc.ApplyEvent(newUpsertEvent(t, 11, 202, 301, 2, 3)))
	require.NoError(t, svc.ApplyEvent(newUpsertEvent(t, 12, 302, 401, 3, 4)))

	paths, err := svc.QueryReachablePanels(1, 8)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	byPanel := map[uint]TopologyPath{}
	for _, p := range paths {
		byPanel[p.PanelID] = p
	}

	assert.Equal(t, 1, byPanel[2].Depth)
	assert.Equal(t, 2, byPanel[3].Depth)
	assert.Equal(t, 3, byPanel[4].Depth)
	assert.Equal(t, "面板4", byPanel[4].PanelName)

	// 到面板4的路径逐跳可复盘
	require.Len(t, byPanel[4].Hops, 3)
	assert.Equal(t, TopologyHop{FromPanelID: 1, CableID: 10, ToPanelID: 2}, byPanel[4].Hops[0])
	assert.Equal(t, TopologyHop{FromPanelID: 2, CableID: 11, ToPanelID: 3}, byPanel[4].Hops[1])
	assert.Equal(t, TopologyHop{FromPanelID: 3, CableID: 12, ToPanelID: 4}, byPanel[4].Hops[2])
}

func TestQueryReachablePanelsDepthClamp(t *testing.T) {
	cfg := newTestConfig()
	cfg.TopologyMaxDepth = 2
	svc := NewTopologyService(newTestDB(t), cfg, newTestRedis(t))

	require.NoError(t, svc.ApplyEvent(newUpsertEvent(t, 10, 101, 201, 1, 2)))
	require.NoError(t, svc.ApplyEvent(newUpsertEvent(t, 11, 202, 301, 2, 3)))
	require.NoError(t, svc.ApplyEvent(newUpsertEvent(t, 12, 302, 401, 3, 4)))

	// 深度0提升到1
	paths, err := svc.QueryReachablePanels(1, 0)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, uint(2), paths[0].PanelID)

	// 超过配置上限被钳制到2
	paths, err = svc.QueryReachablePanels(1, 100)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestQueryReachablePanelsMissingPanelNode(t *testing.T) {
	client := newTestRedis(t)
	svc := NewTopologyService(newTestDB(t), newTestConfig(), client)
	ctx := context.Background()

	// 只有邻接集合、没有面板节点哈希时，名称留空但遍历不报错
	require.NoError(t, client.SAdd(ctx, "topo:adj:panel:1", "2:10").Err())
	require.NoError(t, client.SAdd(ctx, "topo:adj:panel:2", "1:10").Err())

	paths, err := svc.QueryReachablePanels(1, 3)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, uint(2), paths[0].PanelID)
	assert.Empty(t, paths[0].PanelName)
}

func TestQueryReachablePanelsIsolated(t *testing.T) {
	svc := NewTopologyService(newTestDB(t), newTestConfig(), newTestRedis(t))

	paths, err := svc.QueryReachablePanels(99, 3)
	require.NoError(t, err)
	assert.Empty(t, paths)
}
