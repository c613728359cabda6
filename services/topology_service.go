package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dcim-asset-service/config"
	"dcim-asset-service/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// InterfaceTopologyService 定义拓扑镜像服务接口
type InterfaceTopologyService interface {
	ApplyEvent(event *models.TopologyEvent) error
	SyncPending() (int, error)
	QueryReachablePanels(panelID uint, maxDepth int) ([]TopologyPath, error)
}

// TopologyHop 拓扑路径中的一跳
type TopologyHop struct {
	FromPanelID uint `json:"from_panel_id"`
	CableID     uint `json:"cable_id"`
	ToPanelID   uint `json:"to_panel_id"`
}

// TopologyPath 从起始面板可达的一个面板及其路径
type TopologyPath struct {
	PanelID   uint          `json:"panel_id"`
	PanelName string        `json:"panel_name,omitempty"`
	Depth     int           `json:"depth"`
	Hops      []TopologyHop `json:"hops"`
}

// TopologyService 维护Redis中的拓扑镜像：面板/端口节点、线缆边、邻接集合。
// 镜像只存标识与展示属性，每次写入整体覆盖，从不读改写；
// 关系库始终是权威，镜像落后时下一次投影修复。
type TopologyService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  *redis.Client
	Ctx    context.Context
}

// NewTopologyService 创建一个新的拓扑镜像服务
func NewTopologyService(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) InterfaceTopologyService {
	return &TopologyService{
		DB:     db,
		Config: cfg,
		Redis:  redisClient,
		Ctx:    context.Background(),
	}
}

// 镜像键
func panelKey(id uint) string { return fmt.Sprintf("topo:panel:%d", id) }
func portKey(id uint) string  { return fmt.Sprintf("topo:port:%d", id) }
func cableKey(id uint) string { return fmt.Sprintf("topo:cable:%d", id) }
func adjKey(id uint) string   { return fmt.Sprintf("topo:adj:panel:%d", id) }

// 邻接集合成员: "<对端面板ID>:<线缆ID>"
func adjMember(peerPanelID, cableID uint) string {
	return fmt.Sprintf("%d:%d", peerPanelID, cableID)
}

func parseAdjMember(member string) (peerPanelID, cableID uint, ok bool) {
	parts := strings.SplitN(member, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	p, err1 := strconv.ParseUint(parts[0], 10, 32)
	c, err2 := strconv.ParseUint(parts[1], 10, 32)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return uint(p), uint(c), true
}

// 1 ApplyEvent 将一条outbox事件幂等地投影到镜像。
// 节点与边整体覆盖，重复回放得到相同结果。
func (s *TopologyService) ApplyEvent(event *models.TopologyEvent) error {
	switch event.Type {
	case models.TopologyEventEdgeUpsert:
		var payload models.EdgeUpsertPayload
		if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
			return fmt.Errorf("解析edge_upsert载荷失败: %w", err)
		}
		return s.applyEdgeUpsert(&payload)
	case models.TopologyEventEdgeDelete:
		var payload models.EdgeDeletePayload
		if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
			return fmt.Errorf("解析edge_delete载荷失败: %w", err)
		}
		return s.applyEdgeDelete(&payload)
	default:
		return fmt.Errorf("未知的拓扑事件类型: %s", event.Type)
	}
}

func (s *TopologyService) applyEdgeUpsert(p *models.EdgeUpsertPayload) error {
	pipe := s.Redis.TxPipeline()

	pipe.HSet(s.Ctx, panelKey(p.PanelAID), "name", p.PanelAName)
	pipe.HSet(s.Ctx, panelKey(p.PanelBID), "name", p.PanelBName)
	pipe.HSet(s.Ctx, portKey(p.PortAID),
		"label", p.PortALabel, "panel_id", p.PanelAID)
	pipe.HSet(s.Ctx, portKey(p.PortBID),
		"label", p.PortBLabel, "panel_id", p.PanelBID)
	pipe.HSet(s.Ctx, cableKey(p.CableID),
		"type", p.CableType,
		"color", p.CableColor,
		"label", p.CableLabel,
		"port_a", p.PortAID,
		"port_b", p.PortBID,
		"panel_a", p.PanelAID,
		"panel_b", p.PanelBID)
	pipe.SAdd(s.Ctx, adjKey(p.PanelAID), adjMember(p.PanelBID, p.CableID))
	pipe.SAdd(s.Ctx, adjKey(p.PanelBID), adjMember(p.PanelAID, p.CableID))

	_, err := pipe.Exec(s.Ctx)
	return err
}

func (s *TopologyService) applyEdgeDelete(p *models.EdgeDeletePayload) error {
	pipe := s.Redis.TxPipeline()

	pipe.SRem(s.Ctx, adjKey(p.PanelAID), adjMember(p.PanelBID, p.CableID))
	pipe.SRem(s.Ctx, adjKey(p.PanelBID), adjMember(p.PanelAID, p.CableID))
	pipe.Del(s.Ctx, cableKey(p.CableID))

	_, err := pipe.Exec(s.Ctx)
	return err
}

// 2 SyncPending 按序回放pending事件。失败的事件累计尝试次数并保留pending，
// 为保证线缆边的先建后删顺序，遇到失败即停止，等待下一次投影。
// 返回本次成功投影的事件数。
func (s *TopologyService) SyncPending() (int, error) {
	var events []models.TopologyEvent
	if err := s.DB.Where("status = ?", models.TopologyEventPending).
		Order("id ASC").Find(&events).Error; err != nil {
		return 0, err
	}

	applied := 0
	for i := range events {
		event := &events[i]
		if err := s.ApplyEvent(event); err != nil {
			config.Warning("拓扑事件 %s 投影失败(第%d次): %v", event.EventID, event.Attempts+1, err)
			if derr := s.DB.Model(event).Update("attempts", event.Attempts+1).Error; derr != nil {
				config.Error("更新拓扑事件尝试次数失败: %v", derr)
			}
			return applied, err
		}

		now := time.Now()
		if err := s.DB.Model(event).Updates(map[string]interface{}{
			"status":     models.TopologyEventApplied,
			"applied_at": now,
		}).Error; err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// 3 QueryReachablePanels 从起始面板做广度优先遍历，返回maxDepth跳内
// 所有可达面板及路径。maxDepth受配置硬上限约束。
func (s *TopologyService) QueryReachablePanels(panelID uint, maxDepth int) ([]TopologyPath, error) {
	if maxDepth < 1 {
		maxDepth = 1
	}
	if maxDepth > s.Config.TopologyMaxDepth {
		maxDepth = s.Config.TopologyMaxDepth
	}

	type queueItem struct {
		panelID uint
		depth   int
		hops    []TopologyHop
	}

	visited := map[uint]bool{panelID: true}
	queue := []queueItem{{panelID: panelID, depth: 0}}
	var paths []TopologyPath

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if item.depth >= maxDepth {
			continue
		}

		members, err := s.Redis.SMembers(s.Ctx, adjKey(item.panelID)).Result()
		if err != nil {
			return nil, err
		}

		for _, member := range members {
			peerID, cableID, ok := parseAdjMember(member)
			if !ok || visited[peerID] {
				continue
			}
			visited[peerID] = true

			hops := make([]TopologyHop, len(item.hops), len(item.hops)+1)
			copy(hops, item.hops)
			hops = append(hops, TopologyHop{
				FromPanelID: item.panelID,
				CableID:     cableID,
				ToPanelID:   peerID,
			})

			// 面板节点可能尚未投影，redis.Nil时名称留空
			name, err := s.Redis.HGet(s.Ctx, panelKey(peerID), "name").Result()
			if err != nil && err != redis.Nil {
				return nil, err
			}
			paths = append(paths, TopologyPath{
				PanelID:   peerID,
				PanelName: name,
				Depth:     item.depth + 1,
				Hops:      hops,
			})
			queue = append(queue, queueItem{panelID: peerID, depth: item.depth + 1, hops: hops})
		}
	}
	return paths, nil
}
