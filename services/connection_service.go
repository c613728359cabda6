package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"dcim-asset-service/config"
	"dcim-asset-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InterfaceConnectionService 定义线缆连接引擎接口。
// 这是唯一允许同时修改端口/线缆/端点记录及其拓扑镜像的组件。
type InterfaceConnectionService interface {
	CreateFullConnection(portAID, portBID uint, attrs CableAttributes, endpointValueA, endpointValueB int64) (*models.Cable, error)
	ConnectSingleEnd(portID uint, endpointValue int64, attrs *CableAttributes) (*models.Cable, error)
	DeleteConnection(cableID uint) error
	GetPortConnection(portID uint) (*PortConnection, error)
	GetNetworkTopology(panelID uint, maxDepth int) ([]TopologyPath, error)
}

// CableAttributes 创建/合并线缆时可提供的属性。
// 合并是非破坏性的：只覆盖显式提供的字段。
type CableAttributes struct {
	Type    models.CableType `json:"type,omitempty"`
	Label   string           `json:"label,omitempty"`
	Color   string           `json:"color,omitempty"`
	Notes   string           `json:"notes,omitempty"`
	LengthM *float64         `json:"length_m,omitempty"`
}

// PortConnection "这个端口的线接到了哪里"的查询结果。
// 一跳查询，直接从关系库回答，不经过拓扑镜像。
type PortConnection struct {
	Cable         *models.Cable         `json:"cable"`
	ThisEndpoint  *models.CableEndpoint `json:"this_endpoint"`
	OtherEndpoint *models.CableEndpoint `json:"other_endpoint,omitempty"` // 空表示对端未插
	ConnectedPort *models.Port          `json:"connected_port,omitempty"` // 含面板/机柜/机房定位上下文
}

// ConnectionService 线缆连接引擎
type ConnectionService struct {
	DB          *gorm.DB
	Config      *config.Config
	Identifiers InterfaceIdentifierService
	Topology    InterfaceTopologyService
	Events      InterfaceMQTTEventService
}

// NewConnectionService 创建一个新的连接引擎
func NewConnectionService(db *gorm.DB, cfg *config.Config,
	identifiers InterfaceIdentifierService,
	topology InterfaceTopologyService,
	events InterfaceMQTTEventService) InterfaceConnectionService {
	return &ConnectionService{
		DB:          db,
		Config:      cfg,
		Identifiers: identifiers,
		Topology:    topology,
		Events:      events,
	}
}

// loadPortTx 加载端口及兼容性校验所需的关联
func (s *ConnectionService) loadPortTx(tx *gorm.DB, portID uint) (*models.Port, error) {
	var port models.Port
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Module").Preload("Panel").
		First(&port, portID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("端口 %d: %w", portID, ErrPortNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &port, nil
}

// checkIdentifierUsableTx 校验指定数值的标识符可用于新的端点绑定。
// 不存在视为可用（分配时会现场补建）。
func (s *ConnectionService) checkIdentifierUsableTx(tx *gorm.DB, value int64) error {
	var identifier models.Identifier
	err := tx.Where("value = ?", value).First(&identifier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	switch identifier.State {
	case models.IdentifierStateBound:
		return fmt.Errorf("标识符 %d: %w", value, ErrIdentifierBound)
	case models.IdentifierStateCancelled:
		return fmt.Errorf("标识符 %d: %w", value, ErrIdentifierCancelled)
	}
	return nil
}

// occupyPortTx 端口转为占用/已连接
func (s *ConnectionService) occupyPortTx(tx *gorm.DB, portID uint) error {
	return tx.Model(&models.Port{}).Where("id = ?", portID).Updates(map[string]interface{}{
		"status":      models.PortStatusOccupied,
		"link_status": models.PortLinkConnected,
	}).Error
}

// createEndpointTx 创建端点并为其分配标识符。
// 端点标识符与端点永久绑定，改插端口不换标签。
func (s *ConnectionService) createEndpointTx(tx *gorm.DB, cableID uint, end models.EndDesignation, portID *uint, specified *int64) (*models.CableEndpoint, error) {
	identifier, err := s.Identifiers.AllocateTx(tx, models.EntityKindCableEndpoint, 0, specified)
	if err != nil {
		return nil, err
	}

	endpoint := models.CableEndpoint{
		CableID:      cableID,
		End:          end,
		IdentifierID: identifier.ID,
		PortID:       portID,
	}
	if err := tx.Create(&endpoint).Error; err != nil {
		return nil, err
	}

	// 回填绑定目标
	if err := tx.Model(&models.Identifier{}).Where("id = ?", identifier.ID).
		Update("entity_id", endpoint.ID).Error; err != nil {
		return nil, err
	}
	endpoint.Identifier = identifier
	return &endpoint, nil
}

// mergeCableAttrsTx 非破坏性合并线缆属性：只覆盖显式提供的字段
func (s *ConnectionService) mergeCableAttrsTx(tx *gorm.DB, cableID uint, attrs *CableAttributes) error {
	if attrs == nil {
		return nil
	}
	updates := map[string]interface{}{}
	if attrs.Type != "" {
		updates["type"] = attrs.Type
	}
	if attrs.Label != "" {
		updates["label"] = attrs.Label
	}
	if attrs.Color != "" {
		updates["color"] = attrs.Color
	}
	if attrs.Notes != "" {
		updates["notes"] = attrs.Notes
	}
	if attrs.LengthM != nil {
		updates["length_m"] = *attrs.LengthM
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&models.Cable{}).Where("id = ?", cableID).Updates(updates).Error
}

// appendEdgeUpsertTx 向outbox追加edge_upsert事件（与关系写入同事务）
func (s *ConnectionService) appendEdgeUpsertTx(tx *gorm.DB, cableID uint) error {
	var cable models.Cable
	if err := tx.Preload("Endpoints.Port.Panel").First(&cable, cableID).Error; err != nil {
		return err
	}
	epA := cable.EndpointByEnd(models.EndA)
	epB := cable.EndpointByEnd(models.EndB)
	if epA == nil || epB == nil || epA.Port == nil || epB.Port == nil {
		return ErrCableEndConflict
	}

	payload := models.EdgeUpsertPayload{
		CableID:    cable.ID,
		CableType:  string(cable.Type),
		CableColor: cable.Color,
		CableLabel: cable.Label,
		PortAID:    epA.Port.ID,
		PortALabel: epA.Port.Label,
		PortBID:    epB.Port.ID,
		PortBLabel: epB.Port.Label,
		PanelAID:   epA.Port.PanelID,
		PanelBID:   epB.Port.PanelID,
	}
	if epA.Port.Panel != nil {
		payload.PanelAName = epA.Port.Panel.Name
	}
	if epB.Port.Panel != nil {
		payload.PanelBName = epB.Port.Panel.Name
	}
	return s.appendEventTx(tx, models.TopologyEventEdgeUpsert, payload)
}

func (s *ConnectionService) appendEventTx(tx *gorm.DB, eventType models.TopologyEventType, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := models.TopologyEvent{
		EventID: uuid.New().String(),
		Type:    eventType,
		Payload: string(raw),
		Status:  models.TopologyEventPending,
	}
	return tx.Create(&event).Error
}

// syncMirror 提交后尽力投影镜像。失败只记为一致性警告：
// 关系库仍是权威，事件保留pending等待下次投影修复。
func (s *ConnectionService) syncMirror() {
	if s.Topology == nil {
		return
	}
	if _, err := s.Topology.SyncPending(); err != nil {
		config.Warning("拓扑镜像同步失败，事件保留待重试: %v", err)
	}
}

func (s *ConnectionService) notifyTopologyChanged(changeType string, cableID uint) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishTopologyChange(changeType, cableID); err != nil {
		config.Warning("拓扑变更通知发布失败: %v", err)
	}
}

// 1 CreateFullConnection 一次接通两端。所有校验在任何写入前完成，
// 校验失败时不产生任何变更；写入阶段在单事务内，不存在部分生效。
func (s *ConnectionService) CreateFullConnection(portAID, portBID uint, attrs CableAttributes, endpointValueA, endpointValueB int64) (*models.Cable, error) {
	if portAID == portBID {
		return nil, fmt.Errorf("两端不能是同一端口: %w", ErrPortUnavailable)
	}
	if endpointValueA == endpointValueB {
		return nil, fmt.Errorf("两端不能使用同一标识符: %w", ErrIdentifierBound)
	}

	var cableID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		portA, err := s.loadPortTx(tx, portAID)
		if err != nil {
			return err
		}
		portB, err := s.loadPortTx(tx, portBID)
		if err != nil {
			return err
		}

		if portA.Status != models.PortStatusAvailable {
			return fmt.Errorf("端口 %d 状态为 %s: %w", portA.ID, portA.Status, ErrPortUnavailable)
		}
		if portB.Status != models.PortStatusAvailable {
			return fmt.Errorf("端口 %d 状态为 %s: %w", portB.ID, portB.Status, ErrPortUnavailable)
		}

		if err := s.checkIdentifierUsableTx(tx, endpointValueA); err != nil {
			return err
		}
		if err := s.checkIdentifierUsableTx(tx, endpointValueB); err != nil {
			return err
		}

		cableType := attrs.Type
		if cableType == "" {
			cableType = InferDefaultCableType(portA.Connector)
		}
		if err := ValidateCableCompatibility(cableType, portA); err != nil {
			return err
		}
		if err := ValidateCableCompatibility(cableType, portB); err != nil {
			return err
		}

		// 校验全部通过，开始写入
		cable := models.Cable{
			Type:   cableType,
			Label:  attrs.Label,
			Color:  attrs.Color,
			Notes:  attrs.Notes,
			Status: models.CableStatusInUse,
		}
		if attrs.LengthM != nil {
			cable.LengthM = attrs.LengthM
		}
		if err := tx.Create(&cable).Error; err != nil {
			return err
		}
		cableID = cable.ID

		if _, err := s.createEndpointTx(tx, cable.ID, models.EndA, &portAID, &endpointValueA); err != nil {
			return err
		}
		if _, err := s.createEndpointTx(tx, cable.ID, models.EndB, &portBID, &endpointValueB); err != nil {
			return err
		}

		if err := s.occupyPortTx(tx, portAID); err != nil {
			return err
		}
		if err := s.occupyPortTx(tx, portBID); err != nil {
			return err
		}

		return s.appendEdgeUpsertTx(tx, cable.ID)
	})
	if err != nil {
		return nil, err
	}

	s.syncMirror()
	s.notifyTopologyChanged("connected", cableID)
	return s.getCable(cableID)
}

// 2 ConnectSingleEnd 逐端接线的现场工作流。
// 标识符已属于某个端点时接它（或它的对端）；全新标识符则建新线缆。
func (s *ConnectionService) ConnectSingleEnd(portID uint, endpointValue int64, attrs *CableAttributes) (*models.Cable, error) {
	var cableID uint
	var edgeWritten bool

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		port, err := s.loadPortTx(tx, portID)
		if err != nil {
			return err
		}

		var identifier models.Identifier
		ierr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("value = ?", endpointValue).First(&identifier).Error

		if ierr == nil && identifier.State == models.IdentifierStateCancelled {
			return fmt.Errorf("标识符 %d: %w", endpointValue, ErrIdentifierCancelled)
		}

		if ierr == nil && identifier.State == models.IdentifierStateBound {
			if identifier.EntityKind == nil || *identifier.EntityKind != models.EntityKindCableEndpoint {
				return fmt.Errorf("标识符 %d: %w", endpointValue, ErrIdentifierBound)
			}
			written, cerr := s.connectExistingEndpointTx(tx, port, &identifier, attrs, &cableID)
			edgeWritten = written
			return cerr
		}

		if ierr != nil && !errors.Is(ierr, gorm.ErrRecordNotFound) {
			return ierr
		}

		// 全新（或未绑定的）标识符：只知道一端，建库存线缆
		return s.connectNewCableTx(tx, port, endpointValue, attrs, &cableID)
	})
	if err != nil {
		return nil, err
	}

	if edgeWritten {
		s.syncMirror()
		s.notifyTopologyChanged("connected", cableID)
	}
	return s.getCable(cableID)
}

// connectExistingEndpointTx 标识符已属于某端点：接该端点或其对端
func (s *ConnectionService) connectExistingEndpointTx(tx *gorm.DB, port *models.Port, identifier *models.Identifier, attrs *CableAttributes, cableID *uint) (edgeWritten bool, err error) {
	var scanned models.CableEndpoint
	if err := tx.Where("identifier_id = ?", identifier.ID).First(&scanned).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 标识符声称绑定端点但端点不存在
			return false, ErrCableEndConflict
		}
		return false, err
	}

	var cable models.Cable
	if err := tx.Preload("Endpoints").First(&cable, scanned.CableID).Error; err != nil {
		return false, err
	}
	*cableID = cable.ID

	// 幂等：该线缆任一端已插在目标端口上 → 只合并属性，不产生新端点
	for i := range cable.Endpoints {
		if cable.Endpoints[i].PortID != nil && *cable.Endpoints[i].PortID == port.ID {
			return false, s.mergeCableAttrsTx(tx, cable.ID, attrs)
		}
	}

	if port.Status != models.PortStatusAvailable {
		return false, fmt.Errorf("端口 %d 状态为 %s: %w", port.ID, port.Status, ErrPortUnavailable)
	}

	effectiveType := cable.Type
	if attrs != nil && attrs.Type != "" {
		effectiveType = attrs.Type
	}
	if err := ValidateCableCompatibility(effectiveType, port); err != nil {
		return false, err
	}

	// 选择要接的端点：扫到的端未插就接它；已插则这次扫码指向对端
	scannedInCable := cable.EndpointByEnd(scanned.End)
	if scannedInCable == nil {
		return false, ErrCableEndConflict
	}

	var target *models.CableEndpoint
	if scannedInCable.PortID == nil {
		target = scannedInCable
	} else {
		otherEnd := models.EndB
		if scanned.End == models.EndB {
			otherEnd = models.EndA
		}
		sibling := cable.EndpointByEnd(otherEnd)
		switch {
		case sibling == nil:
			// 对端端点尚未登记：补建并分配它自己的标签
			created, cerr := s.createEndpointTx(tx, cable.ID, otherEnd, nil, nil)
			if cerr != nil {
				return false, cerr
			}
			target = created
		case sibling.PortID == nil:
			target = sibling
		default:
			return false, fmt.Errorf("线缆 %d: %w", cable.ID, ErrCableFullyConnected)
		}
	}

	if err := tx.Model(&models.CableEndpoint{}).Where("id = ?", target.ID).
		Update("port_id", port.ID).Error; err != nil {
		return false, err
	}
	if err := s.occupyPortTx(tx, port.ID); err != nil {
		return false, err
	}
	if err := s.mergeCableAttrsTx(tx, cable.ID, attrs); err != nil {
		return false, err
	}

	// 两端都在位则晋升为in_use并写入拓扑边
	var connected int64
	if err := tx.Model(&models.CableEndpoint{}).
		Where("cable_id = ? AND port_id IS NOT NULL", cable.ID).
		Count(&connected).Error; err != nil {
		return false, err
	}
	if connected >= 2 {
		if err := tx.Model(&models.Cable{}).Where("id = ?", cable.ID).
			Update("status", models.CableStatusInUse).Error; err != nil {
			return false, err
		}
		if err := s.appendEdgeUpsertTx(tx, cable.ID); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// connectNewCableTx 全新标识符：建库存线缆，只登记A端。
// 拓扑还不构成完整路径，不写边。
func (s *ConnectionService) connectNewCableTx(tx *gorm.DB, port *models.Port, endpointValue int64, attrs *CableAttributes, cableID *uint) error {
	if port.Status != models.PortStatusAvailable {
		return fmt.Errorf("端口 %d 状态为 %s: %w", port.ID, port.Status, ErrPortUnavailable)
	}

	var cableType models.CableType
	if attrs != nil && attrs.Type != "" {
		cableType = attrs.Type
	} else {
		cableType = InferDefaultCableType(port.Connector)
	}
	if err := ValidateCableCompatibility(cableType, port); err != nil {
		return err
	}

	cable := models.Cable{
		Type:   cableType,
		Status: models.CableStatusInventoried,
	}
	if attrs != nil {
		cable.Label = attrs.Label
		cable.Color = attrs.Color
		cable.Notes = attrs.Notes
		cable.LengthM = attrs.LengthM
	}
	if err := tx.Create(&cable).Error; err != nil {
		return err
	}
	*cableID = cable.ID

	portIDCopy := port.ID
	if _, err := s.createEndpointTx(tx, cable.ID, models.EndA, &portIDCopy, &endpointValue); err != nil {
		return err
	}
	return s.occupyPortTx(tx, port.ID)
}

// 3 DeleteConnection 拆除线缆：释放端点标识符、移除拓扑边、删除线缆记录。
// 端口状态不在此处回改——释放端口是显式的确认动作（见PortService.FreePort）。
func (s *ConnectionService) DeleteConnection(cableID uint) error {
	var hadEdge bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var cable models.Cable
		err := tx.Preload("Endpoints.Port").First(&cable, cableID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("线缆 %d: %w", cableID, ErrCableNotFound)
		}
		if err != nil {
			return err
		}

		for i := range cable.Endpoints {
			rerr := s.Identifiers.ReleaseByIDTx(tx, cable.Endpoints[i].IdentifierID)
			if rerr != nil && !errors.Is(rerr, ErrIdentifierNotBound) {
				return rerr
			}
		}

		epA := cable.EndpointByEnd(models.EndA)
		epB := cable.EndpointByEnd(models.EndB)
		if epA != nil && epB != nil && epA.Port != nil && epB.Port != nil {
			hadEdge = true
			payload := models.EdgeDeletePayload{
				CableID:  cable.ID,
				PortAID:  epA.Port.ID,
				PortBID:  epB.Port.ID,
				PanelAID: epA.Port.PanelID,
				PanelBID: epB.Port.PanelID,
			}
			if err := s.appendEventTx(tx, models.TopologyEventEdgeDelete, payload); err != nil {
				return err
			}
		}

		if err := tx.Where("cable_id = ?", cable.ID).Delete(&models.CableEndpoint{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cable).Error
	})
	if err != nil {
		return err
	}

	if hadEdge {
		s.syncMirror()
		s.notifyTopologyChanged("disconnected", cableID)
	}
	return nil
}

// 4 GetPortConnection 查询端口对端：线缆、两侧端点、对端端口及其完整定位。
// 一跳查询，关系库直接回答，不依赖拓扑镜像。
func (s *ConnectionService) GetPortConnection(portID uint) (*PortConnection, error) {
	var port models.Port
	if err := s.DB.First(&port, portID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("端口 %d: %w", portID, ErrPortNotFound)
		}
		return nil, err
	}

	var endpoint models.CableEndpoint
	err := s.DB.Preload("Identifier").Where("port_id = ?", portID).First(&endpoint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("端口 %d: %w", portID, ErrPortNotConnected)
	}
	if err != nil {
		return nil, err
	}

	var cable models.Cable
	if err := s.DB.Preload("Endpoints.Identifier").First(&cable, endpoint.CableID).Error; err != nil {
		return nil, err
	}

	result := &PortConnection{
		Cable:        &cable,
		ThisEndpoint: &endpoint,
	}

	for i := range cable.Endpoints {
		other := &cable.Endpoints[i]
		if other.ID == endpoint.ID {
			continue
		}
		result.OtherEndpoint = other
		if other.PortID != nil {
			var farPort models.Port
			if err := s.DB.
				Preload("Panel.Cabinet.Room").
				Preload("Panel.Device").
				Preload("Module").
				First(&farPort, *other.PortID).Error; err != nil {
				return nil, err
			}
			result.ConnectedPort = &farPort
		}
		break
	}
	return result, nil
}

// 5 GetNetworkTopology 从面板出发查询maxDepth跳内可达的面板。
// 唯一走拓扑镜像的读路径；读取方需容忍镜像的短暂滞后。
func (s *ConnectionService) GetNetworkTopology(panelID uint, maxDepth int) ([]TopologyPath, error) {
	var panel models.Panel
	if err := s.DB.First(&panel, panelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("面板 %d: %w", panelID, gorm.ErrRecordNotFound)
		}
		return nil, err
	}
	return s.Topology.QueryReachablePanels(panelID, maxDepth)
}

func (s *ConnectionService) getCable(cableID uint) (*models.Cable, error) {
	var cable models.Cable
	if err := s.DB.Preload("Endpoints.Identifier").Preload("Endpoints.Port").
		First(&cable, cableID).Error; err != nil {
		return nil, err
	}
	return &cable, nil
}
