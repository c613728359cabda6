package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"dcim-asset-service/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// 主题常量
const (
	// 拓扑变更通知主题
	TopicTopologyChanged = "dcim/topology/changed"

	// 打印批次通知主题
	TopicPrintBatch = "dcim/labels/batch"
)

// MQTTMessage MQTT消息基础结构
type MQTTMessage struct {
	Type      string         `json:"type"`
	Timestamp int64          `json:"timestamp"`
	Payload   map[string]any `json:"payload"`
}

// InterfaceMQTTEventService 定义MQTT事件通知服务接口
type InterfaceMQTTEventService interface {
	Connect() error
	Disconnect()
	PublishTopologyChange(changeType string, cableID uint) error
	PublishPrintBatchCreated(batchID uint, name string, count int) error
}

// MQTTEventService 向消息总线发布资产事件（尽力而为）。
// 未配置broker时服务处于禁用状态，所有发布调用直接返回。
type MQTTEventService struct {
	Config         *config.Config
	Client         mqtt.Client
	IsConnected    bool
	connectedMutex sync.RWMutex // 保护IsConnected字段的读写
	PublishMutex   sync.Mutex   // 用于保护MQTT消息发布
}

// NewMQTTEventService 创建一个新的MQTT事件服务
func NewMQTTEventService(cfg *config.Config) InterfaceMQTTEventService {
	return &MQTTEventService{
		Config: cfg,
	}
}

// Connect 连接MQTT服务器。broker未配置时静默禁用。
func (s *MQTTEventService) Connect() error {
	if s.Config.MQTTBroker == "" {
		config.Info("未配置MQTT broker，事件通知已禁用")
		return nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(s.Config.MQTTBroker).
		SetClientID(s.Config.MQTTClientID).
		SetUsername(s.Config.MQTTUsername).
		SetPassword(s.Config.MQTTPassword).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)

	opts.OnConnect = func(client mqtt.Client) {
		s.connectedMutex.Lock()
		s.IsConnected = true
		s.connectedMutex.Unlock()
		config.Info("MQTT已连接: %s", s.Config.MQTTBroker)
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		s.connectedMutex.Lock()
		s.IsConnected = false
		s.connectedMutex.Unlock()
		config.Warning("MQTT连接断开: %v", err)
	}

	s.Client = mqtt.NewClient(opts)
	token := s.Client.Connect()
	if ok := token.WaitTimeout(5 * time.Second); !ok || token.Error() != nil {
		return fmt.Errorf("连接MQTT服务器失败: %v", token.Error())
	}
	return nil
}

// Disconnect 断开MQTT连接
func (s *MQTTEventService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
	s.connectedMutex.Lock()
	s.IsConnected = false
	s.connectedMutex.Unlock()
}

func (s *MQTTEventService) publish(topic string, message MQTTMessage) error {
	s.connectedMutex.RLock()
	connected := s.IsConnected
	s.connectedMutex.RUnlock()
	if s.Client == nil || !connected {
		// 禁用或未连接：尽力而为，不视为错误
		return nil
	}

	raw, err := json.Marshal(message)
	if err != nil {
		return err
	}

	s.PublishMutex.Lock()
	defer s.PublishMutex.Unlock()
	token := s.Client.Publish(topic, 1, false, raw)
	if ok := token.WaitTimeout(3 * time.Second); !ok || token.Error() != nil {
		return fmt.Errorf("发布到 %s 失败: %v", topic, token.Error())
	}
	return nil
}

// PublishTopologyChange 发布拓扑变更通知（接通/拆除）
func (s *MQTTEventService) PublishTopologyChange(changeType string, cableID uint) error {
	return s.publish(TopicTopologyChanged, MQTTMessage{
		Type:      changeType,
		Timestamp: time.Now().Unix(),
		Payload: map[string]any{
			"cable_id": cableID,
		},
	})
}

// PublishPrintBatchCreated 发布打印批次创建通知
func (s *MQTTEventService) PublishPrintBatchCreated(batchID uint, name string, count int) error {
	return s.publish(TopicPrintBatch, MQTTMessage{
		Type:      "created",
		Timestamp: time.Now().Unix(),
		Payload: map[string]any{
			"batch_id": batchID,
			"name":     name,
			"count":    count,
		},
	})
}
