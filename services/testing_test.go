package services

import (
	"fmt"
	"strings"
	"testing"

	"dcim-asset-service/config"
	"dcim-asset-service/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestConfig 返回测试用配置
func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:            "test_secret_key",
		DefaultOperatorPassword: "admin123",
		IdentifierBatchMax:      10000,
		LabelPrefix:             "DC",
		LabelWidth:              8,
		TopologyMaxDepth:        8,
	}
}

// newTestDB 创建内存数据库并迁移全部表。
// 每个测试使用独立的命名内存库，互不串数据。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Identifier{},
		&models.IdentifierSequence{},
		&models.PrintBatch{},
		&models.Room{},
		&models.Cabinet{},
		&models.Device{},
		&models.Panel{},
		&models.Port{},
		&models.TransceiverModule{},
		&models.Cable{},
		&models.CableEndpoint{},
		&models.TopologyEvent{},
		&models.Operator{},
	)
	require.NoError(t, err)
	return db
}

// newTestRedis 启动内嵌Redis并返回客户端
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

// connectionFixture 连接引擎测试夹具：两块面板各两个RJ45端口
type connectionFixture struct {
	db          *gorm.DB
	cfg         *config.Config
	redis       *redis.Client
	identifiers InterfaceIdentifierService
	topology    InterfaceTopologyService
	conns       InterfaceConnectionService

	panelA models.Panel
	panelB models.Panel
	portA1 models.Port
	portA2 models.Port
	portB1 models.Port
	portB2 models.Port
}

func newConnectionFixture(t *testing.T) *connectionFixture {
	t.Helper()

	f := &connectionFixture{
		db:    newTestDB(t),
		cfg:   newTestConfig(),
		redis: newTestRedis(t),
	}
	f.identifiers = NewIdentifierService(f.db, f.cfg)
	f.topology = NewTopologyService(f.db, f.cfg, f.redis)
	f.conns = NewConnectionService(f.db, f.cfg, f.identifiers, f.topology, NewMQTTEventService(f.cfg))

	room := models.Room{Name: "机房A", Site: "总部", Floor: "3"}
	require.NoError(t, f.db.Create(&room).Error)
	cabinet := models.Cabinet{RoomID: room.ID, Name: "A-01", HeightU: 42}
	require.NoError(t, f.db.Create(&cabinet).Error)

	f.panelA = models.Panel{CabinetID: cabinet.ID, Name: "配线架A", Type: models.PanelTypePatch}
	require.NoError(t, f.db.Create(&f.panelA).Error)
	f.panelB = models.Panel{CabinetID: cabinet.ID, Name: "配线架B", Type: models.PanelTypePatch}
	require.NoError(t, f.db.Create(&f.panelB).Error)

	ports := []*models.Port{&f.portA1, &f.portA2, &f.portB1, &f.portB2}
	panels := []uint{f.panelA.ID, f.panelA.ID, f.panelB.ID, f.panelB.ID}
	numbers := []int{1, 2, 1, 2}
	for i, p := range ports {
		*p = models.Port{
			PanelID:    panels[i],
			Number:     numbers[i],
			Status:     models.PortStatusAvailable,
			LinkStatus: models.PortLinkDisconnected,
			Connector:  models.ConnectorRJ45,
		}
		require.NoError(t, f.db.Create(p).Error)
	}
	return f
}

// countTopologyEvents 统计outbox事件数量
func countTopologyEvents(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.TopologyEvent{}).Count(&n).Error)
	return n
}

// loadIdentifierByValue 按数值读取标识符记录
func loadIdentifierByValue(t *testing.T, db *gorm.DB, value int64) models.Identifier {
	t.Helper()
	var identifier models.Identifier
	require.NoError(t, db.Where("value = ?", value).First(&identifier).Error)
	return identifier
}
