package services

import (
	"database/sql"
	"errors"
	"time"

	"dcim-asset-service/config"
	"dcim-asset-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InterfaceIdentifierService 定义标识符池服务接口
type InterfaceIdentifierService interface {
	GenerateBatch(count int, note string) ([]models.Identifier, error)
	CreatePrintBatch(name string, count int, requester, notes string) (*models.PrintBatch, []models.Identifier, error)
	CompletePrintBatch(batchID uint, fileRef string) error
	GetPrintBatch(batchID uint) (*models.PrintBatch, error)
	GetAllPrintBatches() ([]models.PrintBatch, error)
	Allocate(kind models.EntityKind, entityID uint, specified *int64) (*models.Identifier, error)
	AllocateTx(tx *gorm.DB, kind models.EntityKind, entityID uint, specified *int64) (*models.Identifier, error)
	Release(value int64) error
	ReleaseByIDTx(tx *gorm.DB, identifierID uint) error
	Cancel(value int64, reason string) error
	BulkCancel(values []int64, reason string, force bool) (int, error)
	Resolve(value int64) (*IdentifierResolution, error)
}

// IdentifierResolution 标识符解析结果，供扫码导航与连接引擎校验使用
type IdentifierResolution struct {
	Exists     bool                   `json:"exists"`
	Value      int64                  `json:"value"`
	State      models.IdentifierState `json:"state,omitempty"`
	EntityKind *models.EntityKind     `json:"entity_kind,omitempty"`
	EntityID   *uint                  `json:"entity_id,omitempty"`
}

// IdentifierService 管理全局标识符池。所有资产类型共用一个整数命名空间，
// 取号通过单调序列完成，序列行在事务内加锁，并发分配要么排队要么重试，
// 不会看到过期的最大值。
type IdentifierService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewIdentifierService 创建一个新的标识符池服务
func NewIdentifierService(db *gorm.DB, cfg *config.Config) InterfaceIdentifierService {
	return &IdentifierService{
		DB:     db,
		Config: cfg,
	}
}

// reserveValuesTx 在事务内锁定序列行并预留count个连续数值，返回起始值。
// 序列行不存在时做一次性播种：扫描池表当前最大值，从max+1开始。
func (s *IdentifierService) reserveValuesTx(tx *gorm.DB, count int64) (int64, error) {
	var seq models.IdentifierSequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 一次性播种：本实现中所有资产都经由池表取号，
		// 池表最大值即全局最大值
		var maxValue sql.NullInt64
		row := tx.Model(&models.Identifier{}).Select("MAX(value)").Row()
		if err := row.Scan(&maxValue); err != nil {
			return 0, err
		}
		next := int64(1)
		if maxValue.Valid {
			next = maxValue.Int64 + 1
		}
		seq = models.IdentifierSequence{NextValue: next + count}
		if err := tx.Create(&seq).Error; err != nil {
			return 0, err
		}
		return next, nil
	}
	if err != nil {
		return 0, err
	}

	start := seq.NextValue
	seq.NextValue += count
	if err := tx.Save(&seq).Error; err != nil {
		return 0, err
	}
	return start, nil
}

// advanceSequenceTx 确保序列严格大于value，防止手工指定的高位数值被后续取号撞上
func (s *IdentifierService) advanceSequenceTx(tx *gorm.DB, value int64) error {
	var seq models.IdentifierSequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = models.IdentifierSequence{NextValue: value + 1}
		return tx.Create(&seq).Error
	}
	if err != nil {
		return err
	}
	if seq.NextValue <= value {
		seq.NextValue = value + 1
		return tx.Save(&seq).Error
	}
	return nil
}

// 1 GenerateBatch 批量生成标识符，全部处于generated状态
func (s *IdentifierService) GenerateBatch(count int, note string) ([]models.Identifier, error) {
	if count <= 0 || count > s.Config.IdentifierBatchMax {
		return nil, ErrInvalidBatchCount
	}

	var identifiers []models.Identifier
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		identifiers, err = s.generateBatchTx(tx, count, note)
		return err
	})
	if err != nil {
		return nil, err
	}
	return identifiers, nil
}

func (s *IdentifierService) generateBatchTx(tx *gorm.DB, count int, note string) ([]models.Identifier, error) {
	start, err := s.reserveValuesTx(tx, int64(count))
	if err != nil {
		return nil, err
	}

	identifiers := make([]models.Identifier, count)
	for i := 0; i < count; i++ {
		identifiers[i] = models.Identifier{
			Value: start + int64(i),
			State: models.IdentifierStateGenerated,
			Note:  note,
		}
	}
	if err := tx.Create(&identifiers).Error; err != nil {
		return nil, err
	}
	return identifiers, nil
}

// 2 CreatePrintBatch 创建打印批次：生成标识符并转为printed状态。
// generated → printed 只发生在这条路径上。
func (s *IdentifierService) CreatePrintBatch(name string, count int, requester, notes string) (*models.PrintBatch, []models.Identifier, error) {
	if count <= 0 || count > s.Config.IdentifierBatchMax {
		return nil, nil, ErrInvalidBatchCount
	}

	var batch models.PrintBatch
	var identifiers []models.Identifier

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		batch = models.PrintBatch{
			Name:           name,
			RequestedCount: count,
			Status:         models.PrintBatchStatusPending,
			Requester:      requester,
			Notes:          notes,
		}
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}

		var err error
		identifiers, err = s.generateBatchTx(tx, count, name)
		if err != nil {
			return err
		}

		now := time.Now()
		ids := make([]uint, len(identifiers))
		for i := range identifiers {
			ids[i] = identifiers[i].ID
			identifiers[i].State = models.IdentifierStatePrinted
			identifiers[i].PrintBatchID = &batch.ID
			identifiers[i].PrintedAt = &now
		}
		return tx.Model(&models.Identifier{}).Where("id IN ?", ids).Updates(map[string]interface{}{
			"state":          models.IdentifierStatePrinted,
			"print_batch_id": batch.ID,
			"printed_at":     now,
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &batch, identifiers, nil
}

// 3 CompletePrintBatch 标签产出后将批次标记为完成
func (s *IdentifierService) CompletePrintBatch(batchID uint, fileRef string) error {
	var batch models.PrintBatch
	if err := s.DB.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPrintBatchNotFound
		}
		return err
	}

	now := time.Now()
	return s.DB.Model(&batch).Updates(map[string]interface{}{
		"status":       models.PrintBatchStatusCompleted,
		"file_ref":     fileRef,
		"completed_at": now,
	}).Error
}

// 4 GetPrintBatch 获取打印批次及其标识符
func (s *IdentifierService) GetPrintBatch(batchID uint) (*models.PrintBatch, error) {
	var batch models.PrintBatch
	if err := s.DB.Preload("Identifiers", func(db *gorm.DB) *gorm.DB {
		return db.Order("value ASC")
	}).First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrintBatchNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// 5 GetAllPrintBatches 获取打印批次列表
func (s *IdentifierService) GetAllPrintBatches() ([]models.PrintBatch, error) {
	var batches []models.PrintBatch
	if err := s.DB.Order("created_at DESC").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// 6 Allocate 分配标识符并绑定到资产。specified非空表示操作员扫了预打印标签。
func (s *IdentifierService) Allocate(kind models.EntityKind, entityID uint, specified *int64) (*models.Identifier, error) {
	var identifier *models.Identifier
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		identifier, err = s.AllocateTx(tx, kind, entityID, specified)
		return err
	})
	if err != nil {
		return nil, err
	}
	return identifier, nil
}

// AllocateTx 在给定事务内分配并绑定标识符。查找/创建与绑定在同一事务内完成，
// 两个并发调用方不可能选中同一个数值。
func (s *IdentifierService) AllocateTx(tx *gorm.DB, kind models.EntityKind, entityID uint, specified *int64) (*models.Identifier, error) {
	var identifier models.Identifier

	if specified != nil {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("value = ?", *specified).First(&identifier).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 体系外打印的存量标签：现场补建池记录
			identifier = models.Identifier{
				Value: *specified,
				State: models.IdentifierStateGenerated,
			}
			if err := tx.Create(&identifier).Error; err != nil {
				return nil, err
			}
			if err := s.advanceSequenceTx(tx, *specified); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		case identifier.State == models.IdentifierStateBound:
			return nil, ErrIdentifierBound
		case identifier.State == models.IdentifierStateCancelled:
			return nil, ErrIdentifierCancelled
		}
	} else {
		// 取当前可用的最小数值；没有就续号新建
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("state IN ?", []models.IdentifierState{
				models.IdentifierStateGenerated,
				models.IdentifierStatePrinted,
			}).
			Order("value ASC").First(&identifier).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			value, rerr := s.reserveValuesTx(tx, 1)
			if rerr != nil {
				return nil, rerr
			}
			identifier = models.Identifier{
				Value: value,
				State: models.IdentifierStateGenerated,
			}
			if cerr := tx.Create(&identifier).Error; cerr != nil {
				return nil, cerr
			}
		} else if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	identifier.State = models.IdentifierStateBound
	identifier.EntityKind = &kind
	identifier.EntityID = &entityID
	identifier.BoundAt = &now
	if err := tx.Model(&models.Identifier{}).Where("id = ?", identifier.ID).Updates(map[string]interface{}{
		"state":       models.IdentifierStateBound,
		"entity_kind": kind,
		"entity_id":   entityID,
		"bound_at":    now,
	}).Error; err != nil {
		return nil, err
	}
	return &identifier, nil
}

// 7 Release 释放绑定：bound → generated，清空绑定字段。
// 物理标签不回收，数值可被再次分配。
func (s *IdentifierService) Release(value int64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var identifier models.Identifier
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("value = ?", value).First(&identifier).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIdentifierNotFound
		}
		if err != nil {
			return err
		}
		if identifier.State != models.IdentifierStateBound {
			return ErrIdentifierNotBound
		}
		return s.clearBindingTx(tx, identifier.ID)
	})
}

// ReleaseByIDTx 在给定事务内按记录ID释放绑定，供连接引擎拆线时使用
func (s *IdentifierService) ReleaseByIDTx(tx *gorm.DB, identifierID uint) error {
	var identifier models.Identifier
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&identifier, identifierID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrIdentifierNotFound
	}
	if err != nil {
		return err
	}
	if identifier.State != models.IdentifierStateBound {
		return ErrIdentifierNotBound
	}
	return s.clearBindingTx(tx, identifier.ID)
}

func (s *IdentifierService) clearBindingTx(tx *gorm.DB, identifierID uint) error {
	return tx.Model(&models.Identifier{}).Where("id = ?", identifierID).Updates(map[string]interface{}{
		"state":       models.IdentifierStateGenerated,
		"entity_kind": nil,
		"entity_id":   nil,
		"bound_at":    nil,
	}).Error
}

// 8 Cancel 作废标识符。bound状态拒绝作废，必须先释放。
func (s *IdentifierService) Cancel(value int64, reason string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var identifier models.Identifier
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("value = ?", value).First(&identifier).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIdentifierNotFound
		}
		if err != nil {
			return err
		}
		if identifier.State == models.IdentifierStateBound {
			return ErrIdentifierStillBound
		}
		if identifier.State == models.IdentifierStateCancelled {
			return nil
		}
		return tx.Model(&identifier).Updates(map[string]interface{}{
			"state":         models.IdentifierStateCancelled,
			"cancel_reason": reason,
		}).Error
	})
}

// 9 BulkCancel 批量作废。统一策略：不带force时遇到bound整体失败；
// 带force时先释放绑定再作废。返回实际作废数量。
func (s *IdentifierService) BulkCancel(values []int64, reason string, force bool) (int, error) {
	cancelled := 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var identifiers []models.Identifier
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("value IN ?", values).Find(&identifiers).Error; err != nil {
			return err
		}

		if !force {
			for i := range identifiers {
				if identifiers[i].State == models.IdentifierStateBound {
					return ErrIdentifierStillBound
				}
			}
		}

		for i := range identifiers {
			id := &identifiers[i]
			if id.State == models.IdentifierStateCancelled {
				continue
			}
			if id.State == models.IdentifierStateBound {
				if err := s.clearBindingTx(tx, id.ID); err != nil {
					return err
				}
			}
			if err := tx.Model(&models.Identifier{}).Where("id = ?", id.ID).Updates(map[string]interface{}{
				"state":         models.IdentifierStateCancelled,
				"cancel_reason": reason,
			}).Error; err != nil {
				return err
			}
			cancelled++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cancelled, nil
}

// 10 Resolve 只读解析，供扫码导航与连接引擎校验使用
func (s *IdentifierService) Resolve(value int64) (*IdentifierResolution, error) {
	var identifier models.Identifier
	err := s.DB.Where("value = ?", value).First(&identifier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &IdentifierResolution{Exists: false, Value: value}, nil
	}
	if err != nil {
		return nil, err
	}
	return &IdentifierResolution{
		Exists:     true,
		Value:      identifier.Value,
		State:      identifier.State,
		EntityKind: identifier.EntityKind,
		EntityID:   identifier.EntityID,
	}, nil
}
