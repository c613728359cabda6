package services

import (
	"fmt"
	"os"
	"path/filepath"

	"dcim-asset-service/config"
	"dcim-asset-service/models"
	"dcim-asset-service/utils"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// InterfaceLabelExportService 定义标签导出服务接口
type InterfaceLabelExportService interface {
	ExportPrintBatch(batchID uint) (string, error)
}

// LabelExportService 将打印批次渲染为xlsx标签清单。
// 展示格式（前缀+零填充）只在这里和扫码入口出现，内部一律用整数。
type LabelExportService struct {
	DB          *gorm.DB
	Config      *config.Config
	Identifiers InterfaceIdentifierService
}

// NewLabelExportService 创建一个新的标签导出服务
func NewLabelExportService(db *gorm.DB, cfg *config.Config, identifiers InterfaceIdentifierService) InterfaceLabelExportService {
	return &LabelExportService{
		DB:          db,
		Config:      cfg,
		Identifiers: identifiers,
	}
}

// ExportPrintBatch 导出打印批次为xlsx文件并将批次标记为完成，返回文件路径
func (s *LabelExportService) ExportPrintBatch(batchID uint) (string, error) {
	batch, err := s.Identifiers.GetPrintBatch(batchID)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Labels"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheet, "A1", "标签")
	f.SetCellValue(sheet, "B1", "数值")
	f.SetCellValue(sheet, "C1", "状态")
	f.SetCellValue(sheet, "D1", "批次")

	for i, identifier := range batch.Identifiers {
		row := i + 2
		label := utils.FormatIdentifier(identifier.Value, s.Config.LabelPrefix, s.Config.LabelWidth)
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), identifier.Value)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(identifier.State))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), batch.Name)
	}

	exportDir := "exports"
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", err
	}
	fileRef := uuid.New().String()
	path := filepath.Join(exportDir, fmt.Sprintf("labels-%d-%s.xlsx", batch.ID, fileRef))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}

	if batch.Status != models.PrintBatchStatusCompleted {
		if err := s.Identifiers.CompletePrintBatch(batch.ID, fileRef); err != nil {
			return "", err
		}
	}
	return path, nil
}
