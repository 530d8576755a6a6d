package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/types"
)

type EquipmentExporterInterface interface {
	ExportEquipments(ctx context.Context, actor *authz.Actor, filter types.Filter) ([]byte, string, error)
}

// EquipmentExporter renders the equipment list, under the caller's scope and
// filters, into an xlsx workbook.
type EquipmentExporter struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentExporter(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) EquipmentExporterInterface {
	return &EquipmentExporter{equipmentRepo: equipmentRepo, logger: logger}
}

var exportHeaders = []string{
	"ID", "Brand", "Model Number", "Serial Number", "Type", "Category",
	"Office", "Status", "Condition", "Purchase Date", "Cost",
}

func (s *EquipmentExporter) ExportEquipments(ctx context.Context, actor *authz.Actor, filter types.Filter) ([]byte, string, error) {
	scope := authz.ScopeForActor(actor)
	filter.WithPagination = false

	equipments, _, err := s.equipmentRepo.GetEquipments(ctx, filter, scope)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("could not close workbook", zap.Error(err))
		}
	}()

	const sheet = "Equipment"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.logger.Warn("could not drop default sheet", zap.Error(err))
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
	}

	for rowIdx, e := range equipments {
		category := ""
		if e.Category.Name != nil {
			category = *e.Category.Name
		}
		purchaseDate := ""
		if e.PurchaseDate != nil {
			purchaseDate = *e.PurchaseDate
		}
		var cost interface{}
		if e.CostOfPurchase != nil {
			cost = *e.CostOfPurchase
		}

		values := []interface{}{
			e.ID, e.Brand, e.ModelNumber, e.SerialNumber,
			e.EquipmentType.Name, category, e.Office.Name,
			e.Status, e.Condition, purchaseDate, cost,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("equipment-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
