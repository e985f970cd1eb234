package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
)

// ExportService 导出 Excel 报表，金额单位为元
type ExportService struct {
	store *repository.Store
	stock *StockService
}

// NewExportService 创建导出服务
func NewExportService(store *repository.Store, stock *StockService) *ExportService {
	return &ExportService{store: store, stock: stock}
}

// ExportFile 导出结果
type ExportFile struct {
	Filename string
	Data     []byte
}

// ContentTypeXLSX Excel 文件类型
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SalesJournal 销售日记账：每张销售单一行，另附按支付方式汇总（现金已扣找零）
func (s *ExportService) SalesJournal(ctx context.Context, pharmacyID int64, q dto.PeriodQuery) (*ExportFile, error) {
	from, to := periodOrDefault(q, 30)
	sales, err := s.store.Sales.ListInRange(ctx, pharmacyID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sales"
	rows := [][]interface{}{{"单号", "日期", "渠道", "状态", "顾客", "不含税", "税额", "含税", "折扣", "实收", "找零", "欠款"}}
	byMethod := map[string]int64{}
	for _, sale := range sales {
		customer := ""
		if sale.CustomerID != nil {
			customer = fmt.Sprintf("#%d", *sale.CustomerID)
		}
		rows = append(rows, []interface{}{
			sale.Number, sale.SoldAt.Format("2006-01-02 15:04"), sale.Channel, sale.Status, customer,
			model.CentsToFloat(sale.TotalHT), model.CentsToFloat(sale.TotalVAT), model.CentsToFloat(sale.TotalTTC),
			model.CentsToFloat(sale.DiscountTotal), model.CentsToFloat(sale.PaidAmount),
			model.CentsToFloat(sale.ChangeAmount), model.CentsToFloat(sale.DueAmount),
		})
		if sale.Status != model.SaleCompleted {
			continue
		}
		for _, p := range counterPayments(&sale) {
			byMethod[p.Method] += p.Amount
		}
	}
	if err := writeSheet(f, sheet, rows); err != nil {
		return nil, err
	}

	methods := [][]interface{}{{"支付方式", "金额"}}
	for _, m := range []string{model.PayCash, model.PayCard, model.PayCheque, model.PayInsurance, model.PayMobile, model.PayLoyalty} {
		if amount, ok := byMethod[m]; ok {
			methods = append(methods, []interface{}{m, model.CentsToFloat(amount)})
		}
	}
	if err := writeSheet(f, "Payments", methods); err != nil {
		return nil, err
	}

	return finish(f, sheet, fmt.Sprintf("sales_%s_%s.xlsx", from.Format("20060102"), to.AddDate(0, 0, -1).Format("20060102")))
}

// Invoices 发票清单（不含草稿）
func (s *ExportService) Invoices(ctx context.Context, pharmacyID int64, q dto.PeriodQuery) (*ExportFile, error) {
	from, to := periodOrDefault(q, 30)
	list, err := s.store.Invoices.ListInRange(ctx, pharmacyID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Invoices"
	rows := [][]interface{}{{"发票号", "开票日期", "抬头", "状态", "不含税", "税额", "含税", "已收", "余额", "到期日"}}
	for _, inv := range list {
		due := ""
		if inv.DueDate != nil {
			due = inv.DueDate.Format("2006-01-02")
		}
		rows = append(rows, []interface{}{
			inv.Number, inv.IssueDate.Format("2006-01-02"), inv.BillTo, inv.Status,
			model.CentsToFloat(inv.TotalHT), model.CentsToFloat(inv.TotalVAT), model.CentsToFloat(inv.TotalTTC),
			model.CentsToFloat(inv.AmountPaid), model.CentsToFloat(inv.Balance), due,
		})
	}
	if err := writeSheet(f, sheet, rows); err != nil {
		return nil, err
	}
	return finish(f, sheet, fmt.Sprintf("invoices_%s_%s.xlsx", from.Format("20060102"), to.AddDate(0, 0, -1).Format("20060102")))
}

// StockValuation 库存估值
func (s *ExportService) StockValuation(ctx context.Context, pharmacyID int64) (*ExportFile, error) {
	report, err := s.stock.Valuation(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Valuation"
	rows := [][]interface{}{{"SKU", "商品", "库存", "成本金额", "售价金额"}}
	for _, item := range report.Items {
		rows = append(rows, []interface{}{
			item.SKU, item.Name, item.StockQuantity,
			model.CentsToFloat(item.CostValue), model.CentsToFloat(item.SaleValue),
		})
	}
	rows = append(rows, []interface{}{"", "合计", "", model.CentsToFloat(report.TotalCost), model.CentsToFloat(report.TotalSaleValue)})
	if err := writeSheet(f, sheet, rows); err != nil {
		return nil, err
	}
	return finish(f, sheet, fmt.Sprintf("stock_valuation_%s.xlsx", time.Now().Format("20060102")))
}

// writeSheet 写入整表，首行加粗
func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// finish 删除默认 Sheet1 并输出
func finish(f *excelize.File, active, filename string) (*ExportFile, error) {
	if idx, err := f.GetSheetIndex(active); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("生成 Excel 失败: %w", err)
	}
	return &ExportFile{Filename: filename, Data: buf.Bytes()}, nil
}
