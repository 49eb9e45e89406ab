package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cleberrangel/pendientes-api/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	pendingSheet = "Pendientes"
	clientSheet  = "Clientes"
)

var pendingHeaders = []string{
	"ID", "Fecha", "Actividad", "Descripción", "Empresa", "Estado", "Fecha Límite",
	"Correo", "CC", "Días de aviso", "Observaciones", "Último aviso",
}

var clientHeaders = []string{
	"ID", "Empresa", "Estado", "Completado", "Procedimiento", "Observaciones",
	"Tareas", "Completadas", "Lista de tareas",
}

// ExcelGenerator gera planilhas de pendentes e clientes
type ExcelGenerator struct{}

// NewExcelGenerator cria um novo gerador de Excel
func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{}
}

// PendingItems gera a planilha de pendentes
func (g *ExcelGenerator) PendingItems(items []model.PendingItem) (*bytes.Buffer, error) {
	rows := make([][]interface{}, 0, len(items))
	for _, p := range items {
		rows = append(rows, []interface{}{
			p.ID, p.Fecha, p.Actividad, p.Descripcion, p.Empresa, p.Estado, p.FechaLimite,
			p.EmailNotificacion, p.CCEmails, p.Threshold(), p.Observaciones, p.UltimaNotificacion,
		})
	}
	return g.generate(pendingSheet, pendingHeaders, rows)
}

// Clients gera a planilha de clientes com o agregado de tarefas
func (g *ExcelGenerator) Clients(summaries []model.ClientSummary) (*bytes.Buffer, error) {
	rows := make([][]interface{}, 0, len(summaries))
	for _, c := range summaries {
		check := "No"
		if c.CheckEstado {
			check = "Sí"
		}
		rows = append(rows, []interface{}{
			c.ID, c.Empresa, c.Estado, check, c.Procedimiento, c.Observaciones,
			c.TotalTasks, c.CompletedTasks, strings.Join(c.Tasks, "\n"),
		})
	}
	return g.generate(clientSheet, clientHeaders, rows)
}

func (g *ExcelGenerator) generate(sheet string, headers []string, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("renomear sheet: %w", err)
	}

	if err := g.writeHeaders(f, sheet, headers); err != nil {
		return nil, fmt.Errorf("escrever headers: %w", err)
	}

	if err := g.writeRows(f, sheet, rows); err != nil {
		return nil, fmt.Errorf("escrever dados: %w", err)
	}

	for col := 1; col <= len(headers); col++ {
		colName, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(sheet, colName, colName, 20); err != nil {
			return nil, fmt.Errorf("ajustar colunas: %w", err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("congelar cabeçalho: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escrever buffer: %w", err)
	}
	return buf, nil
}

func (g *ExcelGenerator) writeHeaders(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: border("000000"),
	})
	if err != nil {
		return err
	}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func (g *ExcelGenerator) writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	styleOdd, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
		Border:    border("D9D9D9"),
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	styleEven, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFFFFF"}, Pattern: 1},
		Border:    border("D9D9D9"),
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	for i, row := range rows {
		excelRow := i + 2 // linha 1 é o cabeçalho

		style := styleEven
		if i%2 == 1 {
			style = styleOdd
		}

		first, _ := excelize.CoordinatesToCellName(1, excelRow)
		last, _ := excelize.CoordinatesToCellName(len(row), excelRow)
		if err := f.SetSheetRow(sheet, first, &row); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, first, last, style); err != nil {
			return err
		}
	}
	return nil
}

func border(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
	}
}
