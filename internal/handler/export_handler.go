package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/handler/response"
)

var exportHeaders = []string{"ID", "Вопрос", "Ответ", "Сложность", "Категория"}

// ExportQuestions выгружает весь каталог вопросов в CSV или Excel
// GET /questions/export?format=csv|xlsx
func (h *CatalogHandler) ExportQuestions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		response.Abort(c, http.StatusBadRequest)
		return
	}

	questions, categories, err := h.catalog.ExportQuestions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("questions_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		exportXLSX(c, questions, categories, filename)
	default:
		exportCSV(c, questions, categories, filename)
	}
}

func exportRow(q entity.Question, categories map[uint]string) []string {
	return []string{
		strconv.FormatUint(uint64(q.ID), 10),
		sanitizeForExcel(q.Question),
		sanitizeForExcel(q.Answer),
		strconv.Itoa(q.Difficulty),
		sanitizeForExcel(categories[q.Category]),
	}
}

// exportCSV пишет CSV с BOM, чтобы Excel корректно открыл UTF-8
func exportCSV(c *gin.Context, questions []entity.Question, categories map[uint]string, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	writer.Write(exportHeaders)
	for _, q := range questions {
		writer.Write(exportRow(q, categories))
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("[CatalogHandler] Ошибка записи CSV: %v", err)
	}
}

// exportXLSX пишет Excel через StreamWriter
func exportXLSX(c *gin.Context, questions []entity.Question, categories map[uint]string, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Вопросы"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Printf("[CatalogHandler] Ошибка переименования листа: %v", err)
		response.Abort(c, http.StatusInternalServerError)
		return
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[CatalogHandler] Ошибка создания StreamWriter: %v", err)
		response.Abort(c, http.StatusInternalServerError)
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[CatalogHandler] Ошибка записи заголовков: %v", err)
	}

	for i, q := range questions {
		rowNum := i + 2
		row := []interface{}{
			q.ID,
			sanitizeForExcel(q.Question),
			sanitizeForExcel(q.Answer),
			q.Difficulty,
			sanitizeForExcel(categories[q.Category]),
		}
		if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), row); err != nil {
			log.Printf("[CatalogHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[CatalogHandler] Ошибка при Flush: %v", err)
		response.Abort(c, http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[CatalogHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel защищает от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
