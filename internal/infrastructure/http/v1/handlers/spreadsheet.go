package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory/internal/core/apperror"
	"inventory/internal/domain"
	"inventory/internal/infrastructure/excel"
)

// uploadField is the multipart field carrying the workbook.
const uploadField = "file"

// readUpload parses the uploaded workbook into rows.
func (h *BaseHandler) readUpload(c *gin.Context) ([]domain.ImportRow, bool) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		h.Error(c, apperror.NewBadRequest("No file uploaded"))
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		h.Error(c, apperror.NewBadRequest("Error processing file: " + err.Error()))
		return nil, false
	}
	defer f.Close()

	rows, err := excel.ReadRows(f)
	if err != nil {
		h.Error(c, apperror.NewBadRequest("Error processing file: " + err.Error()))
		return nil, false
	}
	return rows, true
}

// writeWorkbook sends a single-sheet workbook as an attachment.
func (h *BaseHandler) writeWorkbook(c *gin.Context, filename, sheet string, columns []string, rows [][]any) {
	var buf bytes.Buffer
	if err := excel.WriteSheet(&buf, sheet, columns, rows); err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, excel.ContentType, buf.Bytes())
}
