package api

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/triple-tgg/sams-sub001/internal/model"
	"github.com/triple-tgg/sams-sub001/pkg/errors"
)

func (h *Handler) CreateImportSession(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}
	defer file.Close()

	maxBytes := int64(h.cfg.Import.MaxFileSizeMB) << 20
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	if int64(len(data)) > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	session, err := h.importSvc.Open(c.Request.Context(), header.Filename, data)
	if err != nil {
		h.importError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session.Snapshot())
}

func (h *Handler) GetImportSession(c *gin.Context) {
	session, err := h.importSvc.Get(c.Param("id"))
	if err != nil {
		h.importError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *Handler) RenameSheet(c *gin.Context) {
	sheetIdx, ok := h.intParam(c, "idx")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.importSvc.RenameSheet(c.Param("id"), sheetIdx, req.Name)
	if err != nil {
		h.importError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *Handler) EditImportRow(c *gin.Context) {
	sheetIdx, ok := h.intParam(c, "idx")
	if !ok {
		return
	}
	rowPos, ok := h.intParam(c, "row")
	if !ok {
		return
	}

	var req struct {
		Cells map[string]model.Cell `json:"cells" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.importSvc.EditRow(c.Param("id"), sheetIdx, rowPos, req.Cells)
	if err != nil {
		h.importError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *Handler) DeleteImportRow(c *gin.Context) {
	sheetIdx, ok := h.intParam(c, "idx")
	if !ok {
		return
	}
	rowPos, ok := h.intParam(c, "row")
	if !ok {
		return
	}

	session, err := h.importSvc.DeleteRow(c.Param("id"), sheetIdx, rowPos)
	if err != nil {
		h.importError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *Handler) ValidateImport(c *gin.Context) {
	summary, err := h.importSvc.Validate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.importError(c, err)
		return
	}

	session, err := h.importSvc.Get(c.Param("id"))
	if err != nil {
		h.importError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"session": session.Snapshot(),
	})
}

func (h *Handler) UploadImport(c *gin.Context) {
	var req struct {
		UserName string `json:"userName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	uploaded, err := h.importSvc.Upload(c.Request.Context(), c.Param("id"), req.UserName)
	if err != nil {
		h.importError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Flights imported successfully",
		"uploaded": uploaded,
	})
}

func (h *Handler) CloseImportSession(c *gin.Context) {
	h.importSvc.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return v, true
}

// importError maps pipeline errors onto HTTP statuses. Row-level verdicts
// never reach this path; they are response data.
func (h *Handler) importError(c *gin.Context, err error) {
	var sheetErr errors.SheetDateError
	switch {
	case stderrors.Is(err, errors.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case stderrors.Is(err, errors.ErrSessionBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case stderrors.Is(err, errors.ErrInvalidFileFormat),
		stderrors.Is(err, errors.ErrEmptyWorkbook),
		stderrors.Is(err, errors.ErrNoUploadableRows),
		stderrors.Is(err, errors.ErrUnresolvedRefs),
		stderrors.Is(err, errors.ErrNotValidated),
		stderrors.As(err, &sheetErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("Import operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
