package handler

import (
	"ModelFlow/internal/dto"
	"ModelFlow/internal/service"
	"ModelFlow/internal/task"
	"ModelFlow/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func modelIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return 0, false
	}
	return id, true
}

// UploadModel accepts a multipart model submission.
func UploadModel(c *gin.Context) {
	var form dto.ModelUploadForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	email := utils.CurrentEmail(c)
	var (
		fileName string
		fileSize int64
		mimeType string
	)
	fileHeader, err := c.FormFile("file")
	if err == nil {
		fileName = fileHeader.Filename
		fileSize = fileHeader.Size
		mimeType = fileHeader.Header.Get("Content-Type")
	}

	if fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "open upload failed: " + err.Error()})
			return
		}
		defer file.Close()
		m, err := service.SubmitModel(c.Request.Context(), &form, email, file, fileName, fileSize, mimeType)
		if err != nil {
			utils.Fail(c, err)
			return
		}
		utils.Success(c, dto.UploadModelResponse{ModelID: m.ID, Status: m.Status})
		return
	}

	m, err := service.SubmitModel(c.Request.Context(), &form, email, nil, "", 0, "")
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, dto.UploadModelResponse{ModelID: m.ID, Status: m.Status})
}

// ListModels returns the approved catalog, paginated.
func ListModels(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	resp, err := service.ListApprovedModels(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, resp)
}

// GetModelDetail returns one model. Unapproved models are only visible to
// their author and admins.
func GetModelDetail(c *gin.Context) {
	id, ok := modelIDParam(c)
	if !ok {
		return
	}
	m, err := service.GetModel(c.Request.Context(), id, utils.CurrentEmail(c), utils.IsAdminRequest(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, m)
}

// MyModels lists the caller's own submissions in every status.
func MyModels(c *gin.Context) {
	models, err := service.ListUserModels(utils.CurrentEmail(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, models)
}

// DeleteModel removes a model permanently.
func DeleteModel(c *gin.Context) {
	id, ok := modelIDParam(c)
	if !ok {
		return
	}
	if err := service.DeleteModel(c.Request.Context(), id, utils.CurrentEmail(c), utils.IsAdminRequest(c)); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, gin.H{"deleted": id})
}

// LikeModel records a like.
func LikeModel(c *gin.Context) {
	id, ok := modelIDParam(c)
	if !ok {
		return
	}
	resp, err := service.LikeModel(c.Request.Context(), id, utils.CurrentEmail(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, resp)
}

// UnlikeModel removes a like.
func UnlikeModel(c *gin.Context) {
	id, ok := modelIDParam(c)
	if !ok {
		return
	}
	resp, err := service.UnlikeModel(c.Request.Context(), id, utils.CurrentEmail(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, resp)
}

// LikeStatus reports whether the caller liked the model and its like count.
func LikeStatus(c *gin.Context) {
	id, ok := modelIDParam(c)
	if !ok {
		return
	}
	resp, err := service.LikeStatus(id, utils.CurrentEmail(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, resp)
}

// DownloadModel returns a short-lived download URL for a model.
func DownloadModel(c *gin.Context) {
	id, ok := modelIDParam(c)
	if !ok {
		return
	}
	resp, err := service.DownloadModel(c.Request.Context(), id, utils.CurrentEmail(c), utils.IsAdminRequest(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, resp)
}

// ArchiveModel moves a model into the caller's archive.
func ArchiveModel(c *gin.Context) {
	id, ok := modelIDParam(c)
	if !ok {
		return
	}
	archived, err := service.ArchiveModel(c.Request.Context(), id, utils.CurrentEmail(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, archived)
}

// ArchivedModels lists the caller's archived models.
func ArchivedModels(c *gin.Context) {
	archives, err := service.ListArchivedModels(utils.CurrentEmail(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, archives)
}

// PurchaseModel buys access to a paid model and notifies its author.
func PurchaseModel(c *gin.Context) {
	id, ok := modelIDParam(c)
	if !ok {
		return
	}
	buyer := utils.CurrentEmail(c)
	purchase, err := service.PurchaseModel(id, buyer)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	task.EnqueueEmail(c.Request.Context(), task.EmailMessage{
		Kind:      task.EmailPurchase,
		To:        purchase.AuthorEmail,
		ModelName: purchase.ModelName,
		Buyer:     buyer,
	})
	utils.Success(c, purchase)
}
