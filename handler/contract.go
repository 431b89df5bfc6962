package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JLTC3111/contract-management-app-sub001/service"
)

type ContractHandler struct {
	store       service.Store
	attachments *service.AttachmentService
}

// NewContractHandler creates the read API handler. attachments may be nil
// when object storage is not configured.
func NewContractHandler(store service.Store, attachments *service.AttachmentService) *ContractHandler {
	return &ContractHandler{
		store:       store,
		attachments: attachments,
	}
}

// List returns all contracts with their overall progress where computable.
// Contracts still missing phases report a null progress instead of a
// misleading partial average.
func (h *ContractHandler) List(c *gin.Context) {
	contracts, err := h.store.ReadContracts(c.Request.Context(), service.ContractFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read contracts"})
		return
	}

	result := make([]gin.H, len(contracts))
	for i, contract := range contracts {
		entry := gin.H{
			"id":         contract.ID,
			"title":      contract.Title,
			"status":     contract.Status,
			"created_at": contract.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"updated_at": contract.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if contract.ExpiryDate != nil {
			entry["expiry_date"] = contract.ExpiryDate.Format("2006-01-02")
		}

		phases, err := h.store.ReadPhases(c.Request.Context(), contract.ID)
		if err == nil {
			if progress, perr := service.ContractProgress(phases); perr == nil {
				entry["progress"] = progress
			} else {
				entry["progress"] = nil
			}
		}

		result[i] = entry
	}

	c.JSON(http.StatusOK, gin.H{"contracts": result})
}

// Get returns a single contract with its phases. Phase progress and status
// are recomputed from tasks so stale stored values never leak out.
func (h *ContractHandler) Get(c *gin.Context) {
	id := c.Param("id")

	contract, err := h.store.ReadContract(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrContractNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read contract"})
		return
	}

	phases, err := h.store.ReadPhases(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read phases"})
		return
	}

	for i := range phases {
		phases[i].Progress = service.PhaseProgress(&phases[i])
		phases[i].Status = service.PhaseStatusOf(&phases[i])
	}
	contract.Phases = phases

	response := gin.H{"contract": contract}
	if progress, err := service.ContractProgress(phases); err == nil {
		response["progress"] = progress
	} else {
		response["progress"] = nil
	}

	c.JSON(http.StatusOK, response)
}

// UploadAttachment stores a contract document in object storage.
func (h *ContractHandler) UploadAttachment(c *gin.Context) {
	if h.attachments == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Attachment storage not configured"})
		return
	}

	id := c.Param("id")
	if _, err := h.store.ReadContract(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".docx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF and DOCX files are allowed"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if ext == ".pdf" {
			contentType = "application/pdf"
		} else {
			contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		}
	}

	attachmentID := uuid.New().String()
	objectName := h.attachments.ObjectName(id, attachmentID, header.Filename)

	if err := h.attachments.Upload(c.Request.Context(), objectName, file, header.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload attachment: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attachment_id": attachmentID,
		"object":        objectName,
		"filename":      header.Filename,
	})
}

// ListAttachments returns the documents stored for a contract.
func (h *ContractHandler) ListAttachments(c *gin.Context) {
	if h.attachments == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Attachment storage not configured"})
		return
	}

	id := c.Param("id")
	attachments, err := h.attachments.List(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list attachments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"attachments": attachments})
}

// AttachmentURL returns a presigned download URL for one attachment.
func (h *ContractHandler) AttachmentURL(c *gin.Context) {
	if h.attachments == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Attachment storage not configured"})
		return
	}

	id := c.Param("id")
	object := c.Query("object")
	if object == "" || !strings.HasPrefix(object, id+"/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid object name"})
		return
	}

	url, err := h.attachments.PresignedURL(c.Request.Context(), object)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
