package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"backstage-brain-backend/internal/extract"
	"backstage-brain-backend/internal/models"
	"backstage-brain-backend/internal/repo"
	"backstage-brain-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const signedURLExpiry = time.Hour

type FileHandler struct {
	events     repo.EventRepoInterface
	files      repo.FileRepoInterface
	categories repo.CategoryRepoInterface
	store      storage.ObjectStore
}

func NewFileHandler(events repo.EventRepoInterface, files repo.FileRepoInterface, categories repo.CategoryRepoInterface, store storage.ObjectStore) *FileHandler {
	return &FileHandler{events: events, files: files, categories: categories, store: store}
}

// ListFiles returns the event's documents, newest first.
func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	if _, ok := requireRole(c, h.events, userID, eventID, models.RoleStaff); !ok {
		return nil
	}

	files, err := h.files.ListByEvent(eventID)
	if err != nil {
		log.Println(err, "Error fetching files")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch files",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"files": files,
	})
}

// UploadFile stores a PDF or plain-text document. All validation happens
// before any write. The blob is written first; when the metadata insert
// fails the blob is removed again. This is a compensating delete, not a
// transaction: a crash between the two steps can still orphan a blob.
func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	if _, ok := requireRole(c, h.events, userID, eventID, models.RoleManager); !ok {
		return nil
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}
	category := c.FormValue("category")
	if category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category is required",
		})
	}

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	if !models.AllowedFileType(contentType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File type not supported. Please upload a PDF or TXT file.",
		})
	}

	exists, err := h.categories.CategoryExists(category)
	if err != nil {
		log.Println(err, "Error checking category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to validate category",
		})
	}
	if !exists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown category",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Println(err, "Error opening uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing file upload",
		})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		log.Println(err, "Error reading uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing file upload",
		})
	}

	// Extraction happens synchronously at upload time; an unparseable
	// document still uploads, it just contributes nothing to the corpus.
	text, err := extract.Text(contentType, data)
	if err != nil {
		log.Printf("Warning: failed to extract text from %s: %v", fileHeader.Filename, err)
		text = ""
	}

	filePath := fmt.Sprintf("%s/%s", eventID, fileHeader.Filename)
	if err := h.store.Put(c.Context(), filePath, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		log.Println(err, "Error uploading file to storage")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload file to storage",
		})
	}

	record := &models.EventFile{
		EventUUID:     eventID,
		FileName:      fileHeader.Filename,
		FilePath:      filePath,
		FileSize:      int64(len(data)),
		FileType:      contentType,
		Category:      category,
		ExtractedText: text,
		UploadedBy:    userID,
	}
	if err := h.files.CreateFile(record); err != nil {
		log.Println(err, "Error saving file metadata")
		if cleanupErr := h.store.Delete(c.Context(), filePath); cleanupErr != nil {
			log.Printf("Warning: orphaned blob %s after metadata failure: %v", filePath, cleanupErr)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save file metadata",
		})
	}

	signedURL, err := h.store.SignedURL(c.Context(), filePath, signedURLExpiry)
	if err != nil {
		// The upload already succeeded; the download link is a bonus.
		log.Println(err, "Error signing download URL")
		signedURL = ""
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "File uploaded successfully",
		"file":      record,
		"signedUrl": signedURL,
	})
}

// DeleteFile removes the blob then the metadata row. The two deletes are
// not transactional: a blob-delete failure is logged and the row is still
// removed, which can leave an orphaned blob behind.
func (h *FileHandler) DeleteFile(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	if _, ok := requireRole(c, h.events, userID, eventID, models.RoleManager); !ok {
		return nil
	}

	var dto struct {
		FileID string `json:"fileId"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	fileID, err := uuid.Parse(dto.FileID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file ID",
		})
	}

	file, err := h.files.GetByID(fileID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && file.EventUUID != eventID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found",
		})
	}
	if err != nil {
		log.Println(err, "Error fetching file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch file",
		})
	}

	if err := h.store.Delete(c.Context(), file.FilePath); err != nil {
		log.Printf("Warning: failed to delete blob %s: %v", file.FilePath, err)
	}
	if err := h.files.DeleteFile(fileID); err != nil {
		log.Println(err, "Error deleting file metadata")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete file",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "File deleted successfully",
	})
}
