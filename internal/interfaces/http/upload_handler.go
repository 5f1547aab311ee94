package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/infrastructure/storage"
)

// 10 Mo par fichier.
const maxUploadBytes = 10 << 20

// UploadHandler dépôt de fichiers (images transcodées en JPEG, le reste tel quel).
type UploadHandler struct {
	store *storage.LocalStore
}

func NewUploadHandler(store *storage.LocalStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload POST /upload — multipart "file", dossier optionnel en query.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(dto.StatusFail, "fichier requis (champ file)"))
	}
	if fileHeader.Size > maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.Error(dto.StatusFail, "fichier trop volumineux"))
	}
	f, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return respondError(c, err)
	}

	folder := c.Query("folder", "misc")
	url, err := h.store.Save(folder, fileHeader.Filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("fichier enregistré", fiber.Map{"url": url}))
}
