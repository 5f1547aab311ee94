package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/harenatech/harena-api/pkg/config"
)

// LocalStore stockage des fichiers envoyés sur le disque local.
// Les images sont transcodées à largeur fixe ; les autres fichiers sont écrits tels
// quels. Le nom de fichier est un UUID : aucun nom fourni par le client n'atteint le
// système de fichiers.
type LocalStore struct {
	cfg config.UploadConfig
}

// NewLocalStore construit le store et crée le répertoire racine au besoin.
func NewLocalStore(cfg config.UploadConfig) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("créer répertoire upload: %w", err)
	}
	return &LocalStore{cfg: cfg}, nil
}

// Save écrit le fichier dans <dir>/<folder>/ et retourne l'URL publique
// /upload/<folder>/<file>. originalName ne sert qu'à conserver l'extension.
func (s *LocalStore) Save(folder, originalName string, data []byte) (string, error) {
	folder = sanitizeFolder(folder)
	dir := filepath.Join(s.cfg.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("créer sous-répertoire: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String()

	if isImageExt(ext) {
		resized, err := s.transcode(data)
		if err == nil {
			data = resized
			ext = ".jpg"
		}
		// Échec de décodage : le fichier se prétend image, on le garde tel quel.
	}

	name += ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("écrire fichier: %w", err)
	}
	return s.cfg.PublicPath + "/" + folder + "/" + name, nil
}

// Dir retourne le répertoire racine (montage statique du serveur HTTP).
func (s *LocalStore) Dir() string { return s.cfg.Dir }

// PublicPath retourne le préfixe d'URL sous lequel les fichiers sont servis.
func (s *LocalStore) PublicPath() string { return s.cfg.PublicPath }

// transcode redimensionne l'image à la largeur cible et la réencode en JPEG.
func (s *LocalStore) transcode(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	if img.Bounds().Dx() > s.cfg.ImageWidth {
		img = imaging.Resize(img, s.cfg.ImageWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(s.cfg.JPEGQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// sanitizeFolder réduit le nom de dossier à un segment sûr.
func sanitizeFolder(folder string) string {
	folder = filepath.Base(filepath.Clean(folder))
	if folder == "." || folder == ".." || folder == "/" || folder == "" {
		return "misc"
	}
	return folder
}
