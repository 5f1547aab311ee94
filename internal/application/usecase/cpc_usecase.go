package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
	"github.com/harenatech/harena-api/pkg/logger"
)

// Colonnes du CSV du référentiel, import comme export.
var cpcColumns = []string{"code", "nom", "niveau", "parentCode", "correspondances"}

// CPCUsecase gestion du référentiel de classification CPC.
type CPCUsecase struct {
	cpc repository.CPCRepository
	log *logger.Logger
}

func NewCPCUsecase(cpc repository.CPCRepository, log *logger.Logger) *CPCUsecase {
	return &CPCUsecase{cpc: cpc, log: log}
}

// GetByCode charge un code.
func (u *CPCUsecase) GetByCode(ctx context.Context, code string) (*entity.CPCCode, error) {
	c, err := u.cpc.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List retourne la page du référentiel avec le total.
func (u *CPCUsecase) List(ctx context.Context, page dto.PageRequest) ([]*entity.CPCCode, int, error) {
	page.Normalize()
	items, err := u.cpc.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := u.cpc.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ImportCSV charge le référentiel depuis un CSV. Les fichiers hérités en
// ISO-8859-1 sont transcodés avant lecture. Les codes déjà présents sont
// sautés, jamais écrasés ; une ligne malformée est comptée en erreur sans
// arrêter l'import.
func (u *CPCUsecase) ImportCSV(ctx context.Context, r io.Reader) (*dto.CPCImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		raw, err = charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("transcodage ISO-8859-1 : %w", err)
		}
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &dto.CPCImportResult{}
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("ligne %d : %v", line, err))
			continue
		}
		if line == 1 && isHeader(record) {
			continue
		}
		if len(record) < 3 {
			result.Errors = append(result.Errors, fmt.Sprintf("ligne %d : %d colonnes, 3 minimum", line, len(record)))
			continue
		}

		niveau, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("ligne %d : niveau invalide %q", line, record[2]))
			continue
		}
		code := &entity.CPCCode{
			ID:        uuid.New().String(),
			Code:      strings.TrimSpace(record[0]),
			Nom:       strings.TrimSpace(record[1]),
			Niveau:    niveau,
			CreatedAt: time.Now().UTC(),
		}
		if code.Code == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("ligne %d : code vide", line))
			continue
		}
		if len(record) > 3 {
			code.ParentCode = strings.TrimSpace(record[3])
		}
		if len(record) > 4 {
			code.Correspondances = strings.TrimSpace(record[4])
		}

		switch err := u.cpc.Create(ctx, code); {
		case err == nil:
			result.Imported++
		case errors.Is(err, domain.ErrDuplicate):
			result.Skipped++
		default:
			return nil, err
		}
	}

	u.log.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Msg("import du référentiel CPC terminé")
	return result, nil
}

// ExportCSV écrit tout le référentiel, trié par code, avec l'en-tête standard.
func (u *CPCUsecase) ExportCSV(ctx context.Context, w io.Writer) error {
	codes, err := u.cpc.ListAll(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(cpcColumns); err != nil {
		return err
	}
	for _, c := range codes {
		record := []string{c.Code, c.Nom, strconv.Itoa(c.Niveau), c.ParentCode, c.Correspondances}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(record[0]), "code")
}
