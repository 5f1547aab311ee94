package dto

// CPCCodeResponse sortie d'un code de classification.
type CPCCodeResponse struct {
	Code            string `json:"code"`
	Nom             string `json:"nom"`
	Niveau          int    `json:"niveau"`
	ParentCode      string `json:"parentCode"`
	Correspondances string `json:"correspondances"`
}

// CPCImportResult bilan d'un import CSV : les codes déjà présents sont sautés.
type CPCImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
