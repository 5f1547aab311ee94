package dto

// Statuts de réponse de l'API.
const (
	StatusSuccess        = "success"
	StatusError          = "error"
	StatusFail           = "fail"
	StatusPartialSuccess = "partial_success"
)

// Response enveloppe standard de toutes les réponses :
// {status, message, data, total?, page?, limit?, summary?}.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Total   *int   `json:"total,omitempty"`
	Page    *int   `json:"page,omitempty"`
	Limit   *int   `json:"limit,omitempty"`
	Summary any    `json:"summary,omitempty"`
}

// OK construit une réponse success sans pagination.
func OK(message string, data any) Response {
	return Response{Status: StatusSuccess, Message: message, Data: data}
}

// OKPage construit une réponse success paginée.
func OKPage(message string, data any, total, page, limit int) Response {
	return Response{Status: StatusSuccess, Message: message, Data: data,
		Total: &total, Page: &page, Limit: &limit}
}

// Error construit une réponse d'erreur au corps normalisé (data: null).
func Error(status, message string) Response {
	return Response{Status: status, Message: message, Data: nil}
}

// PageRequest pagination des listings. Page démarre à 1.
type PageRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Normalize applique les valeurs par défaut et borne le limit.
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset dérive l'offset SQL de la page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}
