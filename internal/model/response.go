package model

// MessageResponse é a resposta padrão das operações de escrita
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// ErrorResponse representa uma resposta de erro
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CheckResult resume uma passada de verificação de prazos
type CheckResult struct {
	Skipped   bool `json:"skipped"`
	Evaluated int  `json:"evaluated"`
	Due       int  `json:"due"`
	Sent      int  `json:"sent"`
	Failed    int  `json:"failed"`
}
