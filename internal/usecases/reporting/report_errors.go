package reporting

import "errors"

var (
	// ErrReportNotFound indica que a definição não existe ou não pertence ao usuário
	ErrReportNotFound = errors.New("definição de relatório não encontrada")
	// ErrMissingTitle indica definição sem título
	ErrMissingTitle = errors.New("título é obrigatório")
	// ErrInvalidTimespan indica período com data de início posterior à de fim
	ErrInvalidTimespan = errors.New("a data de início não pode ser posterior à data de fim")
)
