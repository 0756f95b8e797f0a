package domain

import "time"

// StatsFilters delimita o período (inclusivo) de um relatório. A ordem das
// datas é validada por quem chama, não pelo agregador.
type StatsFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// ReportDefinition é a definição salva de um relatório: um título e um
// período. O conteúdo do relatório nunca é persistido, apenas a definição.
type ReportDefinition struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Title     string     `json:"title"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Deleted   bool       `json:"-"`
	DeletedAt *time.Time `json:"-"`
}

// Filters monta os filtros de estatísticas a partir do período salvo
func (r *ReportDefinition) Filters() *StatsFilters {
	start := r.StartDate
	end := r.EndDate
	return &StatsFilters{
		StartDate: &start,
		EndDate:   &end,
	}
}
