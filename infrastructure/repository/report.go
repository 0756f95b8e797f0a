// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jellywind/jellywind-api/infrastructure/database/postgres"
	"github.com/jellywind/jellywind-api/internal/domain"
)

const (
	reportDefinitionTable = "report_definitions rd"
)

type ReportRepository interface {
	Save(report *domain.ReportDefinition) error
	ListByUser(userID string) ([]*domain.ReportDefinition, error)
	GetByID(userID, reportID string) (*domain.ReportDefinition, error)
	SoftDelete(userID, reportID string) (bool, error)
	DeleteOlderThan(days int) (int64, error)
}

type reportRepository struct {
	conn *postgres.Connection
}

func NewReportRepository(conn *postgres.Connection) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

func (r *reportRepository) Save(report *domain.ReportDefinition) error {
	query, args, err := squirrel.
		Insert("report_definitions").
		Columns("id", "user_id", "title", "start_date", "end_date").
		Values(report.ID, report.UserID, report.Title, report.StartDate, report.EndDate).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				updated_at = CURRENT_TIMESTAMP
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func (r *reportRepository) ListByUser(userID string) ([]*domain.ReportDefinition, error) {
	query, args, err := squirrel.
		Select("rd.id", "rd.user_id", "rd.title", "rd.start_date", "rd.end_date", "rd.created_at", "rd.updated_at").
		From(reportDefinitionTable).
		Where(squirrel.Eq{"rd.user_id": userID, "rd.deleted": false}).
		OrderBy("rd.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.ReportDefinition, 0)
	for rows.Next() {
		report, err := r.scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear definição de relatório: %w", err)
		}
		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return reports, nil
}

func (r *reportRepository) GetByID(userID, reportID string) (*domain.ReportDefinition, error) {
	query, args, err := squirrel.
		Select("rd.id", "rd.user_id", "rd.title", "rd.start_date", "rd.end_date", "rd.created_at", "rd.updated_at").
		From(reportDefinitionTable).
		Where(squirrel.Eq{"rd.id": reportID, "rd.user_id": userID, "rd.deleted": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	report := &domain.ReportDefinition{}
	err = row.Scan(
		&report.ID,
		&report.UserID,
		&report.Title,
		&report.StartDate,
		&report.EndDate,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear definição de relatório: %w", err)
	}

	return report, nil
}

// SoftDelete marca a definição como removida, preservando a linha para a
// janela de retenção. Devolve false quando nada foi marcado.
func (r *reportRepository) SoftDelete(userID, reportID string) (bool, error) {
	query, args, err := squirrel.
		Update("report_definitions").
		Set("deleted", true).
		Set("deleted_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": reportID, "user_id": userID, "deleted": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir query de remoção: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao executar query de remoção: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

// DeleteOlderThan remove em definitivo as definições marcadas como
// removidas há mais de N dias. Usado pela rotina de retenção.
func (r *reportRepository) DeleteOlderThan(days int) (int64, error) {
	query, args, err := squirrel.
		Delete("report_definitions").
		Where(squirrel.Eq{"deleted": true}).
		Where(squirrel.Expr(fmt.Sprintf("deleted_at < CURRENT_TIMESTAMP - INTERVAL '%d days'", days))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir query de limpeza: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar query de limpeza: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	return affected, nil
}

func (r *reportRepository) scanReport(rows *sql.Rows) (*domain.ReportDefinition, error) {
	report := &domain.ReportDefinition{}

	err := rows.Scan(
		&report.ID,
		&report.UserID,
		&report.Title,
		&report.StartDate,
		&report.EndDate,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return report, nil
}
