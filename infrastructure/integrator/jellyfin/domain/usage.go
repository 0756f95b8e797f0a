package domain

import (
	"strconv"

	"github.com/pkg/errors"
)

// CustomQueryResponse é o envelope das respostas do endpoint de consultas
// do plugin de estatísticas de uso. Cada linha em Results é uma tupla
// posicional de escalares; a ordem dos campos depende da consulta enviada.
type CustomQueryResponse struct {
	Columns []string `json:"colums"`
	Results [][]any  `json:"results"`
}

// PlayActivityRow é uma linha da consulta de mais tocadas já com os campos
// nomeados: [ItemId, ItemName, PlayCount, TotalDuration]
type PlayActivityRow struct {
	ItemID        string
	ItemName      string
	PlayCount     int
	TotalDuration float64
}

// SkipActivityRow é uma linha da consulta de mais puladas já com os campos
// nomeados: [ItemId, ItemName, PlayCount, AvgDuration, SkipCount]
type SkipActivityRow struct {
	ItemID      string
	ItemName    string
	PlayCount   int
	AvgDuration float64
	SkipCount   int
}

// MapPlayActivityRow converte uma tupla posicional em PlayActivityRow.
// Este é o único lugar onde a ordem dos campos da consulta de mais tocadas
// importa.
func MapPlayActivityRow(row []any) (PlayActivityRow, error) {
	if len(row) < 4 {
		return PlayActivityRow{}, errors.Wrapf(ErrMalformedResponse, "linha com %d campos, esperados 4", len(row))
	}

	playCount, err := fieldInt(row[2])
	if err != nil {
		return PlayActivityRow{}, errors.Wrap(err, "campo PlayCount")
	}

	totalDuration, err := fieldFloat(row[3])
	if err != nil {
		return PlayActivityRow{}, errors.Wrap(err, "campo TotalDuration")
	}

	return PlayActivityRow{
		ItemID:        fieldString(row[0]),
		ItemName:      fieldString(row[1]),
		PlayCount:     playCount,
		TotalDuration: totalDuration,
	}, nil
}

// MapSkipActivityRow converte uma tupla posicional em SkipActivityRow.
// Este é o único lugar onde a ordem dos campos da consulta de mais puladas
// importa.
func MapSkipActivityRow(row []any) (SkipActivityRow, error) {
	if len(row) < 5 {
		return SkipActivityRow{}, errors.Wrapf(ErrMalformedResponse, "linha com %d campos, esperados 5", len(row))
	}

	playCount, err := fieldInt(row[2])
	if err != nil {
		return SkipActivityRow{}, errors.Wrap(err, "campo PlayCount")
	}

	avgDuration, err := fieldFloat(row[3])
	if err != nil {
		return SkipActivityRow{}, errors.Wrap(err, "campo AvgDuration")
	}

	skipCount, err := fieldInt(row[4])
	if err != nil {
		return SkipActivityRow{}, errors.Wrap(err, "campo SkipCount")
	}

	return SkipActivityRow{
		ItemID:      fieldString(row[0]),
		ItemName:    fieldString(row[1]),
		PlayCount:   playCount,
		AvgDuration: avgDuration,
		SkipCount:   skipCount,
	}, nil
}

// O plugin devolve os escalares ora como string, ora como número JSON,
// dependendo da versão. Os conversores abaixo aceitam os dois formatos.

func fieldString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case nil:
		return ""
	default:
		return ""
	}
}

func fieldInt(v any) (int, error) {
	switch value := v.(type) {
	case float64:
		return int(value), nil
	case string:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, errors.Wrapf(ErrMalformedResponse, "valor %q não é inteiro", value)
		}
		return parsed, nil
	default:
		return 0, errors.Wrapf(ErrMalformedResponse, "valor %v não é numérico", v)
	}
}

func fieldFloat(v any) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case string:
		if value == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrMalformedResponse, "valor %q não é numérico", value)
		}
		return parsed, nil
	case nil:
		return 0, nil
	default:
		return 0, errors.Wrapf(ErrMalformedResponse, "valor %v não é numérico", v)
	}
}
