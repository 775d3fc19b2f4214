// Package stats renders the technician statistics report. Unlike the
// equipment and training reports it is built declaratively with maroto,
// which owns row placement and pagination.
package stats

import (
	"github.com/lvillar/hospreport/format"
	"github.com/lvillar/hospreport/reports"
)

// Technician is a maintenance technician and the work orders assigned to
// them in the reported period.
type Technician struct {
	ID      int64               `json:"id"`
	Nome    string              `json:"nome"`
	Periodo string              `json:"periodo,omitempty"`
	Ordens  []reports.WorkOrder `json:"ordensServico"`
}

// Summary counts work orders by status and sums their maintenance values.
type Summary struct {
	Total       int
	Concluidas  int
	EmAndamento int
	Pendentes   int
	Outras      int
	Valor       format.Total
}

// Status buckets, matched against the accent-folded status text.
const (
	StatusDone       = "concluida"
	StatusInProgress = "em_andamento"
	StatusPending    = "pendente"
)

// Summarize tallies orders. Statuses are compared case and accent
// insensitively; anything unrecognised counts as Outras.
func Summarize(orders []reports.WorkOrder, policy format.ZeroPolicy) Summary {
	s := Summary{Total: len(orders), Valor: format.Total{Policy: policy}}
	for _, o := range orders {
		switch Bucket(o.Status) {
		case StatusDone:
			s.Concluidas++
		case StatusInProgress:
			s.EmAndamento++
		case StatusPending:
			s.Pendentes++
		default:
			s.Outras++
		}
		s.Valor.Add(o.ValorManutencao)
	}
	return s
}

// Bucket maps a backend status to StatusDone, StatusInProgress,
// StatusPending or "".
func Bucket(status *string) string {
	if status == nil {
		return ""
	}
	switch format.Slug(*status) {
	case "concluida", "concluido", "finalizada", "finalizado":
		return StatusDone
	case "em_andamento", "em_execucao":
		return StatusInProgress
	case "pendente", "aberta", "aberto":
		return StatusPending
	}
	return ""
}
