package procurement

import (
	"strconv"
	"time"
)

// RunKind tipo de corrida de reposición.
type RunKind string

const (
	KindPeriodic RunKind = "periodic"
	KindShortage RunKind = "shortage"
)

// RunStatus resultado global de una corrida.
type RunStatus string

const (
	RunCompleted        RunStatus = "completed"
	RunEmpty            RunStatus = "empty"
	RunAlreadyProcessed RunStatus = "already-processed"
	RunAborted          RunStatus = "aborted"
)

// OutcomeStatus resultado de una unidad de trabajo (definición periódica o producto faltante).
type OutcomeStatus string

const (
	OutcomeProcessed    OutcomeStatus = "processed"
	OutcomeSkipped      OutcomeStatus = "skipped"
	OutcomePendingOrder OutcomeStatus = "pending-order"
	OutcomeNotScheduled OutcomeStatus = "not-scheduled"
)

// Outcome resultado por ítem. Reason solo se llena en omisiones.
type Outcome struct {
	Key           string
	CatalogNumber int
	Status        OutcomeStatus
	Reason        error
}

// RunReport resumen devuelto por el scheduler. El llamador decide reintentos o alertas;
// el scheduler nunca propaga errores de dependencias.
type RunReport struct {
	Kind      RunKind
	BranchID  int
	Status    RunStatus
	Processed int
	Outcomes  []Outcome
	Err       error
	Duration  time.Duration
}

func newReport(kind RunKind, branchID int) RunReport {
	return RunReport{Kind: kind, BranchID: branchID, Status: RunCompleted}
}

func (r *RunReport) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Status == OutcomeProcessed {
		r.Processed++
	}
}

// Skipped cuenta las unidades omitidas por error.
func (r RunReport) Skipped() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == OutcomeSkipped {
			n++
		}
	}
	return n
}

func catalogKey(catalogNumber int) string {
	return strconv.Itoa(catalogNumber)
}
