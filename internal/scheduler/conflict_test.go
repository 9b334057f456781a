package scheduler

import (
	"testing"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/feriados"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/horario"
)

func testFeriados() *feriados.Set {
	return feriados.NewSet(feriados.Nacionais(2024, 2), []feriados.Entry{
		{Data: civil.MustParseDate("2024-06-20"), Nome: "Aniversário da Cidade"},
	})
}

func req(datas []string, h string, horas float64) Request {
	parsed := make([]civil.Date, 0, len(datas))
	for _, d := range datas {
		parsed = append(parsed, civil.MustParseDate(d))
	}
	return Request{
		Datas:   parsed,
		IDTurma: "turma-1",
		IDUc:    "uc-1",
		Horario: horario.MustParse(h),
		Horas:   horas,
	}
}

func TestEvaluateDropsSundaysAndHolidays(t *testing.T) {
	// 2024-09-01 is a Sunday, 2024-09-07 is Independência.
	decision := Evaluate(req([]string{"2024-09-01", "2024-09-02", "2024-09-07"}, "08:00-12:00", 4), nil, testFeriados())

	if !decision.Accepted() {
		t.Fatalf("Outcome = %s, want accepted", decision.Outcome)
	}
	if len(decision.Datas) != 1 || decision.Datas[0] != civil.MustParseDate("2024-09-02") {
		t.Fatalf("Datas = %v", decision.Datas)
	}
}

func TestEvaluateNoSchedulableDates(t *testing.T) {
	decision := Evaluate(req([]string{"2024-09-01", "2024-06-20", "2024-12-25"}, "08:00-12:00", 2), nil, testFeriados())

	if decision.Outcome != OutcomeNoSchedulableDates {
		t.Fatalf("Outcome = %s, want no_schedulable_dates", decision.Outcome)
	}
}

func TestEvaluateDuplicateShortCircuits(t *testing.T) {
	data := civil.MustParseDate("2024-09-02")
	existentes := map[civil.Date][]Aula{
		data: {
			{ID: "a1", IDUc: "uc-1", IDTurma: "turma-1", Data: data, Horario: horario.MustParse("08:00-12:00"), Horas: 4},
			{ID: "a2", IDUc: "uc-2", IDTurma: "turma-1", Data: data, Horario: horario.MustParse("08:00-12:00"), Horas: 4},
		},
	}

	decision := Evaluate(req([]string{"2024-09-02"}, "08:00-12:00", 2), existentes, testFeriados())
	if decision.Outcome != OutcomeDuplicate {
		t.Fatalf("Outcome = %s, want duplicate", decision.Outcome)
	}
	if decision.Conflito == nil || decision.Conflito.ID != "a1" {
		t.Fatalf("Conflito = %+v, want aula a1", decision.Conflito)
	}
}

func TestEvaluateOverlapPair(t *testing.T) {
	data := civil.MustParseDate("2024-09-02")
	existentes := map[civil.Date][]Aula{
		data: {{ID: "a1", IDUc: "uc-2", IDTurma: "turma-1", Data: data, Horario: horario.MustParse("09:00-11:00"), Horas: 2}},
	}

	decision := Evaluate(req([]string{"2024-09-02"}, "10:00-12:00", 2), existentes, testFeriados())
	if decision.Outcome != OutcomeIntervalConflict {
		t.Fatalf("Outcome = %s, want interval_conflict", decision.Outcome)
	}
	if decision.Conflito == nil || decision.Conflito.ID != "a1" {
		t.Fatalf("Conflito = %+v", decision.Conflito)
	}
}

func TestEvaluateTouchingIntervalsDoNotConflict(t *testing.T) {
	data := civil.MustParseDate("2024-09-02")
	existentes := map[civil.Date][]Aula{
		data: {{ID: "a1", IDUc: "uc-2", IDTurma: "turma-1", Data: data, Horario: horario.MustParse("08:00-12:00"), Horas: 4}},
	}

	decision := Evaluate(req([]string{"2024-09-02"}, "12:00-14:00", 2), existentes, testFeriados())
	if !decision.Accepted() {
		t.Fatalf("Outcome = %s, want accepted", decision.Outcome)
	}
}

func TestEvaluateNightCapacityExceeded(t *testing.T) {
	data := civil.MustParseDate("2024-09-02")
	existentes := map[civil.Date][]Aula{
		data: {{ID: "a1", IDUc: "uc-2", IDTurma: "turma-1", Data: data, Horario: horario.MustParse("19:00-22:00"), Horas: 2}},
	}

	decision := Evaluate(req([]string{"2024-09-02"}, "19:00-22:00", 2), existentes, testFeriados())
	if decision.Outcome != OutcomeCapacityExceeded {
		t.Fatalf("Outcome = %s, want capacity_exceeded", decision.Outcome)
	}
	if decision.LimiteHoras != 3 {
		t.Fatalf("LimiteHoras = %v, want 3", decision.LimiteHoras)
	}
	if decision.Conflito == nil || decision.Conflito.ID != "a1" {
		t.Fatalf("Conflito = %+v", decision.Conflito)
	}
}

func TestEvaluateDayCapacityBoundaryAccepted(t *testing.T) {
	data := civil.MustParseDate("2024-09-02")
	existentes := map[civil.Date][]Aula{
		data: {{ID: "a1", IDUc: "uc-2", IDTurma: "turma-1", Data: data, Horario: horario.MustParse("08:00-12:00"), Horas: 3}},
	}

	// 3h + 1h equals the day cap of 4h: equal to cap is not an excess.
	decision := Evaluate(req([]string{"2024-09-02"}, "08:00-12:00", 1), existentes, testFeriados())
	if !decision.Accepted() {
		t.Fatalf("Outcome = %s, want accepted", decision.Outcome)
	}
}

func TestEvaluateFractionalHoursCompareExactly(t *testing.T) {
	data := civil.MustParseDate("2024-09-02")
	existentes := map[civil.Date][]Aula{
		data: {{ID: "a1", IDUc: "uc-2", IDTurma: "turma-1", Data: data, Horario: horario.MustParse("19:00-22:00"), Horas: 1.5}},
	}

	ok := Evaluate(req([]string{"2024-09-02"}, "19:00-22:00", 1.5), existentes, testFeriados())
	if !ok.Accepted() {
		t.Fatalf("1.5h + 1.5h under 3h cap rejected: %s", ok.Outcome)
	}

	over := Evaluate(req([]string{"2024-09-02"}, "19:00-22:00", 1.75), existentes, testFeriados())
	if over.Outcome != OutcomeCapacityExceeded {
		t.Fatalf("1.5h + 1.75h over 3h cap accepted: %s", over.Outcome)
	}
}

func TestEvaluateBatchAbortsOnFirstFailingDate(t *testing.T) {
	conflita := civil.MustParseDate("2024-09-03")
	existentes := map[civil.Date][]Aula{
		conflita: {{ID: "a1", IDUc: "uc-2", IDTurma: "turma-1", Data: conflita, Horario: horario.MustParse("09:00-10:00"), Horas: 1}},
	}

	decision := Evaluate(req([]string{"2024-09-02", "2024-09-03", "2024-09-04"}, "08:00-12:00", 4), existentes, testFeriados())
	if decision.Outcome != OutcomeIntervalConflict {
		t.Fatalf("Outcome = %s, want interval_conflict", decision.Outcome)
	}
	if decision.Data != conflita {
		t.Fatalf("failing date = %s, want %s", decision.Data, conflita)
	}
}

func TestEvaluateExcludesEditedAula(t *testing.T) {
	data := civil.MustParseDate("2024-09-02")
	existentes := map[civil.Date][]Aula{
		data: {{ID: "editada", IDUc: "uc-1", IDTurma: "turma-1", Data: data, Horario: horario.MustParse("08:00-12:00"), Horas: 4}},
	}

	r := req([]string{"2024-09-02"}, "08:00-12:00", 4)
	r.ExcluirAula = "editada"

	decision := Evaluate(r, existentes, testFeriados())
	if !decision.Accepted() {
		t.Fatalf("edit re-check conflicted with itself: %s", decision.Outcome)
	}
}

func TestEvaluateEmptyDayPassesTrivially(t *testing.T) {
	decision := Evaluate(req([]string{"2024-09-02"}, "08:00-12:00", 4), map[civil.Date][]Aula{}, testFeriados())
	if !decision.Accepted() {
		t.Fatalf("Outcome = %s, want accepted", decision.Outcome)
	}
}
