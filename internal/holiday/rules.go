package holiday

import (
	"time"

	"github.com/rickar/cal/v2"
)

// Fixed-date and Easter-relative holidays observed in São Paulo. Nov 20 is
// declared once and shared by the municipal and state rule lists.
var (
	ConfraternizacaoUniversal = fixed("Confraternização Universal", time.January, 1)
	Tiradentes                = fixed("Dia de Tiradentes", time.April, 21)
	DiaDoTrabalho             = fixed("Dia do Trabalho", time.May, 1)
	Independencia             = fixed("Dia da Independência do Brasil", time.September, 7)
	NossaSenhoraAparecida     = fixed("Dia de Nossa Senhora Aparecida", time.October, 12)
	Finados                   = fixed("Dia de Finados", time.November, 2)
	ProclamacaoDaRepublica    = fixed("Dia da Proclamação da República", time.November, 15)
	Natal                     = fixed("Natal", time.December, 25)
	SextaFeiraDaPaixao        = movable("Sexta-feira da Paixão", -2)

	AniversarioDeSaoPaulo = fixed("Aniversário de São Paulo", time.January, 25)
	ConscienciaNegra      = fixed("Dia da Consciência Negra", time.November, 20)
	CorpusChristiDay      = movable("Corpus Christi", 60)

	RevolucaoConstitucionalista = fixed("Revolução Constitucionalista", time.July, 9)
)

var (
	nationalRules = []*cal.Holiday{
		ConfraternizacaoUniversal,
		Tiradentes,
		DiaDoTrabalho,
		Independencia,
		NossaSenhoraAparecida,
		Finados,
		ProclamacaoDaRepublica,
		Natal,
		SextaFeiraDaPaixao,
	}

	municipalRules = []*cal.Holiday{
		AniversarioDeSaoPaulo,
		ConscienciaNegra,
		CorpusChristiDay,
	}

	stateRules = []*cal.Holiday{
		RevolucaoConstitucionalista,
		ConscienciaNegra,
	}
)

// fixedNames maps MM-DD to the name of every fixed-date rule
var fixedNames = buildFixedNames()

func fixed(name string, month time.Month, day int) *cal.Holiday {
	return &cal.Holiday{
		Name:  name,
		Type:  cal.ObservancePublic,
		Month: month,
		Day:   day,
		Func:  cal.CalcDayOfMonth,
	}
}

func movable(name string, offset int) *cal.Holiday {
	return &cal.Holiday{
		Name:   name,
		Type:   cal.ObservancePublic,
		Offset: offset,
		Func:   calcEasterOffset,
	}
}

// calcEasterOffset is a cal.HolidayFn anchored on Easter
func calcEasterOffset(h *cal.Holiday, year int) time.Time {
	return Easter(year).AddDate(0, 0, h.Offset)
}

func rulesFor(j Jurisdiction) []*cal.Holiday {
	switch j {
	case JurisdictionNational:
		return nationalRules
	case JurisdictionMunicipal:
		return municipalRules
	case JurisdictionState:
		return stateRules
	default:
		return nil
	}
}

func buildFixedNames() map[string]string {
	names := make(map[string]string)
	for _, rules := range [][]*cal.Holiday{nationalRules, municipalRules, stateRules} {
		for _, h := range rules {
			if h.Month == 0 {
				continue
			}
			names[monthDay(h.Month, h.Day)] = h.Name
		}
	}
	return names
}
