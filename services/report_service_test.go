package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Luis14-code/front-app-nutri/models"
)

// 2026-08-24 is a Monday; 2026-08-29/30 are the weekend.

func TestBuildStudentReportIsDeterministic(t *testing.T) {
	target := models.NutritionTarget{Goal: "Manutenção", CaloriesTarget: 2000, LeanMass: 1.5, FatLost: 2}
	summaries := []models.DailySummary{
		day("2026-08-24", 4, 4, 2000, 0, 2000),
		day("2026-08-25", 3, 4, 1900, 0, 2000,
			models.ExtraFood{Food: "Pizza", Cals: 400}),
	}
	activities := []models.Activity{{Date: "2026-08-25", Calories: 343}}

	first := BuildStudentReport("Ana Silva", target, summaries, activities)
	second := BuildStudentReport("Ana Silva", target, summaries, activities)
	assert.Equal(t, first, second)

	assert.Contains(t, first, "Análise de Desempenho para Ana Silva (Meta: Manutenção):")
	assert.Contains(t, first, "Taxa de Conclusão de Refeições: 88% (7 de 8)")
	assert.Contains(t, first, "Balanço Calórico Total: -100 kcal (nos últimos 2 dias)")
	assert.Contains(t, first, "Massa Magra Ganhada: 1.5 kg")
	assert.Contains(t, first, "Refeições Extras (Junk Food): 1 registros (400 kcal)")
	assert.Contains(t, first, `Erro vs. Treino: 1 dias de "erro" coincidiram com dias de treino.`)
}

func TestReportRedAlertForWeightLossInSurplus(t *testing.T) {
	target := models.NutritionTarget{Goal: models.GoalWeightLoss, CaloriesTarget: 2000}
	summaries := []models.DailySummary{
		day("2026-08-24", 4, 4, 2500, 0, 2000,
			models.ExtraFood{Food: "Pizza", Cals: 400}),
	}

	report := BuildStudentReport("Bruno Costa", target, summaries, nil)
	assert.Contains(t, report, "Alerta Vermelho")
	assert.Contains(t, report, "Balanço Calórico Total: +500 kcal")
	assert.Contains(t, report, "redução de 400 kcal de refeições extras")
}

func TestReportYellowAlertForHypertrophyInDeficit(t *testing.T) {
	target := models.NutritionTarget{Goal: models.GoalHypertrophy, CaloriesTarget: 3000}
	summaries := []models.DailySummary{
		day("2026-08-24", 4, 4, 2500, 0, 3000),
	}

	report := BuildStudentReport("Daniel Pereira", target, summaries, nil)
	assert.Contains(t, report, "Alerta Amarelo")
	assert.Contains(t, report, "shakes calóricos")
}

func TestReportFlagsWeekendFailurePoint(t *testing.T) {
	target := models.NutritionTarget{Goal: "Manutenção", CaloriesTarget: 2000}
	summaries := []models.DailySummary{
		day("2026-08-24", 4, 4, 2000, 0, 2000),
		day("2026-08-25", 4, 4, 2000, 0, 2000),
		day("2026-08-29", 1, 4, 2000, 0, 2000), // Saturday
		day("2026-08-30", 1, 4, 2000, 0, 2000), // Sunday
	}

	report := BuildStudentReport("Carla Mendes", target, summaries, nil)
	// weekday 100% vs weekend 25%: the weekend branch wins
	assert.Contains(t, report, "Aderência no Fim de Semana: 25% (Ponto de Falha? SIM)")
	assert.Contains(t, report, "Ponto de Falha Identificado")
	assert.Contains(t, report, "Refeição Livre Estratégica")
}

func TestReportAllClear(t *testing.T) {
	target := models.NutritionTarget{Goal: "Manutenção", CaloriesTarget: 2000}
	summaries := []models.DailySummary{
		day("2026-08-24", 4, 4, 2000, 0, 2000),
		day("2026-08-29", 4, 4, 2000, 0, 2000),
	}

	report := BuildStudentReport("Ana Silva", target, summaries, nil)
	assert.Contains(t, report, "Aderência no Fim de Semana: 100% (Ponto de Falha? NÃO)")
	assert.Contains(t, report, "Constância e Execução")
}
