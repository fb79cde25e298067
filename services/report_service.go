package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Luis14-code/front-app-nutri/models"
)

// BuildStudentReport writes the behaviour analysis for a student from raw
// history. It is fully deterministic: same inputs, same text. The numbers
// feed four verdict branches checked in order — eating over target on a
// weight-loss goal, eating under target on a bulking goal, a weekend
// adherence drop of more than ten points, and finally the all-clear.
func BuildStudentReport(
	name string,
	target models.NutritionTarget,
	summaries []models.DailySummary,
	activities []models.Activity,
) string {
	totalDays := len(summaries)

	var totalMeals, completedMeals int
	var weekendMeals, weekendCompleted int
	var extraFoodCount int
	var extraFoodCals float64
	var calDifference float64

	activityDates := make(map[string]bool, len(activities))
	for _, a := range activities {
		activityDates[a.Date] = true
	}
	extraFoodOnTrainingDays := 0

	for _, day := range summaries {
		totalMeals += day.TotalMeals
		completedMeals += day.MealsCompleted
		calDifference += day.CalsConsumed - day.CalsTarget

		if isWeekend(day.Date) {
			weekendMeals += day.TotalMeals
			weekendCompleted += day.MealsCompleted
		}

		extraFoodCount += len(day.ExtraFood)
		for _, food := range day.ExtraFood {
			extraFoodCals += food.Cals
		}
		if len(day.ExtraFood) > 0 && activityDates[day.Date] {
			extraFoodOnTrainingDays++
		}
	}

	completionRate := 0
	if totalMeals > 0 {
		completionRate = roundPct(completedMeals, totalMeals)
	}
	weekendRate := 100
	if weekendMeals > 0 {
		weekendRate = roundPct(weekendCompleted, weekendMeals)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Análise de Desempenho para %s (Meta: %s):\n\n", name, target.Goal)

	b.WriteString("1. Aderência Geral:\n")
	fmt.Fprintf(&b, "- Taxa de Conclusão de Refeições: %d%% (%d de %d)\n", completionRate, completedMeals, totalMeals)
	fmt.Fprintf(&b, "- Balanço Calórico Total: %s kcal (nos últimos %d dias)\n", signedKcal(calDifference), totalDays)
	fmt.Fprintf(&b, "- Massa Magra Ganhada: %g kg\n", target.LeanMass)
	fmt.Fprintf(&b, "- Gordura Perdida: %g kg\n\n", target.FatLost)

	b.WriteString("2. Padrão de Erro (Auditoria):\n")
	failFlag := "NÃO"
	if weekendRate < completionRate {
		failFlag = "SIM"
	}
	fmt.Fprintf(&b, "- Aderência no Fim de Semana: %d%% (Ponto de Falha? %s)\n", weekendRate, failFlag)
	fmt.Fprintf(&b, "- Refeições Extras (Junk Food): %d registros (%g kcal)\n", extraFoodCount, extraFoodCals)
	fmt.Fprintf(&b, "- Erro vs. Treino: %d dias de \"erro\" coincidiram com dias de treino.\n\n", extraFoodOnTrainingDays)

	b.WriteString("3. Análise e Ajuste Fino (Nutricionista Esportivo de Elite):\n")
	switch {
	case target.Goal == models.GoalWeightLoss && calDifference > 0:
		b.WriteString("❌ **Alerta Vermelho:** A meta é Perda de Peso, mas o balanço calórico está positivo. O aluno está comendo mais do que o planejado.\n")
		fmt.Fprintf(&b, "   - **Ajuste:** Focar na redução de %g kcal de refeições extras. Sugerir substituições de lanches da tarde (ponto de falha comum) por opções de alto volume e baixa caloria.\n", extraFoodCals)
	case target.Goal == models.GoalHypertrophy && calDifference < 0:
		b.WriteString("❌ **Alerta Amarelo:** A meta é Hipertrofia, mas o balanço calórico está negativo. O aluno não está consumindo calorias suficientes para o ganho de massa.\n")
		b.WriteString("   - **Ajuste:** Aumentar a densidade calórica das refeições principais. Sugerir a inclusão de shakes calóricos (com carboidratos e proteínas) nos dias de treino para otimizar a recuperação.\n")
	case weekendRate < completionRate-10:
		b.WriteString("⚠️ **Ponto de Falha Identificado:** Aderência cai drasticamente no fim de semana. Isso sabota a constância.\n")
		b.WriteString("   - **Ajuste:** Implementar uma 'Refeição Livre Estratégica' no fim de semana, mantendo as outras refeições do plano. Focar em estratégias de controle de ansiedade/socialização.\n")
	default:
		b.WriteString("✅ **Constância e Execução:** O aluno está com boa aderência e no caminho certo para a meta. Manter o plano e monitorar os resultados de recomposição corporal (massa magra/gordura).\n")
	}

	return b.String()
}

func isWeekend(date string) bool {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func roundPct(part, whole int) int {
	return int(float64(part)/float64(whole)*100 + 0.5)
}

func signedKcal(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%g", v)
	}
	return fmt.Sprintf("%g", v)
}

// ReportService builds the behaviour report from the stored history.
type ReportService struct {
	db    *gorm.DB
	users *UserService
}

func NewReportService(db *gorm.DB, users *UserService) *ReportService {
	return &ReportService{db: db, users: users}
}

// Report loads the student's full history and writes the analysis text.
func (s *ReportService) Report(studentID uint) (string, error) {
	student, err := s.users.FindByID(studentID)
	if err != nil {
		return "", err
	}
	target, err := s.users.LatestTarget(studentID)
	if err != nil {
		return "", err
	}

	var summaries []models.DailySummary
	err = s.db.Preload("ExtraFood").
		Where("user_id = ?", studentID).
		Order("date ASC").
		Find(&summaries).Error
	if err != nil {
		return "", err
	}
	var activities []models.Activity
	err = s.db.Where("user_id = ?", studentID).
		Order("date ASC").
		Find(&activities).Error
	if err != nil {
		return "", err
	}

	return BuildStudentReport(student.Name, target, summaries, activities), nil
}
