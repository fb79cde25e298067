package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Luis14-code/front-app-nutri/models"
)

// Fixed user-visible replies when the text-generation collaborator fails.
const (
	chatFallback  = "Estou tendo dificuldades técnicas no momento."
	chatEmptyBody = "Desculpe, não consegui processar sua solicitação."
)

const defaultGeminiModel = "gemini-2.0-flash"

// ChatMessage is one turn of a conversation with the assistant.
type ChatMessage struct {
	Role    string `json:"role"` // "user" | "model"
	Content string `json:"content"`
}

// ChatContext is the student profile injected into the system instruction.
type ChatContext struct {
	Name           string
	Goal           string
	Restrictions   string
	CaloriesTarget float64
	ProteinTarget  float64
	CarbsTarget    float64
}

// RecipeDraft is a generated recipe before persistence.
type RecipeDraft struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Calories     float64  `json:"calories"`
}

// GeminiService talks to the generative-text API. Every failure is absorbed
// at this boundary: Chat returns a fixed fallback string, AnalyzeFood returns
// nil, GenerateRecipe falls back to a local draft. Nothing here is ever fatal.
type GeminiService struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewGeminiService() *GeminiService {
	return &GeminiService{
		client:  &http.Client{Timeout: 20 * time.Second},
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   defaultGeminiModel,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
	}
}

// Wire format of the generateContent endpoint.
type geminiPart struct {
	Text string `json:"text"`
}
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}
type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiService) generate(contents []geminiContent, system string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	payload := geminiRequest{Contents: contents}
	if system != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal gemini payload: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var out geminiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("parse gemini JSON: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// Chat sends the conversation plus the coaching system instruction and
// returns the assistant's reply. Failures map to the fixed fallback.
func (g *GeminiService) Chat(messages []ChatMessage, user ChatContext, recipes []models.Recipe) string {
	var recipesCtx strings.Builder
	for _, r := range recipes {
		ingredients := "Variados"
		if len(r.Ingredients) > 0 {
			ingredients = strings.Join(r.Ingredients, ", ")
		}
		fmt.Fprintf(&recipesCtx, "- %s (Ingredientes: %s)\n", r.Title, ingredients)
	}

	system := fmt.Sprintf(`Atue como um Nutricionista Esportivo de Elite, Especialista em Fisiologia e Analista de Comportamento Alimentar.

Sua Missão Principal: Você é a autoridade máxima em recomposição corporal. Além de criar planos, sua função crítica é auditar o desempenho do aluno. Você não aceita desculpas, você analisa dados. Seu objetivo é identificar gargalos na execução, corrigir rotas e garantir que a meta seja atingida através da constância e ajuste fino.

Você é um nutricionista especialista e chef de cozinha renomado do app NutriLife.

DADOS DO USUÁRIO:
- Nome: %s
- Objetivo: %s
- Metas: %.0fkcal, Proteína %.0fg, Carbo %.0fg.
- Restrições: %s

RECEITAS NO BANCO DE DADOS:
%s
SUAS FUNÇÕES:
1. Adaptar receitas: Se o usuário disser "Tenho frango e batata", procure uma receita parecida no banco e sugira adaptações.
2. Imagens: Quando sugerir uma receita, inclua sempre a tag [Imagem: Nome da Receita] para que o app mostre a foto.
3. Seja prático: Dê as quantidades exatas baseadas nos macros do usuário.`,
		user.Name, user.Goal, user.CaloriesTarget, user.ProteinTarget, user.CarbsTarget,
		user.Restrictions, recipesCtx.String())

	contents := make([]geminiContent, 0, len(messages))
	for _, m := range messages {
		role := "model"
		if m.Role == "user" {
			role = "user"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}

	text, err := g.generate(contents, system)
	if err != nil {
		log.Printf("gemini chat: %v", err)
		return chatFallback
	}
	if strings.TrimSpace(text) == "" {
		return chatEmptyBody
	}
	return text
}

// AnalyzeFood turns a free-text description into a structured nutrient
// estimate. Any failure — transport, status, unparsable reply — yields nil;
// the caller decides how to degrade.
func (g *GeminiService) AnalyzeFood(text string) *FoodAnalysis {
	prompt := fmt.Sprintf(`Analise o alimento descrito e estime seus nutrientes.
Responda APENAS com JSON neste formato, sem texto adicional:
{"food_name": "...", "calories": 0, "protein": 0, "carbs": 0}

Alimento: %s`, text)

	reply, err := g.generate([]geminiContent{
		{Role: "user", Parts: []geminiPart{{Text: prompt}}},
	}, "")
	if err != nil {
		log.Printf("gemini analyze: %v", err)
		return nil
	}

	var analysis FoodAnalysis
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &analysis); err != nil {
		log.Printf("gemini analyze: bad payload: %v", err)
		return nil
	}
	if analysis.FoodName == "" {
		return nil
	}
	return &analysis
}

// GenerateRecipe asks for a recipe built around the given ingredients.
// When the collaborator fails, a deterministic local draft keeps the feed
// feature usable.
func (g *GeminiService) GenerateRecipe(ingredients string) *RecipeDraft {
	prompt := fmt.Sprintf(`Crie uma receita saudável usando: %s.
Responda APENAS com JSON neste formato, sem texto adicional:
{"title": "...", "description": "...", "category": "lunch", "ingredients": ["..."], "instructions": ["..."], "calories": 0}`,
		ingredients)

	reply, err := g.generate([]geminiContent{
		{Role: "user", Parts: []geminiPart{{Text: prompt}}},
	}, "")
	if err == nil {
		var draft RecipeDraft
		if jsonErr := json.Unmarshal([]byte(stripCodeFence(reply)), &draft); jsonErr == nil && draft.Title != "" {
			if draft.Category == "" {
				draft.Category = "lunch"
			}
			return &draft
		}
	} else {
		log.Printf("gemini recipe: %v", err)
	}

	parts := strings.Split(ingredients, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return &RecipeDraft{
		Title:        fmt.Sprintf("Receita Criativa com %s", ingredients),
		Description:  fmt.Sprintf("Receita gerada por IA usando %s.", ingredients),
		Category:     "lunch",
		Ingredients:  parts,
		Instructions: []string{"Misture todos os ingredientes.", "Cozinhe até dourar."},
	}
}

// stripCodeFence removes a surrounding markdown fence from a model reply.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
