package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/costing"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/infra"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AIService turns a free-text prompt into a structured recipe draft, matched
// against the user's inventory and costed with current WACs. Nothing is
// persisted; the caller reviews the draft and saves it as a normal recipe.
type AIService interface {
	GenerateRecipe(ctx context.Context, userID uuid.UUID, req dto.GenerateRecipeRequest) (*dto.GeneratedRecipeResponse, error)
}

type aiService struct {
	client      *infra.AIClient
	cb          *infra.CircuitBreaker
	ingredients repository.IngredientRepository
}

func NewAIService(client *infra.AIClient, cb *infra.CircuitBreaker, ingredients repository.IngredientRepository) AIService {
	return &aiService{client: client, cb: cb, ingredients: ingredients}
}

// aiRecipePayload is the JSON shape the model is instructed to return.
type aiRecipePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	YieldPcs    int    `json:"yield_pcs"`
	Ingredients []struct {
		Name     string          `json:"name"`
		Quantity decimal.Decimal `json:"quantity"`
		Unit     string          `json:"unit"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// validate rejects drafts that would cost out to nonsense: a recipe needs a
// name, at least one ingredient with a positive quantity, and instructions.
func (p *aiRecipePayload) validate() error {
	if p.Name == "" || len(p.Ingredients) == 0 || len(p.Instructions) == 0 {
		return fmt.Errorf("ai: model response missing name, ingredients, or instructions")
	}
	for _, ing := range p.Ingredients {
		if !ing.Quantity.IsPositive() {
			return fmt.Errorf("ai: ingredient %q has a non-positive quantity", ing.Name)
		}
	}
	return nil
}

const systemPrompt = `You are a recipe assistant for an Indonesian home bakery.
Respond with a single JSON object and nothing else, using this exact shape:
{"name": string, "description": string, "yield_pcs": int,
 "ingredients": [{"name": string, "quantity": number, "unit": "gram"|"ml"|"pcs"}],
 "instructions": [string]}
Use Indonesian ingredient names (tepung terigu, gula pasir, telur, ...).`

func (s *aiService) GenerateRecipe(ctx context.Context, userID uuid.UUID, req dto.GenerateRecipeRequest) (*dto.GeneratedRecipeResponse, error) {
	if !s.client.Configured() {
		return nil, ErrAIUnavailable
	}

	userPrompt := req.Prompt
	if req.Servings > 0 {
		userPrompt = fmt.Sprintf("%s\n\nThe recipe should yield about %d pieces.", userPrompt, req.Servings)
	}

	var raw string
	cbErr := s.cb.Execute(func() error {
		var err error
		raw, err = s.client.Chat(ctx, systemPrompt, userPrompt)
		return err
	})
	if cbErr != nil {
		log.Warn().Err(cbErr).Msg("ai: generation call failed")
		return nil, ErrAIUnavailable
	}

	var payload aiRecipePayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return nil, fmt.Errorf("ai: model returned malformed JSON: %w", err)
	}
	if err := payload.validate(); err != nil {
		return nil, err
	}
	if payload.YieldPcs < 1 {
		payload.YieldPcs = 1
	}

	inventory, err := s.ingredients.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.GeneratedRecipeResponse{
		Name:         payload.Name,
		Description:  payload.Description,
		YieldPcs:     payload.YieldPcs,
		Instructions: payload.Instructions,
	}

	total := decimal.Zero
	for _, ing := range payload.Ingredients {
		line := dto.AIIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}

		matched, quality := matchIngredient(ing.Name, inventory)
		line.MatchQuality = quality
		if matched != nil {
			id := matched.ID.String()
			name := matched.Name
			line.MatchedID = &id
			line.MatchedName = &name

			unitCost := matched.WeightedAverageCost
			if unitCost.IsZero() {
				unitCost = matched.PricePerUnit
			}
			line.EstimatedCost = costing.Convert(ing.Quantity, ing.Unit, matched.Unit).Mul(unitCost)
		} else {
			line.EstimatedCost = fallbackCost(ing.Name, ing.Quantity, ing.Unit)
		}

		total = total.Add(line.EstimatedCost)
		resp.Ingredients = append(resp.Ingredients, line)
	}

	resp.EstimatedCost = total
	resp.CostPerUnit = total.Div(decimal.NewFromInt(int64(payload.YieldPcs)))

	margin := req.TargetMargin
	if margin <= 0 {
		margin = 40
	}
	// price = cost / (1 - margin%), rounded up to the nearest 500 rupiah
	divisor := decimal.NewFromInt(100 - int64(margin)).Div(decimal.NewFromInt(100))
	resp.SuggestedPrice = roundUpTo(resp.CostPerUnit.Div(divisor), decimal.NewFromInt(500))

	return resp, nil
}

// stripFences removes a surrounding markdown code fence if the model wrapped
// its JSON in one despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Match quality labels, best to worst.
const (
	MatchExact     = "exact"
	MatchSubstring = "substring"
	MatchToken     = "token"
	MatchFallback  = "fallback"
)

// matchIngredient resolves a model-suggested name against the inventory:
// exact (case-insensitive) first, then substring either way, then shared
// token. Returns nil with quality "fallback" when nothing matches.
func matchIngredient(name string, inventory []model.Ingredient) (*model.Ingredient, string) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, MatchFallback
	}

	for i := range inventory {
		if strings.ToLower(inventory[i].Name) == needle {
			return &inventory[i], MatchExact
		}
	}

	for i := range inventory {
		have := strings.ToLower(inventory[i].Name)
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			return &inventory[i], MatchSubstring
		}
	}

	needleTokens := strings.Fields(needle)
	var best *model.Ingredient
	bestOverlap := 0
	for i := range inventory {
		haveTokens := strings.Fields(strings.ToLower(inventory[i].Name))
		overlap := 0
		for _, nt := range needleTokens {
			for _, ht := range haveTokens {
				if nt == ht {
					overlap++
				}
			}
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = &inventory[i]
		}
	}
	if best != nil {
		return best, MatchToken
	}
	return nil, MatchFallback
}

// fallbackPrices are rough market prices per base unit (rupiah per gram, per
// ml, or per piece) used when an ingredient is not in the inventory.
var fallbackPrices = map[string]decimal.Decimal{
	"tepung terigu": decimal.NewFromInt(12),
	"gula pasir":    decimal.NewFromInt(16),
	"gula":          decimal.NewFromInt(16),
	"telur":         decimal.NewFromInt(2500), // per pcs
	"mentega":       decimal.NewFromInt(45),
	"butter":        decimal.NewFromInt(90),
	"margarin":      decimal.NewFromInt(30),
	"susu":          decimal.NewFromInt(18),
	"coklat":        decimal.NewFromInt(80),
	"keju":          decimal.NewFromInt(90),
	"ayam":          decimal.NewFromInt(38),
	"garam":         decimal.NewFromInt(5),
	"minyak":        decimal.NewFromInt(18),
	"vanili":        decimal.NewFromInt(200),
	"ragi":          decimal.NewFromInt(120),
}

var defaultFallbackPrice = decimal.NewFromInt(25)

func fallbackCost(name string, qty decimal.Decimal, unit string) decimal.Decimal {
	needle := strings.ToLower(strings.TrimSpace(name))

	price, ok := fallbackPrices[needle]
	if !ok {
		for key, p := range fallbackPrices {
			if strings.Contains(needle, key) {
				price = p
				ok = true
				break
			}
		}
	}
	if !ok {
		price = defaultFallbackPrice
	}

	// Fallback prices are per gram/ml/pcs; normalize kg and liter.
	base := costing.Convert(qty, unit, "gram")
	return base.Mul(price)
}

// roundUpTo rounds v up to the next multiple of step.
func roundUpTo(v, step decimal.Decimal) decimal.Decimal {
	if step.IsZero() {
		return v
	}
	q := v.Div(step).Ceil()
	return q.Mul(step)
}
