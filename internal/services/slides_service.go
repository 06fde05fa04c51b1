package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/ai"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/slides"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

// DeckRenderer is the rendering boundary, satisfied by *slides.Renderer and
// mocked in tests.
type DeckRenderer interface {
	Render(ctx context.Context, deck *slides.Deck) ([]byte, error)
}

type slidesService struct {
	validator *validator.Validator
	chat      ChatCompleter
	renderer  DeckRenderer
	logger    utils.Logger
}

func NewSlidesService(v *validator.Validator, chat ChatCompleter, renderer DeckRenderer, logger utils.Logger) SlidesService {
	return &slidesService{
		validator: v,
		chat:      chat,
		renderer:  renderer,
		logger:    logger,
	}
}

// GenerateFromText asks the model for a presentation outline over the given
// text and renders it to a .pptx.
func (s *slidesService) GenerateFromText(ctx context.Context, req *validator.SlidesGenerateRequest) (*DeckFile, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	text := truncateSourceText(req.Text, maxSourceTextChars)

	content, err := s.chat.ChatCompletion(ctx, buildOutlinePrompt(req.Title, text), 0.7)
	if err != nil {
		return nil, fmt.Errorf("outline generation failed: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrGenerationEmpty
	}

	var deck slides.Deck
	if err := json.Unmarshal([]byte(content), &deck); err != nil {
		s.logger.Warn("model returned unparseable outline", "error", err)
		return nil, ErrGenerationMalformed
	}
	if deck.Title == "" {
		deck.Title = req.Title
	}
	if len(deck.Sections) == 0 {
		return nil, ErrGenerationNoSlides
	}
	deck.Style = styleFromRequest(req.Style)

	return s.render(ctx, &deck)
}

// Render builds a deck from client-provided sections, skipping the model.
func (s *slidesService) Render(ctx context.Context, req *validator.SlideDeckRequest) (*DeckFile, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	deck := slides.Deck{
		Title: req.Title,
		Style: styleFromRequest(req.Style),
	}
	for _, sec := range req.Sections {
		deck.Sections = append(deck.Sections, slides.Section{
			Title:   sec.Title,
			Bullets: sec.Bullets,
		})
	}

	return s.render(ctx, &deck)
}

func (s *slidesService) render(ctx context.Context, deck *slides.Deck) (*DeckFile, error) {
	content, err := s.renderer.Render(ctx, deck)
	if err != nil {
		return nil, fmt.Errorf("deck rendering failed: %w", err)
	}

	s.logger.Info("deck rendered", "title", deck.Title, "sections", len(deck.Sections))
	return &DeckFile{
		Name:    deckFileName(deck.Title),
		Content: content,
	}, nil
}

func styleFromRequest(style *validator.SlideStyleRequest) slides.Style {
	out := slides.Style{Mode: "automatico", Font: "Arial"}
	if style == nil {
		return out
	}
	if style.Mode != "" {
		out.Mode = style.Mode
	}
	if style.Font != "" {
		out.Font = style.Font
	}
	out.Conclusions = style.Conclusions
	out.Slides = style.Slides
	return out
}

func buildOutlinePrompt(title, text string) []ai.ChatMessage {
	system := "Eres un asistente educativo que estructura presentaciones. " +
		"Respondes únicamente con JSON válido, sin texto adicional."

	user := fmt.Sprintf(`Crea el esquema de una presentación titulada "%s" a partir del siguiente texto.
Divide el contenido en secciones con puntos clave breves.

Responde con este formato JSON:
{"tituloPresentacion": "...", "secciones": [{"titulo": "...", "bullets": ["...", "..."]}]}

Texto:
%s`, title, text)

	return []ai.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

func deckFileName(title string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "presentacion"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_", ":", "-")
	return replacer.Replace(name) + ".pptx"
}
