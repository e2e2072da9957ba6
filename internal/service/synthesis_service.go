package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eduscribe/eduscribe-api/internal/models"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
	"github.com/eduscribe/eduscribe-api/pkg/llm"
)

type llmCompleter interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
	Configured() bool
}

type synthesisNoteCreator interface {
	Create(ctx context.Context, note *models.Note) error
}

// TranscriptionChunk is one piece of live transcription text.
type TranscriptionChunk struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SynthesizeRequest carries the material for one synthesis pass.
type SynthesizeRequest struct {
	Transcriptions []TranscriptionChunk `json:"transcriptions"`
	RAGContext     []string             `json:"rag_context"`
	PreviousNotes  string               `json:"previous_notes"`
}

// SynthesizeResult returns the persisted note and provenance.
type SynthesizeResult struct {
	Note               models.Note `json:"note"`
	TranscriptionCount int         `json:"transcription_count"`
	LectureID          string      `json:"lecture_id"`
}

// TopicShiftRequest asks whether the lecture moved to a new topic.
type TopicShiftRequest struct {
	Current  string   `json:"current"`
	Previous []string `json:"previous"`
}

// Prompt bounds keep requests under the provider's payload and rate limits.
const (
	maxContextChunks   = 2
	maxPreviousChars   = 300
	maxFallbackBullets = 10
	minSentenceLength  = 20
)

const synthesisSystemPrompt = `You are an expert note-taker. Fix transcription errors and create clear, accurate lecture notes.

Rules:
1. Fix speech recognition errors (wrong words, grammar mistakes)
2. Use document context for correct terminology
3. Write clear, educational notes
4. Use ## for topics, ### for subtopics, bullets for details
5. Use **bold** for key terms`

// Phrases that indicate the lecturer moved on to a new topic.
var topicTransitionKeywords = []string{
	"now let's move on",
	"next topic",
	"moving on to",
	"let's discuss",
	"now we'll talk about",
	"switching to",
	"another important topic",
}

// SynthesisService rewrites transcription text into formatted notes. The
// external provider is best-effort: any failure degrades to a deterministic
// local transform so a note is always produced.
type SynthesisService struct {
	client   llmCompleter
	lectures noteLectureFinder
	notes    synthesisNoteCreator
	cache    dashboardInvalidator
	logger   *zap.Logger
}

// NewSynthesisService creates a synthesis service.
func NewSynthesisService(client llmCompleter, lectures noteLectureFinder, notes synthesisNoteCreator, cache dashboardInvalidator, logger *zap.Logger) *SynthesisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SynthesisService{client: client, lectures: lectures, notes: notes, cache: cache, logger: logger}
}

// Synthesize produces, persists and returns a note for an owned lecture.
func (s *SynthesisService) Synthesize(ctx context.Context, lectureID, userID string, req SynthesizeRequest) (*SynthesizeResult, error) {
	if _, err := s.lectures.FindByID(ctx, lectureID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lecture not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecture")
	}

	parts := make([]string, 0, len(req.Transcriptions))
	for _, chunk := range req.Transcriptions {
		parts = append(parts, chunk.Text)
	}
	transcription := strings.Join(parts, "\n")
	if strings.TrimSpace(transcription) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no transcription content to synthesize")
	}

	content, source := s.generate(ctx, transcription, req.RAGContext, req.PreviousNotes)

	note := &models.Note{
		LectureID: lectureID,
		Content:   content,
		Source:    source,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist note")
	}

	if s.cache != nil {
		if err := s.cache.InvalidateStats(ctx, userID); err != nil {
			s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
		}
	}

	return &SynthesizeResult{
		Note:               *note,
		TranscriptionCount: len(req.Transcriptions),
		LectureID:          lectureID,
	}, nil
}

// DetectTopicShift reports whether the current transcription contains a
// transition phrase. Returns false when there is no prior context.
func (s *SynthesisService) DetectTopicShift(req TopicShiftRequest) bool {
	if len(req.Previous) == 0 {
		return false
	}

	current := strings.ToLower(req.Current)
	for _, keyword := range topicTransitionKeywords {
		if strings.Contains(current, keyword) {
			return true
		}
	}
	return false
}

func (s *SynthesisService) generate(ctx context.Context, transcription string, ragContext []string, previousNotes string) (string, string) {
	if s.client == nil || !s.client.Configured() {
		s.logger.Warn("llm client not configured, using fallback synthesis")
		return FallbackNotes(transcription), models.NoteSourceFallback
	}

	result, err := s.client.Complete(ctx, []llm.Message{
		{Role: "system", Content: synthesisSystemPrompt},
		{Role: "user", Content: buildUserPrompt(transcription, ragContext, previousNotes)},
	})
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrPayloadTooLarge):
			s.logger.Warn("synthesis payload too large, using fallback", zap.Error(err))
		case errors.Is(err, llm.ErrRateLimited):
			s.logger.Warn("synthesis rate limited, using fallback", zap.Error(err))
		default:
			s.logger.Warn("synthesis failed, using fallback", zap.Error(err))
		}
		return FallbackNotes(transcription), models.NoteSourceFallback
	}
	if strings.TrimSpace(result) == "" {
		return FallbackNotes(transcription), models.NoteSourceFallback
	}

	return result, models.NoteSourceLLM
}

func buildUserPrompt(transcription string, ragContext []string, previousNotes string) string {
	context := "No context"
	if len(ragContext) > 0 {
		limit := len(ragContext)
		if limit > maxContextChunks {
			limit = maxContextChunks
		}
		context = strings.Join(ragContext[:limit], "\n")
	}

	previous := "First notes"
	if previousNotes != "" {
		previous = previousNotes
		if len(previous) > maxPreviousChars {
			previous = previous[:maxPreviousChars]
		}
	}

	return fmt.Sprintf(`Fix transcription errors and create clear lecture notes.

TRANSCRIPTION (has errors):
%s

REFERENCE MATERIAL:
%s

PREVIOUS NOTES:
%s

Create organized notes with ## headers, ### subheaders, and bullet points. Fix all errors.`, transcription, context, previous)
}

// FallbackNotes deterministically formats raw transcription into basic notes
// when the external provider is unavailable.
func FallbackNotes(transcription string) string {
	var b strings.Builder
	b.WriteString("## Lecture Notes\n\n")
	b.WriteString("### Key Points\n\n")

	bullets := 0
	for _, sentence := range strings.Split(transcription, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minSentenceLength {
			continue
		}
		b.WriteString("- " + capitalize(sentence) + "\n")
		bullets++
		if bullets >= maxFallbackBullets {
			break
		}
	}

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
