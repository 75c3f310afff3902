package translation

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mova.dev/relay/internal/language"
)

// textPreviewLimit bounds how much of the request text appears in log
// records. The full text never goes past this preview.
const textPreviewLimit = 50

// HistoryStore persists successful translations for reuse across calls.
// Implementations return (nil, nil) on a cache miss.
type HistoryStore interface {
	Lookup(ctx context.Context, text, sourceLang, targetLang string) (*HistoryEntry, error)
	Save(ctx context.Context, entry HistoryEntry) error
}

// HistoryEntry is one stored translation.
type HistoryEntry struct {
	SourceLang     string
	TargetLang     string
	OriginalText   string
	TranslatedText string
	Provider       string
	LatencyMS      int
}

// Options configures a Service.
type Options struct {
	Registry          *Registry
	Logger            zerolog.Logger
	EventLogCapacity  int
	DefaultSourceLang string
	DefaultTargetLang string
	// History is optional; a nil store disables the persistent cache.
	History HistoryStore
	// DetectSourceLang resolves "auto"/empty source codes. Optional.
	DetectSourceLang func(text string) string
}

// Service routes translation requests across remote providers with sticky
// rate-limit exclusion and a deterministic dictionary fallback. Translate
// never returns an error: every provider failure is converted into event log
// records and fallthrough to the next candidate.
type Service struct {
	registry      *Registry
	failures      *FailureTracker
	events        *EventLog
	backup        *BackupDictionary
	history       HistoryStore
	detect        func(text string) string
	logger        zerolog.Logger
	defaultSource string
	defaultTarget string
}

func NewService(opts Options) *Service {
	registry := opts.Registry
	if registry == nil {
		registry = NewRegistry()
	}

	defaultSource := language.NormalizeCode(opts.DefaultSourceLang)
	if defaultSource == "" {
		defaultSource = "en"
	}
	defaultTarget := language.NormalizeCode(opts.DefaultTargetLang)
	if defaultTarget == "" {
		defaultTarget = "uk"
	}

	return &Service{
		registry:      registry,
		failures:      NewFailureTracker(),
		events:        NewEventLog(opts.EventLogCapacity),
		backup:        NewBackupDictionary(),
		history:       opts.History,
		detect:        opts.DetectSourceLang,
		logger:        opts.Logger,
		defaultSource: defaultSource,
		defaultTarget: defaultTarget,
	}
}

// Translate tries every eligible provider in priority order and falls back
// to the builtin dictionary when all of them fail. Only empty input yields a
// non-succeeded result.
func (s *Service) Translate(ctx context.Context, text, sourceLang, targetLang string) Result {
	if strings.TrimSpace(text) == "" {
		s.record(Record{
			Level:   LevelWarn,
			Message: "empty text received, nothing to translate",
		})
		return Result{Succeeded: false, Text: ""}
	}

	src, tgt := s.resolveLanguagePair(text, sourceLang, targetLang)

	s.record(Record{
		Level:   LevelInfo,
		Message: "translation requested",
		Details: map[string]any{
			"preview":     previewText(text),
			"length":      len([]rune(text)),
			"source_lang": src,
			"target_lang": tgt,
		},
	})

	if cached := s.lookupHistory(ctx, text, src, tgt); cached != nil {
		return *cached
	}

	candidates := s.registry.Candidates(s.failures)
	s.record(Record{
		Level:   LevelInfo,
		Message: "candidate providers resolved",
		Details: map[string]any{
			"candidates": descriptorNames(candidates),
			"failed":     s.failures.Snapshot(),
		},
	})

	if len(candidates) == 0 {
		s.record(Record{
			Level:   LevelError,
			Message: "no providers available",
			Details: map[string]any{"failed": s.failures.Snapshot()},
		})
		return s.fallback(text)
	}

	for _, candidate := range candidates {
		started := time.Now()
		resp, err := candidate.Provider.Translate(ctx, Request{
			Text:       text,
			SourceLang: src,
			TargetLang: tgt,
		})
		if err == nil && (resp == nil || !resp.Succeeded) {
			err = &ProviderError{Provider: candidate.Name, Message: "no translation received"}
		}

		if err != nil {
			s.record(Record{
				Level:    LevelError,
				Provider: candidate.Name,
				Message:  err.Error(),
			})
			if IsRateLimit(err) {
				s.failures.MarkFailed(candidate.Name)
				s.record(Record{
					Level:    LevelWarn,
					Provider: candidate.Name,
					Message:  "provider rate limited, excluded until next success or reset",
				})
			}
			continue
		}

		elapsed := time.Since(started).Milliseconds()
		s.failures.Clear(candidate.Name)
		s.record(Record{
			Level:    LevelSuccess,
			Provider: candidate.Name,
			Message:  "translation succeeded",
			Details: map[string]any{
				"elapsed_ms":    elapsed,
				"result_length": len([]rune(resp.Text)),
			},
		})

		s.saveHistory(ctx, HistoryEntry{
			SourceLang:     src,
			TargetLang:     tgt,
			OriginalText:   text,
			TranslatedText: resp.Text,
			Provider:       candidate.Name,
			LatencyMS:      int(elapsed),
		})

		return Result{
			Succeeded: true,
			Text:      resp.Text,
			Provider:  candidate.Name,
			LatencyMs: elapsed,
		}
	}

	s.record(Record{
		Level:   LevelError,
		Message: "all providers failed",
		Details: map[string]any{"failed": s.failures.Snapshot()},
	})
	return s.fallback(text)
}

// ResetFailures clears every rate-limit exclusion mark.
func (s *Service) ResetFailures() {
	s.failures.ResetAll()
	s.record(Record{
		Level:   LevelInfo,
		Message: "provider failure marks cleared",
	})
}

// SetProviderEnabled toggles one provider in or out of the rotation.
func (s *Service) SetProviderEnabled(name string, enabled bool) error {
	if err := s.registry.SetEnabled(name, enabled); err != nil {
		return err
	}
	s.record(Record{
		Level:    LevelInfo,
		Provider: normalizeProviderName(name),
		Message:  "provider enabled flag updated",
		Details:  map[string]any{"enabled": enabled},
	})
	return nil
}

// ProviderStatus reports all providers in declaration order.
func (s *Service) ProviderStatus() []ProviderStatus {
	return s.registry.Status(s.failures)
}

// LogSnapshot returns the current event log records, oldest first.
func (s *Service) LogSnapshot() []Record {
	return s.events.Snapshot()
}

// ClearLog empties the event log. The clear is reported to the process
// logger only, so the event log never records its own lifecycle.
func (s *Service) ClearLog() {
	s.events.Clear()
	s.logger.Info().Msg("translation event log cleared")
}

func (s *Service) fallback(text string) Result {
	s.record(Record{
		Level:    LevelWarn,
		Provider: BackupProviderName,
		Message:  "falling back to builtin dictionary",
	})
	return *s.backup.Translate(text)
}

func (s *Service) resolveLanguagePair(text, sourceLang, targetLang string) (string, string) {
	src := language.NormalizeCode(sourceLang)
	if src == "" || src == "auto" {
		src = ""
		if s.detect != nil {
			if detected := language.NormalizeCode(s.detect(text)); detected != "" {
				src = detected
				s.record(Record{
					Level:   LevelInfo,
					Message: "source language detected",
					Details: map[string]any{"source_lang": detected},
				})
			}
		}
	}
	if src == "" {
		src = s.defaultSource
	}

	tgt := language.NormalizeCode(targetLang)
	if tgt == "" {
		tgt = s.defaultTarget
	}
	return src, tgt
}

func (s *Service) lookupHistory(ctx context.Context, text, src, tgt string) *Result {
	if s.history == nil {
		return nil
	}

	entry, err := s.history.Lookup(ctx, text, src, tgt)
	if err != nil {
		s.record(Record{
			Level:   LevelError,
			Message: "history lookup failed: " + err.Error(),
		})
		return nil
	}
	if entry == nil {
		return nil
	}

	s.record(Record{
		Level:    LevelInfo,
		Provider: entry.Provider,
		Message:  "translation served from history",
	})
	return &Result{
		Succeeded: true,
		Text:      entry.TranslatedText,
		Provider:  entry.Provider,
	}
}

func (s *Service) saveHistory(ctx context.Context, entry HistoryEntry) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(ctx, entry); err != nil {
		s.record(Record{
			Level:   LevelError,
			Message: "history save failed: " + err.Error(),
		})
	}
}

// record appends to the event log and mirrors the record to the process
// logger at the matching level.
func (s *Service) record(record Record) {
	s.events.Append(record)

	var event *zerolog.Event
	switch record.Level {
	case LevelError:
		event = s.logger.Error()
	case LevelWarn:
		event = s.logger.Warn()
	case LevelSuccess:
		event = s.logger.Info().Str("outcome", "success")
	default:
		event = s.logger.Info()
	}
	if record.Provider != "" {
		event = event.Str("provider", record.Provider)
	}
	if len(record.Details) > 0 {
		event = event.Fields(record.Details)
	}
	event.Msg(record.Message)
}

func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= textPreviewLimit {
		return text
	}
	return string(runes[:textPreviewLimit]) + "…"
}

func descriptorNames(descriptors []*Descriptor) []string {
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, d.Name)
	}
	return names
}
