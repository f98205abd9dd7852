package menu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"sales-assistant/internal/llm"
	"sales-assistant/internal/shared/metrics"
	"sales-assistant/internal/shared/storage/object"
	"sales-assistant/internal/shared/telemetry"
	"sales-assistant/internal/shared/util"
)

const (
	// DefaultMaxUploadBytes caps a menu image at 10 MiB.
	DefaultMaxUploadBytes = 10 << 20

	storeNamespace = "menus"
)

// AllowedExtensions lists accepted upload extensions, lower-case and without the dot.
var AllowedExtensions = []string{"jpg", "jpeg", "png"}

// Service stores menu images, runs the analyzer and records results.
type Service struct {
	Store          object.ObjectStore
	Repo           Repo
	Analyzer       llm.Analyzer
	MaxUploadBytes int64
	Now            func() time.Time
}

func (s *Service) maxUploadBytes() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return DefaultMaxUploadBytes
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CheckExtension reports whether fileName carries an allowed image extension.
func CheckExtension(fileName string) error {
	if !slices.Contains(AllowedExtensions, util.FileExt(fileName)) {
		return ErrFileType
	}
	return nil
}

// Analyze validates, stores and analyzes one menu image.
func (s *Service) Analyze(ctx context.Context, fileName string, r io.Reader) (Analysis, error) {
	if strings.TrimSpace(fileName) == "" {
		return Analysis{}, ErrInvalidInput
	}
	if err := CheckExtension(fileName); err != nil {
		return Analysis{}, err
	}

	limit := s.maxUploadBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Analysis{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return Analysis{}, ErrFileTooLarge
	}
	if len(data) == 0 {
		return Analysis{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, storeNamespace, fileName, bytes.NewReader(data))
	if err != nil {
		return Analysis{}, fmt.Errorf("store menu image: %w", err)
	}
	mimeType = imageMimeType(fileName, mimeType)

	created := s.now()
	analysis := Analysis{
		ID:         uuid.NewString(),
		FileName:   fileName,
		StorageKey: storageKey,
		MimeType:   mimeType,
		SizeBytes:  size,
		SHA256:     util.SHA256Hex(data),
		CreatedAt:  created,
	}

	metrics.IncMenuAnalysisStarted()
	start := time.Now()
	items, err := s.Analyzer.AnalyzeMenuImage(ctx, data, mimeType)
	metrics.ObserveMenuAnalysisDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.IncMenuAnalysisFailed()
		analysis.Status = StatusFailed
		analysis.Error = err.Error()
		analysis.UpdatedAt = s.now()
		if repoErr := s.Repo.Create(ctx, analysis); repoErr != nil {
			telemetry.Warn("menu.analysis.persist_failed", map[string]any{"analysis_id": analysis.ID, "err": repoErr.Error()})
		}
		telemetry.Error("menu.analysis.failed", map[string]any{"analysis_id": analysis.ID, "err": err.Error()})
		return Analysis{}, &AnalyzeError{Err: err}
	}

	analysis.MenuItems = normalizeItems(items)
	analysis.Status = StatusCompleted
	analysis.UpdatedAt = s.now()
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, fmt.Errorf("save analysis: %w", err)
	}
	metrics.IncMenuAnalysisCompleted(len(analysis.MenuItems))
	telemetry.Info("menu.analysis.completed", map[string]any{
		"analysis_id": analysis.ID,
		"items":       len(analysis.MenuItems),
		"size_bytes":  size,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return analysis, nil
}

// Get returns a stored analysis.
func (s *Service) Get(ctx context.Context, id string) (Analysis, error) {
	if strings.TrimSpace(id) == "" {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// Ingredients returns the distinct ingredients of a completed analysis.
func (s *Service) Ingredients(ctx context.Context, id string) ([]string, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Ingredients(), nil
}

// normalizeItems drops entries without name or price and makes list fields non-nil.
func normalizeItems(items []llm.MenuItem) []llm.MenuItem {
	out := make([]llm.MenuItem, 0, len(items))
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		item.Price = strings.TrimSpace(item.Price)
		if item.Name == "" || item.Price == "" {
			continue
		}
		if item.Ingredients == nil {
			item.Ingredients = []string{}
		}
		if item.Allergens == nil {
			item.Allergens = []string{}
		}
		out = append(out, item)
	}
	return out
}

// imageMimeType prefers the sniffed type and falls back to the extension.
func imageMimeType(fileName, sniffed string) string {
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); strings.HasPrefix(byExt, "image/") {
		return strings.SplitN(byExt, ";", 2)[0]
	}
	return "image/jpeg"
}
