package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"landing-builder-backend/internal/background"
	"landing-builder-backend/internal/content"
	"landing-builder-backend/internal/landing"
	"landing-builder-backend/internal/metrics"
	"landing-builder-backend/internal/models"
	"landing-builder-backend/internal/repository"
	"landing-builder-backend/pkg/cache"
	"landing-builder-backend/pkg/logger"
	"landing-builder-backend/pkg/utils"
	"landing-builder-backend/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrLandingPageNotFound = errors.New("landing page not found")
	ErrSlugTaken           = errors.New("landing page with this slug already exists")
	ErrInvalidTitle        = errors.New("landing page title is required")
	ErrIndexOutOfRange     = errors.New("list index out of range")
)

const (
	defaultRenderCacheTTL = 5 * time.Minute
	warmRenderJob         = "warm_render"
)

// Scheduler runs jobs in the background.
type Scheduler interface {
	Submit(job background.Job) error
}

// PageCache holds the rendered HTML and content JSON of published pages.
// *cache.Cache implements it.
type PageCache interface {
	GetCachedRenderedPage(ctx context.Context, slug string) (cache.RenderedPage, bool, error)
	CacheRenderedPage(ctx context.Context, slug string, page cache.RenderedPage, ttl time.Duration) error
	GetCachedPageContent(ctx context.Context, slug string) (json.RawMessage, error)
	CachePageContent(ctx context.Context, slug string, content json.RawMessage, ttl time.Duration) error
	InvalidateLandingPage(ctx context.Context, slug string) error
}

type LandingPageService struct {
	repo      repository.LandingPageRepository
	cache     PageCache
	uploads   *UploadService
	scheduler Scheduler
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewLandingPageService(repo repository.LandingPageRepository, cacheService PageCache, uploads *UploadService, cacheTTL time.Duration) *LandingPageService {
	if cacheTTL <= 0 {
		cacheTTL = defaultRenderCacheTTL
	}
	if cacheService == nil {
		cacheService = (*cache.Cache)(nil)
	}
	return &LandingPageService{
		repo:     repo,
		cache:    cacheService,
		uploads:  uploads,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// SetScheduler enables re-rendering published pages into the cache after
// every save.
func (s *LandingPageService) SetScheduler(scheduler Scheduler) {
	s.scheduler = scheduler
}

// Create stores a new unpublished page whose content holds the full defaults
// of the requested mode.
func (s *LandingPageService) Create(ctx context.Context, req models.CreateLandingPageRequest) (*models.LandingPage, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}

	mode := content.ModeTemplate
	if strings.TrimSpace(req.Mode) != "" {
		parsed, err := content.ParseMode(req.Mode)
		if err != nil {
			return nil, err
		}
		mode = parsed
	}

	base := req.Slug
	if strings.TrimSpace(base) == "" {
		base = title
	}
	slug, err := utils.UniqueSlug(utils.GenerateSlug(base), s.repo.ExistsBySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	raw, err := content.Encode(content.New(mode))
	if err != nil {
		return nil, err
	}

	page := &models.LandingPage{
		Title:   title,
		Slug:    slug,
		Content: models.RawContent(raw),
	}
	if err := s.repo.Create(page); err != nil {
		return nil, fmt.Errorf("failed to create landing page: %w", err)
	}

	logger.Info("Landing page created", map[string]interface{}{
		"page_id": page.ID,
		"slug":    page.Slug,
		"mode":    string(mode),
	})
	return page, nil
}

// Get loads a page with its content normalised.
func (s *LandingPageService) Get(ctx context.Context, id uint) (*models.LandingPage, error) {
	page, _, err := s.load(id)
	return page, err
}

// GetBySlug loads a page by slug, drafts included.
func (s *LandingPageService) GetBySlug(ctx context.Context, slug string) (*models.LandingPage, error) {
	page, err := s.repo.GetBySlugAny(slug)
	if err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, page.ID)
}

func (s *LandingPageService) List(ctx context.Context) ([]models.LandingPageSummary, error) {
	pages, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]models.LandingPageSummary, 0, len(pages))
	for _, page := range pages {
		mode := content.ModeRichText
		if c, err := content.Decode(page.Content); err == nil {
			mode = c.Mode()
		}
		summaries = append(summaries, models.LandingPageSummary{
			ID:          page.ID,
			Title:       page.Title,
			Slug:        page.Slug,
			Mode:        string(mode),
			Published:   page.Published,
			PublishedAt: page.PublishedAt,
			UpdatedAt:   page.UpdatedAt,
		})
	}
	return summaries, nil
}

// Save replaces the title, slug and content named in req. Content is
// normalised before it is stored.
func (s *LandingPageService) Save(ctx context.Context, id uint, req models.UpdateLandingPageRequest) (*models.LandingPage, error) {
	page, current, err := s.load(id)
	if err != nil {
		return nil, err
	}
	oldSlug := page.Slug

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrInvalidTitle
		}
		page.Title = title
	}

	if req.Slug != nil {
		slug := utils.GenerateSlug(*req.Slug)
		if slug == "" || !validator.IsSlug(slug) {
			return nil, fmt.Errorf("invalid slug %q", *req.Slug)
		}
		if slug != page.Slug {
			taken, err := s.repo.ExistsBySlugExceptID(slug, page.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check slug: %w", err)
			}
			if taken {
				return nil, ErrSlugTaken
			}
			page.Slug = slug
		}
	}

	next := current
	if len(req.Content) > 0 {
		decoded, err := content.Decode(req.Content)
		if err != nil {
			return nil, err
		}
		next = decoded
	}

	if err := s.store(ctx, page, next); err != nil {
		return nil, err
	}
	if oldSlug != page.Slug {
		s.invalidate(ctx, oldSlug)
	}
	return page, nil
}

func (s *LandingPageService) Publish(ctx context.Context, id uint) (*models.LandingPage, error) {
	return s.setPublished(ctx, id, true)
}

func (s *LandingPageService) Unpublish(ctx context.Context, id uint) (*models.LandingPage, error) {
	return s.setPublished(ctx, id, false)
}

func (s *LandingPageService) setPublished(ctx context.Context, id uint, published bool) (*models.LandingPage, error) {
	page, current, err := s.load(id)
	if err != nil {
		return nil, err
	}

	page.Published = published
	if published {
		now := s.now().UTC()
		page.PublishedAt = &now
	} else {
		page.PublishedAt = nil
	}

	if err := s.store(ctx, page, current); err != nil {
		return nil, err
	}
	logger.Info("Landing page publication changed", map[string]interface{}{
		"page_id":   page.ID,
		"slug":      page.Slug,
		"published": published,
	})
	return page, nil
}

func (s *LandingPageService) Delete(ctx context.Context, id uint) error {
	page, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(page.ID); err != nil {
		return fmt.Errorf("failed to delete landing page: %w", err)
	}
	s.invalidate(ctx, page.Slug)
	return nil
}

// Duplicate copies a page into a new unpublished page.
func (s *LandingPageService) Duplicate(ctx context.Context, id uint) (*models.LandingPage, error) {
	source, current, err := s.load(id)
	if err != nil {
		return nil, err
	}

	slug, err := utils.UniqueSlug(source.Slug+"-copy", s.repo.ExistsBySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	raw, err := content.Encode(current)
	if err != nil {
		return nil, err
	}

	page := &models.LandingPage{
		Title:   source.Title + " (copy)",
		Slug:    slug,
		Content: models.RawContent(raw),
	}
	if err := s.repo.Create(page); err != nil {
		return nil, fmt.Errorf("failed to duplicate landing page: %w", err)
	}
	return page, nil
}

// Preview renders any page, published or not, with builder data attributes.
func (s *LandingPageService) Preview(ctx context.Context, id uint) (string, error) {
	_, current, err := s.load(id)
	if err != nil {
		return "", err
	}
	html := content.Render(current, renderOptions(true))
	metrics.ObserveRender(string(current.Mode()), metrics.SourceRender, len(html))
	return html, nil
}

// RenderPublished renders the published page at slug, serving from the
// cache when possible.
func (s *LandingPageService) RenderPublished(ctx context.Context, slug string) (string, error) {
	if cached, ok, err := s.cache.GetCachedRenderedPage(ctx, slug); err != nil {
		logger.Warn("Render cache lookup failed", map[string]interface{}{"slug": slug, "error": err.Error()})
	} else if ok {
		metrics.ObserveRender(cached.Mode, metrics.SourceCache, len(cached.HTML))
		return cached.HTML, nil
	}
	return s.renderToCache(ctx, slug)
}

// renderToCache renders the published page at slug from the database and
// overwrites its cache entry.
func (s *LandingPageService) renderToCache(ctx context.Context, slug string) (string, error) {
	page, err := s.repo.GetBySlug(slug)
	if err != nil {
		return "", notFound(err)
	}
	current, err := content.Decode(page.Content)
	if err != nil {
		return "", err
	}

	html := content.Render(current, renderOptions(false))
	mode := string(current.Mode())
	metrics.ObserveRender(mode, metrics.SourceRender, len(html))

	if err := s.cache.CacheRenderedPage(ctx, slug, cache.RenderedPage{Mode: mode, HTML: html}, s.cacheTTL); err != nil {
		logger.Warn("Failed to cache rendered page", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
	return html, nil
}

// PublishedContent returns the normalised content of the published page at slug.
func (s *LandingPageService) PublishedContent(ctx context.Context, slug string) (json.RawMessage, error) {
	if cached, err := s.cache.GetCachedPageContent(ctx, slug); err == nil {
		return cached, nil
	}
	return s.contentToCache(ctx, slug)
}

// contentToCache encodes the published content at slug from the database and
// overwrites its cache entry.
func (s *LandingPageService) contentToCache(ctx context.Context, slug string) (json.RawMessage, error) {
	page, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, notFound(err)
	}
	current, err := content.Decode(page.Content)
	if err != nil {
		return nil, err
	}
	raw, err := content.Encode(current)
	if err != nil {
		return nil, err
	}

	if err := s.cache.CachePageContent(ctx, slug, raw, s.cacheTTL); err != nil {
		logger.Warn("Failed to cache page content", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
	return raw, nil
}

func (s *LandingPageService) find(id uint) (*models.LandingPage, error) {
	page, err := s.repo.GetByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return page, nil
}

// load fetches a page and decodes its content. The page's Content is
// replaced with the normalised encoding.
func (s *LandingPageService) load(id uint) (*models.LandingPage, content.Content, error) {
	page, err := s.find(id)
	if err != nil {
		return nil, nil, err
	}
	current, err := content.Decode(page.Content)
	if err != nil {
		logger.Warn("Stored landing page content is unreadable, using defaults", map[string]interface{}{
			"page_id": page.ID,
			"error":   err.Error(),
		})
		current = content.New(content.ModeRichText)
	}
	raw, err := content.Encode(current)
	if err != nil {
		return nil, nil, err
	}
	page.Content = models.RawContent(raw)
	return page, current, nil
}

// store persists page with c as its content and drops cached renders.
// Media settings of empty template fields are dropped on the way.
func (s *LandingPageService) store(ctx context.Context, page *models.LandingPage, c content.Content) error {
	if tpl, ok := c.(content.Template); ok {
		tpl.Data = landing.PruneOrphanedMediaSettings(tpl.Data)
		c = tpl
	}
	raw, err := content.Encode(c)
	if err != nil {
		return err
	}
	page.Content = models.RawContent(raw)
	if err := s.repo.Update(page); err != nil {
		return fmt.Errorf("failed to update landing page: %w", err)
	}
	s.invalidate(ctx, page.Slug)
	if page.Published {
		s.scheduleWarmup(page.Slug)
	}
	return nil
}

func (s *LandingPageService) scheduleWarmup(slug string) {
	if s.scheduler == nil {
		return
	}
	err := s.scheduler.Submit(background.Job{
		Name:    warmRenderJob,
		Key:     warmRenderJob + ":" + slug,
		Timeout: 10 * time.Second,
		// A reader that loaded the page before the save may have cached the
		// old version after invalidation, so the job never trusts the cache.
		Run: func(ctx context.Context) error {
			if _, err := s.renderToCache(ctx, slug); err != nil {
				if errors.Is(err, ErrLandingPageNotFound) {
					return nil
				}
				return err
			}
			_, err := s.contentToCache(ctx, slug)
			return err
		},
	})
	if err != nil && !errors.Is(err, background.ErrJobPending) {
		logger.Warn("Failed to schedule render warmup", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
}

func (s *LandingPageService) invalidate(ctx context.Context, slug string) {
	if err := s.cache.InvalidateLandingPage(ctx, slug); err != nil {
		logger.Warn("Failed to invalidate landing page cache", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLandingPageNotFound
	}
	return err
}

func renderOptions(preview bool) content.RenderOptions {
	return content.RenderOptions{
		Inline:   validator.InlineSanitizer(),
		RichText: validator.RichTextSanitizer(),
		Preview:  preview,
	}
}
