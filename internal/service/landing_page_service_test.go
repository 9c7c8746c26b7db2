package service

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"landing-builder-backend/internal/background"
	"landing-builder-backend/internal/content"
	"landing-builder-backend/internal/document"
	"landing-builder-backend/internal/landing"
	"landing-builder-backend/internal/models"
	"landing-builder-backend/internal/repository"
	"landing-builder-backend/internal/storage"
	"landing-builder-backend/pkg/cache"
	"landing-builder-backend/pkg/media"
)

type landingFixture struct {
	svc       *LandingPageService
	uploadDir string
}

func setupLandingService(t *testing.T) landingFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LandingPage{}))

	c, err := cache.NewCache("", false)
	require.NoError(t, err)

	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	svc := NewLandingPageService(repository.NewLandingPageRepository(db), c, NewUploadService(store, 1<<20), 0)
	return landingFixture{svc: svc, uploadDir: dir}
}

func templateOf(t *testing.T, page *models.LandingPage) landing.TemplateData {
	t.Helper()
	decoded, err := content.Decode(page.Content)
	require.NoError(t, err)
	tpl, err := content.AsTemplate(decoded)
	require.NoError(t, err)
	return tpl.Data
}

func freeFormOf(t *testing.T, page *models.LandingPage) content.FreeForm {
	t.Helper()
	decoded, err := content.Decode(page.Content)
	require.NoError(t, err)
	doc, err := content.AsFreeForm(decoded)
	require.NoError(t, err)
	return doc
}

func TestLandingPageService_CreateTemplatePage(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Spring Launch"})
	require.NoError(t, err)
	assert.Equal(t, "spring-launch", page.Slug)
	assert.False(t, page.Published)

	want, err := json.Marshal(landing.Defaults())
	require.NoError(t, err)
	got, err := json.Marshal(templateOf(t, page))
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))

	second, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Spring Launch"})
	require.NoError(t, err)
	assert.Equal(t, "spring-launch-2", second.Slug)
}

func TestLandingPageService_CreateRichTextPage(t *testing.T) {
	f := setupLandingService(t)

	page, err := f.svc.Create(context.Background(), models.CreateLandingPageRequest{Title: "Notes", Mode: "richText"})
	require.NoError(t, err)

	doc := freeFormOf(t, page)
	want, err := json.Marshal(document.Empty())
	require.NoError(t, err)
	got, err := json.Marshal(doc.Document)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
	assert.Equal(t, document.DefaultSettings(), doc.Settings)
}

func TestLandingPageService_CreateValidation(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "  "})
	assert.ErrorIs(t, err, ErrInvalidTitle)

	_, err = f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Page", Mode: "wiki"})
	assert.ErrorIs(t, err, content.ErrUnknownMode)
}

func TestLandingPageService_TemplateEditsPersist(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Launch"})
	require.NoError(t, err)

	_, err = f.svc.UpdateSection(ctx, page.ID, landing.SectionHero, json.RawMessage(`{"headline":"Doors open"}`))
	require.NoError(t, err)
	_, err = f.svc.UpdateColor(ctx, page.ID, landing.ColorPrimary, "#123456")
	require.NoError(t, err)
	_, err = f.svc.ReorderSections(ctx, page.ID, landing.SectionFooter, landing.SectionHero)
	require.NoError(t, err)
	_, err = f.svc.SetFloatingButton(ctx, page.ID, true, landing.SectionInvitation)
	require.NoError(t, err)

	loaded, err := f.svc.Get(ctx, page.ID)
	require.NoError(t, err)
	data := templateOf(t, loaded)
	assert.Equal(t, "Doors open", data.Hero.Headline)
	assert.Equal(t, "#123456", data.Colors.Primary)
	assert.Equal(t, landing.SectionFooter, data.SectionOrder[0])
	assert.Equal(t, landing.FloatingButton{Enabled: true, Section: landing.SectionInvitation}, data.FloatingButton)

	moved, err := f.svc.MoveSection(ctx, page.ID, landing.SectionHero, -1)
	require.NoError(t, err)
	order := templateOf(t, moved).SectionOrder
	assert.Equal(t, landing.SectionHero, order[0])
	assert.Equal(t, landing.SectionFooter, order[1])

	_, err = f.svc.SetFloatingButton(ctx, page.ID, true, landing.SectionGallery)
	assert.ErrorIs(t, err, landing.ErrInvalidFloatingSection)
}

func TestLandingPageService_ListItems(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Launch"})
	require.NoError(t, err)
	before := len(templateOf(t, page).Why.Points)

	page, err = f.svc.AppendItem(ctx, page.ID, landing.SectionWhy, "points")
	require.NoError(t, err)
	assert.Len(t, templateOf(t, page).Why.Points, before+1)

	page, err = f.svc.UpdateItem(ctx, page.ID, landing.SectionWhy, "points", before, json.RawMessage(`{"title":"New point"}`))
	require.NoError(t, err)
	assert.Equal(t, "New point", templateOf(t, page).Why.Points[before].Title)

	_, err = f.svc.UpdateItem(ctx, page.ID, landing.SectionWhy, "points", before+5, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = f.svc.RemoveItem(ctx, page.ID, landing.SectionWhy, "points", -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	page, err = f.svc.RemoveItem(ctx, page.ID, landing.SectionWhy, "points", before)
	require.NoError(t, err)
	assert.Len(t, templateOf(t, page).Why.Points, before)

	_, err = f.svc.AppendItem(ctx, page.ID, landing.SectionWhy, "nope")
	assert.ErrorIs(t, err, landing.ErrUnknownList)
}

func TestLandingPageService_MediaFields(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Launch"})
	require.NoError(t, err)

	_, err = f.svc.SetMediaOptions(ctx, page.ID, "hero.media", media.Options{Autoplay: true})
	assert.ErrorIs(t, err, landing.ErrNoMedia)

	page, err = f.svc.SetMedia(ctx, page.ID, "hero.media", "https://youtu.be/abc123")
	require.NoError(t, err)
	page, err = f.svc.SetMediaOptions(ctx, page.ID, "hero.media", media.Options{Autoplay: true, Mute: false})
	require.NoError(t, err)

	data := templateOf(t, page)
	assert.Equal(t, "https://youtu.be/abc123", data.Hero.Media)
	assert.Equal(t, media.Options{Autoplay: true}, data.MediaSettings[landing.FieldKey(landing.SectionHero, "media")])

	page, err = f.svc.SetMedia(ctx, page.ID, "hero.media", "")
	require.NoError(t, err)
	assert.Empty(t, templateOf(t, page).MediaSettings)

	_, err = f.svc.SetMedia(ctx, page.ID, "why.points.99.image", "/uploads/a.png")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = f.svc.SetMedia(ctx, page.ID, "hero", "/uploads/a.png")
	assert.ErrorIs(t, err, landing.ErrInvalidMediaKey)
}

func TestLandingPageService_ModeIsEnforced(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	rich, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Rich", Mode: "richText"})
	require.NoError(t, err)
	tpl, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Template"})
	require.NoError(t, err)

	_, err = f.svc.UpdateSection(ctx, rich.ID, landing.SectionHero, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, content.ErrWrongMode)

	_, err = f.svc.InsertNode(ctx, tpl.ID, document.Path{0}, document.TypeHeading, nil)
	assert.ErrorIs(t, err, content.ErrWrongMode)
}

func TestLandingPageService_DocumentEdits(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Rich", Mode: "richText"})
	require.NoError(t, err)

	edit, err := f.svc.InsertNode(ctx, page.ID, document.Path{0}, document.TypeTwoColumnSection, nil)
	require.NoError(t, err)
	require.True(t, edit.Applied)
	assert.Equal(t, document.Path{0}, edit.Path)

	edit, err = f.svc.UpdateNodeAttrs(ctx, page.ID, document.Path{0, 1, 0}, document.TypeTwoColumnSection, document.Attrs{"mediaPosition": "right"})
	require.NoError(t, err)
	assert.True(t, edit.Applied)
	section := freeFormOf(t, edit.Page).Document.Content[0]
	assert.Equal(t, "right", section.Attrs["mediaPosition"])

	edit, err = f.svc.DeleteNode(ctx, page.ID, document.Path{0}, document.TypeCustomButton)
	require.NoError(t, err)
	assert.False(t, edit.Applied)

	edit, err = f.svc.ConvertToSingleColumn(ctx, page.ID, document.Path{0, 1, 0})
	require.NoError(t, err)
	assert.True(t, edit.Applied)
	doc := freeFormOf(t, edit.Page).Document
	assert.NoError(t, document.Validate(doc))
	assert.NotEqual(t, document.TypeTwoColumnSection, doc.Content[0].Type)

	_, err = f.svc.InsertNode(ctx, page.ID, document.Path{0}, "widget", nil)
	assert.ErrorIs(t, err, document.ErrUnknownNodeType)
	_, err = f.svc.DeleteNode(ctx, page.ID, document.Path{0}, "widget")
	assert.ErrorIs(t, err, document.ErrUnknownNodeType)
}

func TestLandingPageService_SettingsAndMarkdown(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Rich", Mode: "richText"})
	require.NoError(t, err)

	edit, err := f.svc.UpdateSettings(ctx, page.ID, json.RawMessage(`{"maxWidth":5000,"padding":24}`))
	require.NoError(t, err)
	settings := freeFormOf(t, edit.Page).Settings
	assert.Equal(t, 2400, settings.MaxWidth)
	assert.Equal(t, 24, settings.Padding)

	edit, err = f.svc.ImportMarkdown(ctx, page.ID, "# Title\n\nBody text", false)
	require.NoError(t, err)
	doc := freeFormOf(t, edit.Page).Document
	require.Len(t, doc.Content, 2)
	assert.Equal(t, document.TypeHeading, doc.Content[0].Type)

	edit, err = f.svc.ImportMarkdown(ctx, page.ID, "More", false)
	require.NoError(t, err)
	assert.Len(t, freeFormOf(t, edit.Page).Document.Content, 3)

	edit, err = f.svc.ImportMarkdown(ctx, page.ID, "Only this", true)
	require.NoError(t, err)
	assert.Len(t, freeFormOf(t, edit.Page).Document.Content, 1)
}

func TestLandingPageService_SaveAndSlugs(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "First"})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Second"})
	require.NoError(t, err)

	taken := "first"
	_, err = f.svc.Save(ctx, second.ID, models.UpdateLandingPageRequest{Slug: &taken})
	assert.ErrorIs(t, err, ErrSlugTaken)

	title := "Renamed"
	slug := "renamed"
	saved, err := f.svc.Save(ctx, first.ID, models.UpdateLandingPageRequest{
		Title:   &title,
		Slug:    &slug,
		Content: json.RawMessage(`{"templateData":{"hero":{"headline":"Saved"},"mediaSettings":{"hero.media":{"autoplay":true}}}}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", saved.Title)
	assert.Equal(t, "renamed", saved.Slug)

	data := templateOf(t, saved)
	assert.Equal(t, "Saved", data.Hero.Headline)
	assert.Equal(t, landing.Defaults().Why.Title, data.Why.Title)
	assert.Len(t, data.Why.Points, len(landing.Defaults().Why.Points))
	assert.Empty(t, data.MediaSettings, "settings for an empty media field are pruned")

	_, err = f.svc.Save(ctx, 999, models.UpdateLandingPageRequest{Title: &title})
	assert.ErrorIs(t, err, ErrLandingPageNotFound)
}

func TestLandingPageService_PublishAndRender(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Launch"})
	require.NoError(t, err)

	_, err = f.svc.RenderPublished(ctx, page.Slug)
	assert.ErrorIs(t, err, ErrLandingPageNotFound)

	preview, err := f.svc.Preview(ctx, page.ID)
	require.NoError(t, err)
	assert.Contains(t, preview, "Frequency")

	published, err := f.svc.Publish(ctx, page.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)
	require.NotNil(t, published.PublishedAt)

	html, err := f.svc.RenderPublished(ctx, page.Slug)
	require.NoError(t, err)
	assert.Contains(t, html, "Frequency")

	raw, err := f.svc.PublishedContent(ctx, page.Slug)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"templateData"`)

	unpublished, err := f.svc.Unpublish(ctx, page.ID)
	require.NoError(t, err)
	assert.Nil(t, unpublished.PublishedAt)
	_, err = f.svc.PublishedContent(ctx, page.Slug)
	assert.ErrorIs(t, err, ErrLandingPageNotFound)
}

type recordingScheduler struct {
	jobs []background.Job
}

func (r *recordingScheduler) Submit(job background.Job) error {
	r.jobs = append(r.jobs, job)
	return nil
}

func TestLandingPageService_WarmsPublishedPages(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()
	scheduler := &recordingScheduler{}
	f.svc.SetScheduler(scheduler)

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Warm"})
	require.NoError(t, err)
	_, err = f.svc.UpdateColor(ctx, page.ID, landing.ColorAccent, "#abcdef")
	require.NoError(t, err)
	assert.Empty(t, scheduler.jobs, "drafts are not warmed")

	_, err = f.svc.Publish(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, scheduler.jobs, 1)
	job := scheduler.jobs[0]
	assert.Equal(t, "warm_render", job.Name)
	assert.Equal(t, "warm_render:"+page.Slug, job.Key)
	require.NoError(t, job.Run(ctx))

	_, err = f.svc.UpdateColor(ctx, page.ID, landing.ColorAccent, "#fedcba")
	require.NoError(t, err)
	assert.Len(t, scheduler.jobs, 2)

	_, err = f.svc.Unpublish(ctx, page.ID)
	require.NoError(t, err)
	assert.Len(t, scheduler.jobs, 2)
}

type memoryPageCache struct {
	mu      sync.Mutex
	pages   map[string]cache.RenderedPage
	content map[string]json.RawMessage
}

func newMemoryPageCache() *memoryPageCache {
	return &memoryPageCache{pages: map[string]cache.RenderedPage{}, content: map[string]json.RawMessage{}}
}

func (m *memoryPageCache) GetCachedRenderedPage(_ context.Context, slug string) (cache.RenderedPage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, ok := m.pages[slug]
	return page, ok, nil
}

func (m *memoryPageCache) CacheRenderedPage(_ context.Context, slug string, page cache.RenderedPage, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[slug] = page
	return nil
}

func (m *memoryPageCache) GetCachedPageContent(_ context.Context, slug string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.content[slug]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return raw, nil
}

func (m *memoryPageCache) CachePageContent(_ context.Context, slug string, raw json.RawMessage, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content[slug] = raw
	return nil
}

func (m *memoryPageCache) InvalidateLandingPage(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pages, slug)
	delete(m.content, slug)
	return nil
}

func TestLandingPageService_WarmupReplacesStaleCache(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LandingPage{}))

	pageCache := newMemoryPageCache()
	svc := NewLandingPageService(repository.NewLandingPageRepository(db), pageCache, nil, time.Minute)
	scheduler := &recordingScheduler{}
	svc.SetScheduler(scheduler)
	ctx := context.Background()

	page, err := svc.Create(ctx, models.CreateLandingPageRequest{Title: "Warm"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, page.ID)
	require.NoError(t, err)

	_, err = svc.UpdateSection(ctx, page.ID, landing.SectionHero, json.RawMessage(`{"headline":"Fresh headline"}`))
	require.NoError(t, err)
	require.Len(t, scheduler.jobs, 2)

	// A reader that loaded the old version writes it back after invalidation.
	pageCache.pages[page.Slug] = cache.RenderedPage{Mode: "template", HTML: "<p>stale</p>"}
	pageCache.content[page.Slug] = json.RawMessage(`{"stale":true}`)

	html, err := svc.RenderPublished(ctx, page.Slug)
	require.NoError(t, err)
	assert.Equal(t, "<p>stale</p>", html)

	require.NoError(t, scheduler.jobs[1].Run(ctx))

	html, err = svc.RenderPublished(ctx, page.Slug)
	require.NoError(t, err)
	assert.Contains(t, html, "Fresh headline")

	raw, err := svc.PublishedContent(ctx, page.Slug)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Fresh headline")
}

func TestLandingPageService_WarmupSkipsUnpublishedPages(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()
	scheduler := &recordingScheduler{}
	f.svc.SetScheduler(scheduler)

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Gone"})
	require.NoError(t, err)
	_, err = f.svc.Publish(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, scheduler.jobs, 1)

	_, err = f.svc.Unpublish(ctx, page.ID)
	require.NoError(t, err)
	assert.NoError(t, scheduler.jobs[0].Run(ctx))
}

func TestLandingPageService_DuplicateListDelete(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Launch"})
	require.NoError(t, err)
	_, err = f.svc.UpdateSection(ctx, page.ID, landing.SectionHero, json.RawMessage(`{"headline":"Copied"}`))
	require.NoError(t, err)

	copyPage, err := f.svc.Duplicate(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, "launch-copy", copyPage.Slug)
	assert.Equal(t, "Launch (copy)", copyPage.Title)
	assert.Equal(t, "Copied", templateOf(t, copyPage).Hero.Headline)

	summaries, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for _, summary := range summaries {
		assert.Equal(t, string(content.ModeTemplate), summary.Mode)
	}

	require.NoError(t, f.svc.Delete(ctx, page.ID))
	_, err = f.svc.Get(ctx, page.ID)
	assert.ErrorIs(t, err, ErrLandingPageNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, page.ID), ErrLandingPageNotFound)
}

func TestLandingPageService_UploadMediaToField(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Launch"})
	require.NoError(t, err)

	updated, uploaded, err := f.svc.UploadMediaToField(ctx, page.ID, "hero.media", createMultipartFile(t, "hero.png", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, uploaded.URL, templateOf(t, updated).Hero.Media)
	assert.True(t, strings.HasPrefix(uploaded.URL, "/uploads/"))
}

func TestLandingPageService_UploadMediaToFieldFailureLeavesPage(t *testing.T) {
	f := setupLandingService(t)
	ctx := context.Background()

	page, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Launch"})
	require.NoError(t, err)

	_, _, err = f.svc.UploadMediaToField(ctx, page.ID, "hero.media", createMultipartFile(t, "notes.png", []byte("plain text")))
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)

	_, _, err = f.svc.UploadMediaToField(ctx, page.ID, "hero.poster", createMultipartFile(t, "hero.png", pngHeader))
	assert.ErrorIs(t, err, landing.ErrUnknownMediaField)

	loaded, err := f.svc.Get(ctx, page.ID)
	require.NoError(t, err)
	assert.Empty(t, templateOf(t, loaded).Hero.Media)

	entries, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	rich, err := f.svc.Create(ctx, models.CreateLandingPageRequest{Title: "Rich", Mode: "richText"})
	require.NoError(t, err)
	_, _, err = f.svc.UploadMediaToField(ctx, rich.ID, "hero.media", createMultipartFile(t, "hero.png", pngHeader))
	assert.ErrorIs(t, err, content.ErrWrongMode)
}
