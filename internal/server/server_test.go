package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mujakkirdv/portfolio/internal/assets"
	"github.com/mujakkirdv/portfolio/internal/contact"
	"github.com/mujakkirdv/portfolio/internal/content"
	"github.com/mujakkirdv/portfolio/internal/nav"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer builds a server over the bundled content with assets under dir.
func newTestServer(t *testing.T, dir string) *Server {
	t.Helper()
	reg, err := content.Default()
	require.NoError(t, err)
	srv, err := New(Options{
		Registry:   reg,
		Resolver:   assets.NewResolver(dir),
		Stylesheet: "styles.css",
	})
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, srv *Server, target string, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return do(t, srv, req)
}

func postContact(t *testing.T, srv *Server, form url.Values, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return do(t, srv, req)
}

func parseHTML(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func writeAsset(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestNewRequiresRegistryAndResolver(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Resolver: assets.NewResolver(t.TempDir())})
	require.Error(t, err)

	reg, err := content.Default()
	require.NoError(t, err)
	_, err = New(Options{Registry: reg})
	require.Error(t, err)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, t.TempDir()), "/healthz", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestRootSelectsHome(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, t.TempDir()), "/", false)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseHTML(t, rec)
	require.Equal(t, "Mujakkir Ahmad — Data Analyst Portfolio", doc.Find("title").Text())
	require.Equal(t, "home", doc.Find("section.panel").AttrOr("data-panel", ""))

	active := doc.Find("nav a.active")
	require.Equal(t, 1, active.Length())
	require.Contains(t, active.Text(), "Home")
	require.Equal(t, len(nav.Keys()), doc.Find("nav a").Length())

	require.Contains(t, doc.Find(".footer").Text(), "All Rights Reserved")
	require.Contains(t, doc.Find(".contact-info").Text(), "mujakkir.dv@gmail.com")
	require.Equal(t, 3, doc.Find(".metric").Length())
}

func TestEveryPanelRenders(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, t.TempDir())
	for _, k := range nav.Keys() {
		rec := get(t, srv, k.Href(), false)
		require.Equal(t, http.StatusOK, rec.Code, "panel %s", k)

		doc := parseHTML(t, rec)
		require.Equal(t, k.Slug(), doc.Find("section.panel").AttrOr("data-panel", ""), "panel %s", k)
		require.Equal(t, k.String(), strings.TrimSpace(strings.TrimPrefix(doc.Find("nav a.active").Text(), k.Icon())))
	}
}

func TestUnknownPanelIsNotFound(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, t.TempDir()), "/blog", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectsTwiceIsIdentical(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, t.TempDir())
	first := get(t, srv, "/projects", true)
	second := get(t, srv, "/projects", true)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, first.Body.String(), second.Body.String())

	doc := parseHTML(t, first)
	require.Equal(t, 4, doc.Find("article.card").Length())
	require.Equal(t, 4, doc.Find("a.link-button").Length())
	href, _ := doc.Find("a.link-button").First().Attr("href")
	require.Equal(t, "https://webmujakkir.streamlit.app", href)
}

func TestHTMXReturnsFragment(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, t.TempDir()), "/skills", true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.NotContains(t, body, "<html")
	require.NotContains(t, body, "Navigation")
	require.Contains(t, body, `data-panel="skills"`)
	require.Equal(t, "HX-Request, HX-History-Restore-Request", rec.Header().Get("Vary"))
}

func TestHTMXFragmentMarksActiveNav(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, t.TempDir())
	doc := parseHTML(t, get(t, srv, "/", false))
	require.Equal(t, "/", doc.Find("#sidebar-nav a.active").AttrOr("href", ""))

	doc = parseHTML(t, get(t, srv, "/projects", true))
	nav := doc.Find("nav#sidebar-nav")
	require.Equal(t, 1, nav.Length())
	require.Equal(t, "true", nav.AttrOr("hx-swap-oob", ""))
	active := nav.Find("a.active")
	require.Equal(t, 1, active.Length())
	require.Equal(t, "/projects", active.AttrOr("href", ""))
	require.Equal(t, "page", active.AttrOr("aria-current", ""))
	require.Len(t, nav.Find("a").Nodes, 8)
}

func TestHistoryRestoreGetsFullPage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-History-Restore-Request", "true")
	rec := do(t, newTestServer(t, t.TempDir()), req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "<html")
	require.Contains(t, body, "<style>")
	doc := parseHTML(t, rec)
	require.Equal(t, 1, doc.Find("aside.sidebar").Length())
	require.Empty(t, doc.Find("#sidebar-nav").AttrOr("hx-swap-oob", ""))
	require.Equal(t, "/projects", doc.Find("#sidebar-nav a.active").AttrOr("href", ""))
	require.Equal(t, 1, doc.Find(`main#panel section[data-panel="projects"]`).Length())
	require.Equal(t, 1, doc.Find(".footer").Length())
}

func TestExperienceFirstEntryOpen(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, get(t, newTestServer(t, t.TempDir()), "/experience", true))
	details := doc.Find("details.expander")
	require.Equal(t, 4, details.Length())
	_, open := details.First().Attr("open")
	require.True(t, open)
	_, open = details.Last().Attr("open")
	require.False(t, open)
}

func TestTestimonialsShowAttribution(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, get(t, newTestServer(t, t.TempDir()), "/testimonials", true))
	quotes := doc.Find("figure.quote")
	require.Equal(t, 4, quotes.Length())
	require.Equal(t, 4, quotes.Find("figcaption .card-title").Length())
	require.Contains(t, quotes.First().Find("figcaption").Text(), "Manager, Welburg Metal")
}

func TestHomeWithoutAssetsShowsPlaceholders(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, get(t, newTestServer(t, t.TempDir()), "/", true))
	missing := doc.Find(".asset-missing")
	require.Equal(t, 3, missing.Length())
	require.Contains(t, missing.Text(), "Add your Mujakkir Ahmad image at mujakkir_profile.png")
	require.Contains(t, missing.Text(), "Add your resume at resume.pdf to enable download and preview.")
	require.Zero(t, doc.Find("img").Length())
	require.Zero(t, doc.Find("iframe").Length())
}

func TestHomeWithAssets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "mujakkir_profile.png", "png")
	writeAsset(t, dir, "profile.png", "png")
	writeAsset(t, dir, "resume.pdf", "%PDF-1.4")
	srv := newTestServer(t, dir)

	doc := parseHTML(t, get(t, srv, "/", true))
	require.Zero(t, doc.Find(".asset-missing").Length())
	require.Equal(t, 2, doc.Find("img").Length())
	require.Equal(t, "/images/mujakkir_profile.png", doc.Find("img").First().AttrOr("src", ""))
	require.Equal(t, "/resume?inline=1", doc.Find("iframe").AttrOr("src", ""))
	require.Equal(t, "/resume", doc.Find("a.resume-download").AttrOr("href", ""))
}

func TestResumeDownload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srv := newTestServer(t, dir)

	rec := get(t, srv, "/resume", false)
	require.Equal(t, http.StatusNotFound, rec.Code)

	writeAsset(t, dir, "resume.pdf", "%PDF-1.4")
	rec = get(t, srv, "/resume", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `attachment; filename="Mujakkir_Ahmad_Resume.pdf"`, rec.Header().Get("Content-Disposition"))
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.Equal(t, "%PDF-1.4", rec.Body.String())

	rec = get(t, srv, "/resume?inline=1", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "inline"))

	rec = get(t, srv, "/resume?inline=0", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `attachment; filename="Mujakkir_Ahmad_Resume.pdf"`, rec.Header().Get("Content-Disposition"))
}

func TestProfileImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "profile.png", "png")
	writeAsset(t, dir, ".env", "SECRET=1")
	srv := newTestServer(t, dir)

	rec := get(t, srv, "/images/profile.png", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "png", rec.Body.String())

	require.Equal(t, http.StatusNotFound, get(t, srv, "/images/mujakkir_profile.png", false).Code)
	require.Equal(t, http.StatusNotFound, get(t, srv, "/images/.env", false).Code)
}

func TestStylesheetFallbackAndOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srv := newTestServer(t, dir)

	doc := parseHTML(t, get(t, srv, "/", false))
	require.Contains(t, doc.Find("style").Text(), "--brand: #f5b00f")

	writeAsset(t, dir, "styles.css", "h1 { color: navy; }")
	doc = parseHTML(t, get(t, srv, "/", false))
	require.Contains(t, doc.Find("style").Text(), "color: navy")
}

func TestContactMissingName(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, t.TempDir())
	rec := postContact(t, srv, url.Values{
		"name":    {""},
		"email":   {"a@b.com"},
		"message": {"hi"},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseHTML(t, rec)
	require.Equal(t, contact.MissingFieldsMessage, doc.Find(".notice-error").Text())
	require.Zero(t, doc.Find(".notice-success").Length())
	require.Equal(t, "a@b.com", doc.Find(`input[name="email"]`).AttrOr("value", ""))
	require.Equal(t, "hi", doc.Find(`textarea[name="message"]`).Text())
	require.Equal(t, "true", doc.Find(`input[name="name"]`).AttrOr("aria-invalid", ""))
}

func TestContactSuccessClearsForm(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, t.TempDir())
	rec := postContact(t, srv, url.Values{
		"name":    {"Jane"},
		"email":   {"jane@x.com"},
		"subject": {""},
		"message": {"Hello"},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseHTML(t, rec)
	require.Equal(t, contact.SuccessMessage, doc.Find(".notice-success").Text())
	require.Empty(t, doc.Find(`input[name="name"]`).AttrOr("value", ""))
	require.Empty(t, doc.Find(`input[name="email"]`).AttrOr("value", ""))
	require.Empty(t, doc.Find(`textarea[name="message"]`).Text())
}

func TestContactWithoutHTMXRendersPage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, t.TempDir())
	rec := postContact(t, srv, url.Values{"name": {"Jane"}}, false)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	doc := parseHTML(t, rec)
	require.Equal(t, "contact", doc.Find("section.panel").AttrOr("data-panel", ""))
	require.Equal(t, contact.MissingFieldsMessage, doc.Find(".notice-error").Text())
	require.Equal(t, "Jane", doc.Find(`input[name="name"]`).AttrOr("value", ""))
	require.Contains(t, doc.Find(".contact-details").Text(), "+8801601933422 (Secondary)")

	rec = postContact(t, srv, url.Values{"name": {"Jane"}, "email": {"jane@x.com"}, "message": {"Hello"}}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, contact.SuccessMessage, parseHTML(t, rec).Find(".notice-success").Text())
}

func TestFavicon(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, t.TempDir())
	rec := get(t, srv, "/favicon.svg", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "📊")

	doc := parseHTML(t, get(t, srv, "/", false))
	require.Equal(t, "/favicon.svg", doc.Find(`link[rel="icon"]`).AttrOr("href", ""))
}
