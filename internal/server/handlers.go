package server

import (
	"errors"
	"html"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mujakkirdv/portfolio/internal/contact"
	"github.com/mujakkirdv/portfolio/internal/nav"
)

func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("HX-Request"), "true")
}

// wantsFragment reports whether the panel fragment should be returned instead of the page. History restores
// replace the whole body, so they get the full page.
func wantsFragment(c *gin.Context) bool {
	return isHTMX(c) && !strings.EqualFold(c.GetHeader("HX-History-Restore-Request"), "true")
}

// showPanel renders the panel named by the path, Home for "/". HTMX requests get only the
// panel fragment and the sidebar navigation.
func (s *Server) showPanel(c *gin.Context) {
	key, ok := nav.Parse(c.Param("panel"))
	if !ok {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	state := nav.NewState()
	state.Select(key)
	s.render(c, http.StatusOK, state, contactForm{})
}

func (s *Server) render(c *gin.Context, status int, state nav.State, form contactForm) {
	c.Header("Vary", "HX-Request, HX-History-Restore-Request")
	page := s.pageFor(state, form)
	if wantsFragment(c) {
		// The sidebar is swapped out of band so the active item follows the panel.
		c.HTML(status, "fragment.html", page)
		return
	}
	c.HTML(status, "index.html", page)
}

// submitContact validates the contact form. The form is cleared after an accepted
// submission and keeps its values when a required field is blank.
func (s *Server) submitContact(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBind(&sub); err != nil {
		s.logger.Warn("contact form bind failed", zap.Error(err))
	}

	form := contactForm{}
	status := http.StatusOK
	notice, err := contact.Submit(sub)
	if err != nil {
		var ve *contact.ValidationError
		if !errors.As(err, &ve) {
			s.logger.Error("contact form validation", zap.Error(err))
			c.String(http.StatusInternalServerError, "internal server error")
			return
		}
		form.Values = sub.Normalize()
		form.Error = contact.MissingFieldsMessage
		form.Missing = make(map[string]bool, len(ve.Fields))
		for _, f := range ve.Fields {
			form.Missing[f] = true
		}
		status = http.StatusUnprocessableEntity
	} else {
		form.Success = notice.Message
		n := sub.Normalize()
		s.logger.Info("contact form accepted", zap.String("name", n.Name), zap.String("subject", n.Subject))
	}

	if isHTMX(c) {
		// htmx only swaps 2xx responses.
		c.HTML(http.StatusOK, "contact.html", form)
		return
	}
	state := nav.NewState()
	state.Select(nav.Contact)
	s.render(c, status, state, form)
}

// resume serves the resume as a download, or inline with ?inline=1 for the preview frame.
func (s *Server) resume(c *gin.Context) {
	profile := s.registry.Profile()
	ref := s.resolver.Resolve(profile.Resume.Path)
	path, ok := s.resolver.Path(ref)
	if !ref.Exists || !ok {
		c.String(http.StatusNotFound, "resume not found")
		return
	}
	if inline, _ := strconv.ParseBool(c.Query("inline")); inline {
		c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": profile.Resume.DownloadName}))
		c.File(path)
		return
	}
	c.FileAttachment(path, profile.Resume.DownloadName)
}

// profileImage serves only the images listed in the profile.
func (s *Server) profileImage(c *gin.Context) {
	want := strings.TrimPrefix(c.Param("filepath"), "/")
	for _, img := range s.registry.Profile().Images {
		if img.Path != want {
			continue
		}
		ref := s.resolver.Resolve(img.Path)
		if path, ok := s.resolver.Path(ref); ok && ref.Exists {
			c.File(path)
			return
		}
		break
	}
	c.String(http.StatusNotFound, "image not found")
}

// favicon draws the site icon as an SVG emoji.
func (s *Server) favicon(c *gin.Context) {
	icon := s.registry.Site().Icon
	if icon == "" {
		c.Status(http.StatusNotFound)
		return
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><text y=".9em" font-size="90">` +
		html.EscapeString(icon) + `</text></svg>`
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}
