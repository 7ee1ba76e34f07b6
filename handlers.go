package main

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hireline/models"
	"hireline/pkg/triage"
	"hireline/pkg/videofile"
)

//go:embed web/templates/*.html
var templateFS embed.FS

// Server wires the HTTP layer to its collaborators. Everything is handed in
// at construction; there is no package-level state.
type Server struct {
	cfg      *Config
	store    *ApplicationStore
	storage  *VideoStorage
	notifier *Notifier
	auth     *AuthService
	log      zerolog.Logger
}

func NewServer(cfg *Config, store *ApplicationStore, storage *VideoStorage, notifier *Notifier, auth *AuthService, log zerolog.Logger) *Server {
	return &Server{cfg: cfg, store: store, storage: storage, notifier: notifier, auth: auth, log: log}
}

// Routes builds the gin engine with all public, admin and page routes.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "web/templates/*.html")))

	// public API; the submission route owns its own method and CORS
	// handling to match the widget's cross-origin POSTs
	r.Any("/api/applications", s.submitApplication)
	r.POST("/api/uploads/video", s.uploadVideo)

	r.POST("/api/auth/login", s.login)
	r.POST("/api/auth/logout", s.logout)
	r.GET("/api/auth/session", s.session)

	admin := r.Group("/api/admin")
	admin.Use(s.requireAdmin())
	admin.GET("/applications", s.listApplications)
	admin.GET("/applications/stats", s.applicationStats)
	admin.GET("/applications/:id", s.getApplication)
	admin.PATCH("/applications/:id", s.updateApplication)

	// page gate: /admin and /login redirect on session state, every other
	// path renders the public landing page
	r.GET("/admin", s.adminPage)
	r.GET("/login", s.loginPage)
	r.NoRoute(s.publicPage)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// setCORSHeaders mirrors the permissive headers the submission widget relies on.
func setCORSHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Client-Info, Apikey")
}

type submitRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`

	VideoURL        string `json:"video_url"`
	VideoFilename   string `json:"video_filename"`
	VideoSize       int64  `json:"video_size"`
	VideoUploadedAt string `json:"video_uploaded_at"`
}

// submitApplication accepts a candidate submission. OPTIONS preflights are
// answered unconditionally, other non-POST methods get 405. The email notice
// is queued after the insert commits and never affects the response.
func (s *Server) submitApplication(c *gin.Context) {
	setCORSHeaders(c)
	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusOK)
		return
	case http.MethodPost:
	default:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	sub := NewApplication{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
	}
	if req.VideoURL != "" {
		sub.VideoURL = req.VideoURL
		sub.VideoFilename = req.VideoFilename
		sub.VideoSize = req.VideoSize
		if t, err := time.Parse(time.RFC3339, req.VideoUploadedAt); err == nil {
			sub.VideoUploadedAt = t
		}
	}

	app, err := s.store.Create(c.Request.Context(), sub)
	if err != nil {
		s.log.Error().Err(err).Msg("insert application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	s.notifier.Enqueue(*app)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Application submitted successfully",
		"applicationId": app.ID,
	})
}

// uploadVideo validates and stores an optional application video, returning
// the public URL the submission will reference. Validation happens before any
// storage call.
func (s *Server) uploadVideo(c *gin.Context) {
	setCORSHeaders(c)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file unreadable"})
		return
	}
	defer f.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		// some browsers omit the part type; sniff the leading bytes
		mtype, err := mimetype.DetectReader(f)
		if err == nil {
			contentType = mtype.String()
		}
		if _, err := f.Seek(0, 0); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "file unreadable"})
			return
		}
	}

	if err := videofile.Validate(file.Filename, file.Size, contentType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !s.storage.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "video uploads are not available"})
		return
	}

	key := videofile.StorageKey(file.Filename)
	url, err := s.storage.Upload(c.Request.Context(), key, f, file.Size, contentType)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("upload video")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload video"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := s.auth.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	token, err := s.auth.IssueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.SetCookie(sessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token})
}

func (s *Server) logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// session reports the viewer's authentication state. Anonymous viewers get a
// 200 with authenticated=false, never an error.
func (s *Server) session(c *gin.Context) {
	email, ok := s.sessionEmail(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "is_admin": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "is_admin": true, "email": email})
}

// sessionEmail resolves the viewer's admin identity from the Bearer header or
// the session cookie.
func (s *Server) sessionEmail(c *gin.Context) (string, bool) {
	tokenString := ""
	if authHeader := c.GetHeader("Authorization"); len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	} else if cookie, err := c.Cookie(sessionCookie); err == nil {
		tokenString = cookie
	}
	if tokenString == "" {
		return "", false
	}
	email, err := s.auth.VerifyToken(tokenString)
	if err != nil {
		return "", false
	}
	return email, true
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := s.sessionEmail(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid session"})
			c.Abort()
			return
		}
		c.Set("admin_email", email)
		c.Next()
	}
}

// listApplications returns the full table, filtered and sorted server-side by
// the dashboard's search, status and sort query params.
func (s *Server) listApplications(c *gin.Context) {
	apps, err := s.store.List(c.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("list applications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	q := triage.Query{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Sort:   triage.Sort(c.Query("sort")),
	}
	c.JSON(http.StatusOK, triage.Apply(apps, q))
}

func (s *Server) applicationStats(c *gin.Context) {
	counts, err := s.store.CountByStatus(c.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("count applications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "by_status": counts})
}

func (s *Server) getApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	app, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		s.log.Error().Err(err).Str("id", id.String()).Msg("get application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, app)
}

// updateApplication commits an admin's triage edit: exactly status and notes.
func (s *Server) updateApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app, err := s.store.Update(c.Request.Context(), id, req.Status, req.Notes)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		case ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		default:
			s.log.Error().Err(err).Str("id", id.String()).Msg("update application")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, app)
}

func (s *Server) adminPage(c *gin.Context) {
	email, ok := s.sessionEmail(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	c.HTML(http.StatusOK, "admin.html", gin.H{"Email": email, "Statuses": models.Statuses})
}

func (s *Server) loginPage(c *gin.Context) {
	if _, ok := s.sessionEmail(c); ok {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	c.HTML(http.StatusOK, "login.html", nil)
}

// publicPage renders the landing page for every path that isn't /admin,
// /login or an API route.
func (s *Server) publicPage(c *gin.Context) {
	if len(c.Request.URL.Path) >= 5 && c.Request.URL.Path[:5] == "/api/" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.HTML(http.StatusOK, "index.html", nil)
}
