// Package apitest provides an in-process fake of the report backend for tests.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	RouteLogin    = "POST /api/login"
	RouteRegister = "POST /api/register"
	RouteMe       = "GET /api/me"
	RouteReports  = "GET /api/reports"
	RouteGenerate = "POST /api/generate-report"
	RouteDownload = "GET /api/reports/:id/download"
)

// User is a registered account on the fake backend.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	password string
}

// Override replaces the handler of a route with a canned response.
type Override struct {
	Status int
	Body   any
}

// Server is a fake backend bound to an httptest server.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	users     map[string]*User
	tokens    map[string]*User
	reports   []map[string]any
	artifacts map[string][]byte
	overrides map[string]Override
	hooks     map[string]func()
	calls     map[string]int
	nextID    int
}

// New starts a fake backend that is closed when the test ends.
func New(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		users:     make(map[string]*User),
		tokens:    make(map[string]*User),
		artifacts: make(map[string][]byte),
		overrides: make(map[string]Override),
		hooks:     make(map[string]func()),
		calls:     make(map[string]int),
	}

	r := gin.New()
	r.Use(s.intercept)
	r.POST("/api/login", s.login)
	r.POST("/api/register", s.register)

	authed := r.Group("/api", s.requireToken)
	authed.GET("/me", s.me)
	authed.GET("/reports", s.listReports)
	authed.POST("/generate-report", s.generateReport)
	authed.GET("/reports/:id/download", s.download)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// AddUser registers an account directly.
func (s *Server) AddUser(email, username, password string) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u := &User{ID: s.nextID, Username: username, Email: email, password: password}
	s.users[email] = u
	return *u
}

// IssueToken returns a fresh valid token for the account.
func (s *Server) IssueToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(s.users[email])
}

func (s *Server) issueLocked(u *User) string {
	s.nextID++
	tok := fmt.Sprintf("tok-%d-%d", u.ID, s.nextID)
	s.tokens[tok] = u
	return tok
}

// RevokeTokens makes every issued token answer 401.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]*User)
}

// SetReports replaces the report list, newest first.
func (s *Server) SetReports(reports ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append([]map[string]any(nil), reports...)
}

// SetArtifact stores the PDF served for a report id.
func (s *Server) SetArtifact(id string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[id] = data
}

// Override makes route answer with status and body until cleared.
func (s *Server) Override(route string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[route] = Override{Status: status, Body: body}
}

// ClearOverride restores the default handler of route.
func (s *Server) ClearOverride(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, route)
}

// Hook runs fn before every request to route; fn may block to hold the
// request in flight.
func (s *Server) Hook(route string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		delete(s.hooks, route)
		return
	}
	s.hooks[route] = fn
}

// Calls returns how many requests reached route.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Report builds a wire report as the backend emits it.
func Report(id, githubURL, status string) map[string]any {
	return map[string]any{
		"id":         id,
		"githubUrl":  githubURL,
		"email":      "dev@example.com",
		"dateRange":  "2024-01-01 - 2024-01-31",
		"status":     status,
		"createdAt":  time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC).Format("2006-01-02T15:04:05.000000"),
		"llm_status": "pending",
		"hasPdf":     status == "completed",
	}
}

func (s *Server) intercept(c *gin.Context) {
	route := c.Request.Method + " " + c.FullPath()

	s.mu.Lock()
	s.calls[route]++
	hook := s.hooks[route]
	s.mu.Unlock()

	if hook != nil {
		hook()
	}

	s.mu.Lock()
	o, ok := s.overrides[route]
	s.mu.Unlock()
	if ok {
		if b, isBytes := o.Body.([]byte); isBytes {
			c.Data(o.Status, "application/octet-stream", b)
		} else if str, isString := o.Body.(string); isString {
			c.Data(o.Status, "text/plain", []byte(str))
		} else {
			c.JSON(o.Status, o.Body)
		}
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) requireToken(c *gin.Context) {
	tok := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	s.mu.Lock()
	u, ok := s.tokens[tok]
	s.mu.Unlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token has expired"})
		return
	}
	c.Set("user", u)
	c.Next()
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[req.Email]
	if !ok || u.password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": s.issueLocked(u), "user": u})
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Email           string `json:"email"`
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s.mu.Lock()
	_, exists := s.users[req.Email]
	s.mu.Unlock()
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}
	s.AddUser(req.Email, req.Username, req.Password)
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": c.MustGet("user")})
}

func (s *Server) listReports(c *gin.Context) {
	s.mu.Lock()
	out := append([]map[string]any{}, s.reports...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) generateReport(c *gin.Context) {
	var req struct {
		GithubURL string `json:"githubUrl"`
		Email     string `json:"email"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.GithubURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid repository, email or dates"})
		return
	}

	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("%08d-srv", s.nextID)
	rep := map[string]any{
		"id":         id,
		"githubUrl":  req.GithubURL,
		"email":      req.Email,
		"dateRange":  req.StartDate + " - " + req.EndDate,
		"status":     "processing",
		"createdAt":  time.Now().UTC().Format(time.RFC3339),
		"llm_status": "pending",
		"hasPdf":     false,
	}
	s.reports = append([]map[string]any{rep}, s.reports...)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, rep)
}

func (s *Server) download(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	data, ok := s.artifacts[id]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"description": "Report not found or access denied."})
		return
	}
	c.Data(http.StatusOK, "application/pdf", data)
}
