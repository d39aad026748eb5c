// Package mailtmtest runs an in-process mail.tm API for tests.
package mailtmtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Message is a message held in a fake mailbox.
type Message struct {
	ID        string
	CreatedAt string
	Subject   string
	Text      string
	HTML      []string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	domains  []string
	accounts map[string]string
	tokens   map[string]string
	inbox    map[string][]Message
	requests []string

	// CreateStatus, when set, is returned for every account creation.
	CreateStatus int
	// DomainsStatus, when set, is returned for the domain listing.
	DomainsStatus int
}

func NewServer(domains ...string) *Server {
	s := &Server{
		domains:  domains,
		accounts: map[string]string{},
		tokens:   map[string]string{},
		inbox:    map[string][]Message{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /domains", s.handleDomains)
	mux.HandleFunc("POST /accounts", s.handleCreate)
	mux.HandleFunc("POST /token", s.handleToken)
	mux.HandleFunc("GET /messages", s.handleMessages)
	mux.HandleFunc("GET /messages/{id}", s.handleMessage)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.RequestURI())
		s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))

	return s
}

func (s *Server) AddAccount(address, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[address] = password
}

func (s *Server) HasAccount(address string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[address]
	return ok
}

// Deliver appends msg to the mailbox, assigning an ID when empty.
func (s *Server) Deliver(address string, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	s.inbox[address] = append(s.inbox[address], msg)
}

// Requests returns "METHOD /path?query" for every request received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DomainsStatus != 0 {
		writeJSON(w, s.DomainsStatus, map[string]string{"detail": "unavailable"})
		return
	}

	members := make([]map[string]any, 0, len(s.domains))
	for i, d := range s.domains {
		members = append(members, map[string]any{
			"id":        fmt.Sprintf("domain-%d", i),
			"domain":    d,
			"isActive":  true,
			"isPrivate": false,
		})
	}
	writeJSON(w, http.StatusOK, hydra(members))
}

type credentials struct {
	Address  string `json:"address"`
	Password string `json:"password"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil || c.Address == "" || c.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateStatus != 0 {
		writeJSON(w, s.CreateStatus, map[string]string{"detail": "rejected"})
		return
	}
	if _, ok := s.accounts[c.Address]; ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "address: This value is already used."})
		return
	}

	s.accounts[c.Address] = c.Password
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      uuid.NewString(),
		"address": c.Address,
	})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if pw, ok := s.accounts[c.Address]; !ok || pw != c.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"code": 401, "message": "Invalid credentials."})
		return
	}

	token := uuid.NewString()
	s.tokens[token] = c.Address
	writeJSON(w, http.StatusOK, map[string]string{"id": uuid.NewString(), "token": token})
}

// owner resolves the bearer token; the caller holds s.mu.
func (s *Server) owner(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return "", false
	}
	address, ok := s.tokens[token]
	return address, ok
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address, ok := s.owner(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"code": 401, "message": "JWT Token not found"})
		return
	}

	members := make([]map[string]any, 0)
	for _, m := range s.inbox[address] {
		members = append(members, map[string]any{
			"id":        m.ID,
			"from":      map[string]string{"address": "noreply@example.org", "name": "Example"},
			"subject":   m.Subject,
			"intro":     truncate(m.Text, 40),
			"seen":      false,
			"createdAt": m.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, hydra(members))
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address, ok := s.owner(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"code": 401, "message": "JWT Token not found"})
		return
	}

	id := r.PathValue("id")
	for _, m := range s.inbox[address] {
		if m.ID != id {
			continue
		}
		html := m.HTML
		if html == nil {
			html = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":        m.ID,
			"from":      map[string]string{"address": "noreply@example.org", "name": "Example"},
			"subject":   m.Subject,
			"text":      m.Text,
			"html":      html,
			"createdAt": m.CreatedAt,
		})
		return
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
}

func hydra(members []map[string]any) map[string]any {
	return map[string]any{
		"hydra:member":     members,
		"hydra:totalItems": len(members),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/ld+json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
