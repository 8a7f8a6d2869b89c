// Package demo serves a deterministic paged user listing.
package demo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Paging limits.
const (
	DefaultLimit = 20
	MaxLimit     = 1024
)

// UsersPath is the route served by Handler.
const UsersPath = "/api/users"

var (
	firstNames = []string{"Ada", "Alan", "Barbara", "Dennis", "Edsger", "Frances", "Grace", "Ken", "Linus", "Margaret", "Niklaus", "Radia"}
	lastNames  = []string{"Lovelace", "Turing", "Liskov", "Ritchie", "Dijkstra", "Allen", "Hopper", "Thompson", "Torvalds", "Hamilton", "Wirth", "Perlman"}
	roles      = []string{"admin", "editor", "viewer"}
)

// User is one row of the demo data set.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Age     int    `json:"age"`
	Created string `json:"created"`
}

// Response is the page envelope returned by Handler.
type Response struct {
	Data     []User `json:"data"`
	NextPage *int   `json:"nextPage"`
}

// GenerateUsers returns n deterministic users.
func GenerateUsers(n int) []User {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	users := make([]User, 0, n)
	for i := range n {
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames))%len(lastNames)]
		users = append(users, User{
			ID:      i + 1,
			Name:    first + " " + last,
			Email:   fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			Role:    roles[i%len(roles)],
			Age:     20 + (i*7)%45,
			Created: base.Add(time.Duration(i) * 36 * time.Hour).Format(time.RFC3339),
		})
	}
	return users
}

// Handler serves GET /api/users?page=&limit=&name= over a fixed user set.
type Handler struct {
	users    []User
	delay    time.Duration
	requests atomic.Int64
}

// NewHandler returns a handler serving the given users.
func NewHandler(users []User) *Handler {
	return &Handler{users: users}
}

// SetDelay makes every response wait for d first.
func (h *Handler) SetDelay(d time.Duration) {
	h.delay = d
}

// Requests returns the number of requests served.
func (h *Handler) Requests() int64 {
	return h.requests.Load()
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.requests.Add(1)

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.delay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(h.delay):
		}
	}

	q := r.URL.Query()
	page, err := intParam(q.Get("page"), 1)
	if err != nil || page < 1 {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}
	limit, err := intParam(q.Get("limit"), DefaultLimit)
	if err != nil {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Paginate(filter(h.users, q.Get("name")), page, limit))
}

// Paginate slices users into the requested page.
func Paginate(users []User, page, limit int) Response {
	resp := Response{Data: []User{}}

	start := (page - 1) * limit
	if start >= len(users) {
		return resp
	}
	end := min(start+limit, len(users))
	resp.Data = users[start:end]
	if end < len(users) {
		next := page + 1
		resp.NextPage = &next
	}
	return resp
}

func filter(users []User, name string) []User {
	if name == "" {
		return users
	}
	needle := strings.ToLower(name)
	out := make([]User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), needle) {
			out = append(out, u)
		}
	}
	return out
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
