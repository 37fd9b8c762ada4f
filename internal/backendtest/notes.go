package backendtest

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type note struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      *user     `json:"user"`
}

type noteRequest struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Tags    []string `json:"tags"`
}

func (req noteRequest) validate() map[string]string {
	errs := make(map[string]string)
	check := func(name string, v *string) {
		switch {
		case v == nil:
			errs[name] = msgRequired
		case strings.TrimSpace(*v) == "":
			errs[name] = msgBlank
		}
	}
	check("title", req.Title)
	check("content", req.Content)
	return errs
}

func (srv *Server) listNotes(c *gin.Context) {
	u := currentUser(c)

	srv.mu.Lock()
	defer srv.mu.Unlock()

	out := make([]note, 0)
	for _, n := range srv.notes {
		if n.User.ID == u.ID {
			out = append(out, *n)
		}
	}
	// Newest first, like the backend's default ordering.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (srv *Server) getNote(c *gin.Context) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	n, ok := srv.ownedNote(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, n)
}

func (srv *Server) createNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "JSON parse error")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		fieldErrors(c, errs)
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	now := time.Now().UTC()
	srv.nextNoteID++
	n := &note{
		ID:        srv.nextNoteID,
		Title:     *req.Title,
		Content:   *req.Content,
		Tags:      append([]string{}, req.Tags...),
		CreatedAt: now,
		UpdatedAt: now,
		User:      currentUser(c),
	}
	srv.notes[n.ID] = n
	c.JSON(http.StatusCreated, n)
}

// updateNote replaces title and content. Tags are left alone.
func (srv *Server) updateNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "JSON parse error")
		return
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	n, ok := srv.ownedNote(c)
	if !ok {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		fieldErrors(c, errs)
		return
	}

	n.Title = *req.Title
	n.Content = *req.Content
	n.UpdatedAt = time.Now().UTC()
	if n.UpdatedAt.Before(n.CreatedAt) {
		n.UpdatedAt = n.CreatedAt
	}
	c.JSON(http.StatusOK, n)
}

func (srv *Server) deleteNote(c *gin.Context) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	n, ok := srv.ownedNote(c)
	if !ok {
		return
	}
	delete(srv.notes, n.ID)
	c.Status(http.StatusNoContent)
}

// ownedNote looks up the :id note of the current user, answering 404 for
// missing ids and for other users' notes. Callers hold srv.mu.
func (srv *Server) ownedNote(c *gin.Context) (*note, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		detail(c, http.StatusNotFound, msgNotFound)
		return nil, false
	}
	n, ok := srv.notes[id]
	if !ok || n.User.ID != currentUser(c).ID {
		detail(c, http.StatusNotFound, msgNotFound)
		return nil, false
	}
	return n, true
}

// NoteCount returns how many notes the backend holds across all users.
func (srv *Server) NoteCount() int {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return len(srv.notes)
}
