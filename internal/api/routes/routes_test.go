package routes_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sightings/internal/api/middleware"
	"Sightings/internal/api/routes"
	"Sightings/internal/auth"
	"Sightings/internal/blobstore/local"
	"Sightings/internal/core/comments"
	"Sightings/internal/core/moderation"
	"Sightings/internal/core/posts"
	"Sightings/internal/core/users"
	"Sightings/internal/db/memory"
)

const testSecret = "routes-test-secret"

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

type testServer struct {
	*httptest.Server
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	store := memory.NewStore()

	r := chi.NewRouter()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	images, err := local.NewStore(t.TempDir(), srv.URL)
	require.NoError(t, err)

	verifier, err := auth.NewHMACVerifier(testSecret, "", "")
	require.NoError(t, err)
	authMiddleware := middleware.NewAuthMiddleware(verifier)

	postService := posts.NewPostService(store.Posts(), images)
	commentService := comments.NewCommentService(store.Comments())
	moderationService := moderation.NewModerationService(store.Moderation())
	sessions := moderation.NewSessions(store.Profiles(), nil)

	routes.RegisterHealthRoutes(r)
	routes.RegisterImageRoutes(r, images.Handler())
	routes.RegisterPostRoutes(r, postService, authMiddleware)
	routes.RegisterCommentRoutes(r, commentService, authMiddleware)
	routes.RegisterModerationRoutes(r, moderationService, sessions, authMiddleware)

	return &testServer{Server: srv, store: store}
}

func token(t *testing.T, username string) string {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (s *testServer) do(t *testing.T, method, path, username string, body []byte, contentType string) *http.Response {
	req, err := http.NewRequest(method, s.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if username != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, username))
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *testServer) postJSON(t *testing.T, path, username string, v interface{}) *http.Response {
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return s.do(t, http.MethodPost, path, username, body, "application/json")
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func sightingForm(t *testing.T, fields map[string]string, image []byte) ([]byte, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="oak.png"`)
		h.Set("Content-Type", "application/octet-stream")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf.Bytes(), mw.FormDataContentType()
}

func (s *testServer) createSighting(t *testing.T, fields map[string]string) *posts.Post {
	body, ct := sightingForm(t, fields, pngBytes)
	resp := s.do(t, http.MethodPost, "/api/posts", "alice", body, ct)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post posts.Post
	decode(t, resp, &post)
	return &post
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreatePost_RoundTrip(t *testing.T) {
	s := newTestServer(t)

	created := s.createSighting(t, map[string]string{
		"title": "Oak", "description": "big", "species": "Quercus",
		"latitude": "40", "longitude": "-73",
	})
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice", created.Author)
	assert.Equal(t, s.URL+"/images/"+created.ID, created.ImageURL)

	resp := s.do(t, http.MethodGet, "/api/posts/"+created.ID, "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got posts.Post
	decode(t, resp, &got)
	assert.Equal(t, *created, got)

	// the stored URL serves the uploaded bytes
	img, err := http.Get(created.ImageURL)
	require.NoError(t, err)
	defer func() { _ = img.Body.Close() }()
	assert.Equal(t, http.StatusOK, img.StatusCode)
	assert.Equal(t, "image/png", img.Header.Get("Content-Type"))
}

func TestCreatePost_Rejections(t *testing.T) {
	s := newTestServer(t)
	valid := map[string]string{"species": "Quercus", "latitude": "40", "longitude": "-73"}

	body, ct := sightingForm(t, valid, pngBytes)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/posts", "", body, ct).StatusCode)

	body, ct = sightingForm(t, valid, nil)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/posts", "alice", body, ct).StatusCode, "no image")

	body, ct = sightingForm(t, valid, []byte("just some text"))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/posts", "alice", body, ct).StatusCode, "not an image")

	body, ct = sightingForm(t, map[string]string{"latitude": "91", "longitude": "0"}, pngBytes)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/posts", "alice", body, ct).StatusCode, "latitude out of range")

	body, ct = sightingForm(t, map[string]string{"author": "mallory", "latitude": "0", "longitude": "0"}, pngBytes)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/posts", "alice", body, ct).StatusCode, "spoofed author")
}

func TestGetPost_NotFound(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/posts/nope", "", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListPosts_Filters(t *testing.T) {
	s := newTestServer(t)
	oak := s.createSighting(t, map[string]string{"species": "Quercus", "latitude": "40", "longitude": "-73"})
	s.createSighting(t, map[string]string{"species": "Pinus", "latitude": "40", "longitude": "-73"})
	far := s.createSighting(t, map[string]string{"species": "Quercus", "latitude": "-10", "longitude": "100"})

	list := func(query string) map[string]*posts.Post {
		resp := s.do(t, http.MethodGet, "/api/posts"+query, "", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, query)
		var got map[string]*posts.Post
		decode(t, resp, &got)
		return got
	}

	assert.Len(t, list(""), 3)

	bySpecies := list("?species=Quercus")
	assert.Len(t, bySpecies, 2)
	assert.Contains(t, bySpecies, oak.ID)
	assert.Contains(t, bySpecies, far.ID)

	byBox := list("?lonMin=-74&lonMax=-73&latMin=40&latMax=41")
	assert.Len(t, byBox, 2)

	both := list("?species=Quercus&lonMin=-74&lonMax=-73&latMin=40&latMax=41")
	require.Len(t, both, 1)
	assert.Contains(t, both, oak.ID)

	resp := s.do(t, http.MethodGet, "/api/posts?lonMin=-74&lonMax=-73", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "partial box")

	resp = s.do(t, http.MethodGet, "/api/posts?lonMin=10&lonMax=-10&latMin=0&latMax=1", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "inverted box")
}

func TestComments(t *testing.T) {
	s := newTestServer(t)

	resp := s.postJSON(t, "/api/posts/p1/comments", "bob", map[string]string{"text": "nice oak"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created comments.Comment
	decode(t, resp, &created)
	assert.Equal(t, "bob", created.Author)
	assert.False(t, created.Date.IsZero())

	resp = s.postJSON(t, "/api/posts/p1/comments", "bob", map[string]string{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.postJSON(t, "/api/posts/p1/comments", "", map[string]string{"text": "anon"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/posts/p1/comments", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list map[string]*comments.Comment
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "nice oak", list[created.ID].Text)

	resp = s.do(t, http.MethodGet, "/api/posts/p2/comments", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "{}", strings.TrimSpace(readBody(t, resp)))
}

func TestModeration(t *testing.T) {
	s := newTestServer(t)
	s.store.PutProfile(users.ProfileStats{Username: "mod", IsModerator: true})

	resp := s.do(t, http.MethodGet, "/api/posts/p1/identification", "", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.postJSON(t, "/api/posts/p1/identification/pin", "mod", map[string]string{"identificationId": "ident-1"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "pin is update-only")

	resp = s.postJSON(t, "/api/posts/p1/identification", "bob", map[string]string{"status": "open"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "bob has no profile")

	resp = s.postJSON(t, "/api/posts/p1/identification", "mod", map[string]string{"status": "open"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.postJSON(t, "/api/posts/p1/identification", "mod", map[string]string{"status": "open"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.postJSON(t, "/api/posts/p1/identification/pin", "mod", map[string]string{"identificationId": "ident-1"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.postJSON(t, "/api/posts/p1/identification/status", "mod", map[string]string{"status": "resolved"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/posts/p1/identification", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var md moderation.Metadata
	decode(t, resp, &md)
	assert.Equal(t, "ident-1", md.PinnedIdentification)
	assert.Equal(t, "resolved", md.Status)
}

func TestModeratorFlag_CachedUntilRefresh(t *testing.T) {
	s := newTestServer(t)

	me := func(path, method string) bool {
		resp := s.do(t, method, path, "bob", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var status struct {
			IsModerator bool `json:"isModerator"`
		}
		decode(t, resp, &status)
		return status.IsModerator
	}

	assert.False(t, me("/api/me/moderator", http.MethodGet))

	s.store.PutProfile(users.ProfileStats{Username: "bob", IsModerator: true})
	assert.False(t, me("/api/me/moderator", http.MethodGet), "promotion is not seen before refresh")
	assert.True(t, me("/api/me/moderator/refresh", http.MethodPost))

	resp := s.do(t, http.MethodGet, "/api/me/moderator", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func readBody(t *testing.T, resp *http.Response) string {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return buf.String()
}
