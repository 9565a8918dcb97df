package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/config"
	"github.com/dmitrijs2005/folio/internal/client/editor"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/client/tokens"
	"github.com/dmitrijs2005/folio/internal/client/upload"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is written from notification timers and the REPL at once.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fakeService is an in-memory portfolio service.
type fakeService struct {
	mu        sync.Mutex
	record    models.Portfolio
	password  string
	token     string
	failFetch bool
	// revokeOnLogin hands out a token the update endpoint will not accept.
	revokeOnLogin bool
	updates       []models.PortfolioUpdate
}

func (s *fakeService) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		reply := func(status int, v any) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(v)
		}

		switch {
		case r.Method == http.MethodHead:
			w.WriteHeader(http.StatusOK)

		case r.Method == http.MethodGet && r.URL.Path == "/portfolios/"+s.record.ID:
			if s.failFetch {
				reply(http.StatusInternalServerError, map[string]any{"success": false})
				return
			}
			reply(http.StatusOK, models.Response[models.Portfolio]{Success: true, Data: s.record})

		case r.Method == http.MethodPost && r.URL.Path == "/auth/admin":
			var req models.AdminAuthRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != s.password {
				reply(http.StatusOK, models.Response[models.AdminAuthData]{Success: true, Message: "Invalid password"})
				return
			}
			tok := s.token
			if s.revokeOnLogin {
				tok = "revoked"
			}
			reply(http.StatusOK, models.Response[models.AdminAuthData]{
				Success: true,
				Data:    models.AdminAuthData{EditAccess: true, Token: &tok},
			})

		case r.Method == http.MethodPut && r.URL.Path == "/portfolios/"+s.record.ID:
			if r.Header.Get("Authorization") != "Bearer "+s.token {
				reply(http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid token"})
				return
			}
			var u models.PortfolioUpdate
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&u))
			s.updates = append(s.updates, u)
			if u.Name != nil {
				s.record.Name = *u.Name
			}
			if u.ExpertiseRoles != nil {
				s.record.ExpertiseRoles = *u.ExpertiseRoles
			}
			reply(http.StatusOK, models.Response[models.Portfolio]{Success: true, Data: s.record})

		default:
			reply(http.StatusNotFound, map[string]any{"success": false, "message": "Portfolio not found"})
		}
	}
}

func newFakeService() *fakeService {
	return &fakeService{
		record: models.Portfolio{
			ID:             "p1",
			Name:           "Ada Lovelace",
			AboutMe:        "Analyst",
			ExpertiseRoles: []string{"Engineer"},
		},
		password: "secret",
		token:    "tok-1",
	}
}

func newTestApp(t *testing.T, svc *fakeService, admin bool, input string) (*App, *syncBuffer, *clockwork.FakeClock) {
	t.Helper()

	srv := httptest.NewServer(svc.handler(t))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL
	cfg.PortfolioID = svc.record.ID
	cfg.Admin = admin
	cfg.DatabasePath = filepath.Join(t.TempDir(), "folio.db")
	cfg.OnlineCheckInterval = time.Hour
	cfg.RequestsPerSecond = 0

	out := &syncBuffer{}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	app, err := NewApp(context.Background(), cfg, WithIO(strings.NewReader(input), out), WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, out, clock
}

func stubPassword(t *testing.T) {
	t.Helper()
	orig := getPassword
	getPassword = func(r *bufio.Reader, w io.Writer) (string, error) {
		return readLine(r)
	}
	t.Cleanup(func() { getPassword = orig })
}

func TestApp_AnonymousShowAndExport(t *testing.T) {
	svc := newFakeService()
	path := filepath.Join(t.TempDir(), "page.html")
	app, out, _ := newTestApp(t, svc, false, "export "+path+"\nexit\n")

	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Ada Lovelace")
	assert.Contains(t, got, "© 2025 Ada Lovelace. All rights reserved.")
	assert.NotContains(t, got, "type 'edit'")
	assert.Contains(t, got, "Written "+path)

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Ada Lovelace")
	assert.NotContains(t, string(html), "Edit Portfolio")
}

func TestApp_LoadFailureAborts(t *testing.T) {
	svc := newFakeService()
	svc.failFetch = true
	app, out, _ := newTestApp(t, svc, false, "n\n")

	err := app.Run(context.Background())
	require.ErrorIs(t, err, ErrLoadAborted)
	assert.Contains(t, out.String(), "Oops!")
	assert.Contains(t, out.String(), "Try again? [y/N]")
}

func TestApp_LoadRetrySucceeds(t *testing.T) {
	svc := newFakeService()
	svc.failFetch = true
	app, out, _ := newTestApp(t, svc, false, "")

	// Flip the service back on before the user answers.
	app.reader = bufio.NewReader(&retryReader{svc: svc, data: "y\nexit\n"})

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Ada Lovelace")
}

type retryReader struct {
	svc  *fakeService
	data string
}

func (r *retryReader) Read(p []byte) (int, error) {
	r.svc.mu.Lock()
	r.svc.failFetch = false
	r.svc.mu.Unlock()
	if r.data == "" {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestApp_AdminLoginWrongThenRight(t *testing.T) {
	stubPassword(t)
	svc := newFakeService()
	path := filepath.Join(t.TempDir(), "admin.html")
	app, out, _ := newTestApp(t, svc, true, "wrong\nshow\nlogin\nsecret\nstatus\nexport "+path+"\nexit\n")

	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Admin access required.")
	assert.Contains(t, got, "Invalid password")
	assert.Contains(t, got, "Admin access required. Type 'login'")
	assert.Contains(t, got, "[success] Admin access granted")
	assert.Contains(t, got, "type 'edit'")
	assert.Contains(t, got, "token:     present")
	assert.Contains(t, got, "issued for: p1")

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Edit Portfolio")
}

func TestApp_EditAndSave(t *testing.T) {
	stubPassword(t)
	svc := newFakeService()
	input := strings.Join([]string{
		"secret",
		"edit",
		"diff",
		"set name Ada  King",
		"roles add",
		"roles set 2 Mathematician",
		"roles rm 0",
		"list",
		"save",
		"show",
		"exit",
	}, "\n") + "\n"
	app, out, clock := newTestApp(t, svc, true, input)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	// The editor closes CloseDelay after a successful save.
	var runErr error
	require.Eventually(t, func() bool {
		clock.Advance(time.Second)
		select {
		case runErr = <-done:
			return true
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, runErr)

	got := out.String()
	assert.Contains(t, got, "No changes to save")
	assert.Contains(t, got, "Added roles #2")
	assert.Contains(t, got, `invalid position`)
	assert.Contains(t, got, "[success] Portfolio updated successfully!")

	svc.mu.Lock()
	defer svc.mu.Unlock()
	require.Len(t, svc.updates, 1)
	u := svc.updates[0]
	require.NotNil(t, u.Name)
	assert.Equal(t, "Ada  King", *u.Name)
	require.NotNil(t, u.ExpertiseRoles)
	assert.Equal(t, []string{"Engineer", "Mathematician"}, *u.ExpertiseRoles)
	assert.Nil(t, u.AboutMe)
	assert.Equal(t, "Ada  King", svc.record.Name)
}

func TestApp_SaveWithRevokedTokenLocksSession(t *testing.T) {
	stubPassword(t)
	svc := newFakeService()
	svc.revokeOnLogin = true
	input := strings.Join([]string{
		"secret",
		"edit",
		"set about New text",
		"save",
		"edit",
		"exit",
	}, "\n") + "\n"
	app, out, _ := newTestApp(t, svc, true, input)

	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "[warning] Session expired. Please log in again.")
	assert.Contains(t, got, "Admin session ended.")
	assert.Contains(t, got, "Admin access required. Type 'login'")

	// Run closes the database; read the stored token back from the file.
	db, err := client.InitDatabase(context.Background(), app.config.DatabasePath)
	require.NoError(t, err)
	defer db.Close()
	info, err := tokens.NewSQLiteStore(db, clockwork.NewRealClock()).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, info.Present())
}

func TestApp_UploadFailuresAreQueued(t *testing.T) {
	stubPassword(t)
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	png := filepath.Join(dir, "me.png")
	require.NoError(t, os.WriteFile(txt, []byte("plain text"), 0o600))
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n"), 0o600))

	svc := newFakeService()
	input := strings.Join([]string{
		"secret",
		"edit",
		"upload pic " + txt,
		"upload pic " + png,
		"cancel",
		"exit",
	}, "\n") + "\n"
	app, out, _ := newTestApp(t, svc, true, input)

	require.NoError(t, app.Run(context.Background()))

	var errs []string
	for _, n := range app.queue.List() {
		if n.Severity == models.SeverityError {
			errs = append(errs, n.Message)
		}
	}
	assert.Equal(t, []string{upload.MsgInvalidType, editor.MsgNoUploader}, errs)

	got := out.String()
	assert.Contains(t, got, "[error] "+upload.MsgInvalidType)
	assert.Contains(t, got, "[error] "+editor.MsgNoUploader)
	assert.Equal(t, 1, strings.Count(got, "Uploading..."))
	assert.NotContains(t, got, "error:")
}

func TestApp_DismissNotification(t *testing.T) {
	svc := newFakeService()
	app, out, _ := newTestApp(t, svc, false, "")
	id := app.queue.Warning("heads up", 0)

	app.reader = bufio.NewReader(strings.NewReader("notifications\ndismiss " + id + "\nnotifications\nexit\n"))
	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "heads up")
	assert.Contains(t, got, "No notifications.")
}

func TestSetMode_LogsOnlyOnChange(t *testing.T) {
	var buf bytes.Buffer
	app := &App{mode: ModeOnline, log: logging.New(&buf, "info", false)}

	app.setMode(context.Background(), ModeOnline)
	assert.Empty(t, buf.String())

	app.setMode(context.Background(), ModeOffline)
	assert.Equal(t, ModeOffline, app.Mode())
	assert.Contains(t, buf.String(), "connectivity changed")
	assert.Contains(t, buf.String(), "mode=offline")
}
