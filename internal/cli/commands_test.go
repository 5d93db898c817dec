package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/medxscan/internal/api"
	"github.com/dmitrijs2005/medxscan/internal/common"
	"github.com/dmitrijs2005/medxscan/internal/config"
	"github.com/dmitrijs2005/medxscan/internal/logging"
	"github.com/dmitrijs2005/medxscan/internal/models"
	"github.com/dmitrijs2005/medxscan/internal/services"
)

type fakeAuth struct {
	user       *models.User
	err        error
	logoutErr  error
	current    *models.User
	currentErr error
	updated    *models.User
	updateErr  error
	lastUpd    models.ProfileUpdate
}

func (f *fakeAuth) Register(ctx context.Context, email string, password []byte, name string) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeAuth) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeAuth) Logout(ctx context.Context) error { return f.logoutErr }

func (f *fakeAuth) CurrentUser(ctx context.Context) (*models.User, error) {
	return f.current, f.currentErr
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	f.lastUpd = upd
	return f.updated, f.updateErr
}

type fakeSource struct {
	submitted *models.Analysis
	submitErr error
	rows      []models.Analysis
	listErr   error
	got       *models.Analysis
	getErr    error
	lastReq   services.SubmitRequest
}

func (f *fakeSource) Submit(ctx context.Context, userID string, req services.SubmitRequest) (*models.Analysis, error) {
	f.lastReq = req
	return f.submitted, f.submitErr
}

func (f *fakeSource) List(ctx context.Context, userID string) ([]models.Analysis, error) {
	return f.rows, f.listErr
}

func (f *fakeSource) Get(ctx context.Context, userID, id string) (*models.Analysis, error) {
	return f.got, f.getErr
}

type fakeChat struct {
	msg          *models.ChatMessage
	err          error
	lastQuestion string
	lastContext  string
}

func (f *fakeChat) Ask(ctx context.Context, question, chatContext string) (*models.ChatMessage, error) {
	f.lastQuestion = question
	f.lastContext = chatContext
	return f.msg, f.err
}

type fakeBackend struct {
	reportResp     *api.Response[json.RawMessage]
	reportErr      error
	healthResp     *api.Response[api.Health]
	healthErr      error
	downloadPath   string
	downloadErr    error
	lastReportPath string
}

func (f *fakeBackend) Predict(ctx context.Context, imagePath, symptoms string) (*api.Response[api.Prediction], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBackend) Report(ctx context.Context, reportID string) (*api.Response[json.RawMessage], error) {
	return f.reportResp, f.reportErr
}

func (f *fakeBackend) DownloadReport(ctx context.Context, reportPath, destDir string) (string, error) {
	f.lastReportPath = reportPath
	return f.downloadPath, f.downloadErr
}

func (f *fakeBackend) Ask(ctx context.Context, question, chatContext string) (*api.Response[api.ChatAnswer], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBackend) Health(ctx context.Context) (*api.Response[api.Health], error) {
	return f.healthResp, f.healthErr
}

func newTestApp(input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := &config.Config{
		APIBaseURL:  "http://localhost:5000",
		Mode:        config.SourceModeMock,
		DownloadDir: "reports",
	}
	return &App{
		config: cfg,
		log:    logging.NewDefault(io.Discard),
		auth:   &fakeAuth{},
		source: &fakeSource{},
		chat:   &fakeChat{},
		api:    &fakeBackend{},
		Mode:   ModeMock,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}, out
}

func loginAs(a *App) *models.User {
	u := &models.User{ID: "u1", Email: "alice@example.com", Name: "Alice"}
	a.user = u
	return u
}

func sampleAnalysis() *models.Analysis {
	return &models.Analysis{
		ID:                 "a1",
		UserID:             "u1",
		ImageRef:           "/tmp/x.png",
		XRayType:           models.XRayTypeChest,
		DetectedConditions: []string{"Pneumonia"},
		CreatedAt:          time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		ReportGenerated:    true,
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	a, out := newTestApp("")
	require.NoError(t, a.dispatch(context.Background(), "frobnicate", nil))
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestDispatch_ExitReturnsQuit(t *testing.T) {
	a, out := newTestApp("")
	err := a.dispatch(context.Background(), "exit", nil)
	assert.Equal(t, errQuit, err)
	assert.Contains(t, out.String(), "Bye!")
}

func TestHelp_DependsOnLoginState(t *testing.T) {
	a, out := newTestApp("")
	a.printHelp()
	assert.Contains(t, out.String(), "register")
	assert.NotContains(t, out.String(), "upload")

	out.Reset()
	loginAs(a)
	a.printHelp()
	assert.Contains(t, out.String(), "upload")
	assert.NotContains(t, out.String(), "register")
}

func TestRegister_SetsCurrentUser(t *testing.T) {
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte("secret"), nil }
	defer func() { getPassword = orig }()

	a, out := newTestApp("alice@example.com\nAlice\n")
	a.auth = &fakeAuth{user: &models.User{ID: "u1", Email: "alice@example.com", Name: "Alice"}}

	require.NoError(t, a.Register(context.Background()))
	require.NotNil(t, a.user)
	assert.Equal(t, "alice@example.com", a.user.Email)
	assert.Contains(t, out.String(), "Welcome, Alice!")
}

func TestLogin_FailurePrintsMessageAndKeepsUserNil(t *testing.T) {
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte("wrong"), nil }
	defer func() { getPassword = orig }()

	a, out := newTestApp("alice@example.com\n")
	a.auth = &fakeAuth{err: common.ErrInvalidCredentials}

	require.NoError(t, a.Login(context.Background()))
	assert.Nil(t, a.user)
	assert.Contains(t, out.String(), "Login failed")
}

func TestLogout_ClearsUserAndTranscript(t *testing.T) {
	a, out := newTestApp("")
	loginAs(a)
	a.transcript = []models.ChatMessage{{Question: "q", Answer: "a"}}

	require.NoError(t, a.Logout(context.Background()))
	assert.Nil(t, a.user)
	assert.Empty(t, a.transcript)
	assert.Contains(t, out.String(), "Logged out")
}

func TestProfile_RequiresLogin(t *testing.T) {
	a, out := newTestApp("")
	require.NoError(t, a.Profile(context.Background()))
	assert.Contains(t, out.String(), "Please login first")
}

func TestProfile_UpdatesOnlyAnsweredFields(t *testing.T) {
	a, _ := newTestApp("Alicia\n\n\n")
	loginAs(a)
	fake := &fakeAuth{updated: &models.User{ID: "u1", Name: "Alicia"}}
	a.auth = fake

	require.NoError(t, a.Profile(context.Background()))
	require.NotNil(t, fake.lastUpd.Name)
	assert.Equal(t, "Alicia", *fake.lastUpd.Name)
	assert.Nil(t, fake.lastUpd.Age)
	assert.Nil(t, fake.lastUpd.Gender)
	assert.Equal(t, "Alicia", a.user.Name)
}

func TestProfile_RejectsNonNumericAge(t *testing.T) {
	a, out := newTestApp("\nabc\n")
	loginAs(a)

	require.NoError(t, a.Profile(context.Background()))
	assert.Contains(t, out.String(), "Age must be a positive number")
}

func TestList_PrintsHistoryNewestFirst(t *testing.T) {
	a, out := newTestApp("")
	loginAs(a)
	a.source = &fakeSource{rows: []models.Analysis{*sampleAnalysis()}}

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "a1")
	assert.Contains(t, out.String(), "Pneumonia")
}

func TestList_EmptyHistory(t *testing.T) {
	a, out := newTestApp("")
	loginAs(a)

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "No analyses yet")
}

func TestShow_NotFound(t *testing.T) {
	a, out := newTestApp("")
	loginAs(a)
	a.source = &fakeSource{getErr: common.ErrNotFound}

	require.NoError(t, a.Show(context.Background(), "nope"))
	assert.Contains(t, out.String(), "Analysis not found: nope")
}

func TestUpload_Success(t *testing.T) {
	// image path from args, then: x-ray type, symptoms, empty line ends.
	a, out := newTestApp("chest\ncough\n\n")
	loginAs(a)
	fake := &fakeSource{submitted: sampleAnalysis()}
	a.source = fake

	require.NoError(t, a.Upload(context.Background(), []string{"/tmp/x.png"}))
	assert.Equal(t, "/tmp/x.png", fake.lastReq.ImagePath)
	assert.Equal(t, models.XRayTypeChest, fake.lastReq.XRayType)
	assert.Equal(t, "cough", fake.lastReq.Symptoms)
	assert.Contains(t, out.String(), "Analyzing X-ray...")
	assert.Contains(t, out.String(), "Analysis complete:")
	assert.Contains(t, out.String(), "Pneumonia")
}

func TestUpload_InlineSymptomsSkipThePrompt(t *testing.T) {
	a, _ := newTestApp("chest\n")
	loginAs(a)
	fake := &fakeSource{submitted: sampleAnalysis()}
	a.source = fake

	require.NoError(t, a.Upload(context.Background(), []string{"/tmp/x.png", "sore", "ribs"}))
	assert.Equal(t, "sore ribs", fake.lastReq.Symptoms)
}

func TestUpload_BonePromptsForRegion(t *testing.T) {
	a, _ := newTestApp("bone\nwrist\n\n")
	loginAs(a)
	fake := &fakeSource{submitted: sampleAnalysis()}
	a.source = fake

	require.NoError(t, a.Upload(context.Background(), []string{"/tmp/x.png"}))
	assert.Equal(t, models.XRayTypeBone, fake.lastReq.XRayType)
	assert.Equal(t, models.BoneRegionWrist, fake.lastReq.BoneRegion)
}

func TestUpload_FailurePrintsReason(t *testing.T) {
	a, out := newTestApp("chest\n\n")
	loginAs(a)
	a.source = &fakeSource{submitErr: errors.New("image too small")}

	require.NoError(t, a.Upload(context.Background(), []string{"/tmp/x.png"}))
	assert.Contains(t, out.String(), "Analysis failed: image too small")
}

func TestChat_AppendsAnswersAndErrorEntriesToTranscript(t *testing.T) {
	a, out := newTestApp("what now?\nand then?\n\n")
	loginAs(a)

	chat := &fakeChat{msg: &models.ChatMessage{Question: "what now?", Answer: "rest and fluids"}}
	a.chat = chat

	require.NoError(t, a.Chat(context.Background()))
	require.Len(t, a.transcript, 2)
	assert.Equal(t, "rest and fluids", a.transcript[0].Answer)
	assert.Contains(t, out.String(), "Assistant: rest and fluids")

	// second exchange fails and is kept as an error entry
	a.transcript = nil
	a.reader = bufio.NewReader(strings.NewReader("help?\n\n"))
	a.chat = &fakeChat{err: errors.New("backend down")}

	require.NoError(t, a.Chat(context.Background()))
	require.Len(t, a.transcript, 1)
	assert.Equal(t, "backend down", a.transcript[0].Err)
	assert.Empty(t, a.transcript[0].Answer)
}

func TestChat_PassesLatestAnalysisAsContext(t *testing.T) {
	a, _ := newTestApp("q\n\n")
	loginAs(a)
	a.source = &fakeSource{rows: []models.Analysis{*sampleAnalysis()}}
	chat := &fakeChat{msg: &models.ChatMessage{Answer: "ok"}}
	a.chat = chat

	require.NoError(t, a.Chat(context.Background()))
	assert.Contains(t, chat.lastContext, "chest")
	assert.Contains(t, chat.lastContext, "Pneumonia")
}

func TestReport_MockModeRendersLocally(t *testing.T) {
	a, out := newTestApp("")
	loginAs(a)
	a.source = &fakeSource{got: sampleAnalysis()}

	require.NoError(t, a.Report(context.Background(), "a1"))
	assert.Contains(t, out.String(), "X-Ray Analysis Report")
	assert.Contains(t, out.String(), "Pneumonia")
	assert.Contains(t, out.String(), "consult a medical professional")
}

func TestReport_OnlineModeFetchesFromBackend(t *testing.T) {
	a, out := newTestApp("")
	loginAs(a)
	a.Mode = ModeOnline
	a.source = &fakeSource{got: sampleAnalysis()}
	raw := json.RawMessage(`{"diagnosis":"Pneumonia"}`)
	a.api = &fakeBackend{reportResp: api.Ok(200, raw)}

	require.NoError(t, a.Report(context.Background(), "a1"))
	assert.Contains(t, out.String(), "diagnosis")
}

func TestDownload_WritesLocalReportFile(t *testing.T) {
	a, out := newTestApp("")
	loginAs(a)
	a.config.DownloadDir = t.TempDir()
	a.source = &fakeSource{got: sampleAnalysis()}

	require.NoError(t, a.Download(context.Background(), "a1"))

	dest := filepath.Join(a.config.DownloadDir, "a1.txt")
	assert.Contains(t, out.String(), "Report saved to "+dest)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Pneumonia")
}

func TestDownload_OnlineModeFetchesServerDocument(t *testing.T) {
	a, out := newTestApp("")
	loginAs(a)
	a.Mode = ModeOnline
	a.config.DownloadDir = t.TempDir()

	an := sampleAnalysis()
	an.ReportRef = "/static/reports/a1.pdf"
	a.source = &fakeSource{got: an}
	backend := &fakeBackend{downloadPath: filepath.Join(a.config.DownloadDir, "a1.pdf")}
	a.api = backend

	require.NoError(t, a.Download(context.Background(), "a1"))
	assert.Equal(t, "/static/reports/a1.pdf", backend.lastReportPath)
	assert.Contains(t, out.String(), "Report saved to")
}

func TestHealth_ReachableBackend(t *testing.T) {
	a, out := newTestApp("")
	a.config.Mode = config.SourceModeRemote
	a.Mode = ModeOffline
	a.api = &fakeBackend{healthResp: api.Ok(200, api.Health{
		Status: "healthy", Service: "medxscan-api", Version: "1.0.0",
	})}

	require.NoError(t, a.Health(context.Background()))
	assert.Contains(t, out.String(), "healthy")
	assert.Equal(t, ModeOnline, a.Mode)
}

func TestHealth_UnreachableBackendGoesOffline(t *testing.T) {
	a, out := newTestApp("")
	a.config.Mode = config.SourceModeRemote
	a.Mode = ModeOnline
	a.api = &fakeBackend{healthErr: api.ErrUnavailable}

	require.NoError(t, a.Health(context.Background()))
	assert.Contains(t, out.String(), "Backend unavailable")
	assert.Equal(t, ModeOffline, a.Mode)
}

func TestCommandsRequireLogin(t *testing.T) {
	ctx := context.Background()
	for _, name := range []string{"upload", "list", "chat"} {
		a, out := newTestApp("")
		require.NoError(t, a.dispatch(ctx, name, nil))
		assert.Contains(t, out.String(), "Please login first", name)
	}
}
