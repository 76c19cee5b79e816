package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/compass"
	"github.com/zawyahq/zawya/core/idea"
	"github.com/zawyahq/zawya/core/post"
	"github.com/zawyahq/zawya/core/profile"
	"github.com/zawyahq/zawya/core/space"
	logsvc "github.com/zawyahq/zawya/services/logger"
	textgensvc "github.com/zawyahq/zawya/services/textgen"
	dummydb "github.com/zawyahq/zawya/storage/database/dummy"
)

type testMailSvc struct {
	sent []*core.EmailMessage
}

func (svc *testMailSvc) SendMessages(messages ...*core.EmailMessage) {
	svc.sent = append(svc.sent, messages...)
}

type testApp struct {
	server  Server
	conf    *core.Config
	db      *dummydb.DB
	mailSvc *testMailSvc
}

func newTestConfig() *core.Config {
	return &core.Config{
		Env:       "TEST",
		TestMode:  true,
		AppName:   "Zawya",
		SecretKey: []byte("secret"),
		Server: core.ServerConfig{
			JWTExpirationDelta: 10 * time.Minute,
		},
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	conf := newTestConfig()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("newTestApp() failed: %v", err)
	}

	mailSvc := &testMailSvc{}
	spaceRepo := dummydb.NewSpaceRepository(db)
	profileSvc := profile.NewService(dummydb.NewProfileRepository(db))
	spaceSvc := space.NewService(spaceRepo, profileSvc, mailSvc, conf)
	compassSvc := compass.NewService(spaceRepo)
	postSvc := post.NewService(dummydb.NewPostRepository(db))
	ideaSvc := idea.NewService(dummydb.NewIdeaRepository(db), compassSvc, textgensvc.NewDummyService())

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	server := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
		ProfileSvc: profileSvc,
		SpaceSvc:   spaceSvc,
		CompassSvc: compassSvc,
		PostSvc:    postSvc,
		IdeaSvc:    ideaSvc,
		Validate:   validate,
		Translator: translator,
	})

	return &testApp{server: server, conf: conf, db: db, mailSvc: mailSvc}
}

func (app *testApp) spaceRepo() space.Repository {
	return dummydb.NewSpaceRepository(app.db)
}

func (app *testApp) getToken(t *testing.T, prof profile.Profile) string {
	t.Helper()
	token, err := GenerateToken(GetProfileClaims(prof, app.conf), app.conf)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func (app *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buff bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buff).Encode(body); err != nil {
			t.Fatalf("request() failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buff)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decodeBody() failed: %v; body=%s", err, rec.Body.String())
	}
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("failed! code = %v; wantCode %v; body=%s", rec.Code, want, rec.Body.String())
	}
}

var (
	ayaProfile  = profile.Profile{ID: "u1", Name: "Aya", Email: "aya@test.test"}
	badrProfile = profile.Profile{ID: "u2", Name: "Badr", Email: "badr@test.test"}
	dinaProfile = profile.Profile{ID: "u3", Name: "Dina", Email: "dina@test.test"}
	omarProfile = profile.Profile{ID: "u4", Name: "Omar", Email: "omar@test.test"}
)

func (app *testApp) createSpace(t *testing.T, prof profile.Profile, name string) space.Space {
	t.Helper()
	rec := app.request(t, http.MethodPost, "/v1/spaces", app.getToken(t, prof), space.NewSpace{Name: name})
	checkCode(t, rec, http.StatusCreated)
	var sp space.Space
	decodeBody(t, rec, &sp)
	return sp
}
