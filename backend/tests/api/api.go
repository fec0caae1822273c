// Package api drives the assembled fiber application in spec suites.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	stdio "io"
	"net/http"
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"
	log "github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"

	"github.com/regdesk/regdesk/backend"
	"github.com/regdesk/regdesk/config"
	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/repo"
	"github.com/regdesk/regdesk/usecase"
)

// AdminKey is the secret the test application is configured with.
const AdminKey = "test-admin-key"

type TestAPI struct {
	App *fiber.App
}

func NewTestAPI() *TestAPI {
	schema, err := repo.GetSchema()
	if err != nil {
		panic(err)
	}
	store, err := io.NewMemoryStore(schema, nil, log.NewNullLogger())
	if err != nil {
		panic(err)
	}
	service := usecase.NewService(store, io.NewClock(), log.NewNullLogger())
	app := backend.NewApp(config.Config{AdminKey: AdminKey}, service, log.NewNullLogger())
	return &TestAPI{App: app}
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
	JSON   gjson.Result
}

func (a *TestAPI) Do(method, path string, payload interface{}, headers map[string]string) Response {
	var body stdio.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			panic(err)
		}
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := a.App.Test(req, -1)
	if err != nil {
		panic(fmt.Sprintf("%s %s: %s", method, path, err))
	}
	defer resp.Body.Close()
	raw, err := stdio.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}
	return Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   raw,
		JSON:   gjson.ParseBytes(raw),
	}
}

// Public performs a request without credentials.
func (a *TestAPI) Public(method, path string, payload interface{}) Response {
	return a.Do(method, path, payload, nil)
}

// Admin performs a request authorized with the configured admin key.
func (a *TestAPI) Admin(method, path string, payload interface{}) Response {
	return a.Do(method, path, payload, map[string]string{"X-Admin-Key": AdminKey})
}
