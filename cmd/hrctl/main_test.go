package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	authutils "hr-admin-backend/lib/utils/auth-utils"
	"hr-admin-backend/lib/workflow"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string][]byte
	// noEmployees справочник сотрудников отвечает ошибкой
	noEmployees bool
}

func (s *fakeServer) handler(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.Path
	s.mu.Lock()
	s.requests = append(s.requests, key)
	s.bodies[key] = raw
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if key == "GET /web/employees" && s.noEmployees {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":false,"message":"ошибка"}`))
		return
	}
	switch key {
	case "GET /web/employees":
		_, _ = w.Write([]byte(`{"status":true,"data":[{"id":2,"name":"Anna Petrova","company_id":1}]}`))
	case "POST /web/assets":
		_, _ = w.Write([]byte(`{"status":true,"message":"Created","data":{"id":10,"employee_id":2,"name":"Laptop","warranty_status":"On","buying_date":"2024-01-15"}}`))
	case "GET /web/overtimes":
		_, _ = w.Write([]byte(`{"status":true,"data":[
			{"id":4,"employee_id":2,"date":"2024-03-04","hours":"2","status":"pending","employee":{"id":2,"name":"Anna Petrova","company_id":1}},
			{"id":5,"employee_id":3,"date":"2024-03-05","hours":"3","status":"approved","employee":{"id":3,"name":"Boris Ivanov","company_id":1}}
		]}`))
	case "GET /web/overtimes/4":
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":4,"employee_id":2,"date":"2024-03-04","hours":"2","status":"pending"}}`))
	case "PATCH /web/overtimes/4/status":
		_, _ = w.Write([]byte(`{"status":true,"message":"Статус заявки изменен","data":{"id":4,"status":"approved"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":false,"message":"запись не найдена"}`))
	}
}

func (s *fakeServer) body(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[key]
}

func run(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Setenv("HRCTL_NO_COLOR", "true")
	out := &bytes.Buffer{}
	cmd := rootCmd(out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "hrctl.yml"), "--base-url", server.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	fake := &fakeServer{bodies: map[string][]byte{}}
	server := httptest.NewServer(http.HandlerFunc(fake.handler))
	defer server.Close()

	t.Run(`список переработок с фасетом статуса`, func(t *testing.T) {
		out, err := run(t, server, "overtime", "list", "--status", "pending")
		require.NoError(t, err)
		require.Contains(t, out, "Anna Petrova")
		require.NotContains(t, out, "Boris Ivanov")
		require.Contains(t, out, "EDS")
	})
	t.Run(`одобрение с примечанием по умолчанию`, func(t *testing.T) {
		out, err := run(t, server, "overtime", "approve", "4")
		require.NoError(t, err)
		require.Contains(t, out, "✔ Статус заявки изменен")
		body := map[string]string{}
		require.NoError(t, json.Unmarshal(fake.bodies["PATCH /web/overtimes/4/status"], &body))
		require.Equal(t, map[string]string{"status": "approved", "remark": workflow.ApprovedRemark}, body)
	})
	t.Run(`локальная проверка формы имущества`, func(t *testing.T) {
		out, err := run(t, server, "asset", "create", "--name", "Laptop", "--buying-date", "2024-01-15")
		require.True(t, errors.Is(err, errReported))
		require.Contains(t, out, "✖ не указан сотрудник")
		for _, req := range fake.requests {
			require.False(t, strings.HasPrefix(req, "POST /web/assets"))
		}
	})
	t.Run(`сотрудник проверяется по справочнику`, func(t *testing.T) {
		out, err := run(t, server, "asset", "create", "--employee", "7", "--name", "Laptop", "--buying-date", "2024-01-15")
		require.True(t, errors.Is(err, errReported))
		require.Contains(t, out, "✖ сотрудник 7 не найден")
		require.Nil(t, fake.body("POST /web/assets"))
	})
	t.Run(`создание имущества`, func(t *testing.T) {
		out, err := run(t, server, "asset", "create", "--employee", "2", "--name", "Laptop", "--buying-date", "2024-01-15")
		require.NoError(t, err)
		require.Contains(t, out, "✔ Created")
		body := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(fake.body("POST /web/assets"), &body))
		require.Equal(t, "2024-01-15", body["buying_date"])
	})
	t.Run(`ошибка сервера показывается уведомлением`, func(t *testing.T) {
		out, err := run(t, server, "reimbursement", "delete", "9")
		require.True(t, errors.Is(err, errReported))
		require.Contains(t, out, "✖ запись не найдена")
	})
	t.Run(`токен для разработки`, func(t *testing.T) {
		out, err := run(t, server, "token", "--tenant", "3", "--role", "hr")
		require.NoError(t, err)
		claims, err := authutils.ParseToken("change-me", strings.TrimSpace(out))
		require.NoError(t, err)
		require.Equal(t, uint(3), authutils.ClaimUint(claims, "tenant"))
		require.Equal(t, "hr", authutils.ClaimString(claims, "role"))
	})
}

func TestAssetCreateWithoutEmployees(t *testing.T) {
	fake := &fakeServer{bodies: map[string][]byte{}, noEmployees: true}
	server := httptest.NewServer(http.HandlerFunc(fake.handler))
	defer server.Close()

	t.Run(`справочник недоступен, запись отправляется`, func(t *testing.T) {
		out, err := run(t, server, "asset", "create", "--employee", "7", "--name", "Laptop", "--buying-date", "2024-01-15")
		require.NoError(t, err)
		require.Contains(t, out, "✔ Created")
		require.NotNil(t, fake.body("POST /web/assets"))
	})
}
