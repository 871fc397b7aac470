package apiweb

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	overtimehandler "hr-admin-backend/lib/overtime"
	reimbursementhandler "hr-admin-backend/lib/reimbursement"
	"hr-admin-backend/models"
	apimodels "hr-admin-backend/models/api"
	requestapimodels "hr-admin-backend/models/api/request"
	dbmodels "hr-admin-backend/models/db"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type overtimeMock struct {
	overtimehandler.Provider
	statusReq requestapimodels.StatusChange
	actor     string
	hMsg      string
	err       error
	deleted   []uint
	filter    apimodels.ListFilter
}

func (m *overtimeMock) List(tenantID uint, filter apimodels.ListFilter) ([]requestapimodels.OvertimeView, error) {
	m.filter = filter
	return []requestapimodels.OvertimeView{{ID: 1, CreatedBy: tenantID}}, nil
}

func (m *overtimeMock) ChangeStatus(tenantID, id uint, actor string, request requestapimodels.StatusChange) (*requestapimodels.OvertimeView, string, error) {
	m.statusReq = request
	m.actor = actor
	if m.err != nil || m.hMsg != "" {
		return nil, m.hMsg, m.err
	}
	item := requestapimodels.OvertimeView{ID: id, CreatedBy: tenantID}
	item.Status = request.Status
	return &item, "", nil
}

func (m *overtimeMock) Delete(tenantID, id uint) (bool, error) {
	if id == 404 {
		return false, nil
	}
	m.deleted = append(m.deleted, id)
	return true, nil
}

type reimbursementMock struct {
	reimbursementhandler.Provider
	payload requestapimodels.ReimbursementData
	receipt *requestapimodels.ReceiptFile
}

func (m *reimbursementMock) Create(ctx context.Context, tenantID uint, request requestapimodels.ReimbursementData, receipt *requestapimodels.ReceiptFile) (requestapimodels.ReimbursementView, string, error) {
	m.payload = request
	m.receipt = receipt
	return requestapimodels.ReimbursementView{ID: 9}, "", nil
}

func (m *reimbursementMock) Receipt(ctx context.Context, tenantID, id uint) (*dbmodels.FileStorage, []byte, error) {
	if id != 9 {
		return nil, nil, nil
	}
	return &dbmodels.FileStorage{Name: "check.png", ContentType: "image/png"}, []byte("png-data"), nil
}

func newTestApp() *fiber.App {
	app := fiber.New()
	web := fiber.New()
	web.Use(func(ctx *fiber.Ctx) error {
		ctx.Locals("user", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"tenant": float64(2),
			"sub":    float64(1),
			"name":   "hr",
			"role":   string(models.HRRole),
		}))
		return ctx.Next()
	})
	InitOvertimeApiRouters(web)
	InitReimbursementApiRouters(web)
	app.Mount("/web", web)
	return app
}

func readResponse(t *testing.T, resp *http.Response) apimodels.Response {
	var body apimodels.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestOvertimeRoutes(t *testing.T) {
	mock := &overtimeMock{}
	overtimehandler.Instance = mock
	app := newTestApp()

	t.Run(`фасеты списка из query`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/web/overtimes?month=3&year=2024&status=pending&search=ann", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.True(t, readResponse(t, resp).Status)
		require.Equal(t, apimodels.ListFilter{Month: 3, Year: 2024, Status: "pending", Search: "ann"}, mock.filter)
	})
	t.Run(`смена статуса`, func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPatch, "/web/overtimes/4/status", strings.NewReader(`{"status":"approved"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := readResponse(t, resp)
		require.True(t, body.Status)
		require.NotEmpty(t, body.Message)
		require.Equal(t, models.RequestStatusApproved, mock.statusReq.Status)
		require.Equal(t, "hr", mock.actor)
	})
	t.Run(`отказ по переходу`, func(t *testing.T) {
		mock.hMsg = "Переход из статуса Согласовано в Отклонено недопустим"
		defer func() { mock.hMsg = "" }()
		req := httptest.NewRequest(fiber.MethodPatch, "/web/overtimes/4/status", strings.NewReader(`{"status":"rejected"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		body := readResponse(t, resp)
		require.False(t, body.Status)
		require.Equal(t, mock.hMsg, body.Message)
	})
	t.Run(`внутренняя ошибка`, func(t *testing.T) {
		mock.err = errors.New("db down")
		defer func() { mock.err = nil }()
		req := httptest.NewRequest(fiber.MethodPatch, "/web/overtimes/4/status", strings.NewReader(`{"status":"rejected"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		body := readResponse(t, resp)
		require.False(t, body.Status)
		require.NotContains(t, body.Message, "db down")
	})
	t.Run(`без статуса`, func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPatch, "/web/overtimes/4/status", strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
	t.Run(`некорректный ид`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/web/overtimes/abc", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
	t.Run(`удаление`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/web/overtimes/7", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, []uint{7}, mock.deleted)

		resp, err = app.Test(httptest.NewRequest(fiber.MethodDelete, "/web/overtimes/404", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestReimbursementRoutes(t *testing.T) {
	mock := &reimbursementMock{}
	reimbursementhandler.Instance = mock
	app := newTestApp()

	t.Run(`multipart с чеком`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		require.NoError(t, writer.WriteField("data", `{"employee_id":3,"category_id":2,"date":"2024-02-01","amount":"150.50","description":"taxi"}`))
		part, err := writer.CreateFormFile("receipt", "check.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-data"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(fiber.MethodPost, "/web/reimbursements", buf)
		req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, uint(3), mock.payload.EmployeeID)
		require.Equal(t, "150.5", mock.payload.Amount.String())
		require.NotNil(t, mock.receipt)
		require.Equal(t, "check.png", mock.receipt.Name)
		require.Equal(t, []byte("png-data"), mock.receipt.Body)
	})
	t.Run(`json без чека`, func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPost, "/web/reimbursements", strings.NewReader(`{"employee_id":3,"category_id":2,"date":"2024-02-01","amount":"10"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Nil(t, mock.receipt)
	})
	t.Run(`невалидная сумма`, func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPost, "/web/reimbursements", strings.NewReader(`{"employee_id":3,"category_id":2,"date":"2024-02-01","amount":"0"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.False(t, readResponse(t, resp).Status)
	})
	t.Run(`скачивание чека`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/web/reimbursements/9/receipt", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "png-data", string(data))

		resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/web/reimbursements/8/receipt", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
