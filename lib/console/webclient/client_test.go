package webclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestClient(t *testing.T) {
	var lastReq *http.Request
	var lastBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastReq = r
		lastBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/web/items":
			if r.Method == http.MethodPost {
				_, _ = w.Write([]byte(`{"status":true,"message":"Created","data":{"id":4,"name":"a"}}`))
				return
			}
			_, _ = w.Write([]byte(`{"status":true,"data":[{"id":1,"name":"x"},{"id":2,"name":"y"}]}`))
		case "/web/items/5":
			_, _ = w.Write([]byte(`{"status":false,"message":"Запись заблокирована"}`))
		case "/web/items/6":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status":false,"message":"Переход недопустим"}`))
		case "/web/items/7/status":
			_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"id":7,"name":"z"}}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		}
	}))
	defer server.Close()
	client := New(server.URL+"/", "tok", time.Second)
	ctx := context.Background()

	t.Run(`список с фасетами и токеном`, func(t *testing.T) {
		list, err := List[item](ctx, client, "items", url.Values{"month": {"3"}})
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "3", lastReq.URL.Query().Get("month"))
		require.Equal(t, "Bearer tok", lastReq.Header.Get("Authorization"))
	})
	t.Run(`создание возвращает сообщение сервера`, func(t *testing.T) {
		created, msg, err := Create[item](ctx, client, "items", item{Name: "a"})
		require.NoError(t, err)
		require.Equal(t, "Created", msg)
		require.Equal(t, uint(4), created.ID)
		require.Equal(t, "application/json", lastReq.Header.Get("Content-Type"))
		require.JSONEq(t, `{"id":0,"name":"a"}`, string(lastBody))
	})
	t.Run(`status false при HTTP 200`, func(t *testing.T) {
		_, err := Get[item](ctx, client, "items", 5)
		var serverErr *ServerError
		require.True(t, errors.As(err, &serverErr))
		require.Equal(t, http.StatusOK, serverErr.HTTPStatus)
		require.Equal(t, "Запись заблокирована", MessageOf(err, "fallback"))
	})
	t.Run(`отказ с HTTP 400`, func(t *testing.T) {
		_, err := Delete(ctx, client, "items", 6)
		require.Equal(t, "Переход недопустим", MessageOf(err, "fallback"))
	})
	t.Run(`смена статуса`, func(t *testing.T) {
		changed, _, err := ChangeStatus[item](ctx, client, "items", 7, "approved", "ok")
		require.NoError(t, err)
		require.Equal(t, uint(7), changed.ID)
		require.Equal(t, http.MethodPatch, lastReq.Method)
		body := map[string]string{}
		require.NoError(t, json.Unmarshal(lastBody, &body))
		require.Equal(t, map[string]string{"status": "approved", "remark": "ok"}, body)
	})
	t.Run(`ответ не json`, func(t *testing.T) {
		_, err := Get[item](ctx, client, "items", 99)
		var serverErr *ServerError
		require.True(t, errors.As(err, &serverErr))
		require.Equal(t, http.StatusBadGateway, serverErr.HTTPStatus)
		require.Equal(t, "fallback", MessageOf(err, "fallback"))
	})
	t.Run(`multipart`, func(t *testing.T) {
		_, _, err := Upload[item](ctx, client, "items", map[string]string{"data": `{"name":"a"}`},
			FilePart{Field: "receipt", FileName: "r.png", Body: []byte("png")})
		require.NoError(t, err)
		require.Contains(t, lastReq.Header.Get("Content-Type"), "multipart/form-data")
		require.Contains(t, string(lastBody), `name="receipt"; filename="r.png"`)
	})
	t.Run(`сервер недоступен`, func(t *testing.T) {
		down := New("http://127.0.0.1:1", "", 200*time.Millisecond)
		_, err := List[item](ctx, down, "items", nil)
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		require.Equal(t, "fallback", MessageOf(err, "fallback"))
	})
}
