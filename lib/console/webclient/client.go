package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Envelope ответ /web: status=false означает отказ даже при HTTP 200
type Envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ServerError отказ сервера, Message показывается пользователю как есть
type ServerError struct {
	Message    string
	HTTPStatus int
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("сервер вернул ошибку (HTTP %d)", e.HTTPStatus)
	}
	return e.Message
}

// TransportError запрос не дошел до сервера или ответ не разобран
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "ошибка соединения с сервером: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MessageOf сообщение сервера, если оно есть, иначе fallback
func MessageOf(err error, fallback string) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}
	return fallback
}

// FilePart файл multipart запроса
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Body        []byte
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Do JSON запрос, out получает поле data ответа. Возвращает message ответа
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (message string, err error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", errors.Wrap(err, "ошибка формирования запроса")
		}
		reader = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// DoMultipart запрос multipart/form-data с полями и файлами
func (c *Client) DoMultipart(ctx context.Context, method, path string, fields map[string]string, files []FilePart, out interface{}) (message string, err error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for name, value := range fields {
		if err = writer.WriteField(name, value); err != nil {
			return "", errors.Wrap(err, "ошибка формирования запроса")
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.Field, file.FileName)
		if err != nil {
			return "", errors.Wrap(err, "ошибка формирования запроса")
		}
		if _, err = part.Write(file.Body); err != nil {
			return "", errors.Wrap(err, "ошибка формирования запроса")
		}
	}
	if err = writer.Close(); err != nil {
		return "", errors.Wrap(err, "ошибка формирования запроса")
	}
	req, err := c.newRequest(ctx, method, path, nil, buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования запроса")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out interface{}) (string, error) {
	logger := log.WithField("method", req.Method).WithField("path", req.URL.Path)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	envelope := Envelope[json.RawMessage]{}
	if err = json.Unmarshal(raw, &envelope); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return "", &ServerError{HTTPStatus: resp.StatusCode}
		}
		return "", &TransportError{Err: errors.Wrap(err, "некорректный ответ сервера")}
	}
	if !envelope.Status || resp.StatusCode >= http.StatusBadRequest {
		logger.
			WithField("http_status", resp.StatusCode).
			WithField("message", envelope.Message).
			Debug("сервер отклонил запрос")
		return "", &ServerError{Message: envelope.Message, HTTPStatus: resp.StatusCode}
	}
	if out != nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err = json.Unmarshal(envelope.Data, out); err != nil {
			return "", &TransportError{Err: errors.Wrap(err, "некорректные данные в ответе сервера")}
		}
	}
	return envelope.Message, nil
}
