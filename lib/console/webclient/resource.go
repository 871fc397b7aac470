package webclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func resourcePath(resource string) string {
	return "/web/" + resource
}

func itemPath(resource string, id uint) string {
	return fmt.Sprintf("/web/%s/%d", resource, id)
}

func List[T any](ctx context.Context, c *Client, resource string, query url.Values) ([]T, error) {
	list := []T{}
	if _, err := c.Do(ctx, http.MethodGet, resourcePath(resource), query, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func Get[T any](ctx context.Context, c *Client, resource string, id uint) (item T, err error) {
	_, err = c.Do(ctx, http.MethodGet, itemPath(resource, id), nil, nil, &item)
	return item, err
}

func Create[T any](ctx context.Context, c *Client, resource string, body interface{}) (item T, message string, err error) {
	message, err = c.Do(ctx, http.MethodPost, resourcePath(resource), nil, body, &item)
	return item, message, err
}

func Update[T any](ctx context.Context, c *Client, resource string, id uint, body interface{}) (item T, message string, err error) {
	message, err = c.Do(ctx, http.MethodPut, itemPath(resource, id), nil, body, &item)
	return item, message, err
}

func Delete(ctx context.Context, c *Client, resource string, id uint) (message string, err error) {
	return c.Do(ctx, http.MethodDelete, itemPath(resource, id), nil, nil, nil)
}

type statusBody struct {
	Status string `json:"status"`
	Remark string `json:"remark"`
}

// ChangeStatus PATCH /web/{resource}/{id}/status
func ChangeStatus[T any, S ~string](ctx context.Context, c *Client, resource string, id uint, status S, remark string) (item T, message string, err error) {
	body := statusBody{Status: string(status), Remark: remark}
	message, err = c.Do(ctx, http.MethodPatch, itemPath(resource, id)+"/status", nil, body, &item)
	return item, message, err
}

// Upload POST multipart на /web/{path}
func Upload[T any](ctx context.Context, c *Client, path string, fields map[string]string, files ...FilePart) (item T, message string, err error) {
	message, err = c.DoMultipart(ctx, http.MethodPost, resourcePath(path), fields, files, &item)
	return item, message, err
}
