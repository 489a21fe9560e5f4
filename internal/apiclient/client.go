// Package apiclient единая точка исходящих запросов к REST API бэкенда.
//
// Клиент добавляет bearer-токен, приводит ответы с ошибкой к *Error и
// сообщает владельцу токена об ответе 401. Повторов запросов нет:
// пользователь повторяет действие сам.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
)

// maxErrorBody ограничивает чтение тела ответа с ошибкой.
const maxErrorBody = 64 << 10

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	metrics    *Metrics
}

// New создаёт клиент. baseURL задаётся целиком, например http://localhost:5001/api.
func New(baseURL string, timeout time.Duration, log *slog.Logger, metrics *Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
		metrics:    metrics,
	}
}

// Do выполняет запрос. body кодируется в JSON, если не nil; ответ 2xx
// декодируется в out, если out не nil. Любая ошибка имеет тип *Error.
func (c *Client) Do(ctx context.Context, creds Credentials, method, path string, body, out any) error {
	const op = "apiclient.Do"
	log := c.log.With(
		sl.Op(op),
		slog.String("method", method),
		slog.String("path", NormalizePath(path)),
	)
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		log = log.With(slog.String("request_id", reqID))
	}

	req, err := c.newRequest(ctx, creds, method, path, body)
	if err != nil {
		log.Error("failed to build request", sl.Err(err))
		return &Error{Message: err.Error(), Kind: KindServer, Err: err}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(method, path, 0, elapsed)
		log.Warn("backend unreachable", sl.Err(err), slog.Duration("elapsed", elapsed))
		return networkError(err)
	}
	defer resp.Body.Close()
	c.metrics.observe(method, path, resp.StatusCode, elapsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := statusError(resp.StatusCode, errorMessage(resp.Body))
		if apiErr.Kind == KindAuth {
			log.Info("backend rejected credentials")
			if creds.Token() != "" {
				c.metrics.forcedLogout()
			}
			creds.Rejected(ctx)
		} else {
			log.Debug("backend returned error", slog.Int("status", resp.StatusCode), slog.String("message", apiErr.Message))
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode response", sl.Err(err))
		return &Error{StatusCode: resp.StatusCode, Message: "invalid response body", Kind: KindServer, Err: err}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, creds Credentials, path string, out any) error {
	return c.Do(ctx, creds, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, creds Credentials, path string, body, out any) error {
	return c.Do(ctx, creds, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, creds Credentials, path string, body, out any) error {
	return c.Do(ctx, creds, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, creds Credentials, path string, out any) error {
	return c.Do(ctx, creds, http.MethodDelete, path, nil, out)
}

func (c *Client) newRequest(ctx context.Context, creds Credentials, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// errorMessage достаёт текст ошибки из поля message или error тела ответа.
func errorMessage(body io.Reader) string {
	var payload struct {
		Message any `json:"message"`
		Error   any `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&payload); err != nil {
		return ""
	}
	if s, ok := payload.Message.(string); ok && s != "" {
		return s
	}
	if s, ok := payload.Error.(string); ok && s != "" {
		return s
	}
	return ""
}
