// Package backend типизированные вызовы REST API бэкенда Café Maiolini.
//
// Все методы возвращают ошибки *apiclient.Error без обёртки, чтобы
// вызывающий код мог классифицировать их через apiclient.KindOf.
package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

// Client обёртка над apiclient.Client с маршрутами бэкенда.
type Client struct {
	api *apiclient.Client
}

func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// AuthResponse ответ login и register. Token пуст, если регистрация ждёт одобрения.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// MessageResponse ответ, содержащий только сообщение.
type MessageResponse struct {
	Message string `json:"message"`
}

// ForgotResponse ответ forgot-password. DebugToken приходит только в режиме разработки.
type ForgotResponse struct {
	Message    string `json:"message"`
	DebugToken string `json:"debug_token,omitempty"`
}

// Login вход по email и паролю.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.api.Post(ctx, apiclient.Anonymous, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register регистрация клиента или поставщика.
func (c *Client) Register(ctx context.Context, reg models.Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.api.Post(ctx, apiclient.Anonymous, "/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me текущий пользователь по токену creds.
func (c *Client) Me(ctx context.Context, creds apiclient.Credentials) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.api.Get(ctx, creds, "/auth/me", &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &apiclient.Error{StatusCode: 200, Message: "empty user in response", Kind: apiclient.KindServer}
	}
	return resp.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, creds apiclient.Credentials, upd models.ProfileUpdate) (string, error) {
	return c.message(ctx, creds, http.MethodPut, "/auth/update-profile", upd)
}

func (c *Client) ChangePassword(ctx context.Context, creds apiclient.Credentials, current, next string) (string, error) {
	body := map[string]string{"current_password": current, "new_password": next}
	return c.message(ctx, creds, http.MethodPut, "/auth/change-password", body)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*ForgotResponse, error) {
	var resp ForgotResponse
	if err := c.api.Post(ctx, apiclient.Anonymous, "/auth/forgot-password", map[string]string{"email": email}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ValidateResetToken(ctx context.Context, token string) (*models.ResetValidation, error) {
	var resp models.ResetValidation
	if err := c.api.Post(ctx, apiclient.Anonymous, "/auth/validate-reset-token", map[string]string{"token": token}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) (string, error) {
	body := map[string]string{"token": token, "password": password}
	return c.message(ctx, apiclient.Anonymous, http.MethodPost, "/auth/reset-password", body)
}

func (c *Client) ClienteDashboard(ctx context.Context, creds apiclient.Credentials) (*models.ClienteDashboard, error) {
	var resp models.ClienteDashboard
	if err := c.api.Get(ctx, creds, "/cliente/dashboard", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) FornecedorDashboard(ctx context.Context, creds apiclient.Credentials) (*models.FornecedorDashboard, error) {
	var resp models.FornecedorDashboard
	if err := c.api.Get(ctx, creds, "/fornecedor/dashboard", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminDashboard(ctx context.Context, creds apiclient.Credentials) (*models.AdminDashboard, error) {
	var resp models.AdminDashboard
	if err := c.api.Get(ctx, creds, "/admin/dashboard", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Users страница списка пользователей для администратора.
func (c *Client) Users(ctx context.Context, creds apiclient.Credentials, f models.UserFilter) (*models.UserList, error) {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if f.TipoUsuario != "" {
		q.Set("tipo_usuario", f.TipoUsuario)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Busca != "" {
		q.Set("busca", f.Busca)
	}
	path := "/admin/usuarios"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp models.UserList
	if err := c.api.Get(ctx, creds, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ApproveSupplier(ctx context.Context, creds apiclient.Credentials, userID int64) (string, error) {
	return c.message(ctx, creds, http.MethodPut, "/admin/aprovar-fornecedor/"+strconv.FormatInt(userID, 10), nil)
}

func (c *Client) RejectSupplier(ctx context.Context, creds apiclient.Credentials, userID int64) (string, error) {
	return c.message(ctx, creds, http.MethodDelete, "/admin/rejeitar-fornecedor/"+strconv.FormatInt(userID, 10), nil)
}

func (c *Client) ToggleUser(ctx context.Context, creds apiclient.Credentials, userID int64) (string, error) {
	return c.message(ctx, creds, http.MethodPut, "/admin/toggle-usuario/"+strconv.FormatInt(userID, 10), nil)
}

// Health проверяет доступность бэкенда.
func (c *Client) Health(ctx context.Context) error {
	return c.api.Get(ctx, apiclient.Anonymous, "/health", nil)
}

func (c *Client) message(ctx context.Context, creds apiclient.Credentials, method, path string, body any) (string, error) {
	var resp MessageResponse
	if err := c.api.Do(ctx, creds, method, path, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
