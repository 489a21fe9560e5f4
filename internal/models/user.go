// Package models содержит структуры данных, которыми фронтенд обменивается
// с бэкендом: учётную запись пользователя, профили клиента и поставщика,
// а также данные дашбордов.
//
// Даты приходят строками в формате ISO без часового пояса, поэтому
// хранятся как есть и форматируются только при выводе.
package models

// Role роль пользователя (tipo_usuario).
type Role string

// Роли пользователей.
const (
	RoleCliente    Role = "cliente"
	RoleFornecedor Role = "fornecedor"
	RoleAdmin      Role = "admin"
)

// Valid сообщает, что роль известна фронтенду.
func (r Role) Valid() bool {
	switch r {
	case RoleCliente, RoleFornecedor, RoleAdmin:
		return true
	}
	return false
}

// Home возвращает стартовую страницу роли.
func (r Role) Home() string {
	switch r {
	case RoleCliente:
		return "/dashboard"
	case RoleFornecedor:
		return "/fornecedor/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	}
	return "/"
}

// User представляет учётную запись, как её возвращает GET /auth/me.
type User struct {
	ID          int64       `json:"id"`                   // Идентификатор пользователя
	Email       string      `json:"email"`                // Электронная почта
	Nome        string      `json:"nome"`                 // Имя
	Telefone    *string     `json:"telefone"`             // Телефон, может отсутствовать
	TipoUsuario Role        `json:"tipo_usuario"`         // Роль
	Ativo       bool        `json:"ativo"`                // Учётная запись активна
	Aprovado    bool        `json:"aprovado"`             // Учётная запись одобрена администратором
	DataCriacao *string     `json:"data_criacao"`         // Дата создания
	Cliente     *Cliente    `json:"cliente,omitempty"`    // Профиль клиента
	Fornecedor  *Fornecedor `json:"fornecedor,omitempty"` // Профиль поставщика
}

// Cliente профиль кофейни-клиента.
type Cliente struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"user_id"`
	Empresa           *string `json:"empresa"`
	CNPJ              *string `json:"cnpj"`
	Endereco          *string `json:"endereco"`
	Cidade            *string `json:"cidade"`
	Estado            *string `json:"estado"`
	CEP               *string `json:"cep"`
	NivelParceria     string  `json:"nivel_parceria"` // inicial, avancado или elite
	CashbackAcumulado float64 `json:"cashback_acumulado"`
	TotalComprasMes   float64 `json:"total_compras_mes"`
	DataUltimaCompra  *string `json:"data_ultima_compra"`
}

// Fornecedor профиль поставщика-партнёра.
type Fornecedor struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	NomeEmpresa string      `json:"nome_empresa"`
	CNPJ        *string     `json:"cnpj"`
	Categoria   string      `json:"categoria"`
	Descricao   *string     `json:"descricao"`
	Endereco    *string     `json:"endereco"`
	Cidade      *string     `json:"cidade"`
	Estado      *string     `json:"estado"`
	CEP         *string     `json:"cep"`
	Instagram   *string     `json:"instagram"`
	Site        *string     `json:"site"`
	Beneficios  []Beneficio `json:"beneficios"`
}

// Beneficio преимущество, которое поставщик даёт клиентам начиная с уровня NivelMinimo.
type Beneficio struct {
	ID           int64  `json:"id"`
	FornecedorID int64  `json:"fornecedor_id"`
	Descricao    string `json:"descricao"`
	NivelMinimo  string `json:"nivel_minimo"`
	Ativo        bool   `json:"ativo"`
}

// DisplayName возвращает название компании пользователя, если оно есть, иначе имя.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Fornecedor != nil && u.Fornecedor.NomeEmpresa != "" {
		return u.Fornecedor.NomeEmpresa
	}
	if u.Cliente != nil && u.Cliente.Empresa != nil && *u.Cliente.Empresa != "" {
		return *u.Cliente.Empresa
	}
	return u.Nome
}
