package models

// Registration данные формы регистрации, они же тело POST /auth/register.
type Registration struct {
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required"`
	ConfirmPassword string `json:"-" form:"confirmPassword"`
	Nome            string `json:"nome" form:"nome" validate:"required"`
	Telefone        string `json:"telefone,omitempty" form:"telefone"`
	TipoUsuario     Role   `json:"tipo_usuario" form:"tipo_usuario" validate:"required,oneof=cliente fornecedor"`

	// Профиль клиента
	Empresa  string `json:"empresa,omitempty" form:"empresa"`
	CNPJ     string `json:"cnpj,omitempty" form:"cnpj"`
	Endereco string `json:"endereco,omitempty" form:"endereco"`
	Cidade   string `json:"cidade,omitempty" form:"cidade"`
	Estado   string `json:"estado,omitempty" form:"estado" validate:"omitempty,len=2"`
	CEP      string `json:"cep,omitempty" form:"cep"`

	// Профиль поставщика
	NomeEmpresa string `json:"nome_empresa,omitempty" form:"nome_empresa"`
	Categoria   string `json:"categoria,omitempty" form:"categoria"`
	Descricao   string `json:"descricao,omitempty" form:"descricao"`
	Instagram   string `json:"instagram,omitempty" form:"instagram"`
	Site        string `json:"site,omitempty" form:"site"`
}

// ProfileUpdate тело PUT /auth/update-profile.
// Бэкенд применяет только поля, относящиеся к роли пользователя.
type ProfileUpdate struct {
	Nome     string `json:"nome" form:"nome" validate:"required"`
	Telefone string `json:"telefone" form:"telefone"`

	Empresa  string `json:"empresa,omitempty" form:"empresa"`
	CNPJ     string `json:"cnpj,omitempty" form:"cnpj"`
	Endereco string `json:"endereco,omitempty" form:"endereco"`
	Cidade   string `json:"cidade,omitempty" form:"cidade"`
	Estado   string `json:"estado,omitempty" form:"estado" validate:"omitempty,len=2"`
	CEP      string `json:"cep,omitempty" form:"cep"`

	NomeEmpresa string `json:"nome_empresa,omitempty" form:"nome_empresa"`
	Categoria   string `json:"categoria,omitempty" form:"categoria"`
	Descricao   string `json:"descricao,omitempty" form:"descricao"`
	Instagram   string `json:"instagram,omitempty" form:"instagram"`
	Site        string `json:"site,omitempty" form:"site"`
}

// PasswordChange данные формы смены пароля.
type PasswordChange struct {
	CurrentPassword string `json:"current_password" form:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required"`
	ConfirmPassword string `json:"-" form:"confirm_password"`
}

// Lead заявка с формы контактов.
type Lead struct {
	Nome     string `json:"nome" form:"nome" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Telefone string `json:"telefone,omitempty" form:"telefone"`
	Empresa  string `json:"empresa,omitempty" form:"empresa"`
	Assunto  string `json:"assunto" form:"assunto" validate:"required"`
	Mensagem string `json:"mensagem" form:"mensagem" validate:"required"`
	SentAt   string `json:"sent_at" form:"-"`
}

// ResetValidation ответ POST /auth/validate-reset-token.
type ResetValidation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}
