package web

import (
	"net/url"
	"strconv"

	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

// HomeData данные главной страницы.
type HomeData struct {
	Benefits []Feature
	Stats    []Stat
	Tiers    []models.Tier
}

// PartnersData каталог поставщиков с выбранной категорией.
type PartnersData struct {
	Categories   []string
	Selected     string
	Partners     []Partner
	Total        int
	BenefitCount int
}

// NewPartnersData каталог, отфильтрованный по categoria.
func NewPartnersData(categoria string) PartnersData {
	if categoria == "" {
		categoria = AllCategories
	}
	return PartnersData{
		Categories:   PartnerCategories(),
		Selected:     categoria,
		Partners:     PartnersIn(categoria),
		Total:        len(Partners),
		BenefitCount: PartnerBenefitCount(),
	}
}

// ContatoData данные страницы контактов.
type ContatoData struct {
	Channels []ContactChannel
	Timeline []Milestone
	Values   []Feature
}

// NewContatoData возвращает содержимое страницы контактов.
func NewContatoData() ContatoData {
	return ContatoData{Channels: ContactChannels, Timeline: Timeline, Values: Values}
}

// LoginForm значения формы входа.
type LoginForm struct {
	Email string
	From  string
}

// EmailForm форма из одного поля email.
type EmailForm struct {
	Email string
}

// ResetData состояние страницы сброса пароля.
type ResetData struct {
	Token string
	Email string
	Valid bool
	Done  bool
}

// ClienteData дашборд клиента и следующий уровень, если он есть.
type ClienteData struct {
	Dashboard *models.ClienteDashboard
	Next      *models.Tier
}

// UsuariosData страница управления пользователями.
type UsuariosData struct {
	List   *models.UserList
	Filter models.UserFilter
	SelfID int64
	Back   string // адрес текущего списка, куда вернуться после действия
}

// PageURL адрес страницы page списка с текущими фильтрами.
func (d UsuariosData) PageURL(page int) string {
	q := url.Values{}
	if d.Filter.TipoUsuario != "" {
		q.Set("tipo_usuario", d.Filter.TipoUsuario)
	}
	if d.Filter.Status != "" {
		q.Set("status", d.Filter.Status)
	}
	if d.Filter.Busca != "" {
		q.Set("busca", d.Filter.Busca)
	}
	q.Set("page", strconv.Itoa(page))
	return "/admin/usuarios?" + q.Encode()
}
