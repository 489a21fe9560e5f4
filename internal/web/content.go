package web

// Feature карточка с заголовком и описанием.
type Feature struct {
	Title       string
	Description string
}

// Stat число на витрине.
type Stat struct {
	Number string
	Label  string
}

// Partner поставщик из публичного каталога.
type Partner struct {
	ID         int
	Nome       string
	Descricao  string
	Categoria  string
	Beneficios []string
	Telefone   string
	Instagram  string
	Site       string
}

// ContactChannel канал связи на странице контактов.
type ContactChannel struct {
	Title       string
	Info        string
	Description string
}

// Milestone этап истории компании.
type Milestone struct {
	Year        string
	Title       string
	Description string
}

// HomeBenefits преимущества программы на главной.
var HomeBenefits = []Feature{
	{Title: "Cashback Exclusivo", Description: "Ganhe de 1.5% a 2% de cashback em todas as suas compras de café"},
	{Title: "Rede de Fornecedores", Description: "Acesso exclusivo a descontos e benefícios de fornecedores parceiros"},
	{Title: "Níveis de Parceria", Description: "Evolua seus benefícios conforme aumenta seu volume de compras"},
	{Title: "Entregas Programadas", Description: "Automatize seus pedidos com entregas nos dias 15 e 30"},
}

// HomeStats цифры на главной.
var HomeStats = []Stat{
	{Number: "500+", Label: "Clientes Ativos"},
	{Number: "15+", Label: "Fornecedores Parceiros"},
	{Number: "98%", Label: "Satisfação"},
	{Number: "24h", Label: "Suporte"},
}

// Partners публичный каталог поставщиков.
var Partners = []Partner{
	{
		ID:         1,
		Nome:       "Velozes dos Ovos",
		Descricao:  "Fornecedor de ovos em geral, vários tamanhos e tipos",
		Categoria:  "Ovos",
		Beneficios: []string{"3% de desconto em qualquer compra", "Frete grátis"},
		Telefone:   "13996804852",
		Instagram:  "@velozes013",
	},
	{
		ID:         2,
		Nome:       "Denise Salgados",
		Descricao:  "Fornecedor de salgados em geral",
		Categoria:  "Salgados",
		Beneficios: []string{"10% de desconto nas 3 primeiras compras"},
		Telefone:   "1321384736",
		Instagram:  "@denise.salgados",
		Site:       "https://denisesalgados.com.br",
	},
	{
		ID:        3,
		Nome:      "Pães Artesanais Emiborah",
		Descricao: "Fornecedor de pães artesanais",
		Categoria: "Pães Artesanais",
		Beneficios: []string{
			"A partir de 30un de ciabatta, cada unidade vai sair a R$4,50",
			"Revendedor tem 30% de desconto acima de 10un de qualquer produto",
		},
		Telefone:  "(13) 98159-9375",
		Instagram: "@emiborah.paes",
	},
}

// AllCategories значение фильтра каталога без ограничения по категории.
const AllCategories = "Todos"

// PartnerCategories категории каталога в порядке первого появления, первой идёт "Todos".
func PartnerCategories() []string {
	seen := map[string]bool{}
	out := []string{AllCategories}
	for _, p := range Partners {
		if !seen[p.Categoria] {
			seen[p.Categoria] = true
			out = append(out, p.Categoria)
		}
	}
	return out
}

// PartnersIn поставщики категории; пустая или "Todos" возвращает всех.
func PartnersIn(categoria string) []Partner {
	if categoria == "" || categoria == AllCategories {
		return Partners
	}
	var out []Partner
	for _, p := range Partners {
		if p.Categoria == categoria {
			out = append(out, p)
		}
	}
	return out
}

// PartnerBenefitCount общее число преимуществ в каталоге.
func PartnerBenefitCount() int {
	n := 0
	for _, p := range Partners {
		n += len(p.Beneficios)
	}
	return n
}

// ContactChannels каналы связи.
var ContactChannels = []ContactChannel{
	{Title: "Telefone", Info: "(13) 99999-9999", Description: "Segunda a Sexta, 8h às 18h"},
	{Title: "E-mail", Info: "contato@cafemaiolini.com", Description: "Respondemos em até 24h"},
	{Title: "Localização", Info: "Santos, SP", Description: "Atendemos toda a região"},
	{Title: "WhatsApp", Info: "(13) 99999-9999", Description: "Atendimento rápido e direto"},
}

// Timeline история компании.
var Timeline = []Milestone{
	{Year: "2020", Title: "O Início", Description: "Fundação do Café Maiolini com o sonho de conectar produtores e consumidores de café de qualidade."},
	{Year: "2021", Title: "Primeiros Parceiros", Description: "Estabelecemos parcerias com fornecedores locais, criando nossa primeira rede de benefícios mútuos."},
	{Year: "2022", Title: "Expansão Regional", Description: "Crescemos para atender toda a região de Santos, aumentando nossa carteira de clientes e fornecedores."},
	{Year: "2023", Title: "Sistema de Níveis", Description: "Lançamos o sistema de parceria com níveis, oferecendo benefícios progressivos aos nossos clientes."},
	{Year: "2024", Title: "Plataforma Digital", Description: "Desenvolvemos nossa plataforma online para facilitar pedidos e gerenciamento de benefícios."},
	{Year: "2025", Title: "Ecossistema Completo", Description: "Hoje somos um ecossistema completo que conecta café, clientes e fornecedores em uma rede de benefícios únicos."},
}

// Values ценности компании.
var Values = []Feature{
	{Title: "Qualidade", Description: "Oferecemos apenas café de alta qualidade, selecionado cuidadosamente para nossos parceiros."},
	{Title: "Parceria", Description: "Acreditamos em relacionamentos duradouros e benefícios mútuos para todos os envolvidos."},
	{Title: "Paixão", Description: "Nossa paixão pelo café e pelo atendimento excepcional move tudo o que fazemos."},
	{Title: "Excelência", Description: "Buscamos constantemente a excelência em produtos, serviços e relacionamentos."},
}
