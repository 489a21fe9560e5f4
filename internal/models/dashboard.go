package models

// ClienteDashboard ответ GET /cliente/dashboard.
type ClienteDashboard struct {
	Cliente                   Cliente             `json:"cliente"`
	EstatisticasMes           EstatisticasMes     `json:"estatisticas_mes"`
	ProximasEntregas          []Pedido            `json:"proximas_entregas"`
	UltimasTransacoesCashback []TransacaoCashback `json:"ultimas_transacoes_cashback"`
	BeneficiosDisponiveis     int                 `json:"beneficios_disponiveis"`
	TaxaCashbackAtual         float64             `json:"taxa_cashback_atual"`
}

// EstatisticasMes статистика клиента за текущий месяц.
type EstatisticasMes struct {
	TotalKg       float64 `json:"total_kg"`
	TotalValor    float64 `json:"total_valor"`
	NumeroPedidos int     `json:"numero_pedidos"`
	MudouNivel    bool    `json:"mudou_nivel"`
}

// FornecedorDashboard ответ GET /fornecedor/dashboard.
type FornecedorDashboard struct {
	Fornecedor   Fornecedor             `json:"fornecedor"`
	Estatisticas EstatisticasFornecedor `json:"estatisticas"`
}

// EstatisticasFornecedor распределение клиентов-партнёров по уровням.
type EstatisticasFornecedor struct {
	TotalClientes    int `json:"total_clientes"`
	ClientesInicial  int `json:"clientes_inicial"`
	ClientesAvancado int `json:"clientes_avancado"`
	ClientesElite    int `json:"clientes_elite"`
	BeneficiosAtivos int `json:"beneficios_ativos"`
}

// AdminDashboard ответ GET /admin/dashboard.
type AdminDashboard struct {
	Estatisticas       EstatisticasAdmin `json:"estatisticas"`
	UltimosPedidos     []PedidoRecente   `json:"ultimos_pedidos"`
	DistribuicaoNiveis []NivelCount      `json:"distribuicao_niveis"`
}

// EstatisticasAdmin сводные показатели за месяц.
type EstatisticasAdmin struct {
	TotalClientes         int     `json:"total_clientes"`
	TotalFornecedores     int     `json:"total_fornecedores"`
	FornecedoresPendentes int     `json:"fornecedores_pendentes"`
	PedidosMes            int     `json:"pedidos_mes"`
	FaturamentoMes        float64 `json:"faturamento_mes"`
	VolumeMes             float64 `json:"volume_mes"`
	CashbackTotal         float64 `json:"cashback_total"`
}

// PedidoRecente заказ с краткими данными клиента.
type PedidoRecente struct {
	Pedido  Pedido `json:"pedido"`
	Cliente struct {
		Nome    string  `json:"nome"`
		Email   string  `json:"email"`
		Empresa *string `json:"empresa"`
	} `json:"cliente"`
}

// NivelCount количество клиентов на уровне партнёрства.
type NivelCount struct {
	Nivel string `json:"nivel"`
	Count int    `json:"count"`
}

// UserFilter параметры GET /admin/usuarios.
type UserFilter struct {
	Page        int    // Номер страницы, с 1
	PerPage     int    // Размер страницы
	TipoUsuario string // Фильтр по роли
	Status      string // ativo, inativo или pendente
	Busca       string // Поиск по имени и email
}

// UserList страница списка пользователей.
type UserList struct {
	Usuarios    []User `json:"usuarios"`
	Total       int    `json:"total"`
	Pages       int    `json:"pages"`
	CurrentPage int    `json:"current_page"`
	PerPage     int    `json:"per_page"`
}
