package models

// Pedido заказ кофе клиентом.
type Pedido struct {
	ID                   int64   `json:"id"`
	ClienteID            int64   `json:"cliente_id"`
	QuantidadeKg         float64 `json:"quantidade_kg"`
	TipoCafe             string  `json:"tipo_cafe"`  // moido, graos
	TipoTorra            string  `json:"tipo_torra"` // media, escura
	ValorTotal           float64 `json:"valor_total"`
	Status               string  `json:"status"` // pendente, processando, entregue, cancelado
	DataPedido           *string `json:"data_pedido"`
	DataEntrega          *string `json:"data_entrega"`
	EnderecoEntrega      *string `json:"endereco_entrega"`
	Observacoes          *string `json:"observacoes"`
	Automatico           bool    `json:"automatico"`
	DiaEntregaAutomatica *int    `json:"dia_entrega_automatica"`
}

// TransacaoCashback начисление (ganho) или списание (uso) кэшбэка.
type TransacaoCashback struct {
	ID            int64   `json:"id"`
	ClienteID     int64   `json:"cliente_id"`
	PedidoID      *int64  `json:"pedido_id"`
	Tipo          string  `json:"tipo"`
	Valor         float64 `json:"valor"`
	Descricao     *string `json:"descricao"`
	DataTransacao *string `json:"data_transacao"`
}
