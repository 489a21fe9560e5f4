package models

// Tier уровень партнёрской программы.
type Tier struct {
	Nivel       string   // Код уровня, как в nivel_parceria
	Titulo      string   // Название для вывода
	MinKgMes    float64  // Минимальный объём закупок в месяц, кг
	Cashback    float64  // Ставка кэшбэка, доля
	Description string   // Описание уровня
	Beneficios  []string // Преимущества уровня
}

// Tiers уровни программы в порядке возрастания.
var Tiers = []Tier{
	{
		Nivel:       "inicial",
		Titulo:      "Parceiro Inicial",
		MinKgMes:    5,
		Cashback:    0.015,
		Description: "Ideal para pequenos estabelecimentos que estão começando no programa de parceria.",
		Beneficios: []string{
			"1.5% de cashback em todas as compras",
			"Entrega emergencial de café",
			"Participação em ações promocionais sazonais",
			"Acesso aos benefícios dos fornecedores parceiros",
			"Suporte prioritário via WhatsApp",
		},
	},
	{
		Nivel:       "avancado",
		Titulo:      "Parceiro Avançado",
		MinKgMes:    40,
		Cashback:    0.015,
		Description: "Para estabelecimentos em crescimento que querem maximizar seus benefícios.",
		Beneficios: []string{
			"Todos os benefícios do nível Inicial",
			"Brindes sazonais exclusivos",
			"Kit de xícaras personalizadas",
			"Acesso a descontos especiais",
			"Consultoria gratuita para otimização do negócio",
			"Prioridade em novos produtos",
		},
	},
	{
		Nivel:       "elite",
		Titulo:      "Parceiro Elite",
		MinKgMes:    80,
		Cashback:    0.02,
		Description: "O nível mais exclusivo, para grandes parceiros que valorizam experiências únicas.",
		Beneficios: []string{
			"Todos os benefícios dos níveis anteriores",
			"2.0% de cashback (maior taxa disponível)",
			"Tour da torra em Minas Gerais com tudo pago",
			"Café personalizado com rótulo exclusivo (opcional)",
			"Acesso VIP a eventos e degustações",
			"Gerente de conta dedicado",
			"Condições especiais de pagamento",
		},
	},
}

// TierByNivel возвращает уровень по коду.
func TierByNivel(nivel string) (Tier, bool) {
	for _, t := range Tiers {
		if t.Nivel == nivel {
			return t, true
		}
	}
	return Tier{}, false
}
