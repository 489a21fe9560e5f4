package web

import (
	"html/template"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// dateLayouts форматы дат, которые присылает бэкенд.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Funcs функции, доступные в шаблонах.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":     Money,
		"kg":        Kg,
		"percent":   Percent,
		"date":      Date,
		"phone":     Phone,
		"deref":     deref,
		"firstName": FirstName,
		"tierLabel": TierLabel,
		"roleLabel": RoleLabel,
		"progress":  Progress,
		"remaining": func(meta, done float64) float64 { return math.Max(meta-done, 0) },
		"ticket":    Ticket,
		"instagram": func(handle string) string { return "https://instagram.com/" + strings.TrimPrefix(handle, "@") },
		"add":       func(a, b int) int { return a + b },
		"pages":     pageNumbers,
		"selected": func(a, b string) template.HTMLAttr {
			if a == b {
				return "selected"
			}
			return ""
		},
	}
}

// Money форматирует сумму в реалах: R$ 1.234,50.
func Money(v float64) string {
	return "R$ " + ptBR.Sprint(number.Decimal(v, number.Scale(2)))
}

// Kg форматирует вес с не более чем одним знаком после запятой.
func Kg(v float64) string {
	return ptBR.Sprint(number.Decimal(v, number.MaxFractionDigits(1))) + " kg"
}

// Percent форматирует долю как процент с одним знаком: 0.015 -> 1,5%.
func Percent(rate float64) string {
	return ptBR.Sprint(number.Decimal(rate*100, number.Scale(1))) + "%"
}

// Ticket средний чек; при нуле заказов делит на один.
func Ticket(total float64, count int) string {
	if count < 1 {
		count = 1
	}
	return Money(total / float64(count))
}

// Date переводит дату ISO в dd/mm/aaaa. Нераспознанная строка выводится как есть.
func Date(s *string) string {
	if s == nil || *s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return *s
}

// Phone форматирует бразильский номер: (13) 99680-4852 или (13) 2138-4736.
func Phone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	}
	return phone
}

// FirstName первое слово имени.
func FirstName(nome string) string {
	if fields := strings.Fields(nome); len(fields) > 0 {
		return fields[0]
	}
	return nome
}

// TierLabel название уровня партнёрства; неизвестный уровень считается начальным.
func TierLabel(nivel string) string {
	if t, ok := models.TierByNivel(nivel); ok {
		return t.Titulo
	}
	return models.Tiers[0].Titulo
}

// RoleLabel название роли для таблиц.
func RoleLabel(r models.Role) string {
	switch r {
	case models.RoleAdmin:
		return "Administrador"
	case models.RoleFornecedor:
		return "Fornecedor"
	}
	return "Cliente"
}

// NextTier следующий уровень после nivel, false для высшего.
func NextTier(nivel string) (models.Tier, bool) {
	for i, t := range models.Tiers {
		if t.Nivel == nivel && i+1 < len(models.Tiers) {
			return models.Tiers[i+1], true
		}
	}
	if _, known := models.TierByNivel(nivel); !known {
		return models.Tiers[1], true
	}
	return models.Tier{}, false
}

// Progress доля пути до meta в процентах, не больше 100.
func Progress(done, meta float64) int {
	if meta <= 0 {
		return 100
	}
	return int(math.Min(done/meta*100, 100))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func pageNumbers(total int) []int {
	out := make([]int, 0, total)
	for i := 1; i <= total; i++ {
		out = append(out, i)
	}
	return out
}
