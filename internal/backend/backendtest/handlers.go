package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

const pendingMessage = "Cadastro realizado com sucesso. Aguarde aprovação do administrador."

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email e senha são obrigatórios")
		return
	}

	s.mu.Lock()
	var found *account
	for _, a := range s.users {
		if a.user.Email == req.Email {
			found = a
			break
		}
	}
	s.mu.Unlock()

	switch {
	case found == nil || found.password != req.Password:
		writeMessage(w, http.StatusUnauthorized, "Credenciais inválidas")
	case !found.user.Ativo:
		writeMessage(w, http.StatusUnauthorized, "Conta desativada")
	case !found.user.Aprovado:
		writeMessage(w, http.StatusUnauthorized, "Conta aguardando aprovação")
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Login realizado com sucesso",
			"token":   s.Token(found.user.ID),
			"user":    found.user,
		})
	}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.Registration
	_ = json.NewDecoder(r.Body).Decode(&req)
	for field, v := range map[string]string{"email": req.Email, "password": req.Password, "nome": req.Nome, "tipo_usuario": string(req.TipoUsuario)} {
		if v == "" {
			writeMessage(w, http.StatusBadRequest, fmt.Sprintf("Campo %s é obrigatório", field))
			return
		}
	}

	s.mu.Lock()
	for _, a := range s.users {
		if a.user.Email == req.Email {
			s.mu.Unlock()
			writeMessage(w, http.StatusBadRequest, "Email já cadastrado")
			return
		}
	}
	s.mu.Unlock()

	u := models.User{
		Email:       req.Email,
		Nome:        req.Nome,
		TipoUsuario: req.TipoUsuario,
		Ativo:       true,
		Aprovado:    req.TipoUsuario != models.RoleFornecedor,
	}
	switch req.TipoUsuario {
	case models.RoleCliente:
		u.Cliente = &models.Cliente{Empresa: strPtr(req.Empresa), NivelParceria: "inicial"}
	case models.RoleFornecedor:
		u.Fornecedor = &models.Fornecedor{NomeEmpresa: req.NomeEmpresa, Categoria: req.Categoria}
	}
	u = s.AddUser(u, req.Password)

	if !u.Aprovado {
		writeJSON(w, http.StatusCreated, map[string]any{"message": pendingMessage, "user": u})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Usuário criado com sucesso",
		"token":   s.Token(u.ID),
		"user":    u,
	})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	s.MeCalls.Add(1)
	if s.MeDelay > 0 {
		select {
		case <-time.After(s.MeDelay):
		case <-r.Context().Done():
			return
		}
	}
	s.mu.Lock()
	u := currentUser(r).user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdate
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	a := currentUser(r)
	if req.Nome != "" {
		a.user.Nome = req.Nome
	}
	a.user.Telefone = strPtr(req.Telefone)
	if a.user.Cliente != nil {
		a.user.Cliente.Empresa = strPtr(req.Empresa)
		a.user.Cliente.Cidade = strPtr(req.Cidade)
	}
	if a.user.Fornecedor != nil && req.NomeEmpresa != "" {
		a.user.Fornecedor.NomeEmpresa = req.NomeEmpresa
	}
	s.mu.Unlock()
	writeMessage(w, http.StatusOK, "Perfil atualizado com sucesso")
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeMessage(w, http.StatusBadRequest, "Senha atual e nova senha são obrigatórias")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a := currentUser(r)
	if a.password != req.CurrentPassword {
		writeMessage(w, http.StatusBadRequest, "Senha atual incorreta")
		return
	}
	a.password = req.NewPassword
	writeMessage(w, http.StatusOK, "Senha alterada com sucesso")
}

func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Email é obrigatório")
		return
	}
	const msg = "Se o email existir em nossa base, você receberá instruções para redefinir sua senha."

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.users {
		if a.user.Email == req.Email {
			token := fmt.Sprintf("reset-%d-%d", id, time.Now().UnixNano())
			s.resets[token] = id
			writeJSON(w, http.StatusOK, map[string]string{"message": msg, "debug_token": token})
			return
		}
	}
	writeMessage(w, http.StatusOK, msg)
}

func (s *Server) validateResetToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Token == "" {
		writeMessage(w, http.StatusBadRequest, "Token é obrigatório")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.resets[req.Token]
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"valid": false, "message": "Token inválido"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "message": "Token válido", "email": s.users[id].user.Email})
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Token == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Token e nova senha são obrigatórios")
		return
	}
	if len(req.Password) < 6 {
		writeMessage(w, http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.resets[req.Token]
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Token inválido ou expirado")
		return
	}
	delete(s.resets, req.Token)
	s.users[id].password = req.Password
	writeMessage(w, http.StatusOK, "Senha alterada com sucesso")
}

func (s *Server) clienteDashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u := currentUser(r).user
	s.mu.Unlock()
	cliente := models.Cliente{NivelParceria: "inicial"}
	if u.Cliente != nil {
		cliente = *u.Cliente
	}
	writeJSON(w, http.StatusOK, models.ClienteDashboard{
		Cliente: cliente,
		EstatisticasMes: models.EstatisticasMes{
			TotalKg:       42.5,
			TotalValor:    1234.5,
			NumeroPedidos: 3,
		},
		ProximasEntregas: []models.Pedido{
			{ID: 1, QuantidadeKg: 10, TipoCafe: "graos", TipoTorra: "media", ValorTotal: 450, Status: "processando", DataEntrega: strPtr("2024-05-15T00:00:00")},
		},
		UltimasTransacoesCashback: []models.TransacaoCashback{
			{ID: 1, Tipo: "ganho", Valor: 6.75, Descricao: strPtr("Cashback do pedido #1"), DataTransacao: strPtr("2024-05-01T10:00:00.123456")},
		},
		BeneficiosDisponiveis: 2,
		TaxaCashbackAtual:     0.015,
	})
}

func (s *Server) fornecedorDashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u := currentUser(r).user
	s.mu.Unlock()
	var f models.Fornecedor
	if u.Fornecedor != nil {
		f = *u.Fornecedor
	}
	writeJSON(w, http.StatusOK, models.FornecedorDashboard{
		Fornecedor: f,
		Estatisticas: models.EstatisticasFornecedor{
			TotalClientes: 10, ClientesInicial: 6, ClientesAvancado: 3, ClientesElite: 1, BeneficiosAtivos: 2,
		},
	})
}

func (s *Server) adminDashboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	var clientes, fornecedores, pendentes int
	for _, a := range s.users {
		switch a.user.TipoUsuario {
		case models.RoleCliente:
			clientes++
		case models.RoleFornecedor:
			fornecedores++
			if !a.user.Aprovado {
				pendentes++
			}
		}
	}
	s.mu.Unlock()

	recent := models.PedidoRecente{Pedido: models.Pedido{ID: 9, QuantidadeKg: 20, ValorTotal: 900, Status: "pendente"}}
	recent.Cliente.Nome = "Ana"
	recent.Cliente.Email = "ana@cafe.test"
	writeJSON(w, http.StatusOK, models.AdminDashboard{
		Estatisticas: models.EstatisticasAdmin{
			TotalClientes:         clientes,
			TotalFornecedores:     fornecedores,
			FornecedoresPendentes: pendentes,
			PedidosMes:            4,
			FaturamentoMes:        15320.75,
			VolumeMes:             310.5,
			CashbackTotal:         229.81,
		},
		UltimosPedidos:     []models.PedidoRecente{recent},
		DistribuicaoNiveis: []models.NivelCount{{Nivel: "inicial", Count: clientes}},
	})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tipo, status, busca := q.Get("tipo_usuario"), q.Get("status"), strings.ToLower(q.Get("busca"))

	s.mu.Lock()
	var out []models.User
	for id := int64(1); id <= s.nextID; id++ {
		a, ok := s.users[id]
		if !ok {
			continue
		}
		u := a.user
		if tipo != "" && string(u.TipoUsuario) != tipo {
			continue
		}
		switch status {
		case "ativo":
			if !u.Ativo || !u.Aprovado {
				continue
			}
		case "inativo":
			if u.Ativo {
				continue
			}
		case "pendente":
			if u.Aprovado {
				continue
			}
		}
		if busca != "" && !strings.Contains(strings.ToLower(u.Nome), busca) && !strings.Contains(strings.ToLower(u.Email), busca) {
			continue
		}
		out = append(out, u)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.UserList{Usuarios: out, Total: len(out), Pages: 1, CurrentPage: 1, PerPage: 20})
}

func (s *Server) approveSupplier(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[pathID(r)]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	if a.user.TipoUsuario != models.RoleFornecedor {
		writeMessage(w, http.StatusBadRequest, "Usuário não é um fornecedor")
		return
	}
	a.user.Aprovado = true
	writeMessage(w, http.StatusOK, "Fornecedor aprovado com sucesso")
}

func (s *Server) rejectSupplier(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	a, ok := s.users[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	if a.user.TipoUsuario != models.RoleFornecedor {
		writeMessage(w, http.StatusBadRequest, "Usuário não é um fornecedor")
		return
	}
	delete(s.users, id)
	writeMessage(w, http.StatusOK, "Fornecedor rejeitado e removido")
}

func (s *Server) toggleUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	a, ok := s.users[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	if id == currentUser(r).user.ID {
		writeMessage(w, http.StatusBadRequest, "Não é possível desativar sua própria conta")
		return
	}
	a.user.Ativo = !a.user.Ativo
	status := "desativado"
	if a.user.Ativo {
		status = "ativado"
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Usuário %s com sucesso", status))
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
