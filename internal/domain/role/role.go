package role

// Landing é a superfície de destino após o login. O mapeamento é uma tabela
// fechada: qualquer role fora dela cai na superfície de cliente.
type Landing string

const (
	LandingAdmin        Landing = "/dashboard"
	LandingReception    Landing = "/recepcao"
	LandingProfessional Landing = "/profissional"
	LandingClient       Landing = "/agendamento"
)

const (
	Admin        = "admin"
	Reception    = "recepcao"
	Professional = "profissional"
)

var landings = map[string]Landing{
	Admin:        LandingAdmin,
	Reception:    LandingReception,
	Professional: LandingProfessional,
}

// LandingFor resolve a superfície de destino para um role. Role vazio ou
// desconhecido é tratado como cliente.
func LandingFor(r string) Landing {
	if l, ok := landings[r]; ok {
		return l
	}
	return LandingClient
}
