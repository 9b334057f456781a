package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Aulas       *AulaHandler
	Turmas      *TurmaHandler
	Ucs         *UcHandler
	Feriados    *FeriadoHandler
	Cronogramas *CronogramaHandler
	Middleware  []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Aulas != nil {
		mux.HandleFunc("/aulas", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Aulas.Listar(w, r)
			case http.MethodPost:
				cfg.Aulas.Agendar(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/aulas/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/aulas/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithAulaID(r.Context(), id)
			r = r.WithContext(ctx)
			switch r.Method {
			case http.MethodPut:
				cfg.Aulas.Editar(w, r)
			case http.MethodDelete:
				cfg.Aulas.Excluir(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Turmas != nil {
		mux.HandleFunc("/turmas", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Turmas.Listar(w, r)
		})
		mux.HandleFunc("/turmas/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/turmas/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			r = r.WithContext(ContextWithTurmaID(r.Context(), id))
			cfg.Turmas.Buscar(w, r)
		})
	}

	if cfg.Ucs != nil {
		mux.HandleFunc("/ucs", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Ucs.Listar(w, r)
			case http.MethodPost:
				cfg.Ucs.Criar(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/ucs/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/ucs/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithUcID(r.Context(), id)
			r = r.WithContext(ctx)
			switch r.Method {
			case http.MethodGet:
				cfg.Ucs.Buscar(w, r)
			case http.MethodPut:
				cfg.Ucs.Atualizar(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		})
		mux.HandleFunc("/cursos", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Ucs.ListarCursos(w, r)
		})
	}

	if cfg.Feriados != nil {
		mux.HandleFunc("/feriados", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Feriados.Listar(w, r)
			case http.MethodPost:
				cfg.Feriados.Adicionar(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
	}

	if cfg.Cronogramas != nil {
		mux.HandleFunc("/cronogramas/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/cronogramas/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}

			exportICS := strings.HasSuffix(id, ".ics")
			if exportICS {
				id = strings.TrimSuffix(id, ".ics")
			}
			if id == "" {
				http.NotFound(w, r)
				return
			}

			r = r.WithContext(ContextWithTurmaID(r.Context(), id))
			if exportICS {
				cfg.Cronogramas.ExportarICS(w, r)
				return
			}
			cfg.Cronogramas.Imprimir(w, r)
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
