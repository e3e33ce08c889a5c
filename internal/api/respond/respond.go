// Package respond centraliza a escrita das respostas HTTP: envelopes de
// sucesso ({item: ...} e {items: [...]}) e o envelope padronizado de erro.
package respond

import (
	"encoding/json"
	"net/http"

	"petconnect/internal/domain"
	apperror "petconnect/internal/errors"
	"petconnect/internal/pkg/logger"
)

// JSON escreve o payload cru com o status informado.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// Item envelopa um recurso único em {"item": ...}.
func Item(w http.ResponseWriter, status int, item interface{}) {
	JSON(w, status, map[string]interface{}{"item": item})
}

// Items envelopa uma coleção em {"items": [...]}.
func Items(w http.ResponseWriter, status int, items interface{}) {
	JSON(w, status, map[string]interface{}{"items": items})
}

// Error traduz o erro para o envelope padronizado. Erros 5xx têm o
// detalhe registrado no log e mascarado na resposta.
func Error(w http.ResponseWriter, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)
	if status >= 500 {
		log.Error("Erro interno ao atender requisição.", err)
	}
	JSON(w, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}
