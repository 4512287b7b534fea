package agents

import (
	"context"

	"mindcare/internal/domain"
)

// Agent es el contrato comun de los agentes del pipeline: cada uno recibe el
// estado completo de la conversacion y muta la porcion que le corresponde.
type Agent interface {
	// Name devuelve el identificador del agente dentro del orquestador.
	Name() string
	// Process ejecuta el paso del agente sobre el estado. Un error aborta el
	// turno completo; los agentes no reintentan.
	Process(ctx context.Context, state *domain.ChatbotState) error
}
