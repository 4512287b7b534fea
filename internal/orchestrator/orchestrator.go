package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mindcare/internal/agents"
	"mindcare/internal/domain"
)

// Mensajes fijos del enrutador.
const (
	// EscalationMessage reemplaza la respuesta normal cuando el chequeo de
	// seguridad pide intervencion humana.
	EscalationMessage = "I'm connecting you with a mental health professional who can better assist you."
	// SafetyDisclaimer se antepone a la respuesta cuando el input no es
	// seguro pero no amerita escalacion.
	SafetyDisclaimer = "Please note that I'm an AI assistant and not a substitute for professional mental health support."
)

// Nodos de la maquina de estados.
type node string

const (
	nodeSafety   node = "safety"
	nodeTriage   node = "triage"
	nodeEmpathy  node = "empathy"
	nodeResource node = "resource"
	nodeMemory   node = "memory"
	nodeTerminal node = "terminal"
)

// Orchestrator cablea los agentes en un flujo fijo con un unico punto de
// ramificacion condicional despues del triage.
//
// Nota de diseno heredada: cuando el turno escala a intervencion humana, el
// flujo salta directo al terminal sin pasar por el agente de memoria, por lo
// que ni la conversacion ni el rastreo de riesgo registran turnos escalados.
// Se preserva tal cual; ver DESIGN.md.
type Orchestrator struct {
	safety   agents.Agent
	triage   agents.Agent
	empathy  agents.Agent
	resource agents.Agent
	memory   agents.Agent
	logger   *zap.Logger
}

// New crea el orquestador con los cinco agentes del pipeline.
func New(
	safety agents.Agent,
	triage agents.Agent,
	empathy agents.Agent,
	resource agents.Agent,
	memory agents.Agent,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		safety:   safety,
		triage:   triage,
		empathy:  empathy,
		resource: resource,
		memory:   memory,
		logger:   logger,
	}
}

// Advance ejecuta un turno completo: coloca el mensaje del usuario en el
// estado, recorre la maquina de estados hasta el terminal y devuelve el
// estado actualizado, listo para persistir por sesion.
func (o *Orchestrator) Advance(ctx context.Context, state *domain.ChatbotState, userMessage string) (*domain.ChatbotState, error) {
	if state == nil {
		state = domain.NewChatbotState()
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if state.AgentResponses == nil {
		state.AgentResponses = map[string]string{}
	}
	state.CurrentUserInput = userMessage

	current := entryNode(state)
	for current != nodeTerminal {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		next, err := o.step(ctx, current, state)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", current, err)
		}
		o.logger.Debug("transition",
			zap.String("from", string(current)),
			zap.String("to", string(next)),
		)
		current = next
	}

	return state, nil
}

// entryNode guarda contra doble invocacion: si el turno ya tiene chequeo de
// seguridad hecho, se entra por triage.
func entryNode(state *domain.ChatbotState) node {
	if state.CurrentUserInput != "" && state.SafetyCheck == nil {
		return nodeSafety
	}
	return nodeTriage
}

func (o *Orchestrator) step(ctx context.Context, current node, state *domain.ChatbotState) (node, error) {
	switch current {
	case nodeSafety:
		if err := o.safety.Process(ctx, state); err != nil {
			return nodeTerminal, err
		}
		return nodeTriage, nil

	case nodeTriage:
		if err := o.triage.Process(ctx, state); err != nil {
			return nodeTerminal, err
		}
		return routeAfterTriage(state), nil

	case nodeEmpathy:
		if err := o.empathy.Process(ctx, state); err != nil {
			return nodeTerminal, err
		}
		return nodeMemory, nil

	case nodeResource:
		if err := o.resource.Process(ctx, state); err != nil {
			return nodeTerminal, err
		}
		return nodeMemory, nil

	case nodeMemory:
		if err := o.memory.Process(ctx, state); err != nil {
			return nodeTerminal, err
		}
		return nodeTerminal, nil

	default:
		return nodeTerminal, fmt.Errorf("unknown node %q", current)
	}
}

// routeAfterTriage es el unico punto de decision del grafo: escala, adjunta
// la advertencia o enruta segun la decision del triage.
func routeAfterTriage(state *domain.ChatbotState) node {
	if state.SafetyCheck != nil && !state.SafetyCheck.IsSafe {
		if state.SafetyCheck.NeedsHumanIntervention {
			state.FinalResponse = EscalationMessage
			return nodeTerminal
		}
		state.AgentResponses[domain.ResponseKeySafetyWarning] = SafetyDisclaimer
	}

	switch state.CurrentAgent {
	case domain.AgentEmpathy:
		return nodeEmpathy
	case domain.AgentResource:
		return nodeResource
	default:
		return nodeTerminal
	}
}
