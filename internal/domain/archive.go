package domain

import "time"

// ArchivedMessage es la fila durable del archivo de conversaciones. Se
// escribe al cierre de cada turno cuando hay base de datos configurada.
type ArchivedMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Emotion   string    `json:"emotion,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
