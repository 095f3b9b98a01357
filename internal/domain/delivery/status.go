// Package delivery contiene las reglas de dominio del ciclo de vida de una
// entrega: enumeración cerrada de estados y tabla central de transiciones.
package delivery

// Estados del ciclo de vida de una entrega.
const (
	StatusDraft   = "draft"
	StatusWaiting = "waiting"
	StatusReady   = "ready"
	StatusDone    = "done" // terminal
)

// transitions tabla de transiciones permitidas. Cualquier par fuera de la
// tabla es inválido; de done no se sale.
var transitions = map[string][]string{
	StatusDraft:   {StatusWaiting},
	StatusWaiting: {StatusReady, StatusDraft},
	StatusReady:   {StatusDone, StatusWaiting},
	StatusDone:    {},
}

// ValidStatus verifica que s sea uno de los cuatro estados conocidos.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition indica si el cambio from → to está en la tabla.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
