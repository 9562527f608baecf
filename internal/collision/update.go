package collision

import "github.com/tomz197/marbles/internal/object"

// Update runs one collision tick: clear, gather, resolve.
// Marbles are modified in place; walls are only read. contacts is scratch
// space owned by the caller and holds this tick's sorted contacts afterwards.
func Update(walls []object.Wall, marbles []object.Marble, contacts *Contacts) {
	contacts.Clear()
	Gather(walls, marbles, contacts)
	Restitute(walls, marbles, contacts)
}
