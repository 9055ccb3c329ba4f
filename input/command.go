package input

import "fmt"

// CommandID is the interned identity of a named command.
type CommandID uint32

// Command is a named action that input can be bound to.
type Command struct {
	ID   CommandID
	Name string
}

func (c Command) String() string {
	return fmt.Sprintf("%s#%d", c.Name, c.ID)
}

// CommandDirectory interns command names. Ids are dense and assigned in
// registration order starting at 0.
type CommandDirectory struct {
	byName map[string]CommandID
	names  []string
}

// NewCommandDirectory creates an empty directory.
func NewCommandDirectory() *CommandDirectory {
	return &CommandDirectory{byName: make(map[string]CommandID)}
}

// Register returns the command for name, creating it on first use.
func (d *CommandDirectory) Register(name string) Command {
	if id, ok := d.byName[name]; ok {
		return Command{ID: id, Name: name}
	}
	id := CommandID(len(d.names))
	d.names = append(d.names, name)
	d.byName[name] = id
	return Command{ID: id, Name: name}
}

// ByName looks a command up by name.
func (d *CommandDirectory) ByName(name string) (Command, bool) {
	id, ok := d.byName[name]
	if !ok {
		return Command{}, false
	}
	return Command{ID: id, Name: name}, true
}

// ByID looks a command up by id.
func (d *CommandDirectory) ByID(id CommandID) (Command, bool) {
	if int(id) >= len(d.names) {
		return Command{}, false
	}
	return Command{ID: id, Name: d.names[id]}, true
}

func (d *CommandDirectory) Len() int {
	return len(d.names)
}

// Commands returns every command in id order.
func (d *CommandDirectory) Commands() []Command {
	out := make([]Command, len(d.names))
	for i, name := range d.names {
		out[i] = Command{ID: CommandID(i), Name: name}
	}
	return out
}
