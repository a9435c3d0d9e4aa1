package extr

// Tool is a program able to extract a format.
type Tool struct {
	Name      string // Name of the program.
	Path      string // Path is where the program was found, or empty when missing.
	Available bool   // Available is true when the program is installed in a trusted location.
}

// Format is an extension key and the programs able to extract it, in the order of preference.
type Format struct {
	Ext   string
	Tools []Tool
}

// Usable returns true when at least one of the programs is available.
func (f Format) Usable() bool {
	for _, t := range f.Tools {
		if t.Available {
			return true
		}
	}
	return false
}

// Health reports every registered extension key, in sorted order,
// and which of its programs are installed in a trusted location.
func (d *Dispatcher) Health() []Format {
	keys := d.registry.Keys()
	formats := make([]Format, 0, len(keys))
	for _, key := range keys {
		a, ok := d.registry.Get(key)
		if !ok {
			continue
		}
		names := a.Binaries()
		tools := make([]Tool, 0, len(names))
		for _, name := range names {
			tool := Tool{Name: name}
			if path, err := d.lookPath(name); err == nil {
				tool.Path = path
				tool.Available = d.trusted(path)
			}
			tools = append(tools, tool)
		}
		formats = append(formats, Format{Ext: key, Tools: tools})
	}
	return formats
}
