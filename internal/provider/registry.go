package provider

// Registry mapeia a tag do modelo para o adapter, montado uma vez na inicialização
type Registry struct {
	providers map[string]Provider
	names     []string
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if _, exists := r.providers[p.Name()]; !exists {
			r.names = append(r.names, p.Name())
		}
		r.providers[p.Name()] = p
	}
	return r
}

// Lookup retorna o adapter da tag, se existir
func (r *Registry) Lookup(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names retorna as tags na ordem de registro
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
