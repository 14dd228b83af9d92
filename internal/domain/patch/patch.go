// Package patch modela actualizaciones parciales: solo los campos presentes
// en el Patch se modifican. Los adaptadores de persistencia traducen cada
// nombre de campo a su columna mediante una lista blanca.
package patch

// Field un campo a modificar con su nuevo valor.
type Field struct {
	Name  string
	Value any
}

// Patch conjunto ordenado de campos. El orden de inserción se conserva para
// generar SQL determinista.
type Patch struct {
	fields []Field
}

// New crea un Patch vacío.
func New() *Patch {
	return &Patch{}
}

// Set agrega o reemplaza el valor de un campo.
func (p *Patch) Set(name string, value any) *Patch {
	for i := range p.fields {
		if p.fields[i].Name == name {
			p.fields[i].Value = value
			return p
		}
	}
	p.fields = append(p.fields, Field{Name: name, Value: value})
	return p
}

// Optional agrega el campo solo si v no es nil (campo presente en la petición).
func Optional[T any](p *Patch, name string, v *T) *Patch {
	if v != nil {
		p.Set(name, *v)
	}
	return p
}

// Get devuelve el valor de un campo si está presente.
func (p *Patch) Get(name string) (any, bool) {
	for _, f := range p.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Has indica si el campo está presente.
func (p *Patch) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Fields devuelve una copia de los campos en orden de inserción.
func (p *Patch) Fields() []Field {
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

func (p *Patch) Len() int { return len(p.fields) }

func (p *Patch) Empty() bool { return len(p.fields) == 0 }
