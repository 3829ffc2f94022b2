package ast

// CallableKind distinguishes functions from operations.
type CallableKind uint8

const (
	CallableFunction CallableKind = iota
	CallableOperation
)

// CallableDecl is a function or operation declaration.
type CallableDecl struct {
	Meta
	Kind     CallableKind  `json:"kind" msgpack:"kind"`
	Name     *Ident        `json:"name" msgpack:"name"`
	Generics []*Ident      `json:"generics,omitempty" msgpack:"generics,omitempty"`
	Input    *Pat          `json:"input" msgpack:"input"`
	Output   *Ty           `json:"output" msgpack:"output"`
	Body     *CallableBody `json:"body" msgpack:"body"`
}

// CallableBody is either a plain block or a list of specializations.
type CallableBody struct {
	Block *Block      `json:"block,omitempty" msgpack:"block,omitempty"`
	Specs []*SpecDecl `json:"specs,omitempty" msgpack:"specs,omitempty"`
}

// Spec names a specialization.
type Spec uint8

const (
	SpecBody Spec = iota
	SpecAdj
	SpecCtl
	SpecCtlAdj
)

// SpecGen is a generated (bodiless) specialization directive.
type SpecGen uint8

const (
	SpecGenNone SpecGen = iota
	SpecGenAuto
	SpecGenDistribute
	SpecGenIntrinsic
	SpecGenInvert
	SpecGenSlf
)

// SpecDecl is `body ...`, `adjoint ...`, `controlled ...`.
type SpecDecl struct {
	Meta
	Spec Spec      `json:"spec" msgpack:"spec"`
	Gen  SpecGen   `json:"gen,omitempty" msgpack:"gen,omitempty"`
	Impl *SpecImpl `json:"impl,omitempty" msgpack:"impl,omitempty"`
}

// SpecImpl is an explicit specialization body with its own input pattern.
type SpecImpl struct {
	Input *Pat   `json:"input" msgpack:"input"`
	Block *Block `json:"block" msgpack:"block"`
}

// IsIntrinsic reports whether any specialization is `intrinsic`.
func (d *CallableDecl) IsIntrinsic() bool {
	if d == nil || d.Body == nil {
		return false
	}
	for _, spec := range d.Body.Specs {
		if spec != nil && spec.Impl == nil && spec.Gen == SpecGenIntrinsic {
			return true
		}
	}
	return false
}
