package symbols

import (
	"strings"

	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

type scopeLevel struct {
	bindings map[string]*Binding
	order    []string
}

// Scope is a stack of lexical frames for value bindings plus a single
// flat table for type bindings. Value lookups search frames top-down
// and bump reference counts; type bindings do not nest.
type Scope struct {
	levels       []*scopeLevel
	typeBindings map[string]*TypeBinding
}

func NewScope() *Scope {
	return &Scope{
		typeBindings: make(map[string]*TypeBinding),
	}
}

// Enter pushes a new frame.
func (s *Scope) Enter() {
	s.levels = append(s.levels, &scopeLevel{
		bindings: make(map[string]*Binding),
	})
}

// Exit pops the top frame and returns an unused-variable warning for
// every let or parameter binding that was never referenced.
func (s *Scope) Exit() []*diagnostics.Diagnostic {
	if len(s.levels) == 0 {
		return nil
	}

	level := s.levels[len(s.levels)-1]
	s.levels = s.levels[:len(s.levels)-1]

	var warnings []*diagnostics.Diagnostic
	for _, name := range level.order {
		binding := level.bindings[name]
		if binding.RefCount == 0 && (binding.Kind == LetBinding || binding.Kind == ParamBinding) {
			warnings = append(warnings, diagnostics.NewWarning(
				diagnostics.WarnA010,
				binding.Pos,
				name,
			))
		}
	}

	return warnings
}

// Depth returns the number of open frames.
func (s *Scope) Depth() int {
	return len(s.levels)
}

// AddBinding inserts a value binding into the top frame, overwriting
// any same-frame entry. Callers that forbid shadowing report
// NameAlreadyInScope before calling this.
func (s *Scope) AddBinding(kind BindingKind, name string, typ typesystem.ValueType, pos token.Position) {
	if len(s.levels) == 0 {
		return
	}

	level := s.levels[len(s.levels)-1]
	if _, exists := level.bindings[name]; !exists {
		level.order = append(level.order, name)
	}
	level.bindings[name] = &Binding{
		Kind: kind,
		Pos:  pos,
		Type: typ,
	}
}

// GetBinding searches frames top-down and increments the binding's
// reference count on a hit.
func (s *Scope) GetBinding(name string) *Binding {
	for i := len(s.levels) - 1; i >= 0; i-- {
		if binding, ok := s.levels[i].bindings[name]; ok {
			binding.RefCount++
			return binding
		}
	}
	return nil
}

// Bindings returns a snapshot of the top frame's bindings, used by the
// module loader to export a compiled module's symbols before the frame
// is exited.
func (s *Scope) Bindings() map[string]*Binding {
	if len(s.levels) == 0 {
		return nil
	}

	level := s.levels[len(s.levels)-1]
	snapshot := make(map[string]*Binding, len(level.bindings))
	for name, binding := range level.bindings {
		snapshot[name] = binding
	}
	return snapshot
}

// AddTypeBinding registers a type in the flat type table.
func (s *Scope) AddTypeBinding(typ typesystem.ValueType, kind TypeBindingKind, pos token.Position) *TypeBinding {
	binding := &TypeBinding{
		Kind:    kind,
		Pos:     pos,
		Type:    typ,
		Fields:  make(map[string]*Binding),
		Methods: make(map[string]typesystem.ValueType),
	}
	s.typeBindings[typ.Key()] = binding
	return binding
}

// GetTypeBinding looks a type up and increments its reference count.
func (s *Scope) GetTypeBinding(typ typesystem.ValueType) *TypeBinding {
	if binding, ok := s.typeBindings[typ.Key()]; ok {
		binding.RefCount++
		return binding
	}
	return nil
}

// AddTypeMethod attaches a method type to the receiver type's method
// map, keyed by the canonical space-joined name parts. It fails with an
// UndefinedTypeInMethodDef diagnostic when the receiver type has no
// type binding.
func (s *Scope) AddTypeMethod(
	typ typesystem.ValueType,
	methodParts []string,
	paramTypes []typesystem.ValueType,
	returnType typesystem.ValueType,
	pos token.Position,
) *diagnostics.Diagnostic {
	binding := s.GetTypeBinding(typ)
	if binding == nil {
		return diagnostics.NewError(diagnostics.ErrA004, pos, typ)
	}

	binding.Methods[MethodKey(methodParts)] = typesystem.Func{
		Params: paramTypes,
		Return: returnType,
	}

	return nil
}

// MethodKey returns the canonical method-map key: the name parts
// joined by single spaces.
func MethodKey(parts []string) string {
	return strings.Join(parts, " ")
}
