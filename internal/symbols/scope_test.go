package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

func TestBindingShadowingAndRefCounts(t *testing.T) {
	scope := NewScope()
	scope.Enter()

	scope.AddBinding(LetBinding, "x", typesystem.Int, token.Position{Start: 0, End: 1})

	scope.Enter()
	scope.AddBinding(LetBinding, "x", typesystem.String, token.Position{Start: 10, End: 11})

	binding := scope.GetBinding("x")
	require.NotNil(t, binding)
	assert.True(t, typesystem.Equal(typesystem.String, binding.Type), "inner frame shadows outer")
	assert.Equal(t, 1, binding.RefCount)

	// Looking it up again only ever increments.
	scope.GetBinding("x")
	assert.Equal(t, 2, binding.RefCount)

	scope.Exit()

	outer := scope.GetBinding("x")
	require.NotNil(t, outer)
	assert.True(t, typesystem.Equal(typesystem.Int, outer.Type))
}

func TestExitWarnsOnUnusedLet(t *testing.T) {
	scope := NewScope()
	scope.Enter()

	scope.AddBinding(LetBinding, "used", typesystem.Int, token.Position{})
	scope.AddBinding(LetBinding, "unused", typesystem.Int, token.Position{})
	scope.AddBinding(DefBinding, "helper", typesystem.Int, token.Position{})

	scope.GetBinding("used")

	warnings := scope.Exit()
	require.Len(t, warnings, 1)
	assert.Equal(t, diagnostics.WarnA010, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "unused")
}

func TestScopeBalance(t *testing.T) {
	scope := NewScope()

	scope.Enter()
	scope.Enter()
	assert.Equal(t, 2, scope.Depth())

	scope.Exit()
	scope.Exit()
	assert.Equal(t, 0, scope.Depth())

	// Exiting with no frames is a no-op, not a panic.
	assert.Nil(t, scope.Exit())
}

func TestTypeBindingsAreFlat(t *testing.T) {
	scope := NewScope()
	scope.Enter()

	personType := typesystem.Named{Name: "Person"}
	scope.AddTypeBinding(personType, StructType, token.Position{})

	scope.Enter()
	binding := scope.GetTypeBinding(personType)
	require.NotNil(t, binding, "type bindings do not nest with frames")
	assert.Equal(t, 1, binding.RefCount)
	scope.Exit()

	// Still visible after the inner frame exits.
	assert.NotNil(t, scope.GetTypeBinding(personType))
}

func TestIntrinsicAndNamedTypesDoNotCollide(t *testing.T) {
	scope := NewScope()
	scope.AddTypeBinding(typesystem.Int, IntrinsicType, token.Position{})
	scope.AddTypeBinding(typesystem.Named{Name: "Int"}, StructType, token.Position{})

	intrinsic := scope.GetTypeBinding(typesystem.Int)
	named := scope.GetTypeBinding(typesystem.Named{Name: "Int"})

	require.NotNil(t, intrinsic)
	require.NotNil(t, named)
	assert.NotEqual(t, intrinsic.Kind, named.Kind)
}

func TestAddTypeMethod(t *testing.T) {
	scope := NewScope()
	scope.AddTypeBinding(typesystem.Int, IntrinsicType, token.Position{})

	err := scope.AddTypeMethod(
		typesystem.Int,
		[]string{"$", "+", "$"},
		[]typesystem.ValueType{typesystem.Int},
		typesystem.Int,
		token.Position{},
	)
	require.Nil(t, err)

	binding := scope.GetTypeBinding(typesystem.Int)
	methodType, found := binding.Methods[MethodKey([]string{"$", "+", "$"})]
	require.True(t, found)

	funcType := methodType.(typesystem.Func)
	assert.True(t, typesystem.Equal(typesystem.Int, funcType.Return))
}

func TestAddTypeMethodOnUndefinedType(t *testing.T) {
	scope := NewScope()

	err := scope.AddTypeMethod(
		typesystem.Named{Name: "Ghost"},
		[]string{"spook"},
		nil,
		typesystem.Nothing,
		token.Position{Start: 3, End: 8},
	)

	require.NotNil(t, err)
	assert.Equal(t, diagnostics.ErrA004, err.Code)
	assert.Equal(t, 3, err.Pos.Start)
}
