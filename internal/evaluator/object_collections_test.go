package evaluator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xJonas/Phi/internal/config"
)

func str(s string) *String { return &String{Value: s} }
func num(i int64) *Integer { return &Integer{Value: i} }

func collectionOf(t *testing.T, values ...Object) *Collection {
	t.Helper()
	c := NewCollection()
	for _, v := range values {
		require.NoError(t, c.AppendUnnamed(v))
	}
	return c
}

func define(t *testing.T, c *Collection, name string, value Object) {
	t.Helper()
	require.NoError(t, c.CreateNamed(name))
	require.NoError(t, c.SetNamed(name, value))
}

// hierarchy builds a inheriting from b and c, which both inherit from d.
func hierarchy(t *testing.T) (a, b, c, d *Collection) {
	t.Helper()
	a = collectionOf(t, num(1))
	define(t, a, "test1", str("a"))

	b = collectionOf(t, num(2))
	define(t, b, "test1", str("b"))
	define(t, b, "test2", str("x"))

	c = collectionOf(t, num(3), num(5))
	define(t, c, "test1", str("c"))

	d = collectionOf(t, num(4), num(6))
	define(t, d, "test1", str("d"))
	define(t, d, "test2", str("y"))

	require.NoError(t, a.SetNamed("super", collectionOf(t, b, c)))
	require.NoError(t, b.SetNamed("super", collectionOf(t, d)))
	require.NoError(t, c.SetNamed("super", collectionOf(t, d)))
	return a, b, c, d
}

func getNamed(t *testing.T, c *Collection, name string) Object {
	t.Helper()
	v, err := c.GetNamed(name)
	require.NoError(t, err)
	return v
}

func TestCreateUnnamedFillsWithNull(t *testing.T) {
	for _, index := range []int64{0, 1, 7, 1000} {
		c := NewCollection()
		require.NoError(t, c.CreateUnnamed(index))
		v, err := c.GetUnnamed(index)
		require.NoError(t, err)
		assert.Equal(t, NULL, v)
		assert.Equal(t, int(index)+1, c.Len())

		gap, err := c.GetUnnamed(index / 2)
		require.NoError(t, err)
		assert.Equal(t, NULL, gap)
	}
}

func TestCreateUnnamedTwiceKeepsValue(t *testing.T) {
	c := collectionOf(t, num(5))
	require.NoError(t, c.CreateUnnamed(0))
	v, err := c.GetUnnamed(0)
	require.NoError(t, err)
	assert.Equal(t, num(5), v)
}

func TestCreateUnnamedNegative(t *testing.T) {
	err := NewCollection().CreateUnnamed(-1)
	assert.True(t, errors.Is(err, ErrAccess))
}

func TestCreateUnnamedIndexLimit(t *testing.T) {
	assert.Equal(t, int64(16777216), int64(config.MaxUnnamedIndex))

	for _, index := range []int64{config.MaxUnnamedIndex, config.MaxUnnamedIndex + 1, 1 << 40} {
		c := collectionOf(t, num(1))
		err := c.CreateUnnamed(index)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrAccess))
		assert.Contains(t, err.Error(), "is too large")
		assert.Equal(t, 1, c.Len(), "nothing is allocated")
	}
}

func TestNamedRoundTrip(t *testing.T) {
	c := NewCollection()
	define(t, c, "alpha", num(25))
	assert.Equal(t, num(25), getNamed(t, c, "alpha"))

	require.NoError(t, c.SetNamed("alpha", str("beta")))
	assert.Equal(t, str("beta"), getNamed(t, c, "alpha"))
}

func TestCreateNamedTwiceFails(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.CreateNamed("x"))
	err := c.CreateNamed("x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccess))
}

func TestReservedNames(t *testing.T) {
	c := collectionOf(t, num(1))

	assert.Same(t, c, getNamed(t, c, "this"))
	assert.Equal(t, num(1), getNamed(t, c, "length"))

	for _, name := range []string{"this", "length"} {
		err := c.SetNamed(name, num(3))
		assert.True(t, errors.Is(err, ErrAccess), name)
	}
	for _, name := range []string{"this", "length", "super"} {
		err := c.CreateNamed(name)
		assert.True(t, errors.Is(err, ErrAccess), name)
	}
}

func TestSuperIsCreatedLazily(t *testing.T) {
	c := NewCollection()
	assert.Nil(t, c.Super())

	list := getNamed(t, c, "super")
	require.IsType(t, &Collection{}, list)
	assert.Equal(t, 0, list.(*Collection).Len())
	assert.Same(t, list, c.Super())
}

func TestInheritedLookup(t *testing.T) {
	a, _, c, d := hierarchy(t)

	assert.Equal(t, str("a"), getNamed(t, a, "test1"))
	assert.Equal(t, str("x"), getNamed(t, a, "test2"))
	assert.Equal(t, str("y"), getNamed(t, c, "test2"))

	v, err := a.GetUnnamed(1)
	require.NoError(t, err)
	assert.Equal(t, num(6), v, "index 1 comes from d through b")

	_, err = a.GetUnnamed(2)
	assert.True(t, errors.Is(err, ErrAccess))
	_, err = d.GetNamed("missing")
	assert.True(t, errors.Is(err, ErrAccess))
}

func TestInheritedWriteGoesToOwner(t *testing.T) {
	a, b, c, d := hierarchy(t)

	require.NoError(t, a.SetNamed("test2", str("z")))
	assert.Equal(t, str("z"), getNamed(t, b, "test2"))
	assert.Equal(t, str("y"), getNamed(t, c, "test2"))
	assert.Equal(t, str("y"), getNamed(t, d, "test2"))
	assert.False(t, a.Has("test2"))

	err := a.SetNamed("undeclared", num(1))
	assert.True(t, errors.Is(err, ErrAccess))
}

func TestLengthIsMaximumOverHierarchy(t *testing.T) {
	a, b, c, d := hierarchy(t)
	for _, coll := range []*Collection{a, b, c, d} {
		assert.Equal(t, int64(2), coll.Length())
		assert.Equal(t, num(2), getNamed(t, coll, "length"))
	}
	assert.Equal(t, 1, a.Len())
}

func TestCycleThroughSuperListIsRolledBack(t *testing.T) {
	a, b, _, d := hierarchy(t)
	bSuper := b.Super()

	err := bSuper.SetUnnamed(0, a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStructure))

	v, err := bSuper.GetUnnamed(0)
	require.NoError(t, err)
	assert.Same(t, d, v)
	assert.Equal(t, str("x"), getNamed(t, a, "test2"))
}

// superListBelow returns s, the super list of a, and x, which inherits from
// s itself, so x's unnamed members are s's members.
func superListBelow(t *testing.T) (a, s, x, d *Collection) {
	t.Helper()
	d = collectionOf(t, num(1))
	s = collectionOf(t, d)
	a = NewCollection()
	require.NoError(t, a.SetNamed("super", s))
	x = NewCollection()
	require.NoError(t, x.SetNamed("super", collectionOf(t, s)))
	return a, s, x, d
}

func TestInheritedWriteIntoSuperList(t *testing.T) {
	tests := []struct {
		name  string
		value func(a *Collection) Object
		err   error
	}{
		{"cycle", func(a *Collection) Object { return a }, ErrStructure},
		{"integer", func(*Collection) Object { return num(3) }, ErrStructure},
		{"string", func(*Collection) Object { return str("s") }, ErrStructure},
		{"null", func(*Collection) Object { return NULL }, nil},
		{"collection", func(*Collection) Object { return collectionOf(t, num(7), num(8)) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, s, x, d := superListBelow(t)
			value := tt.value(a)

			err := x.SetUnnamed(0, value)
			v, getErr := s.GetUnnamed(0)
			require.NoError(t, getErr)

			if tt.err != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.err))
				assert.Same(t, d, v, "the super list is unchanged")
				assert.Equal(t, int64(1), a.Length())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, value, v)
			assert.Equal(t, 0, x.Len(), "the write lands in the owner")
		})
	}
}

func TestSelfInheritanceIsRejected(t *testing.T) {
	a := NewCollection()
	err := a.SetNamed("super", collectionOf(t, a))
	assert.True(t, errors.Is(err, ErrStructure))
	assert.Nil(t, a.Super(), "the super list stays absent")
}

func TestCyclicSuperAssignmentKeepsPreviousList(t *testing.T) {
	a, b, c, _ := hierarchy(t)
	previous := b.Super()

	err := b.SetNamed("super", collectionOf(t, c, a))
	assert.True(t, errors.Is(err, ErrStructure))
	assert.Same(t, previous, b.Super())
	assert.Equal(t, 1, previous.superRefs)
}

func TestDiamondIsLegal(t *testing.T) {
	_, b, c, d := hierarchy(t)
	e := NewCollection()
	require.NoError(t, e.SetNamed("super", collectionOf(t, b, c, d)))
	assert.Equal(t, int64(2), e.Length())
}

func TestSuperListMustHoldCollections(t *testing.T) {
	a := NewCollection()
	err := a.SetNamed("super", num(1))
	assert.True(t, errors.Is(err, ErrStructure))

	err = a.SetNamed("super", collectionOf(t, num(1)))
	assert.True(t, errors.Is(err, ErrStructure))

	require.NoError(t, a.SetNamed("super", collectionOf(t, NULL, NewCollection())))

	err = a.Super().SetUnnamed(0, num(3))
	assert.True(t, errors.Is(err, ErrStructure))
	err = a.Super().AppendUnnamed(str("s"))
	assert.True(t, errors.Is(err, ErrStructure))
	assert.Equal(t, 2, a.Super().Len())
}

func TestReplacingSuperReleasesOldList(t *testing.T) {
	a := NewCollection()
	first := collectionOf(t, NewCollection())
	second := collectionOf(t, NewCollection())

	require.NoError(t, a.SetNamed("super", first))
	require.NoError(t, a.SetNamed("super", second))
	assert.Equal(t, 0, first.superRefs)
	assert.Equal(t, 1, second.superRefs)

	// first is an ordinary collection again
	require.NoError(t, first.SetUnnamed(0, num(1)))
}

func TestCloneIsIndependent(t *testing.T) {
	a, b, _, _ := hierarchy(t)
	clone := a.Clone()

	assert.NotSame(t, a, clone)
	require.NoError(t, clone.SetNamed("test1", str("changed")))
	require.NoError(t, clone.SetNamed("test2", str("changed")))

	assert.Equal(t, str("a"), getNamed(t, a, "test1"))
	assert.Equal(t, str("x"), getNamed(t, b, "test2"))
	assert.Equal(t, str("changed"), getNamed(t, clone, "test2"))
}

func TestClonePreservesSharing(t *testing.T) {
	a, _, _, d := hierarchy(t)
	clone := a.Clone()

	supers := clone.superclasses()
	require.Len(t, supers, 2)
	d1 := supers[0].superclasses()[0]
	d2 := supers[1].superclasses()[0]
	assert.Same(t, d1, d2)
	assert.NotSame(t, d, d1)
	assert.Equal(t, 1, clone.Super().superRefs)
}

func TestCloneSelfReference(t *testing.T) {
	c := NewCollection()
	define(t, c, "self", c)
	clone := c.Clone()
	assert.Same(t, clone, getNamed(t, clone, "self"))
	assert.Equal(t, "[self = [...]]", c.Inspect())
}

func TestInspect(t *testing.T) {
	c := collectionOf(t, num(1), &Float{Value: 2}, str("s"))
	define(t, c, "n", NULL)
	define(t, c, "inner", collectionOf(t, num(3)))
	assert.Equal(t, "[1, 2.0, s, n = NULL, inner = [3]]", c.Inspect())
	assert.Equal(t, []string{"n", "inner"}, c.Names())
}
