package deep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/linkstore/pkg/reactive"
	"github.com/vango-dev/linkstore/pkg/record"
)

func profile() record.Record {
	return record.Of(
		"name", "Ada",
		"address", record.Of(
			"city", "London",
			"geo", record.Of("lat", 51.5, "lng", -0.12),
		),
		"tags", []string{"math"},
	)
}

func TestWrapNavigatesNestedRecords(t *testing.T) {
	cell := reactive.NewCell[any](profile())
	view := Wrap(cell)

	assert.Equal(t, []string{"name", "address", "tags"}, view.Keys())

	name, ok := view.Leaf("name")
	require.True(t, ok)
	assert.Equal(t, "Ada", name.Get())

	address, ok := view.Child("address")
	require.True(t, ok)
	assert.Equal(t, "address", address.Path())

	lat, err := view.At("address.geo.lat")
	require.NoError(t, err)
	assert.Equal(t, 51.5, lat.Get())
	assert.Equal(t, "address.geo.lat", lat.Path())
}

func TestFieldIsCachedPerPath(t *testing.T) {
	cell := reactive.NewCell[any](profile())
	view := Wrap(cell)

	first, err := view.At("address.geo")
	require.NoError(t, err)
	second, err := view.At("address.geo")
	require.NoError(t, err)
	assert.Same(t, first.(*View), second.(*View))

	a, _ := view.Field("name")
	b, _ := view.Field("name")
	assert.Same(t, a.(*leaf), b.(*leaf))
}

func TestViewTracksWrites(t *testing.T) {
	cell := reactive.NewCell[any](profile())
	view := Wrap(cell)
	city, err := view.At("address.city")
	require.NoError(t, err)

	assert.Equal(t, "London", city.Get())

	addr, _ := profile().Get("address")
	cell.Set(profile().With("address", addr.(record.Record).With("city", "Paris")))
	assert.Equal(t, "Paris", city.Get())
}

func TestSiblingIsolation(t *testing.T) {
	cell := reactive.NewCell[any](profile())
	view := Wrap(cell)
	name, _ := view.Leaf("name")

	computations := 0
	greeting := reactive.NewDerived(func() string {
		computations++
		return "hi " + name.Get().(string)
	})
	require.Equal(t, "hi Ada", greeting.Get())

	// Change an unrelated branch: the name leaf re-derives to an equal value,
	// so greeting stays cached.
	cell.Set(profile().With("tags", []string{"math", "poetry"}))
	require.Equal(t, "hi Ada", greeting.Get())
	assert.Equal(t, 1, computations)
}

func TestViewIsReadOnly(t *testing.T) {
	cell := reactive.NewCell[any](profile())
	view := Wrap(cell)

	var n Node = view
	_, writable := n.(reactive.Writable[any])
	assert.False(t, writable)

	leafNode, _ := view.Leaf("name")
	_, writable = leafNode.(reactive.Writable[any])
	assert.False(t, writable)
}

func TestMissingFieldsAndLeaves(t *testing.T) {
	view := Wrap(reactive.NewCell[any](profile()))

	_, ok := view.Field("missing")
	assert.False(t, ok)

	_, ok = view.Child("name")
	assert.False(t, ok, "leaf is not a child view")

	_, ok = view.Leaf("address")
	assert.False(t, ok, "nested record is not a leaf")

	_, err := view.At("name.first")
	assert.Error(t, err)

	_, err = view.At("address.zip")
	assert.Error(t, err)

	self, err := view.At("")
	require.NoError(t, err)
	assert.Same(t, view, self.(*View))
}

func TestWrapNonRecord(t *testing.T) {
	view := Wrap(reactive.NewCell[any](42))
	assert.Nil(t, view.Keys())
	_, ok := view.Field("x")
	assert.False(t, ok)
	assert.Equal(t, 42, view.Get())
}

func TestWrapMapValue(t *testing.T) {
	view := Wrap(reactive.NewCell[any](map[string]any{
		"b": 1,
		"a": map[string]any{"inner": true},
	}))
	assert.Equal(t, []string{"a", "b"}, view.Keys())
	inner, err := view.At("a.inner")
	require.NoError(t, err)
	assert.Equal(t, true, inner.Get())
}

func TestWalk(t *testing.T) {
	view := Wrap(reactive.NewCell[any](profile()))
	var paths []string
	view.Walk(func(n Node) { paths = append(paths, n.Path()) })
	assert.Equal(t, []string{
		"name",
		"address",
		"address.city",
		"address.geo",
		"address.geo.lat",
		"address.geo.lng",
		"tags",
	}, paths)
}
