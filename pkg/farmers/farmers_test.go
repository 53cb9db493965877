package farmers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(filepath.Join(t.TempDir(), "farmers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRegistryCreateAndGet(t *testing.T) {
	r := newTestRegistry(t)

	farmer := &Farmer{
		Name:      "Ramesh Patil",
		Village:   "Shirur",
		District:  "Pune",
		State:     "Maharashtra",
		Crops:     "sugarcane, onion",
		LandAcres: 3.5,
	}
	require.NoError(t, r.Create(farmer))
	require.NotEmpty(t, farmer.ID, "a blank ID gets generated")

	got, err := r.Get(farmer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ramesh Patil", got.Name)
	assert.Equal(t, "Pune", got.District)
	assert.Equal(t, []string{"sugarcane", "onion"}, got.CropList())
}

func TestRegistryCreateValidation(t *testing.T) {
	r := newTestRegistry(t)

	assert.Error(t, r.Create(nil))
	assert.Error(t, r.Create(&Farmer{Name: "   "}))
}

func TestRegistryGetNotFound(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Get("missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestRegistryExists(t *testing.T) {
	r := newTestRegistry(t)

	farmer := &Farmer{ID: "f1", Name: "Sita Devi"}
	require.NoError(t, r.Create(farmer))

	ok, err := r.Exists("f1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Exists("f2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistryUpdate(t *testing.T) {
	r := newTestRegistry(t)

	farmer := &Farmer{ID: "f1", Name: "Sita Devi", Crops: "wheat"}
	require.NoError(t, r.Create(farmer))

	farmer.Crops = "wheat, mustard"
	require.NoError(t, r.Update(farmer))

	got, err := r.Get("f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"wheat", "mustard"}, got.CropList())

	err = r.Update(&Farmer{ID: "missing", Name: "x"})
	assert.True(t, errors.IsNotFound(err))
}

func TestRegistryListAndDelete(t *testing.T) {
	r := newTestRegistry(t)

	require.NoError(t, r.Create(&Farmer{ID: "f1", Name: "First"}))
	require.NoError(t, r.Create(&Farmer{ID: "f2", Name: "Second"}))

	all, err := r.List()
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, r.Delete("f1"))
	all, err = r.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "f2", all[0].ID)

	assert.True(t, errors.IsNotFound(r.Delete("f1")))
}

func TestCropListEmpty(t *testing.T) {
	f := &Farmer{Crops: "  "}
	assert.Nil(t, f.CropList())
}
