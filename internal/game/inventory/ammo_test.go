package inventory_test

import (
	"errors"
	"testing"

	"github.com/cory-johannsen/wasteland/internal/game/inventory"
	mockinventory "github.com/cory-johannsen/wasteland/internal/game/inventory/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUnload_CreatesAmmoAndEmptiesClip(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mockinventory.NewMockItemFactory(ctrl)
	factory.EXPECT().
		Create("ammo_10mm").
		Return(newAmmo("ammo_10mm", 50, 50), nil)

	p := newPistol(12, 7)
	inv := inventory.New(nil, p, defaults)
	require.NoError(t, inv.Unload(p, factory))
	assert.Zero(t, p.CurrentAmmo())
	assert.Equal(t, []int{7}, amounts(inv))
}

func TestUnload_MergesIntoCarriedStack(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mockinventory.NewMockItemFactory(ctrl)
	factory.EXPECT().Create("ammo_10mm").Return(newAmmo("ammo_10mm", 50, 50), nil)

	p := newPistol(12, 12)
	inv := newInventory()
	require.NoError(t, inv.Add(newAmmo("ammo_10mm", 50, 40)))
	require.NoError(t, inv.Add(p))
	require.NoError(t, inv.Unload(p, factory))
	assert.Equal(t, []int{50, 2}, amounts(inv))
}

func TestUnload_SplitsLargeClipAcrossStacks(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mockinventory.NewMockItemFactory(ctrl)
	factory.EXPECT().
		Create("ammo_10mm").
		DoAndReturn(func(string) (inventory.Item, error) {
			return newAmmo("ammo_10mm", 5, 5), nil
		}).
		Times(3)

	p := newPistol(12, 12)
	inv := inventory.New(nil, p, defaults)
	require.NoError(t, inv.Unload(p, factory))
	assert.Equal(t, []int{5, 5, 2}, amounts(inv))
}

func TestUnload_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mockinventory.NewMockItemFactory(ctrl)

	empty := newPistol(12, 0)
	inv := inventory.New(nil, empty, defaults)
	require.ErrorIs(t, inv.Unload(empty, factory), inventory.ErrAlreadyEmpty)
	require.ErrorIs(t, inv.Unload(newPistol(12, 3), factory), inventory.ErrNotFound)
	require.ErrorIs(t, inv.Unload(newMelee("knife"), factory), inventory.ErrWrongType)

	loaded := newPistol(12, 3)
	require.NoError(t, inv.Add(loaded))

	factory.EXPECT().Create("ammo_10mm").Return(nil, errors.Join(inventory.ErrBuild, errors.New("unknown")))
	require.ErrorIs(t, inv.Unload(loaded, factory), inventory.ErrAmmoCreationFailed)
	assert.Equal(t, 3, loaded.CurrentAmmo(), "failed unload leaves the clip untouched")

	factory.EXPECT().Create("ammo_10mm").Return(newArmor("not_ammo", 0), nil)
	require.ErrorIs(t, inv.Unload(loaded, factory), inventory.ErrAmmoCreationFailed)
	assert.Equal(t, 1, inv.Len())
}

func TestUnloadReload_RoundTrip(t *testing.T) {
	reg := loadContentRegistry(t)
	item, err := reg.Create("pistol_10mm")
	require.NoError(t, err)
	p := item.(*inventory.RangedWeapon)
	require.NoError(t, p.SetCurrentAmmo(9))

	inv := inventory.New(nil, p, defaults)
	require.NoError(t, inv.Unload(p, reg))
	assert.Equal(t, []int{9}, amounts(inv))
	require.NoError(t, inv.Reload(p))
	assert.Equal(t, 9, p.CurrentAmmo())
	assert.Zero(t, inv.Len())
}
